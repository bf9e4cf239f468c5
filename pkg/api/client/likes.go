package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/shishir-py/personal-portfolio-sub000/pkg/engagement"
)

// LikeStore remembers which targets this browser-equivalent has liked.
// The server does not enforce one like per visitor; the flag only keeps
// the toggle honest for a single user.
type LikeStore interface {
	Liked(key string) (bool, error)
	SetLiked(key string, liked bool) error
}

// MemoryLikeStore keeps flags for the lifetime of the process.
type MemoryLikeStore struct {
	mu    sync.Mutex
	liked map[string]bool
}

// NewMemoryLikeStore returns an empty store.
func NewMemoryLikeStore() *MemoryLikeStore {
	return &MemoryLikeStore{liked: make(map[string]bool)}
}

func (s *MemoryLikeStore) Liked(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.liked[key], nil
}

func (s *MemoryLikeStore) SetLiked(key string, liked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if liked {
		s.liked[key] = true
	} else {
		delete(s.liked, key)
	}
	return nil
}

// FileLikeStore persists flags as a JSON object in a file, rewriting it on
// every change.
type FileLikeStore struct {
	mu   sync.Mutex
	path string
}

// NewFileLikeStore returns a store backed by path. The file is created on
// first write.
func NewFileLikeStore(path string) *FileLikeStore {
	return &FileLikeStore{path: path}
}

func (s *FileLikeStore) load() (map[string]bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read like store: %w", err)
	}
	liked := map[string]bool{}
	if len(data) == 0 {
		return liked, nil
	}
	if err := json.Unmarshal(data, &liked); err != nil {
		return nil, fmt.Errorf("decode like store: %w", err)
	}
	return liked, nil
}

func (s *FileLikeStore) Liked(key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	liked, err := s.load()
	if err != nil {
		return false, err
	}
	return liked[key], nil
}

func (s *FileLikeStore) SetLiked(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	liked, err := s.load()
	if err != nil {
		return err
	}
	if value {
		liked[key] = true
	} else {
		delete(liked, key)
	}
	data, err := json.MarshalIndent(liked, "", "  ")
	if err != nil {
		return fmt.Errorf("encode like store: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create like store dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write like store: %w", err)
	}
	return os.Rename(tmp, s.path)
}

// LikeState is what a UI shows for one target.
type LikeState struct {
	Liked bool
	Count int
}

// LikeTracker toggles likes optimistically: the flag and displayed count
// change before the request is sent and are reverted if it fails.
type LikeTracker struct {
	client *Client
	store  LikeStore
	// OnChange, when set, observes every state shown to the user,
	// including the optimistic one and any revert.
	OnChange func(t engagement.TargetType, id string, state LikeState)
}

// NewLikeTracker pairs a client with a flag store.
func NewLikeTracker(c *Client, store LikeStore) *LikeTracker {
	if store == nil {
		store = NewMemoryLikeStore()
	}
	return &LikeTracker{client: c, store: store}
}

func likeKey(t engagement.TargetType, id string) string {
	return engagement.Topic(t, id)
}

// Liked reports the stored flag for a target.
func (lt *LikeTracker) Liked(t engagement.TargetType, id string) (bool, error) {
	return lt.store.Liked(likeKey(t, id))
}

// Toggle flips the like flag for a target whose displayed count is
// displayed. On success the server's count is returned; on failure the
// previous state is restored and returned with the error.
func (lt *LikeTracker) Toggle(ctx context.Context, t engagement.TargetType, id string, displayed int) (LikeState, error) {
	key := likeKey(t, id)
	wasLiked, err := lt.store.Liked(key)
	if err != nil {
		return LikeState{Count: displayed}, err
	}
	before := LikeState{Liked: wasLiked, Count: displayed}

	optimistic := LikeState{Liked: !wasLiked, Count: displayed + 1}
	action := "like"
	if wasLiked {
		optimistic.Count = max(displayed-1, 0)
		action = "unlike"
	}
	if err := lt.store.SetLiked(key, optimistic.Liked); err != nil {
		return before, err
	}
	lt.notify(t, id, optimistic)

	count, err := lt.client.SendLike(ctx, t, id, action)
	if err != nil {
		if rerr := lt.store.SetLiked(key, wasLiked); rerr != nil {
			err = errors.Join(err, rerr)
		}
		lt.notify(t, id, before)
		return before, err
	}
	final := LikeState{Liked: optimistic.Liked, Count: count}
	if final != optimistic {
		lt.notify(t, id, final)
	}
	return final, nil
}

func (lt *LikeTracker) notify(t engagement.TargetType, id string, state LikeState) {
	if lt.OnChange != nil {
		lt.OnChange(t, id, state)
	}
}
