package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"

	"github.com/shishir-py/personal-portfolio-sub000/internal/service/project"
	"github.com/shishir-py/personal-portfolio-sub000/pkg/engagement"
)

type likeServer struct {
	mu    sync.Mutex
	likes int
	fail  bool
	calls []string
}

func (s *likeServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var body struct {
		Type   string `json:"type"`
		ID     string `json:"id"`
		Action string `json:"action"`
	}
	_ = json.NewDecoder(r.Body).Decode(&body)
	s.calls = append(s.calls, body.Action)
	w.Header().Set("Content-Type", "application/json")
	if s.fail {
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]any{"success": false, "message": "Internal server error"})
		return
	}
	if body.Action == "unlike" {
		s.likes = max(s.likes-1, 0)
	} else {
		s.likes++
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"success": true, "likes": s.likes})
}

func newTestClient(t *testing.T, h http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

func TestLikeTrackerToggleTwiceRestoresCount(t *testing.T) {
	server := &likeServer{likes: 4}
	tracker := NewLikeTracker(newTestClient(t, server), NewMemoryLikeStore())
	ctx := context.Background()

	state, err := tracker.Toggle(ctx, engagement.TargetProject, "p1", 4)
	if err != nil {
		t.Fatalf("like: %v", err)
	}
	if !state.Liked || state.Count != 5 {
		t.Fatalf("unexpected state after like %+v", state)
	}
	state, err = tracker.Toggle(ctx, engagement.TargetProject, "p1", state.Count)
	if err != nil {
		t.Fatalf("unlike: %v", err)
	}
	if state.Liked || state.Count != 4 {
		t.Fatalf("expected original count restored, got %+v", state)
	}
	if len(server.calls) != 2 || server.calls[0] != "like" || server.calls[1] != "unlike" {
		t.Fatalf("unexpected actions %v", server.calls)
	}
}

func TestLikeTrackerRevertsOnFailure(t *testing.T) {
	server := &likeServer{likes: 2, fail: true}
	store := NewMemoryLikeStore()
	tracker := NewLikeTracker(newTestClient(t, server), store)

	var seen []LikeState
	tracker.OnChange = func(_ engagement.TargetType, _ string, s LikeState) { seen = append(seen, s) }

	state, err := tracker.Toggle(context.Background(), engagement.TargetPost, "post-1", 2)
	if err == nil {
		t.Fatal("expected error from failing server")
	}
	if state.Liked || state.Count != 2 {
		t.Fatalf("expected reverted state, got %+v", state)
	}
	if liked, _ := store.Liked(likeKey(engagement.TargetPost, "post-1")); liked {
		t.Fatal("expected flag reverted in store")
	}
	if len(seen) != 2 || !seen[0].Liked || seen[0].Count != 3 || seen[1].Liked {
		t.Fatalf("expected optimistic then reverted states, got %+v", seen)
	}
}

func TestFileLikeStorePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "likes.json")
	store := NewFileLikeStore(path)
	if err := store.SetLiked("project:1", true); err != nil {
		t.Fatalf("SetLiked: %v", err)
	}
	reopened := NewFileLikeStore(path)
	liked, err := reopened.Liked("project:1")
	if err != nil || !liked {
		t.Fatalf("expected persisted flag, got %v (err %v)", liked, err)
	}
	if err := reopened.SetLiked("project:1", false); err != nil {
		t.Fatalf("SetLiked false: %v", err)
	}
	if liked, _ := store.Liked("project:1"); liked {
		t.Fatal("expected flag cleared")
	}
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer tok" {
			t.Errorf("missing bearer token")
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"success":false,"message":"title is required"}`))
	}))
	_, err := c.CreateProject(context.Background(), "tok", project.Input{})
	apiErr, ok := err.(APIError)
	if !ok || apiErr.Status != http.StatusBadRequest || apiErr.Message != "title is required" {
		t.Fatalf("unexpected error %#v", err)
	}
}

func TestListProjectsDecodesEnvelope(t *testing.T) {
	c := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/projects" || r.URL.Query().Get("sort") != "order" {
			t.Errorf("unexpected request %s", r.URL)
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"success":true,"projects":[{"id":"1","slug":"a","title":"A"}],"total":7}`))
	}))
	items, total, err := c.ListProjects(context.Background(), ListOptions{Sort: "order"})
	if err != nil {
		t.Fatalf("ListProjects: %v", err)
	}
	if len(items) != 1 || items[0].Slug != "a" || total != 7 {
		t.Fatalf("unexpected result %+v total %d", items, total)
	}
}
