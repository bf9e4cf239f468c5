package ws

import (
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
)

type recorder struct {
	mu       sync.Mutex
	payloads [][]byte
	fail     bool
	closed   bool
}

func (r *recorder) Send(p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("gone")
	}
	r.payloads = append(r.payloads, p)
	return nil
}

func (r *recorder) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
}

func (r *recorder) received() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.payloads)
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("condition not met")
}

func TestHubRoutesByTopic(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	a, b := &recorder{}, &recorder{}
	topicA := domain.Topic(domain.TargetProject, "p1")
	hub.Register(topicA, a)
	hub.Register(domain.Topic(domain.TargetPost, "b1"), b)

	if err := hub.Publish(topicA, LikeEvent(domain.TargetProject, "p1", 3)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	waitFor(t, func() bool { return a.received() == 1 })
	if b.received() != 0 {
		t.Fatalf("post subscriber should not receive project events")
	}

	var ev Event
	if err := json.Unmarshal(a.payloads[0], &ev); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ev.Event != "like" || ev.Likes == nil || *ev.Likes != 3 || ev.ID != "p1" {
		t.Fatalf("unexpected event %+v", ev)
	}
}

func TestHubDropsFailingSubscribers(t *testing.T) {
	hub := NewHub()
	defer hub.Close()

	bad := &recorder{fail: true}
	hub.Register("project:p1", bad)
	if n := hub.Subscribers("project:p1"); n != 1 {
		t.Fatalf("expected 1 subscriber, got %d", n)
	}
	hub.Broadcast("project:p1", []byte("x"))
	waitFor(t, func() bool { return hub.Subscribers("project:p1") == 0 })
	bad.mu.Lock()
	defer bad.mu.Unlock()
	if !bad.closed {
		t.Fatalf("failing subscriber should be closed")
	}
}

func TestHubCloseDisconnects(t *testing.T) {
	hub := NewHub()
	r := &recorder{}
	hub.Register("post:b1", r)
	hub.Close()
	waitFor(t, func() bool {
		r.mu.Lock()
		defer r.mu.Unlock()
		return r.closed
	})
	hub.Broadcast("post:b1", []byte("ignored"))
	if hub.Subscribers("post:b1") != 0 {
		t.Fatalf("closed hub should report no subscribers")
	}
}
