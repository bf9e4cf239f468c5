package httpx

import (
	"net/http"
	"testing"
	"time"
)

func TestRatePolicyEngagementBudget(t *testing.T) {
	policy := newRatePolicy(0)
	if got := policy.rule("likes").limit; got != rateLimitEngagementDefault {
		t.Fatalf("default engagement limit %d, want %d", got, rateLimitEngagementDefault)
	}
	policy = newRatePolicy(7)
	if policy.rule("likes").limit != 7 || policy.rule("comments").limit != 7 {
		t.Fatalf("engagement limit not applied: %+v", policy)
	}
	if got := policy.rule("feedback"); got.limit != rateLimitFeedback || got.window != time.Minute {
		t.Fatalf("unexpected feedback rule %+v", got)
	}
	if got := policy.rule("unlisted").limit; got != rateLimitAdminWrite {
		t.Fatalf("unlisted route limit %d, want %d", got, rateLimitAdminWrite)
	}
}

func TestLikesUseEngagementLimit(t *testing.T) {
	ts := newTestServer(t, Options{EngagementLimit: 2})
	rec := ts.do(t, http.MethodPost, "/api/projects", ts.token, map[string]string{"title": "Budget", "description": "d", "content": "c"})
	var created struct {
		Project struct {
			ID string `json:"id"`
		} `json:"project"`
	}
	decodeBody(t, rec, &created)

	body := map[string]string{"type": "project", "id": created.Project.ID, "action": "like"}
	for i := 0; i < 2; i++ {
		if rec := ts.do(t, http.MethodPost, "/api/likes", "", body); rec.Code != http.StatusOK {
			t.Fatalf("like %d status %d: %s", i, rec.Code, rec.Body.String())
		}
	}
	if rec := ts.do(t, http.MethodPost, "/api/likes", "", body); rec.Code != http.StatusTooManyRequests {
		t.Fatalf("expected 429, got %d", rec.Code)
	}
	// Reads are not limited.
	if rec := ts.do(t, http.MethodGet, "/api/likes?type=project&id="+created.Project.ID, "", nil); rec.Code != http.StatusOK {
		t.Fatalf("count status %d", rec.Code)
	}
}

func TestMemoryRateLimiterWindow(t *testing.T) {
	rl := NewMemoryRateLimiter()
	defer rl.Close()
	for i := 1; i <= 3; i++ {
		d := rl.Allow("likes|ip:1.2.3.4", 3, time.Minute)
		if !d.allowed || d.count != i {
			t.Fatalf("request %d: %+v", i, d)
		}
	}
	if d := rl.Allow("likes|ip:1.2.3.4", 3, time.Minute); d.allowed {
		t.Fatalf("expected fourth request to be limited")
	}
	if d := rl.Allow("likes|ip:5.6.7.8", 3, time.Minute); !d.allowed {
		t.Fatalf("other keys must have their own budget")
	}
	if d := rl.Allow("anything", 0, time.Minute); !d.allowed {
		t.Fatalf("zero limit means unlimited")
	}
}
