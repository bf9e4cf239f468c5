package httpx

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/comment"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/feedback"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/visitor"
)

func (r *Router) handleListComments(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	filter := repository.CommentFilter{
		ProjectID: strings.TrimSpace(query.Get("projectId")),
		PostID:    strings.TrimSpace(query.Get("postId")),
	}
	if filter.ProjectID == "" && filter.PostID == "" && !isAdmin(req.Context()) {
		writeError(w, http.StatusBadRequest, "projectId or postId is required")
		return
	}
	comments, err := r.comments.List(req.Context(), filter, isAdmin(req.Context()))
	if err != nil {
		r.fail(w, req, "comment", err)
		return
	}
	writeList(w, "comments", comments, len(comments))
}

func (r *Router) handleCreateComment(w http.ResponseWriter, req *http.Request) {
	var in comment.Input
	if !decodeJSON(w, req, &in) {
		return
	}
	c, err := r.comments.Create(req.Context(), in)
	if err != nil {
		r.fail(w, req, "comment", err)
		return
	}
	target, _ := c.Target()
	r.recordEngagement("comment", string(target))
	public := *c
	public.Email = ""
	writeSuccess(w, http.StatusCreated, "comment", public)
}

func (r *Router) handleDeleteComment(w http.ResponseWriter, req *http.Request) {
	if err := r.comments.Delete(req.Context(), req.PathValue("id")); err != nil {
		r.fail(w, req, "comment", err)
		return
	}
	writeMessage(w, http.StatusOK, "comment deleted")
}

type likeRequest struct {
	Type   string `json:"type"`
	ID     string `json:"id"`
	Action string `json:"action"`
}

func (r *Router) handleGetLikes(w http.ResponseWriter, req *http.Request) {
	query := req.URL.Query()
	t, err := domain.ParseTargetType(query.Get("type"))
	if err != nil {
		r.fail(w, req, "target", err)
		return
	}
	id := strings.TrimSpace(query.Get("id"))
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	likes, err := r.likes.Count(req.Context(), t, id)
	if err != nil {
		r.fail(w, req, string(t), err)
		return
	}
	writeSuccess(w, http.StatusOK, "likes", likes)
}

func (r *Router) handlePostLike(w http.ResponseWriter, req *http.Request) {
	var body likeRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	t, err := domain.ParseTargetType(body.Type)
	if err != nil {
		r.fail(w, req, "target", err)
		return
	}
	id := strings.TrimSpace(body.ID)
	if id == "" {
		writeError(w, http.StatusBadRequest, "id is required")
		return
	}
	likes, err := r.likes.Apply(req.Context(), t, id, body.Action)
	if err != nil {
		r.fail(w, req, string(t), err)
		return
	}
	action := strings.ToLower(strings.TrimSpace(body.Action))
	if action == "" {
		action = "like"
	}
	r.recordEngagement(action, string(t))
	writeSuccess(w, http.StatusOK, "likes", likes)
}

func (r *Router) handleSubmitFeedback(w http.ResponseWriter, req *http.Request) {
	var in feedback.Input
	if !decodeJSON(w, req, &in) {
		return
	}
	fb, err := r.feedback.Submit(req.Context(), in)
	if err != nil {
		r.fail(w, req, "feedback", err)
		return
	}
	writeJSON(w, http.StatusCreated, envelope{
		"success": true,
		"id":      fb.ID,
		"message": "Thanks for reaching out",
	})
}

func (r *Router) handleListFeedback(w http.ResponseWriter, req *http.Request) {
	unread, _ := strconv.ParseBool(req.URL.Query().Get("unread"))
	items, err := r.feedback.List(req.Context(), unread)
	if err != nil {
		r.fail(w, req, "feedback", err)
		return
	}
	writeList(w, "feedback", items, len(items))
}

func (r *Router) handleMarkFeedback(w http.ResponseWriter, req *http.Request) {
	body := struct {
		Read *bool `json:"read"`
	}{}
	// An empty body marks the entry read.
	if req.ContentLength != 0 && !decodeJSON(w, req, &body) {
		return
	}
	read := true
	if body.Read != nil {
		read = *body.Read
	}
	if err := r.feedback.MarkRead(req.Context(), req.PathValue("id"), read); err != nil {
		r.fail(w, req, "feedback", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{"success": true, "read": read})
}

func (r *Router) handleDeleteFeedback(w http.ResponseWriter, req *http.Request) {
	if err := r.feedback.Delete(req.Context(), req.PathValue("id")); err != nil {
		r.fail(w, req, "feedback", err)
		return
	}
	writeMessage(w, http.StatusOK, "feedback deleted")
}

func (r *Router) handleRecordVisit(w http.ResponseWriter, req *http.Request) {
	var in visitor.Input
	if !decodeJSON(w, req, &in) {
		return
	}
	in.UserAgent = req.UserAgent()
	in.IP = clientIP(req)
	if in.Referrer == "" {
		in.Referrer = req.Referer()
	}
	if _, err := r.visitors.Record(req.Context(), in); err != nil {
		r.fail(w, req, "visit", err)
		return
	}
	writeMessage(w, http.StatusCreated, "visit recorded")
}

func (r *Router) handleVisitorStats(w http.ResponseWriter, req *http.Request) {
	days := 0
	if raw := strings.TrimSpace(req.URL.Query().Get("days")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "days must be a non-negative integer")
			return
		}
		days = n
	}
	stats, err := r.visitors.Stats(req.Context(), days)
	if err != nil {
		r.fail(w, req, "visitor stats", err)
		return
	}
	writeSuccess(w, http.StatusOK, "stats", stats)
}
