package httpx

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/ws"
)

// handleStream subscribes the caller to a target's engagement events. A
// websocket upgrade is used when requested, otherwise Server-Sent Events.
// The current like count is sent first so clients can render immediately.
func (r *Router) handleStream(w http.ResponseWriter, req *http.Request) {
	t, err := domain.ParseTargetType(req.PathValue("type"))
	if err != nil {
		r.fail(w, req, "target", err)
		return
	}
	id := strings.TrimSpace(req.PathValue("id"))
	likes, err := r.likes.Count(req.Context(), t, id)
	if err != nil {
		r.fail(w, req, string(t), err)
		return
	}
	initial, err := json.Marshal(ws.LikeEvent(t, id, likes))
	if err != nil {
		r.fail(w, req, string(t), err)
		return
	}
	topic := domain.Topic(t, id)

	if websocket.IsWebSocketUpgrade(req) {
		r.streamWebsocket(w, req, topic, initial)
		return
	}
	r.streamSSE(w, req, topic, initial)
}

func (r *Router) streamWebsocket(w http.ResponseWriter, req *http.Request, topic string, initial []byte) {
	conn, err := r.upgrader.Upgrade(w, req, nil)
	if err != nil {
		r.logger.Warn("websocket upgrade failed", "error", err, "topic", topic)
		return
	}
	client := ws.NewClient(conn, r.logger)
	defer client.Close()
	if err := client.Send(initial); err != nil {
		return
	}
	r.hub.Register(topic, client)
	defer r.hub.Unregister(topic, client)
	r.logger.Debug("stream subscribed", "topic", topic, "transport", "websocket")
	client.Wait()
}

func (r *Router) streamSSE(w http.ResponseWriter, req *http.Request, topic string, initial []byte) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}
	headers := w.Header()
	headers.Set("Content-Type", "text/event-stream")
	headers.Set("Cache-Control", "no-cache")
	headers.Set("Connection", "keep-alive")
	headers.Set("X-Accel-Buffering", "no")
	w.WriteHeader(http.StatusOK)

	client := ws.NewSSEClient(w, flusher, r.logger)
	defer client.Close()
	if err := client.Send(initial); err != nil {
		return
	}
	r.hub.Register(topic, client)
	defer r.hub.Unregister(topic, client)
	r.logger.Debug("stream subscribed", "topic", topic, "transport", "sse")
	client.Serve(req.Context(), sseHeartbeat)
}
