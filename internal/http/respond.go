package httpx

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shishir-py/personal-portfolio-sub000/internal/domain"
	"github.com/shishir-py/personal-portfolio-sub000/internal/repository"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/auth"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/upload"
)

const maxJSONBody = 1 << 20

// envelope is the response shape shared by every API route:
// {"success": bool, "<entity>": ..., "message": "..."}.
type envelope map[string]any

// writeJSON writes JSON response with status code.
func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// writeSuccess wraps value under key in a success envelope.
func writeSuccess(w http.ResponseWriter, status int, key string, value any) {
	writeJSON(w, status, envelope{"success": true, key: value})
}

// writeList writes a list envelope with the pre-pagination total.
func writeList(w http.ResponseWriter, key string, items any, total int) {
	writeJSON(w, http.StatusOK, envelope{"success": true, key: items, "total": total})
}

// writeMessage writes a success envelope carrying only a message.
func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{"success": true, "message": msg})
}

// writeError sends an error message.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{"success": false, "message": msg})
}

// decodeJSON reads a bounded JSON body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, req *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, req.Body, maxJSONBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body required")
		default:
			writeError(w, http.StatusBadRequest, "invalid JSON body")
		}
		return false
	}
	return true
}

// fail maps service errors onto HTTP responses. Unexpected errors are
// logged and hidden behind a generic 500.
func (r *Router) fail(w http.ResponseWriter, req *http.Request, entity string, err error) {
	switch {
	case domain.IsValidation(err):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, repository.ErrNotFound):
		writeError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, repository.ErrConflict):
		writeError(w, http.StatusConflict, entity+" already exists")
	case errors.Is(err, repository.ErrInvalidArgument):
		writeError(w, http.StatusBadRequest, "invalid "+entity)
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, auth.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "authentication failed")
	case errors.Is(err, upload.ErrTooLarge):
		writeError(w, http.StatusRequestEntityTooLarge, "file too large")
	case errors.Is(err, context.Canceled):
		r.logger.Debug("request canceled", "path", req.URL.Path)
	default:
		r.logger.Error("request failed", "path", req.URL.Path, "entity", entity, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error")
	}
}
