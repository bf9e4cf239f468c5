package httpx

import (
	"net/http"
	"strings"

	"github.com/shishir-py/personal-portfolio-sub000/internal/service/auth"
	"github.com/shishir-py/personal-portfolio-sub000/internal/service/profile"
)

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type tokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	ExpiresIn    int64  `json:"expiresIn"`
}

func toTokenResponse(pair auth.TokenPair) tokenResponse {
	return tokenResponse{
		AccessToken:  pair.AccessToken,
		RefreshToken: pair.RefreshToken,
		ExpiresIn:    int64(pair.ExpiresIn.Seconds()),
	}
}

func (r *Router) handleLogin(w http.ResponseWriter, req *http.Request) {
	var body loginRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	if strings.TrimSpace(body.Email) == "" || body.Password == "" {
		writeError(w, http.StatusBadRequest, "email and password are required")
		return
	}
	user, pair, err := r.auth.Login(req.Context(), body.Email, body.Password)
	if err != nil {
		r.fail(w, req, "user", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    user,
		"tokens":  toTokenResponse(pair),
	})
}

func (r *Router) handleRefresh(w http.ResponseWriter, req *http.Request) {
	var body refreshRequest
	if !decodeJSON(w, req, &body) {
		return
	}
	if strings.TrimSpace(body.RefreshToken) == "" {
		writeError(w, http.StatusBadRequest, "refreshToken is required")
		return
	}
	user, pair, err := r.auth.Refresh(req.Context(), body.RefreshToken)
	if err != nil {
		r.fail(w, req, "user", err)
		return
	}
	writeJSON(w, http.StatusOK, envelope{
		"success": true,
		"user":    user,
		"tokens":  toTokenResponse(pair),
	})
}

func (r *Router) handleMe(w http.ResponseWriter, req *http.Request) {
	info, _ := authInfoFromContext(req.Context())
	writeSuccess(w, http.StatusOK, "user", map[string]string{
		"id":   info.UserID,
		"role": info.Role,
	})
}

func (r *Router) handleGetProfile(w http.ResponseWriter, req *http.Request) {
	p, err := r.profile.Get(req.Context())
	if err != nil {
		r.fail(w, req, "profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile", p)
}

func (r *Router) handleSaveProfile(w http.ResponseWriter, req *http.Request) {
	var in profile.Input
	if !decodeJSON(w, req, &in) {
		return
	}
	p, err := r.profile.Save(req.Context(), in)
	if err != nil {
		r.fail(w, req, "profile", err)
		return
	}
	writeSuccess(w, http.StatusOK, "profile", p)
}
