package httpapi

import (
	"net/http"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
)

type LoginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeBody(w, r, &req) {
		return
	}
	result, err := s.Guard.AttemptLogin(req.Username, req.Password, r.UserAgent(), req.RememberMe)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	switch {
	case result.OK:
		WriteJSON(w, http.StatusOK, result)
	case result.Locked:
		WriteJSON(w, http.StatusLocked, result)
	default:
		WriteJSON(w, http.StatusUnauthorized, result)
	}
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.Guard.Logout("manual", r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) SessionInfo(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.Guard.Session()
	if !ok {
		WriteFailure(w, services.ErrUnauthorized("No active session"))
		return
	}
	WriteJSON(w, http.StatusOK, sess)
}
