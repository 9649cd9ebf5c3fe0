package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
)

func (s *Server) ListMessages(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	messages, err := s.Store.Messages.Filter(q.Get("status"), q.Get("search"))
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, messages)
}

func (s *Server) MarkMessageRead(w http.ResponseWriter, r *http.Request) {
	if err := s.Store.Messages.MarkRead(chi.URLParam(r, "id")); err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

type ReplyRequest struct {
	Body string `json:"body"`
}

// ReplyToMessage emails the admin's reply to the message author and
// flags the message as replied. The flag is only set after the email
// goes out.
func (s *Server) ReplyToMessage(w http.ResponseWriter, r *http.Request) {
	var req ReplyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Body == "" {
		WriteError(w, http.StatusBadRequest, "Reply body is required")
		return
	}
	id := chi.URLParam(r, "id")
	msg, err := s.Store.Messages.Get(id)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	if err := s.Mailer.SendReply(r.Context(), msg.Email, msg.Subject, req.Body); err != nil {
		log.Printf("reply email: %v", err)
		WriteError(w, http.StatusBadGateway, "Could not send the reply email")
		return
	}
	if err := s.Store.Messages.MarkReplied(id); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("MESSAGE_REPLY", CurrentUsername(r), id, r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) DeleteMessage(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Messages.Remove(id); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("MESSAGE_DELETE", CurrentUsername(r), id, r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
