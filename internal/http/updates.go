package httpapi

import (
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
)

func (s *Server) AuditLog(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 100)
	entries, err := s.Store.Audit.Entries(limit)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, entries)
}

func (s *Server) HealthHistory(w http.ResponseWriter, r *http.Request) {
	limit := parseInt(r.URL.Query().Get("limit"), 120)
	if limit > 500 {
		limit = 500
	}
	WriteJSON(w, http.StatusOK, s.Sampler.History(limit))
}

// UpdatesSocket streams collection-change events and health samples to
// an admin view. A valid session is required at upgrade time; the
// connection itself is kept until the client goes away.
func (s *Server) UpdatesSocket(w http.ResponseWriter, r *http.Request) {
	if _, ok := s.Guard.Session(); !ok {
		WriteFailure(w, services.ErrUnauthorized("Authentication failed"))
		return
	}
	upgrader := websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool { return true },
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	s.Hub.Add(conn)
	defer func() {
		s.Hub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
