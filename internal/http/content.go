package httpapi

import (
	"net/http"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

func (s *Server) SaveHomePage(w http.ResponseWriter, r *http.Request) {
	var home store.HomeContent
	if !decodeBody(w, r, &home) {
		return
	}
	if err := s.Store.Content.SaveHome(home); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("CONTENT_HOME_SAVE", CurrentUsername(r), "", r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) SaveActivitiesPage(w http.ResponseWriter, r *http.Request) {
	var activities store.ActivitiesContent
	if !decodeBody(w, r, &activities) {
		return
	}
	if err := s.Store.Content.SaveActivities(activities); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("CONTENT_ACTIVITIES_SAVE", CurrentUsername(r), "", r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
