package httpapi

import (
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

func (s *Server) ListCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := s.Store.Competitions.All()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, competitions)
}

func (s *Server) CreateCompetition(w http.ResponseWriter, r *http.Request) {
	var comp store.Competition
	if !decodeBody(w, r, &comp) {
		return
	}
	saved, err := s.Store.Competitions.Add(comp)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("COMPETITION_CREATE", CurrentUsername(r), saved.Title, r.UserAgent())
	s.notifyCompetition(r, "created", saved)
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) UpdateCompetition(w http.ResponseWriter, r *http.Request) {
	var comp store.Competition
	if !decodeBody(w, r, &comp) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.Store.Competitions.Update(id, comp); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("COMPETITION_UPDATE", CurrentUsername(r), comp.Title, r.UserAgent())
	s.notifyCompetition(r, "updated", comp)
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) DeleteCompetition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	comp, err := s.Store.Competitions.Get(id)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	if err := s.Store.Competitions.Delete(id); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("COMPETITION_DELETE", CurrentUsername(r), comp.Title, r.UserAgent())
	s.notifyCompetition(r, "deleted", comp)
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) FeatureCompetition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Competitions.SetFeatured(id); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("COMPETITION_FEATURE", CurrentUsername(r), id, r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) ToggleFeaturedCompetition(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	featured, err := s.Store.Competitions.ToggleFeatured(id)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("COMPETITION_FEATURE", CurrentUsername(r), id, r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"featured": featured})
}

func (s *Server) notifyCompetition(r *http.Request, action string, comp store.Competition) {
	err := s.Mailer.SendCompetitionNotification(r.Context(), action, comp.Title, comp.Category, comp.Deadline, comp.Status)
	if err != nil {
		log.Printf("competition notification: %v", err)
	}
}
