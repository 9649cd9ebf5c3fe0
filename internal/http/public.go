package httpapi

import (
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

func (s *Server) SubmitRegistration(w http.ResponseWriter, r *http.Request) {
	var reg store.Registration
	if !decodeBody(w, r, &reg) {
		return
	}
	saved, err := s.Store.Registrations.Submit(reg)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) SubmitMessage(w http.ResponseWriter, r *http.Request) {
	var msg store.ContactMessage
	if !decodeBody(w, r, &msg) {
		return
	}
	saved, err := s.Store.Messages.Submit(msg)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	if err := s.Mailer.SendContactNotification(r.Context(), saved.Name, saved.Email, saved.Subject, saved.Message); err != nil {
		log.Printf("contact notification: %v", err)
	}
	WriteJSON(w, http.StatusCreated, saved)
}

func (s *Server) PublicCompetitions(w http.ResponseWriter, r *http.Request) {
	competitions, err := s.Store.Competitions.Active()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, competitions)
}

func (s *Server) FeaturedCompetition(w http.ResponseWriter, r *http.Request) {
	competition, ok, err := s.Store.Competitions.Featured()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	if !ok {
		WriteError(w, http.StatusNotFound, "No featured competition")
		return
	}
	WriteJSON(w, http.StatusOK, competition)
}

func (s *Server) PublicPhotos(w http.ResponseWriter, r *http.Request) {
	photos, err := s.Store.Gallery.Photos()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, photos)
}

func (s *Server) PublicVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := s.Store.Gallery.Videos()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, videos)
}

func (s *Server) PublicPress(w http.ResponseWriter, r *http.Request) {
	press, err := s.Store.Gallery.Press()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, press)
}

func (s *Server) HomePage(w http.ResponseWriter, r *http.Request) {
	home, err := s.Store.Content.Home()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, home)
}

func (s *Server) ActivitiesPage(w http.ResponseWriter, r *http.Request) {
	activities, err := s.Store.Content.Activities()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, activities)
}

type CountdownResponse struct {
	Days    int    `json:"days"`
	Arrived bool   `json:"arrived"`
	Message string `json:"message,omitempty"`
}

func (s *Server) Countdown(w http.ResponseWriter, r *http.Request) {
	days, err := s.Store.Content.DaysUntilEvent()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	resp := CountdownResponse{Days: days}
	if days <= 0 {
		resp.Arrived = true
		home, err := s.Store.Content.Home()
		if err == nil {
			resp.Message = home.CountdownMessage
		}
	}
	WriteJSON(w, http.StatusOK, resp)
}

type TopicUpdatedResponse struct {
	Topic     string     `json:"topic"`
	UpdatedAt *time.Time `json:"updatedAt,omitempty"`
}

// TopicUpdated lets a polling view ask when a collection last changed
// without loading it.
func (s *Server) TopicUpdated(w http.ResponseWriter, r *http.Request) {
	topic := chi.URLParam(r, "topic")
	resp := TopicUpdatedResponse{Topic: topic}
	if stamp, ok := s.Notifier.LastAnnounced(topic); ok {
		resp.UpdatedAt = &stamp
	}
	WriteJSON(w, http.StatusOK, resp)
}
