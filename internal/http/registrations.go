package httpapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

func registrationFilter(r *http.Request) store.RegistrationFilter {
	q := r.URL.Query()
	return store.RegistrationFilter{
		Search:   q.Get("search"),
		Category: q.Get("category"),
		School:   q.Get("school"),
		Status:   q.Get("status"),
	}
}

func (s *Server) ListRegistrations(w http.ResponseWriter, r *http.Request) {
	page := parseInt(r.URL.Query().Get("page"), 1)
	perPage := parseInt(r.URL.Query().Get("perPage"), 10)
	result, err := s.Store.Registrations.Paginate(registrationFilter(r), page, perPage)
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, result)
}

func (s *Server) RegistrationSchools(w http.ResponseWriter, r *http.Request) {
	schools, err := s.Store.Registrations.Schools()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	WriteJSON(w, http.StatusOK, schools)
}

type StatusRequest struct {
	Status string `json:"status"`
}

func (s *Server) SetRegistrationStatus(w http.ResponseWriter, r *http.Request) {
	var req StatusRequest
	if !decodeBody(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	if err := s.Store.Registrations.SetStatus(id, req.Status); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("REGISTRATION_STATUS", CurrentUsername(r), fmt.Sprintf("%s -> %s", id, req.Status), r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) DeleteRegistration(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := s.Store.Registrations.Remove(id); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("REGISTRATION_DELETE", CurrentUsername(r), id, r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// DeleteLegacyRegistration removes a record written before ids were
// assigned, addressed by the name+email+timestamp triple instead.
func (s *Server) DeleteLegacyRegistration(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	name := q.Get("name")
	email := q.Get("email")
	registered, err := time.Parse(time.RFC3339, q.Get("registeredAt"))
	if name == "" || email == "" || err != nil {
		WriteError(w, http.StatusBadRequest, "name, email and registeredAt are required")
		return
	}
	if err := s.Store.Registrations.RemoveLegacy(name, email, registered); err != nil {
		WriteFailure(w, err)
		return
	}
	s.Store.Audit.Record("REGISTRATION_DELETE", CurrentUsername(r), name+" <"+email+">", r.UserAgent())
	WriteJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

func (s *Server) ExportRegistrations(w http.ResponseWriter, r *http.Request) {
	data, err := s.Store.Registrations.ExportCSV(registrationFilter(r))
	if err != nil {
		WriteFailure(w, err)
		return
	}
	filename := fmt.Sprintf("registrations-%s.csv", time.Now().Format("2006-01-02"))
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

type DashboardResponse struct {
	Registrations  store.Stats    `json:"registrations"`
	UnreadCount    int            `json:"unreadMessages"`
	DaysUntilEvent int            `json:"daysUntilEvent"`
	RecordCounts   map[string]int `json:"recordCounts"`
}

func (s *Server) DashboardStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.Store.Registrations.Stats()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	unread, err := s.Store.Messages.UnreadCount()
	if err != nil {
		WriteFailure(w, err)
		return
	}
	// The dashboard shows 0 once the event day arrives.
	days, err := s.Store.Content.DaysUntilEvent()
	if err != nil || days < 0 {
		days = 0
	}
	WriteJSON(w, http.StatusOK, DashboardResponse{
		Registrations:  stats,
		UnreadCount:    unread,
		DaysUntilEvent: days,
		RecordCounts:   s.Store.RecordCounts(),
	})
}
