package store

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Registrations manages participant competition entries.
type Registrations struct {
	col      *Collection[Registration]
	notifier *notify.Notifier
	now      func() time.Time
	newID    func() string
}

func NewRegistrations(adapter *storage.Adapter, notifier *notify.Notifier) *Registrations {
	defaults := func(r *Registration) {
		if r.Status == "" {
			r.Status = StatusPending
		}
	}
	return &Registrations{
		col:      NewCollection(adapter, KeyRegistrations, defaults),
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit validates and appends a new registration. Identity, timestamp
// and the pending status are assigned here, never taken from the
// caller. Debate entries must carry team members.
func (s *Registrations) Submit(r Registration) (Registration, error) {
	if err := validateRecord(r); err != nil {
		return Registration{}, err
	}
	r.ID = s.newID()
	r.RegistrationDate = s.now()
	r.Status = StatusPending
	if err := s.col.Append(r); err != nil {
		return Registration{}, err
	}
	s.notifier.Announce(KeyRegistrations)
	return r, nil
}

// All returns every registration in submission order.
func (s *Registrations) All() ([]Registration, error) {
	return s.col.LoadAll()
}

// Get finds one registration by id.
func (s *Registrations) Get(id string) (Registration, error) {
	records, err := s.col.Filter(func(r Registration) bool { return r.ID == id })
	if err != nil {
		return Registration{}, err
	}
	if len(records) == 0 {
		return Registration{}, services.ErrNotFound("registration not found")
	}
	return records[0], nil
}

// SetStatus moves a registration to pending, approved or rejected.
func (s *Registrations) SetStatus(id, status string) error {
	switch status {
	case StatusPending, StatusApproved, StatusRejected:
	default:
		return services.ErrBadRequest("status must be one of: pending, approved, rejected")
	}
	found, err := s.col.UpdateMatching(
		func(r Registration) bool { return r.ID == id },
		func(r *Registration) { r.Status = status },
	)
	if err != nil {
		return err
	}
	if !found {
		return services.ErrNotFound("registration not found")
	}
	s.notifier.Announce(KeyRegistrations)
	return nil
}

// Remove deletes a registration by id.
func (s *Registrations) Remove(id string) error {
	removed, err := s.col.RemoveMatching(func(r Registration) bool { return r.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("registration not found")
	}
	s.notifier.Announce(KeyRegistrations)
	return nil
}

// RemoveLegacy deletes a registration written before ids existed, using
// the name+email+timestamp triple as a fallback matcher. Only records
// with no id are eligible so a stale triple can never delete a current
// record.
func (s *Registrations) RemoveLegacy(name, email string, registered time.Time) error {
	removed, err := s.col.RemoveMatching(func(r Registration) bool {
		return r.ID == "" &&
			r.ParticipantName == name &&
			r.Email == email &&
			r.RegistrationDate.Equal(registered)
	})
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("registration not found")
	}
	s.notifier.Announce(KeyRegistrations)
	return nil
}

// RegistrationFilter narrows a listing. Empty fields match everything.
type RegistrationFilter struct {
	Search   string
	Category string
	School   string
	Status   string
}

// Filter applies search plus the category, school and status filters.
// Search matches the participant name, school and email,
// case-insensitively.
func (s *Registrations) Filter(f RegistrationFilter) ([]Registration, error) {
	search := strings.ToLower(strings.TrimSpace(f.Search))
	return s.col.Filter(func(r Registration) bool {
		if f.Category != "" && r.CompetitionCategory != f.Category {
			return false
		}
		if f.School != "" && r.SchoolName != f.School {
			return false
		}
		if f.Status != "" && r.Status != f.Status {
			return false
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(r.ParticipantName), search) ||
			strings.Contains(strings.ToLower(r.SchoolName), search) ||
			strings.Contains(strings.ToLower(r.Email), search)
	})
}

// Row pairs a registration with its 1-based display number for the
// current materialization. Numbers shift when records are removed and
// must never be used for addressing.
type Row struct {
	Number int `json:"number"`
	Registration
}

// Page is one slice of the filtered listing.
type Page struct {
	Rows       []Row `json:"rows"`
	Total      int   `json:"total"`
	PageNumber int   `json:"page"`
	PageCount  int   `json:"pageCount"`
}

// Paginate filters and slices the listing. Page numbers are 1-based;
// out-of-range pages clamp to the nearest valid page.
func (s *Registrations) Paginate(f RegistrationFilter, page, perPage int) (Page, error) {
	records, err := s.Filter(f)
	if err != nil {
		return Page{}, err
	}
	if perPage < 1 {
		perPage = 10
	}
	total := len(records)
	pageCount := (total + perPage - 1) / perPage
	if pageCount == 0 {
		pageCount = 1
	}
	if page < 1 {
		page = 1
	}
	if page > pageCount {
		page = pageCount
	}
	start := (page - 1) * perPage
	end := start + perPage
	if end > total {
		end = total
	}
	rows := make([]Row, 0, end-start)
	for i := start; i < end; i++ {
		rows = append(rows, Row{Number: i + 1, Registration: records[i]})
	}
	return Page{Rows: rows, Total: total, PageNumber: page, PageCount: pageCount}, nil
}

// Schools lists the distinct school names seen across registrations,
// sorted, for the admin filter dropdown.
func (s *Registrations) Schools() ([]string, error) {
	records, err := s.col.LoadAll()
	if err != nil {
		return nil, err
	}
	seen := map[string]bool{}
	var schools []string
	for _, r := range records {
		if !seen[r.SchoolName] {
			seen[r.SchoolName] = true
			schools = append(schools, r.SchoolName)
		}
	}
	sort.Strings(schools)
	return schools, nil
}

// Stats are the dashboard counters. UniqueSchools counts distinct
// school names; PublicSchools and PrivateSchools count registrations
// by school type, not schools.
type Stats struct {
	Total          int            `json:"total"`
	Pending        int            `json:"pending"`
	Approved       int            `json:"approved"`
	Rejected       int            `json:"rejected"`
	UniqueSchools  int            `json:"uniqueSchools"`
	PublicSchools  int            `json:"publicSchools"`
	PrivateSchools int            `json:"privateSchools"`
	ByCategory     map[string]int `json:"byCategory"`
}

func (s *Registrations) Stats() (Stats, error) {
	records, err := s.col.LoadAll()
	if err != nil {
		return Stats{}, err
	}
	stats := Stats{ByCategory: map[string]int{}}
	schools := map[string]bool{}
	for _, r := range records {
		stats.Total++
		switch r.Status {
		case StatusApproved:
			stats.Approved++
		case StatusRejected:
			stats.Rejected++
		default:
			stats.Pending++
		}
		switch r.SchoolType {
		case "public":
			stats.PublicSchools++
		case "private":
			stats.PrivateSchools++
		}
		schools[r.SchoolName] = true
		stats.ByCategory[r.CompetitionCategory]++
	}
	stats.UniqueSchools = len(schools)
	return stats, nil
}

// ExportCSV renders the filtered listing as a CSV document for
// download.
func (s *Registrations) ExportCSV(f RegistrationFilter) ([]byte, error) {
	records, err := s.Filter(f)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"ID", "Participant", "School", "Category", "Email", "Status", "Registration Date"}); err != nil {
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	for i, r := range records {
		row := []string{
			fmt.Sprintf("%d", i+1),
			r.ParticipantName,
			r.SchoolName,
			r.CompetitionCategory,
			r.Email,
			r.Status,
			r.RegistrationDate.Format("2006-01-02"),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("write csv row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("flush csv: %w", err)
	}
	return buf.Bytes(), nil
}
