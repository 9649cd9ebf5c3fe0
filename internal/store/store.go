// Package store holds the typed domain stores layered over the storage
// adapter. Each store owns one or more collections, assigns record
// identity on write, validates input, and announces its topic through
// the notifier after every successful mutation.
package store

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Store bundles every typed store over one adapter and notifier.
type Store struct {
	Registrations *Registrations
	Messages      *Messages
	Competitions  *Competitions
	Gallery       *Gallery
	Content       *Content
	Audit         *Audit
}

func New(adapter *storage.Adapter, notifier *notify.Notifier) *Store {
	return &Store{
		Registrations: NewRegistrations(adapter, notifier),
		Messages:      NewMessages(adapter, notifier),
		Competitions:  NewCompetitions(adapter, notifier),
		Gallery:       NewGallery(adapter, notifier),
		Content:       NewContent(adapter, notifier),
		Audit:         NewAudit(adapter),
	}
}

// RecordCounts tallies how many records each collection holds, keyed
// by storage key. Unreadable collections count as zero.
func (s *Store) RecordCounts() map[string]int {
	counts := map[string]int{}
	if records, err := s.Registrations.All(); err == nil {
		counts[KeyRegistrations] = len(records)
	}
	if records, err := s.Messages.All(); err == nil {
		counts[KeyContactMessages] = len(records)
	}
	if records, err := s.Competitions.All(); err == nil {
		counts[KeyCompetitions] = len(records)
	}
	if records, err := s.Gallery.Photos(); err == nil {
		counts[KeyGalleryPhotos] = len(records)
	}
	if records, err := s.Gallery.Videos(); err == nil {
		counts[KeyGalleryVideos] = len(records)
	}
	if records, err := s.Gallery.Press(); err == nil {
		counts[KeyGalleryPress] = len(records)
	}
	if entries, err := s.Audit.Entries(0); err == nil {
		counts[KeyAuditLog] = len(entries)
	}
	return counts
}

// validateRecord runs struct validation and folds the first failure
// into a user-facing bad-request error naming the offending field.
func validateRecord(record interface{}) error {
	err := validate.Struct(record)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return services.ErrBadRequest("invalid input")
	}
	fe := fieldErrs[0]
	field := lowerFirst(fe.Field())
	switch fe.Tag() {
	case "required":
		return services.ErrBadRequest(fmt.Sprintf("%s is required", field))
	case "required_if":
		return services.ErrBadRequest(fmt.Sprintf("%s is required for this category", field))
	case "email":
		return services.ErrBadRequest("email address is not valid")
	case "oneof":
		return services.ErrBadRequest(fmt.Sprintf("%s must be one of: %s", field, fe.Param()))
	default:
		return services.ErrBadRequest(fmt.Sprintf("%s is invalid", field))
	}
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}

// timeID renders a creation instant as the millisecond id string used
// for records whose identity predates the uuid scheme.
func timeID(t time.Time) string {
	return fmt.Sprintf("%d", t.UnixMilli())
}
