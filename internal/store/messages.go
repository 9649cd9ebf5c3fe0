package store

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Message status filter values. A message is unread until marked read,
// read until a reply is recorded, then replied. Replied wins over read
// when both flags are set.
const (
	MessageUnread  = "unread"
	MessageRead    = "read"
	MessageReplied = "replied"
)

// Messages manages visitor contact-form messages.
type Messages struct {
	col      *Collection[ContactMessage]
	notifier *notify.Notifier
	now      func() time.Time
	newID    func() string
}

func NewMessages(adapter *storage.Adapter, notifier *notify.Notifier) *Messages {
	return &Messages{
		col:      NewCollection[ContactMessage](adapter, KeyContactMessages, nil),
		notifier: notifier,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Submit validates and appends a new message. New messages start
// unread and unreplied regardless of caller input.
func (s *Messages) Submit(m ContactMessage) (ContactMessage, error) {
	if err := validateRecord(m); err != nil {
		return ContactMessage{}, err
	}
	m.ID = s.newID()
	m.Timestamp = s.now()
	m.Read = false
	m.Replied = false
	if err := s.col.Append(m); err != nil {
		return ContactMessage{}, err
	}
	s.notifier.Announce(KeyContactMessages)
	return m, nil
}

func (s *Messages) All() ([]ContactMessage, error) {
	return s.col.LoadAll()
}

func (s *Messages) Get(id string) (ContactMessage, error) {
	records, err := s.col.Filter(func(m ContactMessage) bool { return m.ID == id })
	if err != nil {
		return ContactMessage{}, err
	}
	if len(records) == 0 {
		return ContactMessage{}, services.ErrNotFound("message not found")
	}
	return records[0], nil
}

// MarkRead flags a message as read.
func (s *Messages) MarkRead(id string) error {
	return s.mark(id, func(m *ContactMessage) { m.Read = true })
}

// MarkReplied flags a message as replied. A reply implies the message
// was read.
func (s *Messages) MarkReplied(id string) error {
	return s.mark(id, func(m *ContactMessage) {
		m.Read = true
		m.Replied = true
	})
}

func (s *Messages) mark(id string, patch func(*ContactMessage)) error {
	found, err := s.col.UpdateMatching(
		func(m ContactMessage) bool { return m.ID == id },
		patch,
	)
	if err != nil {
		return err
	}
	if !found {
		return services.ErrNotFound("message not found")
	}
	s.notifier.Announce(KeyContactMessages)
	return nil
}

// Remove deletes a message by id.
func (s *Messages) Remove(id string) error {
	removed, err := s.col.RemoveMatching(func(m ContactMessage) bool { return m.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("message not found")
	}
	s.notifier.Announce(KeyContactMessages)
	return nil
}

// Filter narrows the listing by status (unread, read, replied) and a
// case-insensitive search over name, email and subject. Empty
// arguments match everything.
func (s *Messages) Filter(status, search string) ([]ContactMessage, error) {
	search = strings.ToLower(strings.TrimSpace(search))
	return s.col.Filter(func(m ContactMessage) bool {
		switch status {
		case MessageUnread:
			if m.Read {
				return false
			}
		case MessageReplied:
			if !m.Replied {
				return false
			}
		case MessageRead:
			if !m.Read || m.Replied {
				return false
			}
		}
		if search == "" {
			return true
		}
		return strings.Contains(strings.ToLower(m.Name), search) ||
			strings.Contains(strings.ToLower(m.Email), search) ||
			strings.Contains(strings.ToLower(m.Subject), search)
	})
}

// UnreadCount is the badge number shown against the messages tab.
func (s *Messages) UnreadCount() (int, error) {
	unread, err := s.col.Filter(func(m ContactMessage) bool { return !m.Read })
	if err != nil {
		return 0, err
	}
	return len(unread), nil
}
