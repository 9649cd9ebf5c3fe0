package store

import (
	"fmt"
	"strings"
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Attachment size limits in bytes.
const (
	maxCompetitionImageBytes = 5 << 20
	maxCompetitionFileBytes  = 10 << 20
)

// allowedFileExtensions is the whitelist for competition resource
// files.
var allowedFileExtensions = map[string]bool{
	".pdf":  true,
	".doc":  true,
	".docx": true,
	".txt":  true,
	".zip":  true,
	".rar":  true,
}

// Competitions manages admin-curated competitions.
type Competitions struct {
	col      *Collection[Competition]
	notifier *notify.Notifier
	now      func() time.Time
}

func NewCompetitions(adapter *storage.Adapter, notifier *notify.Notifier) *Competitions {
	defaults := func(c *Competition) {
		if c.Status == "" {
			c.Status = "active"
		}
	}
	return &Competitions{
		col:      NewCollection(adapter, KeyCompetitions, defaults),
		notifier: notifier,
		now:      time.Now,
	}
}

// Add validates and appends a new competition. The id is derived from
// the creation instant.
func (s *Competitions) Add(c Competition) (Competition, error) {
	if err := validateRecord(c); err != nil {
		return Competition{}, err
	}
	if err := checkCompetitionAttachments(c); err != nil {
		return Competition{}, err
	}
	c.CreatedAt = s.now()
	c.ID = timeID(c.CreatedAt)
	if err := s.col.Append(c); err != nil {
		return Competition{}, err
	}
	s.notifier.Announce(KeyCompetitions)
	return c, nil
}

// Update replaces the stored fields of an existing competition.
// Identity, creation time and the featured flag are preserved; the
// featured flag only moves through SetFeatured and ToggleFeatured.
func (s *Competitions) Update(id string, c Competition) error {
	if err := validateRecord(c); err != nil {
		return err
	}
	if err := checkCompetitionAttachments(c); err != nil {
		return err
	}
	found, err := s.col.UpdateMatching(
		func(existing Competition) bool { return existing.ID == id },
		func(existing *Competition) {
			c.ID = existing.ID
			c.CreatedAt = existing.CreatedAt
			c.Featured = existing.Featured
			*existing = c
		},
	)
	if err != nil {
		return err
	}
	if !found {
		return services.ErrNotFound("competition not found")
	}
	s.notifier.Announce(KeyCompetitions)
	return nil
}

// Delete removes a competition by id.
func (s *Competitions) Delete(id string) error {
	removed, err := s.col.RemoveMatching(func(c Competition) bool { return c.ID == id })
	if err != nil {
		return err
	}
	if removed == 0 {
		return services.ErrNotFound("competition not found")
	}
	s.notifier.Announce(KeyCompetitions)
	return nil
}

func (s *Competitions) All() ([]Competition, error) {
	return s.col.LoadAll()
}

func (s *Competitions) Get(id string) (Competition, error) {
	records, err := s.col.Filter(func(c Competition) bool { return c.ID == id })
	if err != nil {
		return Competition{}, err
	}
	if len(records) == 0 {
		return Competition{}, services.ErrNotFound("competition not found")
	}
	return records[0], nil
}

// Active lists the competitions visible to the public site.
func (s *Competitions) Active() ([]Competition, error) {
	return s.col.Filter(func(c Competition) bool { return c.Status == "active" })
}

// Featured returns the featured competition, if any.
func (s *Competitions) Featured() (Competition, bool, error) {
	records, err := s.col.Filter(func(c Competition) bool { return c.Featured })
	if err != nil {
		return Competition{}, false, err
	}
	if len(records) == 0 {
		return Competition{}, false, nil
	}
	return records[0], true, nil
}

// SetFeatured makes id the only featured competition. Clearing every
// other flag and setting the new one happens in one write, so no
// materialization can observe two featured competitions.
func (s *Competitions) SetFeatured(id string) error {
	records, err := s.col.LoadAll()
	if err != nil {
		return err
	}
	found := false
	for i := range records {
		records[i].Featured = records[i].ID == id
		if records[i].Featured {
			found = true
		}
	}
	if !found {
		return services.ErrNotFound("competition not found")
	}
	if err := s.col.ReplaceAll(records); err != nil {
		return err
	}
	s.notifier.Announce(KeyCompetitions)
	return nil
}

// ToggleFeatured unfeatures id when it is currently featured, or
// features it (unfeaturing any other) when it is not. It reports the
// resulting featured state of id.
func (s *Competitions) ToggleFeatured(id string) (bool, error) {
	records, err := s.col.LoadAll()
	if err != nil {
		return false, err
	}
	found := false
	nowFeatured := false
	for i := range records {
		if records[i].ID == id {
			found = true
			nowFeatured = !records[i].Featured
			records[i].Featured = nowFeatured
		} else if records[i].Featured {
			records[i].Featured = false
		}
	}
	if !found {
		return false, services.ErrNotFound("competition not found")
	}
	if err := s.col.ReplaceAll(records); err != nil {
		return false, err
	}
	s.notifier.Announce(KeyCompetitions)
	return nowFeatured, nil
}

func checkCompetitionAttachments(c Competition) error {
	if c.Image != nil {
		if !strings.HasPrefix(c.Image.Type, "image/") {
			return services.ErrBadRequest("competition image must be an image file")
		}
		if c.Image.Size > maxCompetitionImageBytes {
			return services.ErrBadRequest("competition image must be 5MB or smaller")
		}
	}
	if c.File != nil {
		if c.File.Size > maxCompetitionFileBytes {
			return services.ErrBadRequest("competition file must be 10MB or smaller")
		}
		ext := strings.ToLower(c.File.Extension)
		if ext == "" {
			if i := strings.LastIndex(c.File.Name, "."); i >= 0 {
				ext = strings.ToLower(c.File.Name[i:])
			}
		}
		if !allowedFileExtensions[ext] {
			return services.ErrBadRequest(fmt.Sprintf("file type %s is not allowed", ext))
		}
	}
	return nil
}
