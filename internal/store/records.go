package store

import "time"

// Storage keys. One collection or record per key; sentinel keys used
// for change signaling are derived by appending "Updated" (see the
// notify package).
const (
	KeyRegistrations      = "registrations"
	KeyContactMessages    = "contactMessages"
	KeyCompetitions       = "competitions"
	KeyGalleryPhotos      = "galleryPhotos"
	KeyGalleryVideos      = "galleryVideos"
	KeyGalleryPress       = "galleryPress"
	KeyActivitiesContent  = "activitiesContent"
	KeyHomeContent        = "homeContent"
	KeyAdminSession       = "adminSession"
	KeyFailedLoginAttempt = "failedLoginAttempts"
	KeyAuditLog           = "adminActivityLog"
)

// Registration status values.
const (
	StatusPending  = "pending"
	StatusApproved = "approved"
	StatusRejected = "rejected"
)

// Competition categories.
const (
	CategoryDebate = "debate"
	CategoryPoetry = "poetry"
	CategorySpeech = "public-speech"
)

// Attachment is opaque already-materialized file metadata. Data holds a
// data URL produced by the uploading view; the store never looks inside
// it beyond enforcing size and type limits before the first write.
type Attachment struct {
	Name      string `json:"name"`
	Type      string `json:"type"`
	Size      int64  `json:"size"`
	Data      string `json:"data,omitempty"`
	Extension string `json:"extension,omitempty"`
}

// Registration is a participant's competition entry. ID is assigned by
// the writer at append time and is the only stable identity; row
// numbers shown in admin views are recomputed per materialization and
// must never be used to address a record.
type Registration struct {
	ID                  string    `json:"id"`
	ParticipantName     string    `json:"participantName" validate:"required"`
	SchoolName          string    `json:"schoolName" validate:"required"`
	SchoolType          string    `json:"schoolType" validate:"required,oneof=public private"`
	ParticipantClass    string    `json:"participantClass" validate:"required"`
	CompetitionCategory string    `json:"competitionCategory" validate:"required,oneof=debate poetry public-speech"`
	TeamMembers         string    `json:"teamMembers,omitempty" validate:"required_if=CompetitionCategory debate"`
	Email               string    `json:"email" validate:"required,email"`
	Phone               string    `json:"phone,omitempty"`
	Motivation          string    `json:"motivation" validate:"required"`
	CompetitionID       string    `json:"competitionId,omitempty"`
	CompetitionTitle    string    `json:"competitionTitle,omitempty"`
	RegistrationDate    time.Time `json:"registrationDate"`
	Status              string    `json:"status"`
}

// ContactMessage is a visitor message from the contact form.
type ContactMessage struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" validate:"required"`
	Email     string    `json:"email" validate:"required,email"`
	Subject   string    `json:"subject" validate:"required"`
	Message   string    `json:"message" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
	Read      bool      `json:"read"`
	Replied   bool      `json:"replied"`
}

// Competition is an admin-managed event. At most one competition may
// have Featured set; the store enforces that in a single write.
type Competition struct {
	ID              string      `json:"id"`
	Title           string      `json:"title" validate:"required"`
	Category        string      `json:"category" validate:"required,oneof=debate poetry public-speech"`
	Deadline        string      `json:"deadline" validate:"required"`
	MaxParticipants int         `json:"maxParticipants,omitempty"`
	Description     string      `json:"description" validate:"required"`
	Prize           string      `json:"prize,omitempty"`
	Status          string      `json:"status" validate:"required,oneof=active inactive draft"`
	Image           *Attachment `json:"image,omitempty"`
	File            *Attachment `json:"file,omitempty"`
	Featured        bool        `json:"featured"`
	CreatedAt       time.Time   `json:"createdAt"`
}

// GalleryPhoto, GalleryVideo and PressItem are the three gallery
// collections. Photo ids are timestamp+index composites so a batch of
// up to four photos appended in one call stays unique.
type GalleryPhoto struct {
	ID          string      `json:"id"`
	Title       string      `json:"title" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Description string      `json:"description,omitempty"`
	Image       *Attachment `json:"image" validate:"required"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type GalleryVideo struct {
	ID          string      `json:"id"`
	Title       string      `json:"title" validate:"required"`
	Category    string      `json:"category" validate:"required"`
	Description string      `json:"description,omitempty"`
	Video       *Attachment `json:"video" validate:"required"`
	Thumbnail   *Attachment `json:"thumbnail,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

type PressItem struct {
	ID          string      `json:"id"`
	Title       string      `json:"title" validate:"required"`
	Type        string      `json:"type" validate:"required"`
	Description string      `json:"description,omitempty"`
	Date        string      `json:"date,omitempty"`
	Link        string      `json:"link,omitempty"`
	Image       *Attachment `json:"image,omitempty"`
	CreatedAt   time.Time   `json:"createdAt"`
}

// CategoryRules holds the per-category rule lines shown on the
// activities page.
type CategoryRules struct {
	Debate []string `json:"debate"`
	Poetry []string `json:"poetry"`
	Speech []string `json:"speech"`
}

type ScheduleItem struct {
	Time  string `json:"time"`
	Event string `json:"event"`
}

// ActivitiesContent is a single record, not a collection.
type ActivitiesContent struct {
	Background string         `json:"background"`
	Objectives []string       `json:"objectives"`
	Rules      CategoryRules  `json:"rules"`
	Schedule   []ScheduleItem `json:"schedule"`
}

// HomeContent is a single record holding the landing-page copy and the
// countdown target.
type HomeContent struct {
	HeroBadge        string `json:"heroBadge"`
	HeroTitle        string `json:"heroTitle"`
	HeroSubtitle     string `json:"heroSubtitle"`
	EventDate        string `json:"eventDate"`
	EventVenue       string `json:"eventVenue"`
	EventAudience    string `json:"eventAudience"`
	CountdownDate    string `json:"countdownDate"`
	CountdownTime    string `json:"countdownTime"`
	CountdownMessage string `json:"countdownMessage"`
}

// AdminSession is the stored admin session. Deleting it is logout.
type AdminSession struct {
	Username   string    `json:"username"`
	LoginTime  time.Time `json:"loginTime"`
	ExpiresAt  time.Time `json:"expiresAt"`
	RememberMe bool      `json:"rememberMe"`
	IsValid    bool      `json:"isValid"`
}

// FailedAttempts counts consecutive failed logins. Timestamp is the
// moment of the last failure and anchors the lockout window.
type FailedAttempts struct {
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// AuditEntry is one line of the append-only admin activity log.
type AuditEntry struct {
	Action    string    `json:"action"`
	Username  string    `json:"username"`
	Details   string    `json:"details,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	UserAgent string    `json:"userAgent,omitempty"`
}
