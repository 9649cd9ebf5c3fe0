package store

import (
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Audit action names recorded by the session guard and the admin
// handlers.
const (
	ActionLoginSuccess = "LOGIN_SUCCESS"
	ActionLoginFailed  = "LOGIN_FAILED"
	ActionLogout       = "LOGOUT"
)

// maxAuditEntries caps the activity log; the oldest entries are
// dropped first.
const maxAuditEntries = 1000

// Audit is the append-only admin activity log. It does not announce
// changes: nothing on the public site watches it.
type Audit struct {
	col *Collection[AuditEntry]
	now func() time.Time
}

func NewAudit(adapter *storage.Adapter) *Audit {
	return &Audit{
		col: NewCollection[AuditEntry](adapter, KeyAuditLog, nil),
		now: time.Now,
	}
}

// Record appends one entry, trimming the log to its cap in the same
// write. Logging failures are swallowed; an unavailable audit trail
// must not block the action being audited.
func (a *Audit) Record(action, username, details, userAgent string) {
	entries, err := a.col.LoadAll()
	if err != nil {
		return
	}
	entries = append(entries, AuditEntry{
		Action:    action,
		Username:  username,
		Details:   details,
		Timestamp: a.now(),
		UserAgent: userAgent,
	})
	if len(entries) > maxAuditEntries {
		entries = entries[len(entries)-maxAuditEntries:]
	}
	_ = a.col.ReplaceAll(entries)
}

// Entries returns the newest entries first, at most limit of them. A
// non-positive limit returns everything.
func (a *Audit) Entries(limit int) ([]AuditEntry, error) {
	entries, err := a.col.LoadAll()
	if err != nil {
		return nil, err
	}
	// Stored oldest-first; reverse for display.
	out := make([]AuditEntry, 0, len(entries))
	for i := len(entries) - 1; i >= 0; i-- {
		out = append(out, entries[i])
		if limit > 0 && len(out) == limit {
			break
		}
	}
	return out, nil
}
