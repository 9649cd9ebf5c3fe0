// Package session implements the admin login state machine: credential
// checks, consecutive-failure lockout, the stored session record with
// lazy expiry, and the auto-logout timer.
package session

import (
	"crypto/subtle"
	"errors"
	"strings"
	"sync"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/config"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

// LoginResult reports one login attempt. Exactly one of OK and Locked
// can be true; when both are false the credentials were wrong and
// RemainingAttempts says how many tries are left before lockout.
type LoginResult struct {
	OK                      bool                `json:"ok"`
	Session                 *store.AdminSession `json:"session,omitempty"`
	Locked                  bool                `json:"locked"`
	RemainingAttempts       int                 `json:"remainingAttempts,omitempty"`
	RemainingLockoutMinutes int                 `json:"remainingLockoutMinutes,omitempty"`
}

// Guard owns the admin session and the failed-attempt counter. All
// state lives in storage; the only in-memory state is the auto-logout
// timer and the injected clock.
type Guard struct {
	adapter  *storage.Adapter
	audit    *store.Audit
	username string
	password string
	ttl      time.Duration
	extended time.Duration
	lockout  time.Duration
	maxTries int

	now func() time.Time

	mu    sync.Mutex
	timer *time.Timer
}

func NewGuard(adapter *storage.Adapter, audit *store.Audit, cfg config.Config) *Guard {
	return &Guard{
		adapter:  adapter,
		audit:    audit,
		username: cfg.AdminUsername,
		password: cfg.AdminPassword,
		ttl:      cfg.SessionTTL,
		extended: cfg.ExtendedSessionTTL,
		lockout:  cfg.LockoutDuration,
		maxTries: cfg.MaxLoginAttempts,
		now:      time.Now,
	}
}

// AttemptLogin checks lockout, verifies credentials and either opens a
// session or advances the failure counter. A counter older than the
// lockout window is stale and resets before the attempt is judged, so
// an expired lockout clears itself on the next login attempt.
func (g *Guard) AttemptLogin(username, password, userAgent string, rememberMe bool) (LoginResult, error) {
	now := g.now()

	attempts := g.loadAttempts()
	if attempts.Count > 0 && now.Sub(attempts.Timestamp) >= g.lockout {
		attempts = store.FailedAttempts{}
		g.adapter.Remove(store.KeyFailedLoginAttempt)
	}
	if attempts.Count >= g.maxTries {
		remaining := g.lockout - now.Sub(attempts.Timestamp)
		minutes := int(remaining.Minutes())
		if remaining > 0 && minutes == 0 {
			minutes = 1
		}
		return LoginResult{Locked: true, RemainingLockoutMinutes: minutes}, nil
	}

	if !g.verify(username, password) {
		attempts.Count++
		attempts.Timestamp = now
		if err := g.adapter.Write(store.KeyFailedLoginAttempt, attempts); err != nil {
			return LoginResult{}, err
		}
		g.audit.Record(store.ActionLoginFailed, username, "invalid credentials", userAgent)
		if attempts.Count >= g.maxTries {
			return LoginResult{Locked: true, RemainingLockoutMinutes: int(g.lockout.Minutes())}, nil
		}
		return LoginResult{RemainingAttempts: g.maxTries - attempts.Count}, nil
	}

	g.adapter.Remove(store.KeyFailedLoginAttempt)

	ttl := g.ttl
	if rememberMe {
		ttl = g.extended
	}
	session := store.AdminSession{
		Username:   username,
		LoginTime:  now,
		ExpiresAt:  now.Add(ttl),
		RememberMe: rememberMe,
		IsValid:    true,
	}
	if err := g.adapter.Write(store.KeyAdminSession, session); err != nil {
		return LoginResult{}, err
	}
	g.scheduleAutoLogout(ttl)
	g.audit.Record(store.ActionLoginSuccess, username, "", userAgent)
	return LoginResult{OK: true, Session: &session}, nil
}

// Session returns the current valid session. An expired or invalidated
// record is removed from storage on this read, so expiry needs no
// background sweeper.
func (g *Guard) Session() (store.AdminSession, bool) {
	var session store.AdminSession
	if err := g.adapter.Read(store.KeyAdminSession, &session); err != nil {
		return store.AdminSession{}, false
	}
	if !session.IsValid || !g.now().Before(session.ExpiresAt) {
		g.adapter.Remove(store.KeyAdminSession)
		return store.AdminSession{}, false
	}
	return session, true
}

// Logout deletes the stored session and cancels the auto-logout timer.
// Deleting the record is the logout; there is no separate token to
// revoke.
func (g *Guard) Logout(reason, userAgent string) {
	var session store.AdminSession
	username := ""
	if err := g.adapter.Read(store.KeyAdminSession, &session); err == nil {
		username = session.Username
	}
	g.adapter.Remove(store.KeyAdminSession)

	g.mu.Lock()
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.mu.Unlock()

	if username != "" {
		g.audit.Record(store.ActionLogout, username, reason, userAgent)
	}
}

// FailedAttemptCount exposes the current counter for the login view.
func (g *Guard) FailedAttemptCount() int {
	return g.loadAttempts().Count
}

func (g *Guard) loadAttempts() store.FailedAttempts {
	var attempts store.FailedAttempts
	if err := g.adapter.Read(store.KeyFailedLoginAttempt, &attempts); err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			return store.FailedAttempts{}
		}
	}
	return attempts
}

// verify compares the offered credentials against the configured ones.
// A configured password starting with a bcrypt prefix is treated as a
// hash; anything else is compared in constant time.
func (g *Guard) verify(username, password string) bool {
	userOK := subtleCompare(username, g.username)
	if strings.HasPrefix(g.password, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(g.password), []byte(password)) == nil && userOK
	}
	return subtleCompare(password, g.password) && userOK
}

func subtleCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}

// scheduleAutoLogout arms a timer that deletes the session when the
// ttl elapses. A fresh login replaces any previous timer.
func (g *Guard) scheduleAutoLogout(ttl time.Duration) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.timer != nil {
		g.timer.Stop()
	}
	g.timer = time.AfterFunc(ttl, func() {
		g.Logout("session expired", "")
	})
}
