package httpapi

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/config"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/services"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/session"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/store"
)

func testServer(t *testing.T) http.Handler {
	t.Helper()
	cfg := config.Config{
		AdminUsername:    "admin",
		AdminPassword:    "martin2024",
		SessionTTL:       2 * time.Hour,
		MaxLoginAttempts: 5,
		LockoutDuration:  15 * time.Minute,
	}
	adapter, err := storage.Open(t.TempDir(), 5<<20)
	if err != nil {
		t.Fatalf("open storage: %v", err)
	}
	t.Cleanup(func() { adapter.Close() })

	notifier := notify.New(adapter)
	st := store.New(adapter, notifier)
	guard := session.NewGuard(adapter, st.Audit, cfg)
	mailer := services.NewMailer("", "ESI", "")
	hub := services.NewUpdatesHub()
	sampler := services.NewSampler(t.TempDir(), st, time.Second, hub)

	return NewServer(cfg, st, guard, mailer, sampler, hub, notifier).Router()
}

func postJSON(t *testing.T, handler http.Handler, path string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	body, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestPublicRegistrationSubmit(t *testing.T) {
	handler := testServer(t)

	rec := postJSON(t, handler, "/api/public/registrations", store.Registration{
		ParticipantName:     "Amina Nansubuga",
		SchoolName:          "Mbogo Mixed Secondary School",
		SchoolType:          "public",
		ParticipantClass:    "S5",
		CompetitionCategory: store.CategoryPoetry,
		Email:               "amina@example.com",
		Motivation:          "I love poetry",
	})
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	var saved store.Registration
	if err := json.Unmarshal(rec.Body.Bytes(), &saved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if saved.ID == "" || saved.Status != store.StatusPending {
		t.Fatalf("saved = %+v", saved)
	}
}

func TestPublicRegistrationValidationError(t *testing.T) {
	handler := testServer(t)

	rec := postJSON(t, handler, "/api/public/registrations", store.Registration{
		ParticipantName:     "Solo Debater",
		SchoolName:          "Kampala High",
		SchoolType:          "private",
		ParticipantClass:    "S6",
		CompetitionCategory: store.CategoryDebate,
		Email:               "solo@example.com",
		Motivation:          "Debate without a team",
	})
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/admin/registrations/", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401 without session", rec.Code)
	}
}

func TestLoginThenAdminAccess(t *testing.T) {
	handler := testServer(t)

	rec := postJSON(t, handler, "/api/auth/login", LoginRequest{
		Username: "admin",
		Password: "martin2024",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d, body = %s", rec.Code, rec.Body.String())
	}

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	adminRec := httptest.NewRecorder()
	handler.ServeHTTP(adminRec, req)
	if adminRec.Code != http.StatusOK {
		t.Fatalf("stats status = %d, body = %s", adminRec.Code, adminRec.Body.String())
	}
	var dashboard DashboardResponse
	if err := json.Unmarshal(adminRec.Body.Bytes(), &dashboard); err != nil {
		t.Fatalf("decode: %v", err)
	}
	// The default countdown target is in the past, so the dashboard
	// shows zero days.
	if dashboard.DaysUntilEvent != 0 {
		t.Fatalf("daysUntilEvent = %d, want 0", dashboard.DaysUntilEvent)
	}
	if dashboard.Registrations.ByCategory == nil {
		t.Fatal("stats payload missing category breakdown")
	}
}

func TestDeleteLegacyRegistrationRoute(t *testing.T) {
	handler := testServer(t)

	rec := postJSON(t, handler, "/api/auth/login", LoginRequest{
		Username: "admin",
		Password: "martin2024",
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("login status = %d", rec.Code)
	}

	// Missing query params fail before touching the store.
	req := httptest.NewRequest(http.MethodDelete, "/api/admin/registrations/legacy", nil)
	badRec := httptest.NewRecorder()
	handler.ServeHTTP(badRec, req)
	if badRec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400 without the triple", badRec.Code)
	}

	target := "/api/admin/registrations/legacy?name=Amina&email=amina%40example.com&registeredAt=2024-05-10T09%3A30%3A00Z"
	req = httptest.NewRequest(http.MethodDelete, target, nil)
	missRec := httptest.NewRecorder()
	handler.ServeHTTP(missRec, req)
	if missRec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404 for an unknown triple", missRec.Code)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	handler := testServer(t)

	rec := postJSON(t, handler, "/api/auth/login", LoginRequest{
		Username: "admin",
		Password: "wrong",
	})
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
	var result map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if remaining, ok := result["remainingAttempts"].(float64); !ok || remaining != 4 {
		t.Fatalf("remainingAttempts = %v, want 4", result["remainingAttempts"])
	}
}

func TestLockoutReturns423(t *testing.T) {
	handler := testServer(t)

	var rec *httptest.ResponseRecorder
	for i := 0; i < 5; i++ {
		rec = postJSON(t, handler, "/api/auth/login", LoginRequest{
			Username: "admin",
			Password: "wrong",
		})
	}
	if rec.Code != http.StatusLocked {
		t.Fatalf("status = %d, want 423 after five failures", rec.Code)
	}
}

func TestPublicContentDefaults(t *testing.T) {
	handler := testServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/public/content/home", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var home store.HomeContent
	if err := json.Unmarshal(rec.Body.Bytes(), &home); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if home.HeroBadge != "ESI 2025" {
		t.Fatalf("heroBadge = %q, want default", home.HeroBadge)
	}
}
