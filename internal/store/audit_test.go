package store

import (
	"fmt"
	"testing"
	"time"
)

func TestAuditRecordAndEntries(t *testing.T) {
	st := testStore(t)
	stamp := time.Date(2025, 9, 1, 8, 0, 0, 0, time.UTC)
	st.Audit.now = func() time.Time { return stamp }

	st.Audit.Record(ActionLoginSuccess, "admin", "", "test-agent")
	st.Audit.Record(ActionLogout, "admin", "manual", "test-agent")

	entries, err := st.Audit.Entries(0)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	// Newest first.
	if entries[0].Action != ActionLogout || entries[1].Action != ActionLoginSuccess {
		t.Fatalf("order = %s, %s", entries[0].Action, entries[1].Action)
	}
	if !entries[0].Timestamp.Equal(stamp) {
		t.Fatalf("timestamp = %v, want %v", entries[0].Timestamp, stamp)
	}
}

func TestAuditLimit(t *testing.T) {
	st := testStore(t)
	for i := 0; i < 5; i++ {
		st.Audit.Record(ActionLoginFailed, "admin", fmt.Sprintf("try %d", i), "")
	}

	entries, err := st.Audit.Entries(2)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("entries = %d, want 2", len(entries))
	}
	if entries[0].Details != "try 4" {
		t.Fatalf("newest entry = %q, want try 4", entries[0].Details)
	}
}

func TestAuditCapDropsOldest(t *testing.T) {
	st := testStore(t)

	// Seed right at the cap, then push one more.
	seed := make([]AuditEntry, maxAuditEntries)
	for i := range seed {
		seed[i] = AuditEntry{Action: ActionLoginFailed, Details: fmt.Sprintf("seed %d", i)}
	}
	if err := st.Audit.col.ReplaceAll(seed); err != nil {
		t.Fatalf("seed: %v", err)
	}

	st.Audit.Record(ActionLoginSuccess, "admin", "overflow", "")
	entries, err := st.Audit.Entries(0)
	if err != nil {
		t.Fatalf("entries: %v", err)
	}
	if len(entries) != maxAuditEntries {
		t.Fatalf("entries = %d, want cap %d", len(entries), maxAuditEntries)
	}
	if entries[0].Details != "overflow" {
		t.Fatalf("newest = %q, want the overflow entry", entries[0].Details)
	}
	if entries[len(entries)-1].Details != "seed 1" {
		t.Fatalf("oldest = %q, want seed 0 dropped", entries[len(entries)-1].Details)
	}
}
