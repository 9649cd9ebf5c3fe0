package store

import (
	"testing"
	"time"
)

func validCompetition() Competition {
	return Competition{
		Title:       "Gender Equality Debate",
		Category:    CategoryDebate,
		Deadline:    "2025-09-14",
		Description: "Inter-school debate on gender roles",
		Status:      "active",
	}
}

func TestAddCompetitionAssignsTimeID(t *testing.T) {
	st := testStore(t)
	stamp := time.UnixMilli(1757000000000)
	st.Competitions.now = func() time.Time { return stamp }

	saved, err := st.Competitions.Add(validCompetition())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if saved.ID != "1757000000000" {
		t.Fatalf("id = %q, want creation millis", saved.ID)
	}
	if !saved.CreatedAt.Equal(stamp) {
		t.Fatalf("createdAt = %v, want %v", saved.CreatedAt, stamp)
	}
}

func TestAddCompetitionValidates(t *testing.T) {
	st := testStore(t)

	comp := validCompetition()
	comp.Status = "archived"
	if _, err := st.Competitions.Add(comp); err == nil {
		t.Fatal("bad status accepted")
	}

	comp = validCompetition()
	comp.Title = ""
	if _, err := st.Competitions.Add(comp); err == nil {
		t.Fatal("missing title accepted")
	}
}

func TestCompetitionAttachmentLimits(t *testing.T) {
	st := testStore(t)

	comp := validCompetition()
	comp.Image = &Attachment{Name: "poster.png", Type: "image/png", Size: 6 << 20}
	if _, err := st.Competitions.Add(comp); err == nil {
		t.Fatal("oversized image accepted")
	}

	comp = validCompetition()
	comp.Image = &Attachment{Name: "poster.pdf", Type: "application/pdf", Size: 1024}
	if _, err := st.Competitions.Add(comp); err == nil {
		t.Fatal("non-image poster accepted")
	}

	comp = validCompetition()
	comp.File = &Attachment{Name: "rules.exe", Type: "application/octet-stream", Size: 1024}
	if _, err := st.Competitions.Add(comp); err == nil {
		t.Fatal("disallowed file extension accepted")
	}

	comp = validCompetition()
	comp.File = &Attachment{Name: "rules.pdf", Type: "application/pdf", Size: 11 << 20}
	if _, err := st.Competitions.Add(comp); err == nil {
		t.Fatal("oversized file accepted")
	}

	comp = validCompetition()
	comp.Image = &Attachment{Name: "poster.png", Type: "image/png", Size: 1 << 20}
	comp.File = &Attachment{Name: "rules.pdf", Type: "application/pdf", Size: 2 << 20, Extension: ".pdf"}
	if _, err := st.Competitions.Add(comp); err != nil {
		t.Fatalf("valid attachments rejected: %v", err)
	}
}

func TestUpdatePreservesIdentityAndFeatured(t *testing.T) {
	st := testStore(t)
	saved, err := st.Competitions.Add(validCompetition())
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if err := st.Competitions.SetFeatured(saved.ID); err != nil {
		t.Fatalf("set featured: %v", err)
	}

	patch := validCompetition()
	patch.Title = "Renamed Debate"
	patch.ID = "spoofed"
	patch.Featured = false
	if err := st.Competitions.Update(saved.ID, patch); err != nil {
		t.Fatalf("update: %v", err)
	}

	got, err := st.Competitions.Get(saved.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Title != "Renamed Debate" {
		t.Fatalf("title = %q", got.Title)
	}
	if !got.Featured {
		t.Fatal("update cleared the featured flag")
	}
	if !got.CreatedAt.Equal(saved.CreatedAt) {
		t.Fatal("update changed createdAt")
	}
}

func TestSetFeaturedExclusive(t *testing.T) {
	st := testStore(t)
	clock := time.UnixMilli(1757000000000)
	st.Competitions.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}

	first, _ := st.Competitions.Add(validCompetition())
	second, _ := st.Competitions.Add(validCompetition())
	third, _ := st.Competitions.Add(validCompetition())

	if err := st.Competitions.SetFeatured(first.ID); err != nil {
		t.Fatalf("feature first: %v", err)
	}
	if err := st.Competitions.SetFeatured(second.ID); err != nil {
		t.Fatalf("feature second: %v", err)
	}

	all, err := st.Competitions.All()
	if err != nil {
		t.Fatalf("all: %v", err)
	}
	featured := 0
	for _, comp := range all {
		if comp.Featured {
			featured++
			if comp.ID != second.ID {
				t.Fatalf("featured id = %s, want %s", comp.ID, second.ID)
			}
		}
	}
	if featured != 1 {
		t.Fatalf("featured count = %d, want exactly 1", featured)
	}

	if err := st.Competitions.SetFeatured("missing"); err == nil {
		t.Fatal("featuring a missing id succeeded")
	}
	_ = third
}

func TestToggleFeatured(t *testing.T) {
	st := testStore(t)
	saved, err := st.Competitions.Add(validCompetition())
	if err != nil {
		t.Fatalf("add: %v", err)
	}

	on, err := st.Competitions.ToggleFeatured(saved.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if !on {
		t.Fatal("first toggle should feature")
	}
	off, err := st.Competitions.ToggleFeatured(saved.ID)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if off {
		t.Fatal("second toggle should unfeature")
	}
}

func TestActiveExcludesDrafts(t *testing.T) {
	st := testStore(t)
	clock := time.UnixMilli(1757000000000)
	st.Competitions.now = func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}

	active := validCompetition()
	draft := validCompetition()
	draft.Status = "draft"
	inactive := validCompetition()
	inactive.Status = "inactive"
	for _, comp := range []Competition{active, draft, inactive} {
		if _, err := st.Competitions.Add(comp); err != nil {
			t.Fatalf("add: %v", err)
		}
	}

	got, err := st.Competitions.Active()
	if err != nil {
		t.Fatalf("active: %v", err)
	}
	if len(got) != 1 || got[0].Status != "active" {
		t.Fatalf("active = %v, want the one active competition", got)
	}
}
