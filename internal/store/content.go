package store

import (
	"errors"
	"time"

	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/notify"
	"github.com/Nandalily/Erudite-Scholars-Initiative/internal/storage"
)

// Content manages the two singleton editable-content records: the home
// page copy and the activities page. Reads fall back to the built-in
// defaults when nothing has been saved yet, so the public pages always
// render. Whole-record saves only; there is no field-level patching.
type Content struct {
	adapter  *storage.Adapter
	notifier *notify.Notifier
	now      func() time.Time
}

func NewContent(adapter *storage.Adapter, notifier *notify.Notifier) *Content {
	return &Content{adapter: adapter, notifier: notifier, now: time.Now}
}

// DefaultHome is the landing-page copy shipped with the site.
func DefaultHome() HomeContent {
	return HomeContent{
		HeroBadge:        "ESI 2025",
		HeroTitle:        "Equality Beyond Gender Roles",
		HeroSubtitle:     "A Gender Equality Debate, Poetry, and Public Speech Competition",
		EventDate:        "21st September 2025",
		EventVenue:       "Mbogo Mixed Secondary School",
		EventAudience:    "Open to All Schools",
		CountdownDate:    "2025-09-21",
		CountdownTime:    "09:00",
		CountdownMessage: "Event Day Has Arrived!",
	}
}

// DefaultActivities is the activities-page content shipped with the
// site.
func DefaultActivities() ActivitiesContent {
	return ActivitiesContent{
		Background: "The Erudite Scholars Initiative brings together students from schools across the region for a day of debate, poetry and public speaking centered on gender equality.",
		Objectives: []string{
			"Promote awareness of gender equality issues",
			"Encourage critical thinking and public speaking skills",
			"Foster dialogue between students from different backgrounds",
			"Highlight the role of education in achieving gender equality",
		},
		Rules: CategoryRules{
			Debate: []string{
				"Team format: 3 students per team",
				"Time limit: 15 minutes per team",
				"Topics announced 1 week before",
				"Judged on argument strength, delivery, and teamwork",
			},
			Poetry: []string{
				"Individual participation",
				"Original work required",
				"Time limit: 5 minutes",
				"Judged on creativity, message, and performance",
			},
			Speech: []string{
				"Individual participation",
				"Time limit: 8 minutes",
				"Topics provided in advance",
				"Judged on content, delivery, and impact",
			},
		},
		Schedule: []ScheduleItem{
			{Time: "8:00 AM", Event: "Registration & Welcome"},
			{Time: "9:00 AM", Event: "Opening Ceremony"},
			{Time: "10:00 AM", Event: "Competition Rounds Begin"},
			{Time: "2:00 PM", Event: "Lunch Break"},
			{Time: "3:00 PM", Event: "Final Rounds"},
			{Time: "5:00 PM", Event: "Awards Ceremony"},
		},
	}
}

// Home returns the saved home content, or the defaults when none was
// saved.
func (c *Content) Home() (HomeContent, error) {
	var home HomeContent
	err := c.adapter.Read(KeyHomeContent, &home)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultHome(), nil
	}
	if err != nil {
		return HomeContent{}, err
	}
	return home, nil
}

// SaveHome replaces the home content record.
func (c *Content) SaveHome(home HomeContent) error {
	if err := c.adapter.Write(KeyHomeContent, home); err != nil {
		return err
	}
	c.notifier.Announce(KeyHomeContent)
	return nil
}

// Activities returns the saved activities content, or the defaults.
func (c *Content) Activities() (ActivitiesContent, error) {
	var activities ActivitiesContent
	err := c.adapter.Read(KeyActivitiesContent, &activities)
	if errors.Is(err, storage.ErrNotFound) {
		return DefaultActivities(), nil
	}
	if err != nil {
		return ActivitiesContent{}, err
	}
	return activities, nil
}

// SaveActivities replaces the activities content record.
func (c *Content) SaveActivities(activities ActivitiesContent) error {
	if err := c.adapter.Write(KeyActivitiesContent, activities); err != nil {
		return err
	}
	c.notifier.Announce(KeyActivitiesContent)
	return nil
}

// DaysUntilEvent reports whole days from now until the countdown
// target. Zero or negative means the event day has arrived or passed.
func (c *Content) DaysUntilEvent() (int, error) {
	home, err := c.Home()
	if err != nil {
		return 0, err
	}
	target, err := time.ParseInLocation("2006-01-02 15:04", home.CountdownDate+" "+home.CountdownTime, time.Local)
	if err != nil {
		target, err = time.ParseInLocation("2006-01-02", home.CountdownDate, time.Local)
		if err != nil {
			return 0, err
		}
	}
	return int(target.Sub(c.now()).Round(time.Hour).Hours() / 24), nil
}
