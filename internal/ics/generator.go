// Package ics turns the task catalog into an iCalendar subscription file.
package ics

import (
	"strconv"
	"strings"
	"sync/atomic"
	"time"
	_ "time/tzdata"

	"github.com/elpatron68/cleaning-ui/internal/catalog"
)

const (
	ProductID   = "-//Household Cleaning//Daily Schedule//EN"
	EventLength = 30 * time.Minute

	uidPrefix = "cleaning-"
	uidDomain = "household.local"
)

// Categories are attached to every exported event.
var Categories = []string{"CLEANING", "HOUSEHOLD"}

type Source int

const (
	SourceDaily Source = iota
	SourceWeekly
)

// Event is one exported occurrence of a task.
type Event struct {
	UID         string
	Start       time.Time
	End         time.Time
	Summary     string
	Description string
	Categories  []string
	// RecurrenceRule is the RRULE value without the "RRULE:" name.
	RecurrenceRule string

	TaskID string
	Source Source
	Day    string
}

// Settings controls the calendar header and the event start time.
type Settings struct {
	Name        string
	Description string
	// Timezone is advertised in X-WR-TIMEZONE; Location is where the
	// start wall-clock time is applied.
	Timezone    string
	Location    *time.Location
	StartHour   int
	StartMinute int
}

func DefaultSettings() Settings {
	zone := "America/New_York"
	loc, err := time.LoadLocation(zone)
	if err != nil {
		// header must name the zone DTSTART was computed in
		loc, zone = time.Local, time.Local.String()
	}
	return Settings{
		Name:        "Daily Cleaning Schedule",
		Description: "Automated daily and weekly cleaning tasks",
		Timezone:    zone,
		Location:    loc,
		StartHour:   9,
	}
}

// Document is a generated calendar: header settings plus events in
// catalog order.
type Document struct {
	Settings  Settings
	Generated time.Time
	Events    []Event
}

// Generator builds documents. It is safe for concurrent use and never
// hands out the same UID stamp twice.
type Generator struct {
	settings Settings
	now      func() time.Time
	last     atomic.Int64
}

func NewGenerator(s Settings, now func() time.Time) *Generator {
	if now == nil {
		now = time.Now
	}
	if s.Location == nil {
		s.Location = time.Local
	}
	return &Generator{settings: s, now: now}
}

func (g *Generator) Settings() Settings { return g.settings }

// Generate builds a fresh document from the catalog.
func (g *Generator) Generate(c *catalog.Catalog) *Document {
	now := g.now()
	stamp := g.nextStamp(now)
	return &Document{
		Settings:  g.settings,
		Generated: now,
		Events:    Build(c, g.settings, now, stamp),
	}
}

func (g *Generator) nextStamp(now time.Time) int64 {
	ms := now.UnixMilli()
	for {
		last := g.last.Load()
		next := ms
		if next <= last {
			next = last + 1
		}
		if g.last.CompareAndSwap(last, next) {
			return next
		}
	}
}

// Build maps every task to one event: the daily list first, then each
// weekday in schedule order.
func Build(c *catalog.Catalog, s Settings, now time.Time, stamp int64) []Event {
	loc := s.Location
	if loc == nil {
		loc = time.Local
	}
	local := now.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), s.StartHour, s.StartMinute, 0, 0, loc)

	events := make([]Event, 0, c.Count())
	for _, t := range c.Daily {
		events = append(events, newEvent(t, start, stamp, SourceDaily, "", "FREQ=DAILY"))
	}
	for _, d := range c.Weekly {
		rule := "FREQ=WEEKLY;BYDAY=" + WeekdayAbbrev(d.Day)
		for _, t := range d.Tasks {
			events = append(events, newEvent(t, start, stamp, SourceWeekly, d.Day, rule))
		}
	}
	return events
}

func newEvent(t catalog.Task, start time.Time, stamp int64, src Source, day, rule string) Event {
	return Event{
		UID:            uidPrefix + t.ID + "-" + strconv.FormatInt(stamp, 10) + "@" + uidDomain,
		Start:          start,
		End:            start.Add(EventLength),
		Summary:        t.Name,
		Description:    "Estimated time: " + t.Duration,
		Categories:     Categories,
		RecurrenceRule: rule,
		TaskID:         t.ID,
		Source:         src,
		Day:            day,
	}
}

// WeekdayAbbrev returns the first two characters of a weekday name,
// uppercased. An empty name gives an empty abbreviation.
func WeekdayAbbrev(day string) string {
	r := []rune(day)
	if len(r) > 2 {
		r = r[:2]
	}
	return strings.ToUpper(string(r))
}
