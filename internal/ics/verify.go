package ics

import (
	"fmt"
	"io"
	"time"

	"github.com/emersion/go-ical"
)

// Report summarizes a decoded calendar.
type Report struct {
	Name      string
	Events    int
	Summaries []string
}

// Verify decodes an iCalendar stream and checks each event carries a UID,
// a summary and a 30 minute span.
func Verify(r io.Reader) (*Report, error) {
	cal, err := ical.NewDecoder(r).Decode()
	if err != nil {
		return nil, fmt.Errorf("decode calendar: %w", err)
	}
	rep := &Report{}
	if p := cal.Props.Get("X-WR-CALNAME"); p != nil {
		rep.Name = p.Value
	}
	events := cal.Events()
	rep.Events = len(events)
	for i := range events {
		ev := &events[i]
		p := ev.Props.Get(ical.PropUID)
		if p == nil || p.Value == "" {
			return nil, fmt.Errorf("event %d: missing UID", i)
		}
		uid := p.Value
		summary, err := ev.Props.Text(ical.PropSummary)
		if err != nil {
			return nil, fmt.Errorf("event %s: summary: %w", uid, err)
		}
		start, err := ev.DateTimeStart(time.UTC)
		if err != nil {
			return nil, fmt.Errorf("event %s: DTSTART: %w", uid, err)
		}
		end, err := ev.DateTimeEnd(time.UTC)
		if err != nil {
			return nil, fmt.Errorf("event %s: DTEND: %w", uid, err)
		}
		if end.Sub(start) != EventLength {
			return nil, fmt.Errorf("event %s: spans %s, want %s", uid, end.Sub(start), EventLength)
		}
		rep.Summaries = append(rep.Summaries, summary)
	}
	return rep, nil
}
