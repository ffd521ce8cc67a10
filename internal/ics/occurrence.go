package ics

import (
	"time"

	"github.com/teambition/rrule-go"
)

// NextOccurrence returns the first occurrence of ev at or after the given
// time. Events without a usable rule (e.g. an empty BYDAY) report false.
func NextOccurrence(ev Event, after time.Time) (time.Time, bool) {
	if ev.RecurrenceRule == "" {
		return time.Time{}, false
	}
	opt, err := rrule.StrToROption(ev.RecurrenceRule)
	if err != nil {
		return time.Time{}, false
	}
	opt.Dtstart = ev.Start
	r, err := rrule.NewRRule(*opt)
	if err != nil {
		return time.Time{}, false
	}
	next := r.After(after, true)
	if next.IsZero() {
		return time.Time{}, false
	}
	return next, true
}
