// Package progress tracks which tasks were completed on which day.
//
// State is a value: the update functions never modify their input and
// return a new State instead.
package progress

import (
	"math"
	"time"

	"github.com/elpatron68/cleaning-ui/internal/catalog"
)

const dateKeyLayout = "2006-01-02"

// State maps (date key, task id) to completion.
type State struct {
	days map[string]map[string]bool
}

// DateKey returns the key for t's calendar day in t's location.
func DateKey(t time.Time) string { return t.Format(dateKeyLayout) }

func (s State) IsCompleted(date, taskID string) bool {
	return s.days[date][taskID]
}

// CompletedOn lists the completed task ids for a day, in no particular order.
func (s State) CompletedOn(date string) []string {
	out := make([]string, 0, len(s.days[date]))
	for id := range s.days[date] {
		out = append(out, id)
	}
	return out
}

// Toggle flips the completion of one task on one day.
func Toggle(s State, date, taskID string) State {
	next := s.cloneExcept(date)
	day := make(map[string]bool, len(s.days[date])+1)
	for id := range s.days[date] {
		day[id] = true
	}
	if day[taskID] {
		delete(day, taskID)
	} else {
		day[taskID] = true
	}
	if len(day) > 0 {
		next.days[date] = day
	}
	return next
}

// ResetDay clears every completion on the given day. Other days are kept.
func ResetDay(s State, date string) State {
	return s.cloneExcept(date)
}

// Completed counts how many of tasks are done on date.
func Completed(s State, date string, tasks []catalog.Task) int {
	n := 0
	for _, t := range tasks {
		if s.IsCompleted(date, t.ID) {
			n++
		}
	}
	return n
}

// Percent is the rounded share of tasks completed on date, 0..100.
// Halves round up. No tasks means 0.
func Percent(s State, date string, tasks []catalog.Task) int {
	if len(tasks) == 0 {
		return 0
	}
	ratio := float64(Completed(s, date, tasks)) / float64(len(tasks))
	return int(math.Floor(ratio*100 + 0.5))
}

// cloneExcept copies the outer map, leaving out one day. Day maps are
// shared because they are never written after creation.
func (s State) cloneExcept(date string) State {
	next := State{days: make(map[string]map[string]bool, len(s.days)+1)}
	for k, v := range s.days {
		if k != date {
			next.days[k] = v
		}
	}
	return next
}
