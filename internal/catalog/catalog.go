package catalog

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalid is returned when a catalog violates its invariants.
var ErrInvalid = errors.New("invalid catalog")

type Priority string

const (
	PriorityNone   Priority = ""
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

func (p Priority) Valid() bool {
	switch p {
	case PriorityNone, PriorityHigh, PriorityMedium, PriorityLow:
		return true
	}
	return false
}

// Task is one recurring cleaning chore. Duration is a free-text label
// ("15 min") and is never used for scheduling.
type Task struct {
	ID       string   `yaml:"id"`
	Name     string   `yaml:"name"`
	Duration string   `yaml:"time"`
	Priority Priority `yaml:"priority,omitempty"`
}

// DayTasks holds the tasks assigned to one weekday.
type DayTasks struct {
	Day   string
	Tasks []Task
}

// Weekly maps weekday names to tasks and keeps insertion order.
type Weekly []DayTasks

// For returns the tasks scheduled for the given weekday name, or nil.
func (w Weekly) For(day string) []Task {
	for _, d := range w {
		if d.Day == day {
			return d.Tasks
		}
	}
	return nil
}

// Catalog is the fixed set of daily and weekly task definitions.
type Catalog struct {
	Daily  []Task `yaml:"daily"`
	Weekly Weekly `yaml:"weekly"`
}

// Today returns the tasks visible on the given date: the daily list
// followed by that weekday's tasks.
func (c *Catalog) Today(day time.Time) []Task {
	weekly := c.Weekly.For(day.Weekday().String())
	out := make([]Task, 0, len(c.Daily)+len(weekly))
	out = append(out, c.Daily...)
	out = append(out, weekly...)
	return out
}

// Lookup finds a task by id anywhere in the catalog.
func (c *Catalog) Lookup(id string) (Task, bool) {
	for _, t := range c.Daily {
		if t.ID == id {
			return t, true
		}
	}
	for _, d := range c.Weekly {
		for _, t := range d.Tasks {
			if t.ID == id {
				return t, true
			}
		}
	}
	return Task{}, false
}

// ScheduledOn reports whether the task shows up on the given date.
func (c *Catalog) ScheduledOn(id string, day time.Time) bool {
	for _, t := range c.Today(day) {
		if t.ID == id {
			return true
		}
	}
	return false
}

// Count is the number of tasks across the daily list and all weekdays.
func (c *Catalog) Count() int {
	n := len(c.Daily)
	for _, d := range c.Weekly {
		n += len(d.Tasks)
	}
	return n
}

// Validate checks ids are non-empty and unique across the whole catalog,
// since completion state is keyed by task id alone.
func (c *Catalog) Validate() error {
	seen := make(map[string]string, c.Count())
	check := func(where string, t Task) error {
		if strings.TrimSpace(t.ID) == "" {
			return fmt.Errorf("%w: %s: task %q has no id", ErrInvalid, where, t.Name)
		}
		if strings.TrimSpace(t.Name) == "" {
			return fmt.Errorf("%w: %s: task %q has no name", ErrInvalid, where, t.ID)
		}
		if !t.Priority.Valid() {
			return fmt.Errorf("%w: %s: task %q has unknown priority %q", ErrInvalid, where, t.ID, t.Priority)
		}
		if prev, dup := seen[t.ID]; dup {
			return fmt.Errorf("%w: task id %q used in %s and %s", ErrInvalid, t.ID, prev, where)
		}
		seen[t.ID] = where
		return nil
	}
	for _, t := range c.Daily {
		if err := check("daily", t); err != nil {
			return err
		}
	}
	days := make(map[string]bool, len(c.Weekly))
	for _, d := range c.Weekly {
		if days[d.Day] {
			return fmt.Errorf("%w: weekday %q listed twice", ErrInvalid, d.Day)
		}
		days[d.Day] = true
		for _, t := range d.Tasks {
			if err := check(d.Day, t); err != nil {
				return err
			}
		}
	}
	return nil
}
