package ui

import (
	"sync"
	"time"
)

type Action string

const (
	ActionDone   Action = "done"
	ActionUndone Action = "undone"
	ActionReset  Action = "reset"
)

type ActivityEntry struct {
	When   time.Time
	Action Action
	Task   string
}

type history struct {
	entries []ActivityEntry
	used    uint64
}

// ActivityLog is a bounded per-session history of checklist actions. It
// keeps at most max entries per session and at most maxSessions sessions;
// the session written to least recently goes first.
type ActivityLog struct {
	mu          sync.Mutex
	sessions    map[string]*history
	max         int
	maxSessions int
	clock       uint64
	now         func() time.Time
}

func NewActivityLog(max, maxSessions int) *ActivityLog {
	if max <= 0 {
		max = 50
	}
	if maxSessions <= 0 {
		maxSessions = 1000
	}
	return &ActivityLog{sessions: make(map[string]*history), max: max, maxSessions: maxSessions, now: time.Now}
}

func (l *ActivityLog) Append(session string, action Action, task string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.sessions[session]
	if !ok {
		if len(l.sessions) >= l.maxSessions {
			l.evictOldest()
		}
		h = &history{}
		l.sessions[session] = h
	}
	l.clock++
	h.used = l.clock
	h.entries = append(h.entries, ActivityEntry{When: l.now(), Action: action, Task: task})
	if len(h.entries) > l.max {
		// drop oldest
		h.entries = h.entries[len(h.entries)-l.max:]
	}
}

// List returns up to n most recent entries, newest first. n <= 0 means all.
func (l *ActivityLog) List(session string, n int) []ActivityEntry {
	l.mu.Lock()
	defer l.mu.Unlock()
	h, ok := l.sessions[session]
	if !ok {
		return nil
	}
	buf := h.entries
	if n <= 0 || n > len(buf) {
		n = len(buf)
	}
	out := make([]ActivityEntry, 0, n)
	for i := len(buf) - 1; i >= len(buf)-n; i-- {
		out = append(out, buf[i])
	}
	return out
}

// Forget drops a session's history.
func (l *ActivityLog) Forget(session string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	delete(l.sessions, session)
}

// Sessions reports how many sessions currently have history.
func (l *ActivityLog) Sessions() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.sessions)
}

func (l *ActivityLog) evictOldest() {
	var oldest string
	var lowest uint64
	for k, h := range l.sessions {
		if oldest == "" || h.used < lowest {
			oldest, lowest = k, h.used
		}
	}
	delete(l.sessions, oldest)
}
