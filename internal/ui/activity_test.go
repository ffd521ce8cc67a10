package ui

import (
	"fmt"
	"testing"
	"time"
)

func TestActivityAppendAndListLimit(t *testing.T) {
	l := NewActivityLog(3, 0)
	for i := 0; i < 5; i++ {
		l.Append("alice", ActionDone, fmt.Sprintf("task %d", i))
	}
	// only last 3 retained, newest first
	got := l.List("alice", 10)
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}
	if got[0].Task != "task 4" || got[2].Task != "task 2" {
		t.Fatalf("unexpected order: %+v", got)
	}
	if n := len(l.List("alice", 1)); n != 1 {
		t.Fatalf("expected 1 entry, got %d", n)
	}
	if n := len(l.List("bob", 5)); n != 0 {
		t.Fatalf("expected no entries for bob, got %d", n)
	}
}

func TestActivityDefaultsAndForget(t *testing.T) {
	l := NewActivityLog(0, 0)
	l.now = func() time.Time { return time.Date(2026, 10, 15, 9, 0, 0, 0, time.UTC) }
	l.Append("s", ActionDone, "Do dishes")
	l.Append("s", ActionReset, "")

	got := l.List("s", 0)
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(got))
	}
	if got[0].Action != ActionReset || got[0].When.Hour() != 9 {
		t.Fatalf("unexpected newest entry: %+v", got[0])
	}

	l.Forget("s")
	if len(l.List("s", 0)) != 0 || l.Sessions() != 0 {
		t.Fatalf("history not forgotten")
	}
}

func TestActivityCapsSessions(t *testing.T) {
	l := NewActivityLog(5, 2)
	l.Append("a", ActionDone, "x")
	l.Append("b", ActionDone, "x")
	l.Append("a", ActionUndone, "x")
	l.Append("c", ActionDone, "x")

	if n := l.Sessions(); n != 2 {
		t.Fatalf("expected 2 sessions, got %d", n)
	}
	if len(l.List("b", 0)) != 0 {
		t.Fatalf("least recently written session b should be gone")
	}
	if len(l.List("a", 0)) != 2 || len(l.List("c", 0)) != 1 {
		t.Fatalf("a and c should be kept")
	}
}
