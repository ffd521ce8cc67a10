package ics

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elpatron68/cleaning-ui/internal/catalog"
)

func TestVerifyDecodesGeneratedDocument(t *testing.T) {
	c := catalog.Default()
	doc := NewGenerator(DefaultSettings(), nil).Generate(c).String()

	rep, err := Verify(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, "Daily Cleaning Schedule", rep.Name)
	assert.Equal(t, c.Count(), rep.Events)
	assert.Equal(t, "Do dishes", rep.Summaries[0])
	assert.Equal(t, "Rest day / catch up", rep.Summaries[len(rep.Summaries)-1])
}

func TestVerifyUnescapesText(t *testing.T) {
	c := &catalog.Catalog{Daily: []catalog.Task{{ID: "a", Name: "Sweep, mop; done", Duration: "5 min"}}}
	doc := NewGenerator(utcSettings(), nil).Generate(c).String()

	rep, err := Verify(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"Sweep, mop; done"}, rep.Summaries)
}

func TestVerifyRejectsGarbage(t *testing.T) {
	_, err := Verify(strings.NewReader("not a calendar"))
	assert.Error(t, err)
}

func TestVerifyRejectsWrongSpan(t *testing.T) {
	doc := "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:x\r\n" +
		"BEGIN:VEVENT\r\nUID:x\r\nDTSTAMP:20260101T000000Z\r\nDTSTART:20260101T090000Z\r\nDTEND:20260101T100000Z\r\nSUMMARY:x\r\nEND:VEVENT\r\n" +
		"END:VCALENDAR\r\n"
	_, err := Verify(strings.NewReader(doc))
	assert.ErrorContains(t, err, "spans")
}

func TestNextOccurrence(t *testing.T) {
	// Thursday 2026-10-15.
	now := time.Date(2026, 10, 15, 7, 0, 0, 0, time.UTC)
	doc := NewGenerator(utcSettings(), fixedClock(now)).Generate(catalog.Default())

	daily := doc.Events[0]
	next, ok := NextOccurrence(daily, now)
	require.True(t, ok)
	assert.Equal(t, "20261015T090000Z", FormatTime(next))

	next, ok = NextOccurrence(daily, now.Add(3*time.Hour))
	require.True(t, ok)
	assert.Equal(t, "20261016T090000Z", FormatTime(next))

	monday := doc.Events[6]
	require.Equal(t, "Monday", monday.Day)
	next, ok = NextOccurrence(monday, now)
	require.True(t, ok)
	assert.Equal(t, "20261019T090000Z", FormatTime(next))
}

func TestNextOccurrenceWithoutUsableRule(t *testing.T) {
	_, ok := NextOccurrence(Event{}, time.Now())
	assert.False(t, ok)

	_, ok = NextOccurrence(Event{RecurrenceRule: "FREQ=WEEKLY;BYDAY=FU", Start: time.Now()}, time.Now())
	assert.False(t, ok)
}
