package ics

import (
	"io"
	"strings"
	"time"
	"unicode/utf8"
)

const maxLineOctets = 75

func (d *Document) String() string {
	var sb strings.Builder
	d.render(&sb)
	return sb.String()
}

// WriteTo writes the rendered document to w.
func (d *Document) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, d.String())
	return int64(n), err
}

func (d *Document) render(sb *strings.Builder) {
	s := d.Settings
	writeLine(sb, "BEGIN:VCALENDAR")
	writeLine(sb, "VERSION:2.0")
	writeLine(sb, "PRODID:"+ProductID)
	writeLine(sb, "CALSCALE:GREGORIAN")
	writeLine(sb, "METHOD:PUBLISH")
	writeLine(sb, "X-WR-CALNAME:"+escapeText(s.Name))
	writeLine(sb, "X-WR-TIMEZONE:"+s.Timezone)
	writeLine(sb, "X-WR-CALDESC:"+escapeText(s.Description))

	stamp := FormatTime(d.Generated)
	for _, ev := range d.Events {
		writeLine(sb, "BEGIN:VEVENT")
		writeLine(sb, "UID:"+ev.UID)
		writeLine(sb, "DTSTAMP:"+stamp)
		writeLine(sb, "DTSTART:"+FormatTime(ev.Start))
		writeLine(sb, "DTEND:"+FormatTime(ev.End))
		writeLine(sb, "SUMMARY:"+escapeText(ev.Summary))
		writeLine(sb, "DESCRIPTION:"+escapeText(ev.Description))
		cats := make([]string, len(ev.Categories))
		for i, c := range ev.Categories {
			cats[i] = escapeText(c)
		}
		writeLine(sb, "CATEGORIES:"+strings.Join(cats, ","))
		if ev.RecurrenceRule != "" {
			writeLine(sb, "RRULE:"+ev.RecurrenceRule)
		}
		writeLine(sb, "END:VEVENT")
	}
	writeLine(sb, "END:VCALENDAR")
}

// FormatTime renders t in UTC basic format, e.g. 20260415T130000Z.
func FormatTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

func escapeText(s string) string {
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, "\r\n", "\\n")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}

// writeLine folds content lines longer than 75 octets; continuation lines
// start with a single space. Multi-byte runes are never split.
func writeLine(sb *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !utf8.RuneStart(line[cut]) {
			cut--
		}
		sb.WriteString(line[:cut])
		sb.WriteString("\r\n ")
		line = line[cut:]
		limit = maxLineOctets - 1
	}
	sb.WriteString(line)
	sb.WriteString("\r\n")
}
