package server

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/elpatron68/cleaning-ui/internal/catalog"
)

func TestDurationMinutes(t *testing.T) {
	cases := map[string]int{
		"15 min":           15,
		"10 min active":    10,
		"0 min":            0,
		" 3 min":           3,
		"1 h":              60,
		"2h":               120,
		"1 hour":           60,
		"3 hrs":            180,
		"10 hot-water min": 10,
		"5 hmm":            5,
		"a while":          0,
		"":                 0,
	}
	for in, want := range cases {
		if got := durationMinutes(in); got != want {
			t.Errorf("durationMinutes(%q) = %d, want %d", in, got, want)
		}
	}
}

func TestTotalMinutesOfDefaultDaily(t *testing.T) {
	assert.Equal(t, 43, totalMinutes(catalog.Default().Daily))
	assert.Equal(t, 0, totalMinutes(nil))
}

func TestRenderMarkdownDropsRawHTML(t *testing.T) {
	out := string(renderMarkdown("- **bold** item\n- <script>alert(1)</script>\n"))
	assert.Contains(t, out, "<strong>bold</strong>")
	assert.Contains(t, out, "<li>")
	assert.False(t, strings.Contains(out, "<script>"), out)
}

func TestPriorityClass(t *testing.T) {
	cases := map[catalog.Priority]string{
		catalog.PriorityHigh:   "high",
		catalog.PriorityMedium: "medium",
		catalog.PriorityLow:    "low",
		catalog.PriorityNone:   "none",
	}
	for p, want := range cases {
		if got := priorityClass(p); got != want {
			t.Errorf("priorityClass(%q) = %q, want %q", p, got, want)
		}
	}
}
