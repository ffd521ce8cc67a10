package server

import (
	"html/template"
	"net/http"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/google/uuid"

	"github.com/elpatron68/cleaning-ui/internal/auth"
	"github.com/elpatron68/cleaning-ui/internal/catalog"
	applog "github.com/elpatron68/cleaning-ui/internal/log"
)

const sessionCookie = "cleaning_session"

// sessionKey identifies whose checklist a request belongs to: the Basic
// Auth user when signed in, otherwise a random cookie.
func (s *Server) sessionKey(w http.ResponseWriter, r *http.Request) string {
	if name, ok := auth.UsernameFromRequest(r); ok && name != "" {
		return "user:" + name
	}
	if c, err := r.Cookie(sessionCookie); err == nil {
		if id, err := uuid.Parse(c.Value); err == nil {
			return "session:" + id.String()
		}
	}
	id := uuid.New()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id.String(),
		Path:     "/",
		MaxAge:   86400 * 30,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return "session:" + id.String()
}

func renderMarkdown(md string) template.HTML {
	p := parser.NewWithExtensions(parser.CommonExtensions)
	r := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags | mdhtml.SkipHTML})
	return template.HTML(markdown.ToHTML([]byte(md), p, r))
}

// durationMinutes reads the leading number of a label like "15 min",
// "10 min active" or "1 hour". Labels without one count as zero.
func durationMinutes(label string) int {
	label = strings.TrimSpace(label)
	end := 0
	for end < len(label) && label[end] >= '0' && label[end] <= '9' {
		end++
	}
	n, err := strconv.Atoi(label[:end])
	if err != nil {
		return 0
	}
	unit := strings.TrimSpace(label[end:])
	if i := strings.IndexFunc(unit, func(r rune) bool { return !unicode.IsLetter(r) }); i >= 0 {
		unit = unit[:i]
	}
	switch strings.ToLower(unit) {
	case "h", "hr", "hrs", "hour", "hours":
		return n * 60
	}
	return n
}

func totalMinutes(tasks []catalog.Task) int {
	total := 0
	for _, t := range tasks {
		total += durationMinutes(t.Duration)
	}
	return total
}

func priorityClass(p catalog.Priority) string {
	switch p {
	case catalog.PriorityHigh:
		return "high"
	case catalog.PriorityMedium:
		return "medium"
	case catalog.PriorityLow:
		return "low"
	}
	return "none"
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// requestLogger tags each request with an id and logs its outcome.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		start := time.Now()
		next.ServeHTTP(rec, r)
		applog.Logger().Info("request",
			"request_id", id,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	})
}
