package server

import (
	"fmt"
	"html/template"
	"io"
	"net/http"
	"time"

	"github.com/elpatron68/cleaning-ui/internal/auth"
	"github.com/elpatron68/cleaning-ui/internal/catalog"
	"github.com/elpatron68/cleaning-ui/internal/config"
	"github.com/elpatron68/cleaning-ui/internal/ics"
	applog "github.com/elpatron68/cleaning-ui/internal/log"
	"github.com/elpatron68/cleaning-ui/internal/progress"
	"github.com/elpatron68/cleaning-ui/internal/ui"
)

type Server struct {
	userStore auth.UserStore
	mux       *http.ServeMux
	layoutTpl *template.Template
	cfg       *config.Config
	catalog   *catalog.Catalog
	gen       *ics.Generator
	progress  *progress.Store
	activity  *ui.ActivityLog
	now       func() time.Time
}

const faviconSVG = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 64 64">
  <rect rx="12" width="64" height="64" fill="#2563eb"/>
  <rect x="14" y="16" width="36" height="34" rx="4" fill="#fff"/>
  <path d="M22 33l6 6 14-14" stroke="#16a34a" stroke-width="5" fill="none"/>
 </svg>`

// NewServer uses the default config, the built-in catalog and a
// generator with default calendar settings.
func NewServer(userStore auth.UserStore) *Server {
	return NewServerWithConfig(userStore, config.Default(), catalog.Default(), ics.NewGenerator(ics.DefaultSettings(), nil))
}

func NewServerWithConfig(userStore auth.UserStore, cfg *config.Config, cat *catalog.Catalog, gen *ics.Generator) *Server {
	s := &Server{
		userStore: userStore,
		cfg:       cfg,
		catalog:   cat,
		gen:       gen,
		activity:  ui.NewActivityLog(cfg.UI.ActivityLogMax, cfg.UI.MaxSessions),
		now:       time.Now,
		mux:       http.NewServeMux(),
	}
	// history goes with the checklist it describes
	s.progress = progress.NewStore(cfg.UI.MaxSessions, s.activity.Forget)
	s.layoutTpl = template.Must(template.New("layout").Funcs(template.FuncMap{
		"priorityClass": priorityClass,
	}).Parse(layoutHTML))
	s.routes()
	return s
}

func (s *Server) routes() {
	s.mux.HandleFunc("GET /favicon.svg", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/svg+xml; charset=utf-8")
		_, _ = w.Write([]byte(faviconSVG))
	})
	s.mux.HandleFunc("GET /favicon.ico", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/favicon.svg", http.StatusMovedPermanently)
	})
	s.mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	})
	s.mux.HandleFunc("GET /api/calendar", s.handleCalendar)
	s.mux.HandleFunc("POST /tasks/{id}/toggle", s.handleToggle)
	s.mux.HandleFunc("POST /reset", s.handleReset)
	s.mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			notFound(w)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		s.renderHome(w, r)
	})
}

func (s *Server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	doc := s.gen.Generate(s.catalog)
	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", s.filename()))
	w.Header().Set("Cache-Control", "no-cache")
	if _, err := io.WriteString(w, doc.String()); err != nil {
		applog.Warnf("/api/calendar write failed: %v", err)
		return
	}
	applog.Debugf("/api/calendar served %d events", len(doc.Events))
}

func (s *Server) handleToggle(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	task, ok := s.catalog.Lookup(id)
	if !ok {
		applog.Warnf("/tasks toggle: unknown task %q", id)
		notFound(w)
		return
	}
	if !s.catalog.ScheduledOn(id, s.today()) {
		applog.Warnf("/tasks toggle: %q is not on today's list", id)
		notFound(w)
		return
	}
	key := s.sessionKey(w, r)
	date := s.dateKey()
	state := s.progress.Update(key, func(st progress.State) progress.State {
		return progress.Toggle(st, date, id)
	})
	action := ui.ActionUndone
	if state.IsCompleted(date, id) {
		action = ui.ActionDone
	}
	s.activity.Append(key, action, task.Name)
	applog.Debugf("/tasks toggle: %s %s on %s", id, action, date)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	key := s.sessionKey(w, r)
	date := s.dateKey()
	s.progress.Update(key, func(st progress.State) progress.State {
		return progress.ResetDay(st, date)
	})
	s.activity.Append(key, ui.ActionReset, "")
	applog.Debugf("/reset: cleared %s", date)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) filename() string {
	if s.cfg.Calendar.Filename != "" {
		return s.cfg.Calendar.Filename
	}
	return "cleaning-schedule.ics"
}

// today is the current time in the calendar's zone.
func (s *Server) today() time.Time {
	loc := s.gen.Settings().Location
	if loc == nil {
		loc = time.Local
	}
	return s.now().In(loc)
}

func (s *Server) dateKey() string { return progress.DateKey(s.today()) }

func notFound(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusNotFound)
	_, _ = w.Write([]byte("Not found"))
}

// Handler wraps the routes with request logging and optional Basic Auth.
// /healthz is never protected.
func (s *Server) Handler() http.Handler {
	return requestLogger(auth.BasicAuthMiddleware(s.userStore, "cleaning", s.mux, "/healthz"))
}
