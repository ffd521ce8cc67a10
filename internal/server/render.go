package server

import (
	"fmt"
	"html/template"
	"net/http"
	"time"

	"github.com/elpatron68/cleaning-ui/internal/catalog"
	"github.com/elpatron68/cleaning-ui/internal/ics"
	applog "github.com/elpatron68/cleaning-ui/internal/log"
	"github.com/elpatron68/cleaning-ui/internal/progress"
)

const layoutHTML = `<!doctype html><html lang="en"><head><meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1.0">
<title>{{.Title}}</title><link rel="icon" href="/favicon.svg" type="image/svg+xml">
<style>
body{font-family:system-ui,-apple-system,Segoe UI,Roboto,Ubuntu,Helvetica,Arial,sans-serif;margin:0;background:#f9fafb;color:#1f2937}
main{max-width:960px;margin:0 auto;padding:24px}
.card{background:#fff;border-radius:8px;box-shadow:0 4px 12px rgba(0,0,0,.08);padding:24px;margin-bottom:24px}
.head{display:flex;justify-content:space-between;align-items:center}
.head h1{margin:0;font-size:28px}
.muted{color:#6b7280}
.pct{font-size:24px;font-weight:700;color:#2563eb;text-align:right}
.bar{background:#e5e7eb;border-radius:999px;height:12px;margin:16px 0}
.bar div{background:#2563eb;height:12px;border-radius:999px}
.actions{display:flex;gap:12px}
.actions a,.actions button{padding:8px 16px;border:none;border-radius:6px;color:#fff;text-decoration:none;font-size:14px;cursor:pointer}
.actions .dl{background:#16a34a}
.actions .reset{background:#4b5563}
.grid{display:grid;grid-template-columns:1fr 1fr;gap:24px}
@media (max-width:720px){.grid{grid-template-columns:1fr}}
.task{display:flex;justify-content:space-between;align-items:center;width:100%;padding:12px;margin-bottom:10px;border:2px solid #e5e7eb;border-radius:8px;background:#f9fafb;text-align:left;font:inherit;cursor:pointer}
.task.high{background:#fef2f2;border-color:#fecaca}
.task.medium{background:#fefce8;border-color:#fef08a}
.task.weekly{background:#faf5ff;border-color:#e9d5ff}
.task.done{background:#f0fdf4;border-color:#bbf7d0}
.task.done .name{text-decoration:line-through;color:#6b7280}
.task .time{font-size:13px;color:#6b7280}
.badge{font-size:12px;padding:2px 8px;border-radius:4px;background:#f3f4f6;color:#4b5563}
.badge.high{background:#fee2e2;color:#b91c1c}
.badge.medium{background:#fef9c3;color:#a16207}
.week{border-top:1px solid #e5e7eb;margin-top:16px;padding-top:12px;font-size:14px}
.week div{display:flex;justify-content:space-between;color:#4b5563;padding:2px 0}
.week div.today{font-weight:600;color:#7e22ce}
.tips{background:#eff6ff;color:#1d4ed8;border-radius:8px;padding:16px;font-size:14px}
.activity{margin-top:16px;border-top:1px solid #e5e7eb;padding-top:8px;font-size:13px}
.activity .ts{color:#6b7280}
</style>
</head><body>
<main>
{{template "content" .}}
{{if .ShowActivity}}
<div class="activity">
  <strong>Recent activity</strong>
  {{if .Activity}}<ul>{{range .Activity}}<li><span class="ts">{{.When}}</span> {{.Action}}{{if .Task}}: {{.Task}}{{end}}</li>{{end}}</ul>
  {{else}}<div class="muted">Nothing checked off yet.</div>{{end}}
</div>
{{end}}
</main>
<script>
(function(){
  const link = document.getElementById('download');
  if (!link) return;
  link.addEventListener('click', async function(ev){
    ev.preventDefault();
    try {
      const res = await fetch(link.getAttribute('href'), { credentials: 'same-origin' });
      if (!res.ok) { throw new Error('HTTP ' + res.status); }
      const blob = await res.blob();
      const url = URL.createObjectURL(blob);
      const a = document.createElement('a');
      a.href = url;
      a.download = link.dataset.filename;
      a.click();
      URL.revokeObjectURL(url);
    } catch (err) {
      console.error('Error downloading calendar:', err);
    }
  });
})();
</script>
</body></html>`

const homeHTML = `
<div class="card">
  <div class="head">
    <div>
      <h1>{{.Title}}</h1>
      <div class="muted">{{.LongDate}}</div>
    </div>
    <div><div class="pct">{{.Progress}}%</div><div class="muted">Complete</div></div>
  </div>
  <div class="bar"><div style="width:{{.Progress}}%"></div></div>
  <div class="actions">
    <a id="download" class="dl" href="/api/calendar" data-filename="{{.Filename}}">Download Calendar</a>
    <form method="post" action="/reset"><button type="submit" class="reset">Reset Today</button></form>
  </div>
</div>
<div class="grid">
  <div class="card">
    <h2>Daily Tasks</h2>
    {{range .Daily}}
    <form method="post" action="/tasks/{{.ID}}/toggle">
      <button type="submit" class="task {{if .Done}}done{{else}}{{priorityClass .Priority}}{{end}}">
        <span><span class="name">{{if .Done}}&#9745;{{else}}&#9744;{{end}} {{.Name}}</span><br><span class="time">{{.Duration}}</span></span>
        {{if .Priority}}<span class="badge {{priorityClass .Priority}}">{{.Priority}}</span>{{end}}
      </button>
    </form>
    {{end}}
  </div>
  <div class="card">
    <h2>{{.DayName}} Focus</h2>
    {{range .Focus}}
    <form method="post" action="/tasks/{{.ID}}/toggle">
      <button type="submit" class="task {{if .Done}}done{{else}}weekly{{end}}">
        <span><span class="name">{{if .Done}}&#9745;{{else}}&#9744;{{end}} {{.Name}}</span><br><span class="time">{{.Duration}}</span></span>
      </button>
    </form>
    {{else}}
    <div class="muted">Nothing extra today.</div>
    {{end}}
    <div class="week">
      <h3>This Week's Focus</h3>
      {{range .Week}}
      <div{{if .Today}} class="today"{{end}}><span>{{.Day}}</span><span>{{.Task}}{{if .Next}} <span class="muted">({{.Next}})</span>{{end}}</span></div>
      {{end}}
    </div>
  </div>
</div>
<div class="tips">
  <strong>Quick Tips</strong>
  {{.Tips}}
</div>
`

const tipsMarkdown = `- Click the **Download Calendar** button to add these tasks to your calendar app
- Focus on high-priority daily tasks first
- Daily tasks take about %d minutes total
- Weekly tasks are spread out to keep each day manageable
`

type taskRow struct {
	ID       string
	Name     string
	Duration string
	Priority catalog.Priority
	Done     bool
}

type weekRow struct {
	Day   string
	Task  string
	Next  string
	Today bool
}

type activityRow struct {
	When   string
	Action string
	Task   string
}

func (s *Server) renderHome(w http.ResponseWriter, r *http.Request) {
	t := template.Must(s.layoutTpl.Clone())
	template.Must(t.New("content").Parse(homeHTML))

	now := s.today()
	date := progress.DateKey(now)
	dayName := now.Weekday().String()
	key := s.sessionKey(w, r)
	state := s.progress.Get(key)

	rows := func(tasks []catalog.Task) []taskRow {
		out := make([]taskRow, 0, len(tasks))
		for _, task := range tasks {
			out = append(out, taskRow{
				ID:       task.ID,
				Name:     task.Name,
				Duration: task.Duration,
				Priority: task.Priority,
				Done:     state.IsCompleted(date, task.ID),
			})
		}
		return out
	}

	var activity []activityRow
	if s.cfg.UI.ShowActivity {
		for _, e := range s.activity.List(key, 5) {
			activity = append(activity, activityRow{When: e.When.In(now.Location()).Format("15:04:05"), Action: string(e.Action), Task: e.Task})
		}
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-cache")
	err := t.Execute(w, map[string]any{
		"Title":        s.gen.Settings().Name,
		"LongDate":     now.Format("Monday, January 2, 2006"),
		"DayName":      dayName,
		"Progress":     progress.Percent(state, date, s.catalog.Today(now)),
		"Filename":     s.filename(),
		"Daily":        rows(s.catalog.Daily),
		"Focus":        rows(s.catalog.Weekly.For(dayName)),
		"Week":         s.weekRows(now),
		"Tips":         renderMarkdown(fmt.Sprintf(tipsMarkdown, totalMinutes(s.catalog.Daily))),
		"ShowActivity": s.cfg.UI.ShowActivity,
		"Activity":     activity,
	})
	if err != nil {
		applog.Warnf("render home: %v", err)
	}
}

// weekRows lists the first task of each weekday with the date it next
// comes up in the exported calendar.
func (s *Server) weekRows(now time.Time) []weekRow {
	first := firstByDay(ics.Build(s.catalog, s.gen.Settings(), now, 0))
	today := now.Weekday().String()
	out := make([]weekRow, 0, len(s.catalog.Weekly))
	for _, day := range s.catalog.Weekly {
		row := weekRow{Day: day.Day, Task: "Rest day", Today: day.Day == today}
		if len(day.Tasks) > 0 {
			row.Task = day.Tasks[0].Name
		}
		if ev, ok := first[day.Day]; ok {
			if next, ok := ics.NextOccurrence(ev, now); ok {
				row.Next = next.In(now.Location()).Format("Mon Jan 2")
			}
		}
		out = append(out, row)
	}
	return out
}

func firstByDay(events []ics.Event) map[string]ics.Event {
	out := make(map[string]ics.Event)
	for _, ev := range events {
		if ev.Source != ics.SourceWeekly {
			continue
		}
		if _, seen := out[ev.Day]; !seen {
			out[ev.Day] = ev
		}
	}
	return out
}
