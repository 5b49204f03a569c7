package web

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/kinjal-s-patel/visitor-management-system/internal/export"
	"github.com/kinjal-s-patel/visitor-management-system/internal/host"
	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

// shellData is shared by every page.
type shellData struct {
	Title   string
	Nav     string
	User    string
	BaseURL string
}

type dashboardData struct {
	shellData
	Greeting string
	View     screen.DashboardView
}

type logsData struct {
	shellData
	View    screen.LogsView
	Notice  *screen.Notice
	PrevURL string
	NextURL string
}

type reportsData struct {
	shellData
	View     screen.ReportsView
	Statuses []visitor.Status
	Start    string
	End      string
	PrevURL  string
	NextURL  string
	CSVURL   string
	XLSXURL  string
}

type formData struct {
	shellData
	Form        screen.IntakeForm
	Hosts       []*host.Host
	Problems    map[string]string
	Notice      *screen.Notice
	Purposes    []string
	Departments []string
}

func (s *Server) shell(r *http.Request, title, nav string) shellData {
	return shellData{Title: title, Nav: nav, User: CurrentUser(r.Context()), BaseURL: s.cfg.BaseURL}
}

// handleDashboard renders today's visitors.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}

	d := screen.NewDashboard(s.store, s.screenOptions(r))
	defer d.Close()
	if err := d.Refresh(r.Context()); err != nil {
		return
	}

	s.render(w, http.StatusOK, "dashboard.html", dashboardData{
		shellData: s.shell(r, "Dashboard", "/"),
		Greeting:  greeting(time.Now().In(s.cfg.Location)),
		View:      d.View(),
	})
}

// handleVisitorLogs renders all visitors with search and paging.
func (s *Server) handleVisitorLogs(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	logs := screen.NewLogs(s.store, s.screenOptions(r))
	defer logs.Close()
	logs.SetSearch(q.Get("search"))
	logs.SetPage(pageParam(q))
	if err := logs.Refresh(r.Context()); err != nil {
		return
	}

	view := logs.View()
	data := logsData{shellData: s.shell(r, "Visitor Logs", "/visitorlogs"), View: view, Notice: view.Notice}
	if q.Get("registered") != "" && data.Notice == nil {
		data.Notice = &screen.Notice{Kind: screen.NoticeSuccess, Message: "Visitor registered."}
	}
	base := url.Values{}
	if view.Search != "" {
		base.Set("search", view.Search)
	}
	data.PrevURL, data.NextURL = pageLinks("/visitorlogs", base, view.Page)

	s.render(w, http.StatusOK, "visitorlogs.html", data)
}

// handleReports renders the filtered report with summary cards.
func (s *Server) handleReports(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	criteria, err := visitor.ParseCriteria(q)
	if err != nil {
		http.Error(w, fmt.Sprintf("Bad request: %v", err), http.StatusBadRequest)
		return
	}

	reports := screen.NewReports(s.store, s.screenOptions(r))
	defer reports.Close()
	if err := reports.Refresh(r.Context()); err != nil {
		return
	}
	reports.SetCriteria(criteria)
	reports.SetPage(pageParam(q))

	view := reports.View()
	base := criteriaValues(criteria)
	data := reportsData{
		shellData: s.shell(r, "Reports", "/reports"),
		View:      view,
		Statuses:  visitor.KnownStatuses,
		Start:     criteria.Start.String(),
		End:       criteria.End.String(),
	}
	data.PrevURL, data.NextURL = pageLinks("/reports", base, view.Page)

	csvQ, xlsxQ := criteriaValues(criteria), criteriaValues(criteria)
	csvQ.Set("format", string(export.FormatCSV))
	xlsxQ.Set("format", string(export.FormatXLSX))
	data.CSVURL = s.absURL("/reports/export", csvQ)
	data.XLSXURL = s.absURL("/reports/export", xlsxQ)

	s.render(w, http.StatusOK, "reports.html", data)
}

// handleReportExport downloads every record matching the report filters.
func (s *Server) handleReportExport(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	format, err := export.ParseFormat(q.Get("format"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	criteria, err := visitor.ParseCriteria(q)
	if err != nil {
		http.Error(w, fmt.Sprintf("Bad request: %v", err), http.StatusBadRequest)
		return
	}

	reports := screen.NewReports(s.store, s.screenOptions(r))
	defer reports.Close()
	if err := reports.Refresh(r.Context()); err != nil {
		return
	}
	if n := reports.View().Notice; n != nil {
		http.Error(w, n.Message, http.StatusServiceUnavailable)
		return
	}
	reports.SetCriteria(criteria)

	var buf bytes.Buffer
	if err := reports.Export(&buf, format); err != nil {
		s.logger.Error("exporting report failed", "format", format, "error", err)
		http.Error(w, "The report could not be generated.", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", format.Filename()))
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("writing report response", "error", err)
	}
}

// handleVisitorForm shows the intake form and registers submissions.
func (s *Server) handleVisitorForm(w http.ResponseWriter, r *http.Request) {
	data := formData{
		shellData:   s.shell(r, "Register Visitor", "/visitorform"),
		Purposes:    screen.PurposeSuggestions,
		Departments: screen.DepartmentSuggestions,
	}

	switch r.Method {
	case http.MethodGet:
	case http.MethodPost:
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Bad request", http.StatusBadRequest)
			return
		}
		data.Form = intakeFormValues(r)

		intake := screen.NewIntake(s.store, s.hosts, s.screenOptions(r))
		sub, err := intake.Submit(r.Context(), data.Form)
		if err == nil {
			http.Redirect(w, r, fmt.Sprintf("%s?registered=%d", sub.Next, sub.ID), http.StatusSeeOther)
			return
		}

		notice := screen.NoticeFor(err)
		data.Notice = &notice
		code := http.StatusServiceUnavailable
		var ve *visitor.ValidationError
		if errors.As(err, &ve) {
			code = http.StatusBadRequest
			data.Problems = make(map[string]string, len(ve.Problems))
			for _, p := range ve.Problems {
				data.Problems[p.Field] = p.Message
			}
			data.Notice = &screen.Notice{Kind: screen.NoticeError, Message: "Please correct the highlighted fields."}
		}
		data.Hosts = s.listHosts(r)
		s.render(w, code, "visitorform.html", data)
		return
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	data.Hosts = s.listHosts(r)
	if data.Hosts == nil {
		data.Notice = &screen.Notice{Kind: screen.NoticeError, Message: "Hosts could not be loaded. Please try again later."}
	}
	s.render(w, http.StatusOK, "visitorform.html", data)
}

// listHosts returns the host choices, or nil when they cannot be loaded.
func (s *Server) listHosts(r *http.Request) []*host.Host {
	hosts, err := s.hosts.List(r.Context())
	if err != nil {
		s.logger.Error("loading hosts failed", "error", err)
		return nil
	}
	return hosts
}

func intakeFormValues(r *http.Request) screen.IntakeForm {
	hostID, _ := strconv.ParseInt(strings.TrimSpace(r.FormValue("host_id")), 10, 64)
	return screen.IntakeForm{
		Name:          r.FormValue("name"),
		Email:         r.FormValue("email"),
		ContactNumber: r.FormValue("contact_number"),
		Purpose:       r.FormValue("purpose"),
		Department:    r.FormValue("department"),
		HostID:        hostID,
		VisitDate:     r.FormValue("visit_date"),
		InTime:        r.FormValue("in_time"),
	}
}

// render executes a page inside the layout. Output is buffered so a
// template failure yields a clean 500.
func (s *Server) render(w http.ResponseWriter, code int, name string, data interface{}) {
	tmpl, ok := s.pages[name]
	if !ok {
		http.Error(w, "Unknown page", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		s.logger.Error("rendering template failed", "template", name, "error", err)
		http.Error(w, "Error rendering page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(code)
	if _, err := buf.WriteTo(w); err != nil {
		s.logger.Warn("writing page response", "error", err)
	}
}

func pageParam(q url.Values) int {
	page, err := strconv.Atoi(q.Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}

func criteriaValues(c visitor.Criteria) url.Values {
	return visitor.Query{Where: c}.Values()
}

// pageLinks returns the previous and next page URLs, "" where there is none.
func pageLinks(path string, base url.Values, w visitor.Window[*visitor.Record]) (prev, next string) {
	link := func(page int) string {
		q := url.Values{}
		for k, v := range base {
			q[k] = v
		}
		q.Set("page", strconv.Itoa(page))
		return path + "?" + q.Encode()
	}
	if w.HasPrev() {
		prev = link(w.Page - 1)
	}
	if w.HasNext() {
		next = link(w.Page + 1)
	}
	return prev, next
}

func greeting(now time.Time) string {
	switch h := now.Hour(); {
	case h < 12:
		return "Good morning"
	case h < 17:
		return "Good afternoon"
	}
	return "Good evening"
}
