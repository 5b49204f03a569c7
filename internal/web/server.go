// Package web provides the HTTP server, pages and JSON API for the visitor
// management system.
package web

import (
	"database/sql"
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/kinjal-s-patel/visitor-management-system/internal/host"
	"github.com/kinjal-s-patel/visitor-management-system/internal/logging"
	"github.com/kinjal-s-patel/visitor-management-system/internal/metrics"
	"github.com/kinjal-s-patel/visitor-management-system/internal/screen"
	"github.com/kinjal-s-patel/visitor-management-system/internal/visitor"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/*
var staticFS embed.FS

// Config holds the settings the hosting shell supplies.
type Config struct {
	BaseURL     string
	UserHeader  string
	DefaultUser string
	Location    *time.Location
}

// Server is the web UI and API HTTP server.
type Server struct {
	store   visitor.Store
	hosts   *host.Repository
	metrics *metrics.Metrics
	cfg     Config
	logger  *slog.Logger
	pages   map[string]*template.Template
	mux     *http.ServeMux
	handler http.Handler
}

var pageNames = []string{"dashboard.html", "visitorform.html", "visitorlogs.html", "reports.html"}

// NewServer creates a web server over the given database.
func NewServer(db *sql.DB, cfg Config, logger *slog.Logger) (*Server, error) {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Location == nil {
		cfg.Location = time.Local
	}
	if cfg.UserHeader == "" {
		cfg.UserHeader = "X-User-Display-Name"
	}

	funcMap := template.FuncMap{
		"statusClass": tmplStatusClass,
	}

	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := template.New("").Funcs(funcMap).ParseFS(templateFS, "templates/layout.html", "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("parsing template %s: %w", name, err)
		}
		pages[name] = tmpl
	}

	m := metrics.New()
	s := &Server{
		store:   m.Instrument(visitor.NewRepository(db)),
		hosts:   host.NewRepository(db),
		metrics: m,
		cfg:     cfg,
		logger:  logger,
		pages:   pages,
		mux:     http.NewServeMux(),
	}

	staticContent, err := fs.Sub(staticFS, "static")
	if err != nil {
		return nil, fmt.Errorf("creating static sub-fs: %w", err)
	}

	s.mux.Handle("/static/", http.StripPrefix("/static/", http.FileServer(http.FS(staticContent))))
	s.mux.HandleFunc("/", s.handleDashboard)
	s.mux.HandleFunc("/visitorform", s.handleVisitorForm)
	s.mux.HandleFunc("/visitorlogs", s.handleVisitorLogs)
	s.mux.HandleFunc("/reports", s.handleReports)
	s.mux.HandleFunc("/reports/export", s.handleReportExport)
	s.mux.HandleFunc("/api/visitors", s.handleAPIVisitors)
	s.mux.HandleFunc("/api/hosts", s.handleAPIHosts)
	s.mux.HandleFunc("/health", s.handleHealth)
	s.mux.Handle("/metrics", m.Handler())

	s.handler = logging.RequestLogger(ShellUser(cfg.UserHeader, cfg.DefaultUser, s.mux))

	return s, nil
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.handler.ServeHTTP(w, r)
}

// ListenAndServe starts the HTTP server.
func (s *Server) ListenAndServe(addr string) error {
	s.logger.Info("starting web UI", "addr", addr, "base_url", s.cfg.BaseURL)
	srv := &http.Server{
		Addr:              addr,
		Handler:           s,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return srv.ListenAndServe()
}

// screenOptions returns the controller options for a request.
func (s *Server) screenOptions(r *http.Request) screen.Options {
	return screen.Options{
		Logger:   s.logger.With("request_id", logging.RequestID(r.Context())),
		Location: s.cfg.Location,
	}
}

// absURL joins path onto the configured public origin.
func (s *Server) absURL(path string, q url.Values) string {
	u := strings.TrimRight(s.cfg.BaseURL, "/") + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	apiJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
}

// Template helper functions

func tmplStatusClass(st visitor.Status) string {
	switch visitor.ParseStatus(string(st)) {
	case visitor.StatusPending:
		return "status-pending"
	case visitor.StatusApproved:
		return "status-approved"
	case visitor.StatusCheckedIn:
		return "status-checked-in"
	case visitor.StatusCheckedOut:
		return "status-checked-out"
	case visitor.StatusRejected:
		return "status-rejected"
	}
	return "status-other"
}
