// Package web serves the local part lookup page and its JSON API. It is meant
// for a trusted network and has no authentication.
package web

import (
	"bytes"
	"context"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"toolfinder/history"
	"toolfinder/lookup"
	"toolfinder/output"
	"toolfinder/sheet"
	"toolfinder/source"
)

//go:embed templates/*.html
var templateFS embed.FS

const (
	msgEmptyQuery = "Please enter a part number"
	msgSchema     = "Required columns not found."
	msgFailed     = "Failed to search."
)

// Recorder stores finished lookups. *storage.SQLiteStore satisfies it.
type Recorder interface {
	InsertLookup(ctx context.Context, entry history.Entry) error
}

type Options struct {
	// Reader loads the payload for every lookup; nothing is cached between requests.
	Reader   source.Reader
	Location string
	// Recorder is optional.
	Recorder Recorder
	Logger   *zap.Logger
}

type Server struct {
	reader   source.Reader
	location string
	recorder Recorder
	logger   *zap.Logger
	router   *chi.Mux
	now      func() time.Time
}

type pageView struct {
	Title    string
	Query    string
	Searched bool
	Found    bool
	Error    string
	Pairs    []output.Pair
	Year     int
}

type errorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

func NewServer(opts Options) (*Server, error) {
	if opts.Reader == nil {
		return nil, errors.New("web server requires a payload reader")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Server{
		reader:   opts.Reader,
		location: opts.Location,
		recorder: opts.Recorder,
		logger:   logger,
		router:   chi.NewRouter(),
		now:      time.Now,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger(logger))
	s.router.Use(middleware.Recoverer)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Get("/api/search", s.handleAPISearch)

	return s, nil
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	view := pageView{Title: "Tool Finder", Year: s.now().Year()}
	status := http.StatusOK

	if r.URL.Query().Has("q") {
		view.Query = strings.TrimSpace(r.URL.Query().Get("q"))
		view.Searched = true

		result, err := s.lookup(r.Context(), view.Query)
		if err != nil {
			view.Searched = false
			view.Error = userMessage(err)
			status = statusFor(err)
		} else {
			view.Found = result.Found
			view.Pairs = output.Pairs(result)
		}
	}

	if err := renderTemplate(w, status, "index.html", view); err != nil {
		s.logger.Error("render page", zap.Error(err), zap.String("request_id", middleware.GetReqID(r.Context())))
		http.Error(w, "failed to render page", http.StatusInternalServerError)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleAPISearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))

	result, err := s.lookup(r.Context(), query)
	if err != nil {
		writeJSON(w, statusFor(err), errorResponse{Error: userMessage(err), Detail: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, output.NewResultView(query, result))
}

// lookup runs one request: validate, load the payload, search, record.
func (s *Server) lookup(ctx context.Context, query string) (lookup.Result, error) {
	logger := s.logger.With(zap.String("request_id", middleware.GetReqID(ctx)), zap.String("query", query))

	result, err := s.search(ctx, query)
	switch {
	case err != nil:
		logger.Warn("lookup failed", zap.Error(err))
	case result.Found:
		logger.Info("lookup matched", zap.Int("row", result.Row), zap.Int("tools", len(result.Tools)))
	default:
		logger.Info("lookup found no row")
	}

	if s.recorder != nil {
		entry := history.NewEntry(query, source.Describe(s.location), result, err)
		if recErr := s.recorder.InsertLookup(ctx, entry); recErr != nil {
			logger.Error("record lookup", zap.Error(recErr))
		}
	}

	return result, err
}

func (s *Server) search(ctx context.Context, query string) (lookup.Result, error) {
	if err := lookup.ValidateQuery(query); err != nil {
		return lookup.Result{}, err
	}
	payload, err := s.reader.Read(ctx, s.location)
	if err != nil {
		return lookup.Result{}, err
	}
	return lookup.Search(payload, query)
}

func userMessage(err error) string {
	switch {
	case errors.Is(err, lookup.ErrEmptyQuery):
		return msgEmptyQuery
	case errors.Is(err, lookup.ErrSchema):
		return msgSchema
	default:
		return msgFailed
	}
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, lookup.ErrEmptyQuery):
		return http.StatusBadRequest
	case errors.Is(err, lookup.ErrSchema):
		return http.StatusUnprocessableEntity
	case errors.Is(err, sheet.ErrTransport):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func renderTemplate(w http.ResponseWriter, status int, pageTemplate string, data any) error {
	tmpl, err := template.New("base.html").ParseFS(templateFS, "templates/base.html", "templates/"+pageTemplate)
	if err != nil {
		return fmt.Errorf("parse template %s: %w", pageTemplate, err)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "base", data); err != nil {
		return fmt.Errorf("render template %s: %w", pageTemplate, err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
	return nil
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}
