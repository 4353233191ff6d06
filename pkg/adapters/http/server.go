package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"sync"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/grid"
	"github.com/aretw0/tabula/pkg/view"
	"github.com/go-chi/chi/v5"
)

// Grid is the rendering-surface contract the HTTP API is served from.
// *grid.Table satisfies it for any record type.
type Grid interface {
	Describe() []grid.ColumnInfo
	Len() int
	Cell(row int, field string) (view.Node, error)
	Record(row int) (map[string]any, error)
	Records() []map[string]any
	Edit(row int, field, input, raw string) ([]domain.CellChange, error)
	Dispatch(row int, field string, raw any) []domain.CellChange
}

// Server serves a Grid as a JSON API.
type Server struct {
	Grid    Grid
	Streams *StreamManager
	logger  *slog.Logger
}

// Option configures the handler.
type Option func(*options)

type options struct {
	logger  *slog.Logger
	metrics http.Handler
}

// WithLogger sets the request logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithMetrics mounts a metrics handler at /metrics.
func WithMetrics(h http.Handler) Option {
	return func(o *options) {
		o.metrics = h
	}
}

// EditRequest is the body of a value edit.
type EditRequest struct {
	Value any `json:"value"`
}

// InputRequest is the body of a raw control edit. Input names the sub-editor
// of a composite cell and is empty for scalar cells.
type InputRequest struct {
	Input string `json:"input,omitempty"`
	Raw   string `json:"raw"`
}

// EditResponse reports the outcome of an edit. Changed is false when the
// edit was dropped or rewrote a cell with its current value.
type EditResponse struct {
	Changed bool                `json:"changed"`
	Changes []domain.CellChange `json:"changes"`
	Record  map[string]any      `json:"record"`
}

// NewHandler creates a new HTTP handler for the grid.
func NewHandler(g Grid, opts ...Option) http.Handler {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	s := &Server{
		Grid:    g,
		Streams: NewStreamManager(o.logger),
		logger:  o.logger,
	}

	r := chi.NewRouter()
	r.Get("/health", s.GetHealth)
	r.Get("/info", s.GetInfo)
	r.Get("/columns", s.GetColumns)
	r.Get("/rows", s.GetRows)
	r.Get("/rows/{row}", s.GetRow)
	r.Get("/rows/{row}/cells/{field}", s.GetCell)
	r.Post("/rows/{row}/cells/{field}", s.EditCell)
	r.Post("/rows/{row}/cells/{field}/input", s.InputCell)
	r.Get("/events", s.SubscribeEvents)
	if o.metrics != nil {
		r.Handle("/metrics", o.metrics)
	}

	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetHealth handles the GET /health request.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// GetInfo handles the GET /info request.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"app":     "tabula-http",
		"version": tabula.Version,
		"rows":    s.Grid.Len(),
	})
}

// GetColumns handles the GET /columns request.
func (s *Server) GetColumns(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Grid.Describe())
}

// GetRows handles the GET /rows request.
func (s *Server) GetRows(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.Grid.Records())
}

// GetRow handles the GET /rows/{row} request.
func (s *Server) GetRow(w http.ResponseWriter, r *http.Request) {
	row, ok := s.rowParam(w, r)
	if !ok {
		return
	}
	rec, err := s.Grid.Record(row)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, rec)
}

// GetCell handles the GET /rows/{row}/cells/{field} request and returns the
// rendered cell tree.
func (s *Server) GetCell(w http.ResponseWriter, r *http.Request) {
	row, ok := s.rowParam(w, r)
	if !ok {
		return
	}
	node, err := s.Grid.Cell(row, chi.URLParam(r, "field"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, node)
}

// EditCell handles the POST /rows/{row}/cells/{field} request: the value is
// forwarded as-is to the cell's change path.
func (s *Server) EditCell(w http.ResponseWriter, r *http.Request) {
	row, ok := s.rowParam(w, r)
	if !ok {
		return
	}
	field := chi.URLParam(r, "field")

	var body EditRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("EditCell: Invalid request body", "error", err)
		return
	}

	// Address errors are reported; the dispatcher itself would drop them silently.
	if _, err := s.Grid.Cell(row, field); err != nil {
		s.writeError(w, err)
		return
	}

	changes := s.Grid.Dispatch(row, field, body.Value)
	s.respondEdit(w, row, changes)
}

// InputCell handles the POST /rows/{row}/cells/{field}/input request: raw
// text is typed into the cell's control, exactly as a form would.
func (s *Server) InputCell(w http.ResponseWriter, r *http.Request) {
	row, ok := s.rowParam(w, r)
	if !ok {
		return
	}

	var body InputRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		s.logger.Warn("InputCell: Invalid request body", "error", err)
		return
	}

	changes, err := s.Grid.Edit(row, chi.URLParam(r, "field"), body.Input, body.Raw)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.respondEdit(w, row, changes)
}

func (s *Server) respondEdit(w http.ResponseWriter, row int, changes []domain.CellChange) {
	if changes != nil {
		if payload, err := json.Marshal(changes); err == nil {
			s.Streams.Broadcast(string(payload))
		} else {
			s.logger.Warn("EditCell: Diff not broadcast", "error", err)
		}
	}

	rec, err := s.Grid.Record(row)
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := EditResponse{
		Changed: changes != nil,
		Changes: changes,
		Record:  rec,
	}
	if resp.Changes == nil {
		resp.Changes = []domain.CellChange{}
	}
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) rowParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	raw := chi.URLParam(r, "row")
	row, err := strconv.Atoi(raw)
	if err != nil {
		http.Error(w, fmt.Sprintf("Invalid row index: %q", raw), http.StatusBadRequest)
		return 0, false
	}
	return row, true
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrRowOutOfRange), errors.Is(err, domain.ErrUnknownField):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusBadRequest)
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	payload, err := json.Marshal(v)
	if err != nil {
		http.Error(w, fmt.Sprintf("Encode error: %v", err), http.StatusInternalServerError)
		s.logger.Error("Response encode failed", "error", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(payload)
}

// StreamManager fans edit diffs out to SSE subscribers.
type StreamManager struct {
	mu          sync.RWMutex
	subscribers map[chan<- string]struct{}
	logger      *slog.Logger
}

func NewStreamManager(logger *slog.Logger) *StreamManager {
	return &StreamManager{
		subscribers: make(map[chan<- string]struct{}),
		logger:      logger,
	}
}

func (sm *StreamManager) Subscribe() (chan string, func()) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	ch := make(chan string, 10)
	sm.subscribers[ch] = struct{}{}

	return ch, func() {
		sm.mu.Lock()
		defer sm.mu.Unlock()
		if _, ok := sm.subscribers[ch]; ok {
			delete(sm.subscribers, ch)
			close(ch)
		}
	}
}

func (sm *StreamManager) Broadcast(msg string) {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	sm.logger.Debug("StreamManager: Broadcasting", "subscribers", len(sm.subscribers), "payload_size", len(msg))

	for ch := range sm.subscribers {
		select {
		case ch <- msg:
		default:
			// Drop message if channel is full (slow client)
			sm.logger.Warn("SSE: Client buffer full, dropping message")
		}
	}
}

// SubscribeEvents handles the GET /events request (SSE). Each event carries
// the cells changed by one edit. ?fields=a,b keeps only changes to those fields.
func (s *Server) SubscribeEvents(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "Streaming not supported", http.StatusInternalServerError)
		s.logger.Error("SubscribeEvents: Streaming not supported")
		return
	}

	var watch map[string]bool
	if raw := r.URL.Query().Get("fields"); raw != "" {
		watch = make(map[string]bool)
		for _, f := range strings.Split(raw, ",") {
			watch[strings.TrimSpace(f)] = true
		}
	}

	ch, cancel := s.Streams.Subscribe()
	defer cancel()

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	fmt.Fprintf(w, "event: ping\ndata: connected\n\n")
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			s.logger.Debug("SSE Client Disconnected")
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if watch != nil && !touches(msg, watch) {
				continue
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		}
	}
}

func touches(msg string, watch map[string]bool) bool {
	var changes []domain.CellChange
	if err := json.Unmarshal([]byte(msg), &changes); err != nil {
		return true
	}
	for _, c := range changes {
		if watch[c.Field] {
			return true
		}
	}
	return false
}
