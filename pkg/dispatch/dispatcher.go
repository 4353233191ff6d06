package dispatch

import (
	"log/slog"
	"slices"
	"sync"
	"time"

	"github.com/aretw0/tabula/internal/logging"
	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
)

// Dispatcher holds the current snapshot and serializes every transition.
type Dispatcher[R any] struct {
	reg *columns.Registry[R]

	mu   sync.Mutex
	rows []R
	last domain.EditEvent
	seq  uint64

	logger *slog.Logger
	hooks  []domain.EditHooks
	now    func() time.Time
}

// Option configures a Dispatcher.
type Option func(*settings)

type settings struct {
	logger *slog.Logger
	hooks  []domain.EditHooks
	now    func() time.Time
}

// WithLogger configures a logger for edit outcomes.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithHooks registers observability callbacks. May be given more than once.
// Hooks run while the dispatcher lock is held and must not dispatch.
func WithHooks(hooks domain.EditHooks) Option {
	return func(s *settings) {
		s.hooks = append(s.hooks, hooks)
	}
}

// WithClock overrides the event timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *settings) {
		s.now = now
	}
}

// New creates a dispatcher owning a copy of initial.
func New[R any](reg *columns.Registry[R], initial []R, opts ...Option) *Dispatcher[R] {
	s := settings{
		logger: logging.NewNop(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(&s)
	}
	return &Dispatcher[R]{
		reg:    reg,
		rows:   slices.Clone(initial),
		logger: s.logger,
		hooks:  s.hooks,
		now:    s.now,
	}
}

// Registry returns the column registry the dispatcher validates against.
func (d *Dispatcher[R]) Registry() *columns.Registry[R] {
	return d.reg
}

// Snapshot returns the latest committed dataset. Callers must treat it as read-only.
func (d *Dispatcher[R]) Snapshot() []R {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.rows
}

// Reset replaces the whole dataset. Row indexes from earlier snapshots are no longer meaningful.
func (d *Dispatcher[R]) Reset(rows []R) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.rows = slices.Clone(rows)
	d.logger.Debug("Dataset replaced", "rows", len(rows))
}

// Apply runs one transition and returns the resulting snapshot.
func (d *Dispatcher[R]) Apply(in domain.Intent) []R {
	d.mu.Lock()
	defer d.mu.Unlock()

	next, reason := Reduce(d.reg, d.rows, in)
	if reason != "" {
		d.discardLocked(in, reason)
		return d.rows
	}

	d.rows = next
	d.logger.Debug("Cell updated", "row", in.Row, "field", in.Field)
	event := &domain.EditEvent{Timestamp: d.now(), Type: domain.EventApplied, Intent: in}
	d.record(event)
	for _, h := range d.hooks {
		if h.OnApply != nil {
			h.OnApply(event)
		}
	}
	return next
}

// Dispatch is the entry point reached by a cell's change callback: it checks
// raw against the field's type and only then forwards a typed intent.
func (d *Dispatcher[R]) Dispatch(row int, field string, raw any) []R {
	in := domain.Intent{Row: row, Field: field, Value: raw}

	col, ok := d.reg.Lookup(field)
	if !ok {
		return d.discard(in, domain.ReasonUnknownField)
	}

	value, ok := narrow(col.Type, raw)
	if !ok {
		return d.discard(in, domain.ReasonInvalidValue)
	}

	in.Value = value
	return d.Apply(in)
}

// Bind returns the change callback for the cell at (row, field).
func (d *Dispatcher[R]) Bind(row int, field string) func(any) {
	return func(raw any) {
		d.Dispatch(row, field, raw)
	}
}

func (d *Dispatcher[R]) discard(in domain.Intent, reason string) []R {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.discardLocked(in, reason)
	return d.rows
}

func (d *Dispatcher[R]) discardLocked(in domain.Intent, reason string) {
	d.logger.Debug("Edit discarded", "row", in.Row, "field", in.Field, "reason", reason)
	event := &domain.EditEvent{Timestamp: d.now(), Type: domain.EventDiscarded, Intent: in, Reason: reason}
	d.record(event)
	for _, h := range d.hooks {
		if h.OnDiscard != nil {
			h.OnDiscard(event)
		}
	}
}

func (d *Dispatcher[R]) record(event *domain.EditEvent) {
	d.last = *event
	d.seq++
}

// Last returns the outcome of the most recent transition together with a
// sequence number that grows by one per transition. It is zero before the first.
func (d *Dispatcher[R]) Last() (domain.EditEvent, uint64) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.last, d.seq
}

// narrow converts an erased value into the canonical value of its kind:
// float64 for numbers, string for text, the value itself for composites.
func narrow(t schema.Type, raw any) (any, bool) {
	if t.Validate(raw) != nil {
		return nil, false
	}

	switch t.Kind() {
	case schema.KindNumber:
		n, ok := schema.ToFloat(raw)
		return n, ok
	case schema.KindText:
		s, ok := raw.(string)
		return s, ok
	case schema.KindComposite:
		return raw, true
	default:
		return nil, false
	}
}
