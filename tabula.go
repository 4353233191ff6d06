package tabula

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"slices"

	"github.com/aretw0/tabula/internal/logging"
	"github.com/aretw0/tabula/internal/seed"
	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/dispatch"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/grid"
	"github.com/aretw0/tabula/pkg/schema"
)

// Version is the release of the tabula module and CLI.
const Version = "0.1.0"

// Editor is the high-level entry point: the patient grid with its column
// table, its dispatcher and the dataset it started from.
type Editor struct {
	Name string

	table   *grid.Table[domain.Patient]
	disp    *dispatch.Dispatcher[domain.Patient]
	initial []domain.Patient
}

// Option defines a functional option for configuring the Editor.
type Option func(*settings)

type settings struct {
	logger   *slog.Logger
	policy   schema.NaNPolicy
	rows     []domain.Patient
	seedPath string
	hooks    []domain.EditHooks
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *settings) {
		s.logger = logger
	}
}

// WithNaNPolicy sets how numeric columns treat unparseable input.
func WithNaNPolicy(policy schema.NaNPolicy) Option {
	return func(s *settings) {
		s.policy = policy
	}
}

// WithRows starts the editor from rows instead of the built-in sample.
func WithRows(rows []domain.Patient) Option {
	return func(s *settings) {
		s.rows = rows
	}
}

// WithSeed loads the initial rows from a YAML or JSON file.
// It takes precedence over WithRows.
func WithSeed(path string) Option {
	return func(s *settings) {
		s.seedPath = path
	}
}

// WithHooks registers edit observers, such as metrics.
func WithHooks(hooks domain.EditHooks) Option {
	return func(s *settings) {
		s.hooks = append(s.hooks, hooks)
	}
}

// New builds an Editor. Without WithRows or WithSeed it holds the sample patients.
func New(opts ...Option) (*Editor, error) {
	s := settings{policy: schema.NaNReject}
	for _, opt := range opts {
		opt(&s)
	}
	if s.logger == nil {
		s.logger = logging.NewNop()
	}

	reg := columns.Patients(s.policy)
	if err := reg.Verify(domain.Patient{}); err != nil {
		return nil, fmt.Errorf("patient columns: %w", err)
	}

	name := "sample"
	rows := s.rows
	switch {
	case s.seedPath != "":
		loaded, err := seed.Load(s.seedPath, reg)
		if err != nil {
			return nil, err
		}
		rows = loaded
		name = filepath.Base(s.seedPath)
	case rows == nil:
		rows = domain.SamplePatients()
	default:
		name = "custom"
	}

	logger := s.logger.With("dataset", name)
	dispOpts := []dispatch.Option{dispatch.WithLogger(logger)}
	for _, h := range s.hooks {
		dispOpts = append(dispOpts, dispatch.WithHooks(h))
	}
	disp := dispatch.New(reg, rows, dispOpts...)
	logger.Debug("Editor ready", "rows", len(rows), "nan", s.policy.String())

	return &Editor{
		Name:    name,
		table:   grid.New(disp),
		disp:    disp,
		initial: slices.Clone(rows),
	}, nil
}

// Table returns the rendering-surface contract.
func (e *Editor) Table() *grid.Table[domain.Patient] {
	return e.table
}

// Dispatcher returns the edit dispatcher.
func (e *Editor) Dispatcher() *dispatch.Dispatcher[domain.Patient] {
	return e.disp
}

// Snapshot returns the latest dataset.
func (e *Editor) Snapshot() []domain.Patient {
	return e.disp.Snapshot()
}

// Initial returns a copy of the dataset the editor started from.
func (e *Editor) Initial() []domain.Patient {
	return slices.Clone(e.initial)
}

// Changes lists every cell that differs from the initial dataset.
func (e *Editor) Changes() []domain.CellChange {
	return e.table.Diff(e.initial, e.disp.Snapshot())
}

// Reset discards every edit.
func (e *Editor) Reset() {
	e.disp.Reset(e.initial)
}
