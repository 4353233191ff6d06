// Package grid is what a rendering surface talks to: ordered headers, rendered
// cells with their change callbacks already bound, and the latest snapshot.
package grid

import (
	"fmt"
	"sync"

	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/dispatch"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/aretw0/tabula/pkg/view"
)

// Table binds a column registry to a dispatcher.
//
// Edit and Dispatch hold an edit lock from render to diff, so a composite
// sub-editor always re-emits the value it is about to replace. Callbacks
// taken from Render or Cell are not covered by it.
type Table[R any] struct {
	reg  *columns.Registry[R]
	disp *dispatch.Dispatcher[R]

	edit sync.Mutex
}

// New creates a table over the dispatcher's registry.
func New[R any](disp *dispatch.Dispatcher[R]) *Table[R] {
	return &Table[R]{reg: disp.Registry(), disp: disp}
}

// Columns returns the column descriptors in display order.
func (t *Table[R]) Columns() []columns.Column[R] {
	return t.reg.Columns()
}

// ColumnInfo describes one column for surfaces that cannot hold the typed descriptor.
type ColumnInfo struct {
	Field     string         `json:"field"`
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	Kind      string         `json:"kind"`
	Input     view.InputKind `json:"input"`
	SubFields []string       `json:"subFields,omitempty"`
}

// Describe lists the columns in display order.
func (t *Table[R]) Describe() []ColumnInfo {
	cols := t.reg.Columns()
	out := make([]ColumnInfo, len(cols))
	for i, col := range cols {
		info := ColumnInfo{
			Field: col.Field,
			Title: col.Title,
			Type:  col.Type.Name(),
			Kind:  col.Type.Kind().String(),
			Input: col.Input,
		}
		if shape, ok := col.Type.(*schema.CompositeType); ok {
			info.SubFields = shape.Fields()
		}
		out[i] = info
	}
	return out
}

// Fields returns the field identifiers in display order.
func (t *Table[R]) Fields() []string {
	return t.reg.Fields()
}

// Headers renders every column header.
func (t *Table[R]) Headers() []view.Node {
	cols := t.reg.Columns()
	out := make([]view.Node, len(cols))
	for i, col := range cols {
		out[i] = col.Header()
	}
	return out
}

// Snapshot returns the latest committed dataset.
func (t *Table[R]) Snapshot() []R {
	return t.disp.Snapshot()
}

// Len returns the number of rows in the latest snapshot.
func (t *Table[R]) Len() int {
	return len(t.disp.Snapshot())
}

// Render lays out every cell of the latest snapshot, row by row.
func (t *Table[R]) Render() [][]view.Node {
	rows := t.disp.Snapshot()
	cols := t.reg.Columns()

	out := make([][]view.Node, len(rows))
	for r, rec := range rows {
		cells := make([]view.Node, len(cols))
		for c, col := range cols {
			cells[c] = col.Cell(r, col.Value(rec), t.disp.Bind(r, col.Field))
		}
		out[r] = cells
	}
	return out
}

// Cell renders a single cell of the latest snapshot.
func (t *Table[R]) Cell(row int, field string) (view.Node, error) {
	rows := t.disp.Snapshot()
	if row < 0 || row >= len(rows) {
		return view.Node{}, fmt.Errorf("%w: %d", domain.ErrRowOutOfRange, row)
	}
	col, ok := t.reg.Lookup(field)
	if !ok {
		return view.Node{}, fmt.Errorf("%w: %s", domain.ErrUnknownField, field)
	}
	return col.Cell(row, col.Value(rows[row]), t.disp.Bind(row, field)), nil
}

// EditResult is the outcome of one edit played through an input control.
type EditResult struct {
	Changes []domain.CellChange
	// Dropped is set when the dispatcher discarded the edit. An accepted
	// edit that wrote the value already held has no changes and is not dropped.
	Dropped bool
	Reason  string
}

// Edit plays one user edit through a cell's input control, exactly as a
// surface would: input names a sub-editor of a composite cell, or is empty
// for scalar cells. It returns the cells that changed.
func (t *Table[R]) Edit(row int, field, input, raw string) ([]domain.CellChange, error) {
	res, err := t.EditResult(row, field, input, raw)
	if err != nil {
		return nil, err
	}
	return res.Changes, nil
}

// EditResult is Edit that also reports whether the edit was discarded.
func (t *Table[R]) EditResult(row int, field, input, raw string) (EditResult, error) {
	t.edit.Lock()
	defer t.edit.Unlock()

	node, err := t.Cell(row, field)
	if err != nil {
		return EditResult{}, err
	}
	in, ok := node.FindInput(input)
	if !ok {
		return EditResult{}, fmt.Errorf("cell %d/%s has no input %q", row, field, input)
	}

	clean, err := SanitizeInput(raw)
	if err != nil {
		return EditResult{}, err
	}

	before := t.disp.Snapshot()
	_, seq := t.disp.Last()
	in.Change(clean)
	event, next := t.disp.Last()

	res := EditResult{Changes: t.Diff(before, t.disp.Snapshot())}
	switch {
	case next == seq:
		// The control never reached the dispatcher.
		res.Dropped, res.Reason = true, domain.ReasonInvalidValue
	case event.Type == domain.EventDiscarded:
		res.Dropped, res.Reason = true, event.Reason
	}
	return res, nil
}

// Dispatch forwards an erased value to the cell's change path.
// It returns the cells that changed, nil when the edit was dropped.
// Text values are sanitized first; text that cannot be is dropped.
func (t *Table[R]) Dispatch(row int, field string, raw any) []domain.CellChange {
	if s, ok := raw.(string); ok {
		clean, err := SanitizeInput(s)
		if err != nil {
			return nil
		}
		raw = clean
	}

	t.edit.Lock()
	defer t.edit.Unlock()

	before := t.disp.Snapshot()
	after := t.disp.Dispatch(row, field, raw)
	return t.Diff(before, after)
}

// Record returns one row of the latest snapshot as a field-to-value map.
func (t *Table[R]) Record(row int) (map[string]any, error) {
	rows := t.disp.Snapshot()
	if row < 0 || row >= len(rows) {
		return nil, fmt.Errorf("%w: %d", domain.ErrRowOutOfRange, row)
	}
	return t.reg.Record(rows[row]), nil
}

// Records returns the latest snapshot as field-to-value maps.
func (t *Table[R]) Records() []map[string]any {
	rows := t.disp.Snapshot()
	out := make([]map[string]any, len(rows))
	for i, rec := range rows {
		out[i] = t.reg.Record(rec)
	}
	return out
}

// Diff lists the cells that differ between two snapshots.
func (t *Table[R]) Diff(oldRows, newRows []R) []domain.CellChange {
	return domain.Diff(t.reg.Fields(), t.reg.Get, oldRows, newRows)
}
