package columns

import (
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/mitchellh/mapstructure"
)

// Registry is the fixed, ordered set of columns for record type R.
type Registry[R any] struct {
	columns []Column[R]
	index   map[string]int
}

// NewRegistry builds a registry from columns in display order.
func NewRegistry[R any](cols ...Column[R]) (*Registry[R], error) {
	r := &Registry[R]{
		columns: make([]Column[R], 0, len(cols)),
		index:   make(map[string]int, len(cols)),
	}
	for i, col := range cols {
		if col.Field == "" {
			return nil, fmt.Errorf("column %d: empty field identifier", i)
		}
		if col.Type == nil || col.cell == nil || col.get == nil || col.set == nil {
			return nil, fmt.Errorf("column %q: not built with a column constructor", col.Field)
		}
		if _, exists := r.index[col.Field]; exists {
			return nil, fmt.Errorf("%w: %s", domain.ErrDuplicateColumn, col.Field)
		}
		r.index[col.Field] = len(r.columns)
		r.columns = append(r.columns, col)
	}
	return r, nil
}

// MustRegistry is like NewRegistry but panics on error.
// Use it only for static column tables.
func MustRegistry[R any](cols ...Column[R]) *Registry[R] {
	r, err := NewRegistry(cols...)
	if err != nil {
		panic(err)
	}
	return r
}

// Columns returns the columns in display order.
func (r *Registry[R]) Columns() []Column[R] {
	return slices.Clone(r.columns)
}

// Len returns the number of columns.
func (r *Registry[R]) Len() int {
	return len(r.columns)
}

// Lookup returns the column for field.
func (r *Registry[R]) Lookup(field string) (Column[R], bool) {
	i, ok := r.index[field]
	if !ok {
		return Column[R]{}, false
	}
	return r.columns[i], true
}

// Fields returns the field identifiers in display order.
func (r *Registry[R]) Fields() []string {
	out := make([]string, len(r.columns))
	for i, col := range r.columns {
		out[i] = col.Field
	}
	return out
}

// Schema returns the validation schema of the record.
func (r *Registry[R]) Schema() schema.Schema {
	s := make(schema.Schema, len(r.columns))
	for _, col := range r.columns {
		s[col.Field] = col.Type
	}
	return s
}

// Get reads field from rec. Unknown fields read as nil.
func (r *Registry[R]) Get(rec R, field string) any {
	col, ok := r.Lookup(field)
	if !ok {
		return nil
	}
	return col.Value(rec)
}

// Record returns rec as a field-to-value map.
func (r *Registry[R]) Record(rec R) map[string]any {
	out := make(map[string]any, len(r.columns))
	for _, col := range r.columns {
		out[col.Field] = col.Value(rec)
	}
	return out
}

// Verify checks that the columns enumerate exactly the fields of R, as named
// by its mapstructure tags.
func (r *Registry[R]) Verify(sample R) error {
	var fields map[string]any
	if err := mapstructure.Decode(sample, &fields); err != nil {
		return fmt.Errorf("inspect record fields: %w", err)
	}

	var missing, extra []string
	for name := range fields {
		if _, ok := r.index[name]; !ok {
			missing = append(missing, name)
		}
	}
	for _, col := range r.columns {
		if _, ok := fields[col.Field]; !ok {
			extra = append(extra, col.Field)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Strings(missing)
	sort.Strings(extra)
	var parts []string
	if len(missing) > 0 {
		parts = append(parts, "fields without column: "+strings.Join(missing, ", "))
	}
	if len(extra) > 0 {
		parts = append(parts, "columns without field: "+strings.Join(extra, ", "))
	}
	return fmt.Errorf("%w: %s", domain.ErrSchemaMismatch, strings.Join(parts, "; "))
}
