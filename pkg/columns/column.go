package columns

import (
	"maps"
	"strings"

	"github.com/aretw0/tabula/pkg/schema"
	"github.com/aretw0/tabula/pkg/view"
)

// HeaderFunc renders a column header. It must not depend on row data.
type HeaderFunc func(field string) view.Node

// CellFunc renders one cell from its erased current value. onChange receives
// a complete value of the field's shape once per edit event.
type CellFunc func(row int, field string, value any, onChange func(any)) view.Node

// Column describes how one record field is shown, edited and written back.
type Column[R any] struct {
	Field string
	Title string
	Type  schema.Type
	Input view.InputKind

	header HeaderFunc
	cell   CellFunc
	get    func(R) any
	set    func(R, any) (R, bool)
}

// Header renders the column header.
func (c Column[R]) Header() view.Node {
	return c.header(c.Field)
}

// Cell renders the cell at row for the given current value.
func (c Column[R]) Cell(row int, value any, onChange func(any)) view.Node {
	if onChange == nil {
		onChange = func(any) {}
	}
	return c.cell(row, c.Field, value, onChange)
}

// Value reads the column's field from rec.
func (c Column[R]) Value(rec R) any {
	return c.get(rec)
}

// With returns rec with the column's field replaced by value. All other
// fields are carried over. It reports false, leaving rec untouched, when
// value does not pass the column's validation type.
func (c Column[R]) With(rec R, value any) (R, bool) {
	if c.Type.Validate(value) != nil {
		return rec, false
	}
	return c.set(rec, value)
}

// --- Constructors ---

// Number builds a floating-point column.
func Number[R any](field, title string, policy schema.NaNPolicy, get func(R) float64, set func(R, float64) R) Column[R] {
	return Column[R]{
		Field:  field,
		Title:  title,
		Type:   schema.Number(policy),
		Input:  view.InputNumber,
		header: titleHeader(title),
		cell:   numberCell,
		get:    func(r R) any { return get(r) },
		set: func(r R, v any) (R, bool) {
			n, ok := schema.ToFloat(v)
			if !ok {
				return r, false
			}
			return set(r, n), true
		},
	}
}

// Integer builds a whole-number column such as a record identifier.
func Integer[R any](field, title string, get func(R) int, set func(R, int) R) Column[R] {
	return Column[R]{
		Field:  field,
		Title:  title,
		Type:   schema.Int(),
		Input:  view.InputNumber,
		header: titleHeader(title),
		cell:   numberCell,
		get:    func(r R) any { return get(r) },
		set: func(r R, v any) (R, bool) {
			n, ok := schema.ToInt(v)
			if !ok {
				return r, false
			}
			return set(r, n), true
		},
	}
}

// Text builds a free text column.
func Text[R any](field, title string, get func(R) string, set func(R, string) R) Column[R] {
	return textColumn(field, title, schema.Text(), view.InputText, get, set)
}

// Email builds a formatted text column edited with an email control.
func Email[R any](field, title string, get func(R) string, set func(R, string) R) Column[R] {
	return textColumn(field, title, schema.Email(), view.InputEmail, get, set)
}

func textColumn[R any](field, title string, typ schema.Type, kind view.InputKind, get func(R) string, set func(R, string) R) Column[R] {
	return Column[R]{
		Field:  field,
		Title:  title,
		Type:   typ,
		Input:  kind,
		header: titleHeader(title),
		cell:   textCell(kind),
		get:    func(r R) any { return get(r) },
		set: func(r R, v any) (R, bool) {
			s, ok := v.(string)
			if !ok {
				return r, false
			}
			return set(r, s), true
		},
	}
}

// Composite builds a column over a fixed-shape group of numeric sub-fields.
// C is the typed composite; its mapstructure tags must match shape's sub-fields.
func Composite[R, C any](field, title string, shape *schema.CompositeType, get func(R) C, set func(R, C) R) Column[R] {
	return Column[R]{
		Field:  field,
		Title:  title,
		Type:   shape,
		Input:  view.InputNumber,
		header: compositeHeader(title, shape),
		cell:   compositeCell[C](shape),
		get:    func(r R) any { return get(r) },
		set: func(r R, v any) (R, bool) {
			c, ok := toComposite[C](shape, v)
			if !ok {
				return r, false
			}
			return set(r, c), true
		},
	}
}

// --- Renderers ---

func titleHeader(title string) HeaderFunc {
	return func(string) view.Node {
		return view.Text(title)
	}
}

// compositeHeader labels each sub-field in the same order as the sub-editors.
func compositeHeader(title string, shape *schema.CompositeType) HeaderFunc {
	return func(string) view.Node {
		subs := shape.Fields()
		labels := make([]view.Node, len(subs))
		for i, sub := range subs {
			labels[i] = view.Text(strings.ToUpper(sub[:1]) + sub[1:])
		}
		return view.Group(title, labels...)
	}
}

func numberCell(_ int, field string, value any, onChange func(any)) view.Node {
	n, ok := schema.ToFloat(value)
	if !ok {
		return view.Empty()
	}
	return view.NewInput(view.InputNumber, field, schema.FormatNumber(n), func(raw string) {
		onChange(schema.ParseNumber(raw))
	})
}

func textCell(kind view.InputKind) CellFunc {
	return func(_ int, field string, value any, onChange func(any)) view.Node {
		s, ok := value.(string)
		if !ok {
			return view.Empty()
		}
		return view.NewInput(kind, field, s, func(raw string) {
			onChange(raw)
		})
	}
}

func compositeCell[C any](shape *schema.CompositeType) CellFunc {
	return func(_ int, field string, value any, onChange func(any)) view.Node {
		current, ok := shape.Values(value)
		if !ok {
			return view.Empty()
		}

		subs := shape.Fields()
		children := make([]view.Node, 0, len(subs))
		for _, sub := range subs {
			children = append(children, view.NewInput(view.InputNumber, sub, schema.FormatNumber(current[sub]), func(raw string) {
				next := maps.Clone(current)
				next[sub] = schema.ParseNumber(raw)

				var c C
				if err := schema.DecodeComposite(next, &c); err != nil {
					return
				}
				onChange(c)
			}))
		}
		return view.Group(field, children...)
	}
}

func toComposite[C any](shape *schema.CompositeType, v any) (C, bool) {
	if c, ok := v.(C); ok {
		return c, true
	}
	if p, ok := v.(*C); ok && p != nil {
		return *p, true
	}

	var out C
	values, ok := shape.Values(v)
	if !ok {
		return out, false
	}
	if err := schema.DecodeComposite(values, &out); err != nil {
		return out, false
	}
	return out, true
}
