package dispatch

import (
	"slices"

	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/domain"
)

// Reduce applies in to rows and returns the next snapshot. When the intent
// cannot be applied it returns rows itself together with the discard reason.
func Reduce[R any](reg *columns.Registry[R], rows []R, in domain.Intent) ([]R, string) {
	if in.Row < 0 || in.Row >= len(rows) {
		return rows, domain.ReasonRowOutOfRange
	}

	col, ok := reg.Lookup(in.Field)
	if !ok {
		return rows, domain.ReasonUnknownField
	}

	updated, ok := col.With(rows[in.Row], in.Value)
	if !ok {
		return rows, domain.ReasonInvalidValue
	}

	next := slices.Clone(rows)
	next[in.Row] = updated
	return next, ""
}
