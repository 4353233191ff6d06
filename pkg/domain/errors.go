package domain

import "errors"

// ErrDuplicateColumn is returned when two column descriptors claim the same field.
var ErrDuplicateColumn = errors.New("duplicate column")

// ErrSchemaMismatch is returned when the column set and the record field set differ.
var ErrSchemaMismatch = errors.New("column set does not match record fields")

// ErrRowOutOfRange is reported by surfaces that address rows explicitly.
// The dispatcher itself never returns it: out-of-range edits are dropped.
var ErrRowOutOfRange = errors.New("row out of range")

// ErrUnknownField is reported by surfaces when a field identifier has no column.
var ErrUnknownField = errors.New("unknown field")
