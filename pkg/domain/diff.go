package domain

import (
	"math"
	"reflect"
)

// CellChange is a single cell whose value differs between two snapshots.
type CellChange struct {
	Row   int    `json:"row"`
	Field string `json:"field"`
	Old   any    `json:"old"`
	New   any    `json:"new"`
}

// Diff compares two snapshots cell by cell using get to read field values.
// Rows present in only one snapshot are reported with a nil counterpart.
// Returns nil when nothing changed.
func Diff[R any](fields []string, get func(R, string) any, oldRows, newRows []R) []CellChange {
	var changes []CellChange

	n := max(len(oldRows), len(newRows))
	for row := 0; row < n; row++ {
		for _, field := range fields {
			var oldVal, newVal any
			if row < len(oldRows) {
				oldVal = get(oldRows[row], field)
			}
			if row < len(newRows) {
				newVal = get(newRows[row], field)
			}
			if !SameValue(oldVal, newVal) {
				changes = append(changes, CellChange{Row: row, Field: field, Old: oldVal, New: newVal})
			}
		}
	}

	return changes
}

// SameValue reports whether two cell values are equal. NaN equals NaN.
func SameValue(a, b any) bool {
	if ea, ok := a.(interface{ Equal(BloodPressure) bool }); ok {
		if bb, ok := b.(BloodPressure); ok {
			return ea.Equal(bb)
		}
	}
	if fa, ok := a.(float64); ok {
		if fb, ok := b.(float64); ok {
			return fa == fb || (math.IsNaN(fa) && math.IsNaN(fb))
		}
	}
	return reflect.DeepEqual(a, b)
}
