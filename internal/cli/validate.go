package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/aretw0/tabula/internal/seed"
	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/schema"
)

// Validate checks a seed file against the patient columns and prints each problem found.
func Validate(w io.Writer, path string, policy schema.NaNPolicy) error {
	reg := columns.Patients(policy)
	rows, err := seed.Load(path, reg)
	if err == nil {
		printSystemMessage(w, "%s: %d rows match the column schema.", path, len(rows))
		return nil
	}

	var rowErr *seed.RowError
	if !errors.As(err, &rowErr) {
		return err
	}

	if issues := schema.ValidationErrors(rowErr.Err); len(issues) > 0 {
		for _, issue := range issues {
			_, _ = fmt.Fprintf(w, "row %d: %v\n", rowErr.Row, issue)
		}
	} else {
		_, _ = fmt.Fprintf(w, "%v\n", rowErr)
	}
	return fmt.Errorf("validation failed for %s: %w", path, err)
}
