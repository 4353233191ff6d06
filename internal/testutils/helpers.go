// Package testutils holds fixtures shared by package tests.
package testutils

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tabula/pkg/columns"
	"github.com/aretw0/tabula/pkg/dispatch"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/grid"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/stretchr/testify/require"
)

// WriteFile creates name with content in a fresh temp dir and returns its path.
// It fails the test immediately on error.
func WriteFile(t *testing.T, name, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644), "Failed to write %s", name)
	return path
}

// PatientTable returns a grid over the sample patients with the given NaN policy.
func PatientTable(policy schema.NaNPolicy, opts ...dispatch.Option) *grid.Table[domain.Patient] {
	reg := columns.Patients(policy)
	return grid.New(dispatch.New(reg, domain.SamplePatients(), opts...))
}

// DiscardLogger returns a logger that drops every record.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
