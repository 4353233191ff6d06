package tabula_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	ed, err := tabula.New()
	require.NoError(t, err)

	assert.Equal(t, "sample", ed.Name)
	assert.Equal(t, domain.SamplePatients(), ed.Snapshot())
	assert.Empty(t, ed.Changes())
}

func TestNew_WithRows(t *testing.T) {
	rows := domain.SamplePatients()[:1]
	ed, err := tabula.New(tabula.WithRows(rows))
	require.NoError(t, err)

	assert.Equal(t, "custom", ed.Name)
	assert.Len(t, ed.Snapshot(), 1)
}

func TestNew_WithSeed(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ward.yaml")
	content := `rows:
  - id: 7
    name: Ada
    age: 36
    email: ada@example.com
    bloodPressure: {systolic: 118, diastolic: 76, average: 97}
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	ed, err := tabula.New(tabula.WithSeed(path))
	require.NoError(t, err)

	assert.Equal(t, "ward.yaml", ed.Name)
	require.Len(t, ed.Snapshot(), 1)
	assert.Equal(t, "Ada", ed.Snapshot()[0].Name)
}

func TestNew_MissingSeed(t *testing.T) {
	_, err := tabula.New(tabula.WithSeed(filepath.Join(t.TempDir(), "nope.yaml")))
	assert.Error(t, err)
}

func TestEditor_ChangesAndReset(t *testing.T) {
	ed, err := tabula.New()
	require.NoError(t, err)

	_, err = ed.Table().Edit(1, domain.FieldName, "", "Jane X")
	require.NoError(t, err)

	changes := ed.Changes()
	require.Len(t, changes, 1)
	assert.Equal(t, "Jane X", changes[0].New)
	assert.Equal(t, "Jane Smith", ed.Initial()[1].Name)

	ed.Reset()
	assert.Empty(t, ed.Changes())
}

func TestEditor_NaNPolicy(t *testing.T) {
	ed, err := tabula.New(tabula.WithNaNPolicy(schema.NaNPassthrough))
	require.NoError(t, err)

	_, err = ed.Table().Edit(0, domain.FieldAge, "", "abc")
	require.NoError(t, err)
	assert.True(t, ed.Snapshot()[0].Age != ed.Snapshot()[0].Age, "age should be NaN")
}

func TestEditor_Hooks(t *testing.T) {
	var applied, discarded int
	ed, err := tabula.New(tabula.WithHooks(domain.EditHooks{
		OnApply:   func(*domain.EditEvent) { applied++ },
		OnDiscard: func(*domain.EditEvent) { discarded++ },
	}))
	require.NoError(t, err)

	ed.Table().Dispatch(0, domain.FieldAge, 31)
	ed.Table().Dispatch(9, domain.FieldAge, 31)

	assert.Equal(t, 1, applied)
	assert.Equal(t, 1, discarded)
}
