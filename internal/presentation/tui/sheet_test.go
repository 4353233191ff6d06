package tui

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/aretw0/tabula/internal/config"
	"github.com/aretw0/tabula/internal/testutils"
	"github.com/aretw0/tabula/pkg/domain"
	"github.com/aretw0/tabula/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleSheet() Sheet {
	return SheetOf(testutils.PatientTable(schema.NaNReject))
}

func TestSheetOf(t *testing.T) {
	s := sampleSheet()

	assert.Equal(t, []string{"ID", "Name", "Age", "Email", "Blood Pressure (Systolic / Diastolic / Average)"}, s.Headers)
	require.Len(t, s.Rows, 3)
	assert.Equal(t, []string{"3", "Sam Johnson", "45", "sam@example.com", "140 / 90 / 115"}, s.Rows[2])
	assert.Len(t, s.Records, 3)
}

func TestRender_Table(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleSheet(), config.FormatTable, nil))

	out := buf.String()
	assert.Contains(t, out, "Blood Pressure")
	assert.Contains(t, out, "Jane Smith")
	assert.Contains(t, out, "(3 rows)")
}

func TestRender_MarkdownRaw(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleSheet(), config.FormatMarkdown, nil))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 5)
	assert.Equal(t, "| # | ID | Name | Age | Email | Blood Pressure (Systolic / Diastolic / Average) |", lines[0])
	assert.Equal(t, "| --- | --- | --- | --- | --- | --- |", lines[1])
	assert.Equal(t, "| 0 | 1 | John Doe | 28 | john@example.com | 120 / 80 / 100 |", lines[2])
}

func TestRender_MarkdownRenderer(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, sampleSheet(), config.FormatMarkdown, func(md string) (string, error) {
		return strings.ToUpper(md), nil
	})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "JANE SMITH")
}

func TestRender_UnknownFormatFallsBackToTable(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleSheet(), "md", nil))
	assert.Contains(t, buf.String(), "(3 rows)")
	assert.NotContains(t, buf.String(), "| --- |")
}

func TestRender_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, sampleSheet(), config.FormatJSON, nil))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 3)
	assert.Equal(t, "Jane Smith", decoded[1]["name"])
	assert.Equal(t, map[string]any{"systolic": 130.0, "diastolic": 85.0, "average": 107.5}, decoded[1]["bloodPressure"])
}

func TestRenderChanges(t *testing.T) {
	changes := []domain.CellChange{
		{Row: 0, Field: domain.FieldAge, Old: 30.0, New: 31.5},
		{Row: 1, Field: domain.FieldBloodPressure,
			Old: domain.BloodPressure{Systolic: 110, Diastolic: 70, Average: 90},
			New: domain.BloodPressure{Systolic: 115, Diastolic: 70, Average: 90}},
	}

	var buf bytes.Buffer
	require.NoError(t, RenderChanges(&buf, changes, config.FormatTable))
	out := buf.String()
	assert.Contains(t, out, "31.5")
	assert.Contains(t, out, "115 / 70 / 90")

	buf.Reset()
	require.NoError(t, RenderChanges(&buf, nil, config.FormatTable))
	assert.Equal(t, "(no changes)\n", buf.String())

	buf.Reset()
	require.NoError(t, RenderChanges(&buf, nil, config.FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestFormatValue(t *testing.T) {
	assert.Equal(t, "", FormatValue(nil))
	assert.Equal(t, "100", FormatValue(100.0))
	assert.Equal(t, "107.5", FormatValue(107.5))
	assert.Equal(t, "7", FormatValue(7))
	assert.Equal(t, "x", FormatValue("x"))
}

func TestPrintBanner(t *testing.T) {
	var buf bytes.Buffer
	PrintBanner(&buf)
	assert.Contains(t, buf.String(), "|_   _|")

	buf.Reset()
	Notice(&buf, "dropped %d", 1)
	assert.Contains(t, buf.String(), "dropped 1")
}

func TestNewRenderer(t *testing.T) {
	render := NewRenderer()
	out, err := render("# Title")
	require.NoError(t, err)
	assert.Contains(t, out, "Title")
}
