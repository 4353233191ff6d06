package grid

import (
	"strings"
	"testing"

	"github.com/aretw0/tabula/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSanitizeInput(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr error
	}{
		{"plain", "Jane Smith", "Jane Smith", nil},
		{"unicode", "José Ñúñez", "José Ñúñez", nil},
		{"ansi escape", "\x1b[31mRed\x1b[0m", "[31mRed[0m", nil},
		{"newline and tab", "Jane\n\tSmith", "JaneSmith", nil},
		{"null byte", "12\x000", "120", nil},
		{"invalid utf8", "\xff\xfe", "", ErrInvalidUTF8},
		{"too large", strings.Repeat("a", DefaultMaxInputSize+1), "", ErrInputTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := SanitizeInput(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeInput_EnvLimit(t *testing.T) {
	t.Setenv(EnvMaxInputSize, "4")

	_, err := SanitizeInput("12345")
	assert.ErrorIs(t, err, ErrInputTooLarge)

	got, err := SanitizeInput("1234")
	require.NoError(t, err)
	assert.Equal(t, "1234", got)
}

func TestEdit_Sanitized(t *testing.T) {
	tbl := newTable()

	changes, err := tbl.Edit(1, domain.FieldName, "", "Jane\x1b X")
	require.NoError(t, err)
	require.Len(t, changes, 1)
	assert.Equal(t, "Jane X", tbl.Snapshot()[1].Name)

	_, err = tbl.Edit(1, domain.FieldName, "", "\xff")
	assert.ErrorIs(t, err, ErrInvalidUTF8)
	assert.Equal(t, "Jane X", tbl.Snapshot()[1].Name)
}

func TestDispatch_SanitizesText(t *testing.T) {
	tbl := newTable()

	changes := tbl.Dispatch(0, domain.FieldEmail, "john\x00@example.org")
	require.Len(t, changes, 1)
	assert.Equal(t, "john@example.org", tbl.Snapshot()[0].Email)

	assert.Nil(t, tbl.Dispatch(0, domain.FieldEmail, "\xff"))
}
