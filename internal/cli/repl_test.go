package cli

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aretw0/tabula"
	"github.com/aretw0/tabula/internal/config"
	"github.com/chzyer/readline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type scriptReader struct {
	lines  []string
	errs   []error
	closed bool
}

func (s *scriptReader) Readline() (string, error) {
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		if err != nil {
			return "", err
		}
	}
	if len(s.lines) == 0 {
		return "", io.EOF
	}
	line := s.lines[0]
	s.lines = s.lines[1:]
	return line, nil
}

func (s *scriptReader) Close() error {
	s.closed = true
	return nil
}

func newTestREPL(t *testing.T) (*REPL, *tabula.Editor, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	ed, err := tabula.New()
	require.NoError(t, err)
	var out, errOut bytes.Buffer
	return NewREPL(ed, &out, &errOut, config.FormatTable, nil), ed, &out, &errOut
}

func TestREPL_SetScalar(t *testing.T) {
	r, ed, out, errOut := newTestREPL(t)

	assert.False(t, r.Exec("set 1 name Jane Xavier"))

	assert.Equal(t, "Jane Xavier", ed.Snapshot()[1].Name)
	assert.Contains(t, out.String(), "Jane Xavier")
	assert.Empty(t, errOut.String())
}

func TestREPL_SetCompositeSubField(t *testing.T) {
	r, ed, _, _ := newTestREPL(t)

	r.Exec("set 0 bloodPressure.diastolic 82")

	bp := ed.Snapshot()[0].BloodPressure
	assert.Equal(t, 120.0, bp.Systolic)
	assert.Equal(t, 82.0, bp.Diastolic)
	assert.Equal(t, 100.0, bp.Average)
}

func TestREPL_SetDropped(t *testing.T) {
	r, ed, _, errOut := newTestREPL(t)
	before := ed.Snapshot()

	r.Exec("set 0 age thirty")

	assert.Equal(t, before, ed.Snapshot())
	assert.Contains(t, errOut.String(), "Edit dropped")
}

func TestREPL_SetSameValue(t *testing.T) {
	r, ed, out, errOut := newTestREPL(t)

	r.Exec("set 0 name John Doe")

	assert.Equal(t, "John Doe", ed.Snapshot()[0].Name)
	assert.Contains(t, out.String(), "No change")
	assert.NotContains(t, errOut.String(), "Edit dropped")
}

func TestREPL_SetErrors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"set", "Usage"},
		{"set 0", "Usage"},
		{"set x name y", "invalid row"},
		{"set 7 name y", "out of range"},
		{"set 0 weight 80", "unknown field"},
		{"set 0 bloodPressure.pulse 1", "no input"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			r, _, _, errOut := newTestREPL(t)
			r.Exec(tt.line)
			assert.Contains(t, errOut.String(), tt.want)
		})
	}
}

func TestREPL_DiffAndReset(t *testing.T) {
	r, ed, out, _ := newTestREPL(t)

	r.Exec("diff")
	assert.Contains(t, out.String(), "(no changes)")

	r.Exec("set 2 email sam@example.org")
	out.Reset()
	r.Exec("diff")
	assert.Contains(t, out.String(), "sam@example.org")
	assert.Contains(t, out.String(), "sam@example.com")

	r.Exec("reset")
	assert.Empty(t, ed.Changes())
}

func TestREPL_InfoCommands(t *testing.T) {
	r, _, out, errOut := newTestREPL(t)

	r.Exec("show")
	assert.Contains(t, out.String(), "Sam Johnson")

	out.Reset()
	r.Exec("columns")
	assert.Contains(t, out.String(), "bloodPressure")
	assert.Contains(t, out.String(), "email")

	out.Reset()
	r.Exec("help")
	assert.Contains(t, out.String(), "Commands:")

	r.Exec("launch")
	assert.Contains(t, errOut.String(), "Unknown command: launch")

	assert.False(t, r.Exec("   "))
	assert.False(t, r.Exec("# comment"))
	assert.True(t, r.Exec("quit"))
	assert.True(t, r.Exec("EXIT"))
}

func TestREPL_Run(t *testing.T) {
	r, ed, _, _ := newTestREPL(t)
	lr := &scriptReader{
		lines: []string{"set 0 age 31", "quit", "set 0 age 99"},
		errs:  []error{readline.ErrInterrupt},
	}

	require.NoError(t, r.Run(context.Background(), lr))

	assert.Equal(t, 31.0, ed.Snapshot()[0].Age)
	assert.True(t, lr.closed)
	assert.Len(t, lr.lines, 1)
}

func TestREPL_RunUntilEOF(t *testing.T) {
	r, ed, _, _ := newTestREPL(t)
	lr := &scriptReader{lines: []string{"set 1 age 26"}}

	require.NoError(t, r.Run(context.Background(), lr))
	assert.Equal(t, 26.0, ed.Snapshot()[1].Age)
}

func TestREPL_RunReadError(t *testing.T) {
	r, _, _, _ := newTestREPL(t)
	lr := &scriptReader{errs: []error{errors.New("disk on fire")}}

	err := r.Run(context.Background(), lr)
	assert.ErrorContains(t, err, "disk on fire")
}

func TestREPL_RunCancelled(t *testing.T) {
	r, ed, _, _ := newTestREPL(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, r.Run(ctx, &scriptReader{lines: []string{"set 0 age 31"}}))
	assert.Equal(t, 28.0, ed.Snapshot()[0].Age)
}

func TestInterruptibleReader(t *testing.T) {
	cancel := make(chan struct{})
	rd := NewInterruptibleReader(strings.NewReader("set 0 age 31\n"), cancel)

	buf := make([]byte, 64)
	n, err := rd.Read(buf)
	require.NoError(t, err)
	assert.Equal(t, "set 0 age 31\n", string(buf[:n]))

	close(cancel)
	_, err = rd.Read(buf)
	assert.True(t, isInterrupted(err))
}

func TestScanReader(t *testing.T) {
	sr := &scanReader{sc: newScanner(strings.NewReader("show\nquit\n"))}

	line, err := sr.Readline()
	require.NoError(t, err)
	assert.Equal(t, "show", line)

	line, err = sr.Readline()
	require.NoError(t, err)
	assert.Equal(t, "quit", line)

	_, err = sr.Readline()
	assert.ErrorIs(t, err, io.EOF)
	assert.NoError(t, sr.Close())
}

func TestNextArg(t *testing.T) {
	word, rest := nextArg("  set   0 name  Jane  ")
	assert.Equal(t, "set", word)
	assert.Equal(t, "0 name  Jane", rest)

	word, rest = nextArg("")
	assert.Empty(t, word)
	assert.Empty(t, rest)
}
