package sevenzip

import (
	"fmt"
	"strings"
	"testing"

	"github.com/Defacto2/sevenzip/process"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func output(code int, stdout, stderr string) process.Output {
	return process.Output{
		ExitCode: code,
		Stdout:   [][]byte{[]byte(stdout)},
		Stderr:   [][]byte{[]byte(stderr)},
	}
}

func TestNormalize(t *testing.T) {
	t.Parallel()
	r, err := normalize(output(0, "  Scanning  \n\n\tEverything is Ok\r\n", "warning\n"), "fallback")
	require.NoError(t, err)
	assert.True(t, r.Success)
	assert.Empty(t, r.Message)
	assert.Equal(t, []string{"Scanning", "Everything is Ok", "warning"}, r.Logs)
}

func TestNormalize_Failure(t *testing.T) {
	t.Parallel()
	r, err := normalize(output(2, "out\n", "  ERROR: Data Error\n"), "Unable to extract archive")
	require.ErrorIs(t, err, ErrTool)
	assert.False(t, r.Success)
	assert.Equal(t, "ERROR: Data Error", r.Message)

	r, err = normalize(output(7, "out\n", " \n\t\n"), "Unable to extract archive")
	require.Error(t, err)
	assert.Equal(t, "Unable to extract archive", r.Message, "blank stderr uses the fallback")
	assert.NotContains(t, err.Error(), "7")
}

func TestNormalize_Chunks(t *testing.T) {
	t.Parallel()
	out := process.Output{
		Stdout: [][]byte{[]byte("Every"), []byte("thing is"), []byte(" Ok\nDone")},
	}
	r, err := normalize(out, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Everything is Ok", "Done"}, r.Logs, "chunks are joined before splitting")
}

func TestLogTail(t *testing.T) {
	t.Parallel()
	var sb strings.Builder
	for i := range 250 {
		fmt.Fprintf(&sb, "line %d\n", i)
	}
	logs := logTail(output(0, sb.String(), "stderr 1\nstderr 2\n"), MaxLogs)
	require.Len(t, logs, MaxLogs)
	assert.Equal(t, "line 52", logs[0], "the oldest lines are dropped")
	assert.Equal(t, "line 249", logs[MaxLogs-3])
	assert.Equal(t, "stderr 2", logs[MaxLogs-1])

	assert.Empty(t, logTail(output(0, "a\nb\n", ""), 0))
	assert.Equal(t, []string{"b", "c"}, logTail(output(0, "a\nb\n", "c"), 2))
}
