package sevenzip

import (
	"bufio"
	"strings"

	"github.com/Defacto2/sevenzip/process"
)

// MaxLogs is the maximum number of log lines kept in a Result.
const MaxLogs = 200

// normalize returns the result of the finished archiver program.
// A zero exit code is a success. Otherwise the error message is the standard
// error text, or the fallback when the archiver printed nothing to it.
// The returned Result is usable in both cases as it holds the log tail.
func normalize(out process.Output, fallback string) (Result, error) {
	logs := logTail(out, MaxLogs)
	if out.ExitCode == 0 {
		return Result{Success: true, Logs: logs}, nil
	}
	msg := strings.TrimSpace(out.StderrText())
	if msg == "" {
		msg = fallback
	}
	r := Result{Success: false, Message: msg, Logs: logs}
	return r, &Error{Kind: ToolError, Message: msg, Logs: logs}
}

// logTail returns up to n trimmed, non-empty lines of the standard output
// followed by the standard error, the oldest lines are discarded first.
func logTail(out process.Output, n int) []string {
	t := tail{max: n}
	t.scan(out.StdoutText())
	t.scan(out.StderrText())
	return t.lines()
}

// tail is a fixed size ring of lines.
type tail struct {
	max  int
	buf  []string
	next int
}

func (t *tail) push(s string) {
	if t.max <= 0 {
		return
	}
	if len(t.buf) < t.max {
		t.buf = append(t.buf, s)
		return
	}
	t.buf[t.next] = s
	t.next = (t.next + 1) % t.max
}

func (t *tail) scan(text string) {
	sc := bufio.NewScanner(strings.NewReader(text))
	sc.Buffer(make([]byte, 0, 64*1024), len(text)+1)
	for sc.Scan() {
		if s := strings.TrimSpace(sc.Text()); s != "" {
			t.push(s)
		}
	}
}

// lines returns the ring contents from the oldest to the newest.
func (t *tail) lines() []string {
	s := make([]string, 0, len(t.buf))
	s = append(s, t.buf[t.next:]...)
	return append(s, t.buf[:t.next]...)
}
