// Package process runs an archiver program as a subprocess and collects
// its complete standard output and standard error.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"

	"golang.org/x/sync/errgroup"
)

var (
	ErrLaunch  = errors.New("program could not be launched")
	ErrProgram = errors.New("program name is empty")
	ErrMissing = errors.New("no archiver program found")
)

// Transport runs the archiver with the arguments and waits for it to exit.
//
// A program that runs and exits with a non-zero status is not an error,
// the status is returned in the Output. An error is only returned when
// the program cannot be started or its streams cannot be read.
type Transport interface {
	Run(ctx context.Context, args ...string) (Output, error)
}

// Output is the exit status and raw output chunks of a finished program.
type Output struct {
	ExitCode int      // ExitCode is the exit status of the program.
	Stdout   [][]byte // Stdout are the standard output chunks in the order received.
	Stderr   [][]byte // Stderr are the standard error chunks in the order received.
}

// StdoutText joins the standard output chunks.
func (o Output) StdoutText() string {
	return string(bytes.Join(o.Stdout, nil))
}

// StderrText joins the standard error chunks.
func (o Output) StderrText() string {
	return string(bytes.Join(o.Stderr, nil))
}

// LaunchError is returned when the program could not be started,
// for example the executable is missing or is not permitted to run.
type LaunchError struct {
	Program string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("%s: %s: %v", ErrLaunch, e.Program, e.Err)
}

func (e *LaunchError) Unwrap() []error {
	return []error{ErrLaunch, e.Err}
}

// Lookup returns the path of the first named program found in the PATH.
func Lookup(names ...string) (string, error) {
	for _, name := range names {
		if prog, err := exec.LookPath(name); err == nil {
			return prog, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrMissing, names)
}

// Exec is the Transport that runs the named Program using os/exec.
//
//	func Version() {
//	    x := process.Exec{Program: "7zz"}
//	    out, err := x.Run(context.Background(), "i")
//	    if err != nil {
//	        fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	        return
//	    }
//	    fmt.Print(out.StdoutText())
//	}
type Exec struct {
	Program string // Program is the name or path of the archiver program.
	Dir     string // Dir is the optional working directory.
}

// chunk is the read buffer size for the output streams.
const chunk = 32 * 1024

// Run starts the program with the arguments and waits for it to exit.
// No timeout is applied, archive operations can legitimately run for minutes,
// so the ctx should be used if the caller needs to cancel the program.
func (x Exec) Run(ctx context.Context, args ...string) (Output, error) {
	if x.Program == "" {
		return Output{}, &LaunchError{Program: x.Program, Err: ErrProgram}
	}
	cmd := exec.CommandContext(ctx, x.Program, args...)
	cmd.Dir = x.Dir
	cmd.Stdin = nil // use the null device so the program cannot wait on a prompt
	hide(cmd)
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return Output{}, fmt.Errorf("process stdout %w", err)
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		return Output{}, fmt.Errorf("process stderr %w", err)
	}
	if err := cmd.Start(); err != nil {
		return Output{}, &LaunchError{Program: x.Program, Err: err}
	}
	var out Output
	var g errgroup.Group
	g.Go(func() error {
		var err error
		out.Stdout, err = drain(stdout)
		return err
	})
	g.Go(func() error {
		var err error
		out.Stderr, err = drain(stderr)
		return err
	})
	readErr := g.Wait()
	waitErr := cmd.Wait()
	if readErr != nil {
		return out, fmt.Errorf("process read %w", readErr)
	}
	if waitErr != nil {
		var exit *exec.ExitError
		if !errors.As(waitErr, &exit) {
			return out, fmt.Errorf("process wait %w", waitErr)
		}
		out.ExitCode = exit.ExitCode()
	}
	return out, nil
}

// drain reads r until EOF and returns the chunks read.
func drain(r io.Reader) ([][]byte, error) {
	var chunks [][]byte
	buf := make([]byte, chunk)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			chunks = append(chunks, bytes.Clone(buf[:n]))
		}
		if errors.Is(err, io.EOF) {
			return chunks, nil
		}
		if err != nil {
			return chunks, err
		}
	}
}
