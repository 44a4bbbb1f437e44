package sevenzip

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound     = errors.New("path does not exist")
	ErrInvalidInput = errors.New("invalid input")
	ErrLaunch       = errors.New("archiver could not be launched")
	ErrTool         = errors.New("archiver program error")
)

// Kind is the category of an Error.
type Kind int

const (
	NotFound     Kind = iota // NotFound is a missing archive or source path.
	InvalidInput             // InvalidInput is an empty or malformed payload.
	LaunchError              // LaunchError is an archiver program that could not start.
	ToolError                // ToolError is an archiver program that exited with an error.
)

func (k Kind) String() string {
	switch k {
	case NotFound:
		return "NotFound"
	case InvalidInput:
		return "InvalidInput"
	case LaunchError:
		return "LaunchError"
	case ToolError:
		return "ToolError"
	}
	return "Unknown"
}

// sentinel returns the matching sentinel error of the kind.
func (k Kind) sentinel() error {
	switch k {
	case NotFound:
		return ErrNotFound
	case InvalidInput:
		return ErrInvalidInput
	case LaunchError:
		return ErrLaunch
	case ToolError:
		return ErrTool
	}
	return nil
}

// Error is returned by the Engine operations.
// Use errors.Is with the Err sentinels to check the Kind.
type Error struct {
	Kind    Kind     // Kind is the category of the error.
	Op      string   // Op is the operation name, such as "list" or "extract".
	Path    string   // Path is the archive or file path, if any.
	Message string   // Message is the human-readable description.
	Logs    []string // Logs are the last lines of the archiver output, if any.
	Err     error    // Err is the underlying cause, if any.
}

func (e *Error) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s %s: %s: %s", e.Op, e.Kind, e.Path, e.Message)
	}
	return fmt.Sprintf("%s %s: %s", e.Op, e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	errs := []error{}
	if s := e.Kind.sentinel(); s != nil {
		errs = append(errs, s)
	}
	if e.Err != nil {
		errs = append(errs, e.Err)
	}
	return errs
}

func notFound(op, path string, err error) *Error {
	return &Error{Kind: NotFound, Op: op, Path: path, Message: ErrNotFound.Error(), Err: err}
}

func invalid(op, msg string) *Error {
	return &Error{Kind: InvalidInput, Op: op, Message: msg}
}
