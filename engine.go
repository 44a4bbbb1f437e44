package sevenzip

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/Defacto2/sevenzip/command"
	"github.com/Defacto2/sevenzip/listing"
	"github.com/Defacto2/sevenzip/process"
	"github.com/sirupsen/logrus"
)

// DirMode is the file mode used for created destination directories.
const DirMode fs.FileMode = 0o755

// Config is the immutable configuration of an Engine.
type Config struct {
	Program       string // Program is the name or path of the 7-Zip console program.
	DefaultFormat Format // DefaultFormat is used when the archive extension is not recognized.
	TempDir       string // TempDir is the parent of the preview directories, empty uses the system default.
}

// Option configures an Engine.
type Option func(*Engine)

// WithTransport replaces the process transport used to run the archiver.
func WithTransport(t process.Transport) Option {
	return func(e *Engine) {
		e.run = t
	}
}

// WithLogger sets the logger for the debug output of the archiver commands.
func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// Engine runs the archive operations using an external 7-Zip console program.
// Each operation runs exactly one archiver process and waits for it to exit.
// An Engine holds no state between calls and is safe for concurrent use,
// though concurrent writes to the same archive are left to the archiver to resolve.
//
//	func ListArchive() {
//	    e := sevenzip.New(sevenzip.Config{Program: "7zz"})
//	    l, err := e.List(context.Background(), "archive.7z")
//	    if err != nil {
//	        fmt.Fprintf(os.Stderr, "error: %v\n", err)
//	        return
//	    }
//	    for _, entry := range l.Entries {
//	        fmt.Println(entry.Path, entry.Size)
//	    }
//	}
type Engine struct {
	cfg Config
	run process.Transport
	log logrus.FieldLogger
}

// New returns an Engine using the configuration.
// An empty Program uses the official 7zz console program.
func New(cfg Config, opts ...Option) *Engine {
	if cfg.Program == "" {
		cfg.Program = command.Zip7
	}
	if !cfg.DefaultFormat.Valid() {
		cfg.DefaultFormat = command.SevenZip
	}
	quiet := logrus.New()
	quiet.SetOutput(io.Discard)
	e := &Engine{
		cfg: cfg,
		run: process.Exec{Program: cfg.Program},
		log: quiet,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the configuration of the engine.
func (e *Engine) Config() Config {
	return e.cfg
}

// exec runs the archiver with the arguments.
func (e *Engine) exec(ctx context.Context, op string, args []string) (process.Output, error) {
	l := e.log.WithField("op", op)
	l.WithField("args", args).Debug("run archiver")
	out, err := e.run.Run(ctx, args...)
	if err != nil {
		l.WithError(err).Debug("archiver failed to run")
		if errors.Is(err, process.ErrLaunch) {
			return out, &Error{Kind: LaunchError, Op: op, Message: err.Error(), Err: err}
		}
		return out, fmt.Errorf("%s %w", op, err)
	}
	l.WithField("exit", out.ExitCode).Debug("archiver finished")
	return out, nil
}

// finish normalizes the output of the archiver and sets the operation and path of any error.
func finish(op, path string, out process.Output, fallback string) (Result, error) {
	r, err := normalize(out, fallback)
	var e *Error
	if errors.As(err, &e) {
		e.Op, e.Path = op, path
	}
	return r, err
}

// existing returns the absolute path of the named regular file.
func existing(op, name string) (string, error) {
	abs, err := filepath.Abs(name)
	if err != nil {
		return "", &Error{Kind: InvalidInput, Op: op, Path: name, Message: err.Error(), Err: err}
	}
	st, err := os.Stat(abs)
	if err != nil {
		return "", notFound(op, abs, err)
	}
	if st.IsDir() {
		return "", &Error{Kind: NotFound, Op: op, Path: abs, Message: "path is a directory"}
	}
	return abs, nil
}

// local returns an error when an archive entry, once normalized,
// would resolve outside of the destination directory.
func local(op string, entries ...string) error {
	for _, entry := range entries {
		if !filepath.IsLocal(filepath.FromSlash(command.Normalize(entry))) {
			return &Error{Kind: InvalidInput, Op: op, Path: entry, Message: "entry is outside of the destination: " + entry}
		}
	}
	return nil
}

// absAll returns the absolute paths of the names.
func absAll(names []string) ([]string, error) {
	s := make([]string, 0, len(names))
	for _, name := range names {
		abs, err := filepath.Abs(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", err, name)
		}
		s = append(s, abs)
	}
	return s, nil
}

// List returns the entries and totals of the archive.
func (e *Engine) List(ctx context.Context, archive string) (Listing, error) {
	const op = "list"
	src, err := existing(op, archive)
	if err != nil {
		return Listing{}, err
	}
	out, err := e.exec(ctx, op, command.List(src))
	if err != nil {
		return Listing{}, err
	}
	if _, err := finish(op, src, out, "Unable to list archive"); err != nil {
		return Listing{}, err
	}
	entries := listing.Parse(out.StdoutText(), src)
	format := statsFormat(src, e.cfg.DefaultFormat)
	return Listing{
		Stats:   listing.Summarize(src, format.String(), entries...),
		Entries: entries,
	}, nil
}

// Add creates or appends the files to the archive.
func (e *Engine) Add(ctx context.Context, p AddPayload) (Result, error) {
	const op = "add"
	if len(p.Files) == 0 {
		return Result{}, invalid(op, "no files to add")
	}
	dst, err := filepath.Abs(p.ArchivePath)
	if err != nil {
		return Result{}, &Error{Kind: InvalidInput, Op: op, Path: p.ArchivePath, Message: err.Error(), Err: err}
	}
	files, err := absAll(p.Files)
	if err != nil {
		return Result{}, &Error{Kind: InvalidInput, Op: op, Message: err.Error(), Err: err}
	}
	for _, name := range files {
		if _, err := os.Stat(name); err != nil {
			return Result{}, notFound(op, name, err)
		}
	}
	format := command.Resolve(dst, p.Format, e.cfg.DefaultFormat)
	out, err := e.exec(ctx, op, command.Add(dst, format, p.Level, p.StripMetadata, files...))
	if err != nil {
		return Result{}, err
	}
	r, err := finish(op, dst, out, "Unable to add files to archive")
	if err != nil {
		return r, err
	}
	r.Message = fmt.Sprintf("Added %d item(s) to %s", len(files), dst)
	return r, nil
}

// Extract extracts the entries of the archive into the destination directory,
// which is created if it does not exist. If no entries are given then
// the entire archive is extracted.
func (e *Engine) Extract(ctx context.Context, p ExtractPayload) (Result, error) {
	const op = "extract"
	src, err := existing(op, p.ArchivePath)
	if err != nil {
		return Result{}, err
	}
	if p.Destination == "" {
		return Result{}, invalid(op, "destination is empty")
	}
	if err := local(op, p.Entries...); err != nil {
		return Result{}, err
	}
	dst, err := filepath.Abs(p.Destination)
	if err != nil {
		return Result{}, &Error{Kind: InvalidInput, Op: op, Path: p.Destination, Message: err.Error(), Err: err}
	}
	if err := os.MkdirAll(dst, DirMode); err != nil {
		return Result{}, fmt.Errorf("%s destination %w", op, err)
	}
	out, err := e.exec(ctx, op, command.Extract(src, dst, p.Overwrite, p.Entries...))
	if err != nil {
		return Result{}, err
	}
	r, err := finish(op, src, out, "Unable to extract archive")
	if err != nil {
		return r, err
	}
	// the message names the destination as given, the archiver is passed the absolute dst
	if len(p.Entries) > 0 {
		r.Message = fmt.Sprintf("Extracted %d item(s) to %s", len(p.Entries), p.Destination)
		return r, nil
	}
	r.Message = "Extracted entire archive to " + p.Destination
	return r, nil
}

// Delete removes the entries from the archive.
func (e *Engine) Delete(ctx context.Context, p DeletePayload) (Result, error) {
	const op = "delete"
	if len(p.Entries) == 0 {
		return Result{}, invalid(op, "no entries to delete")
	}
	src, err := existing(op, p.ArchivePath)
	if err != nil {
		return Result{}, err
	}
	out, err := e.exec(ctx, op, command.Delete(src, p.Entries...))
	if err != nil {
		return Result{}, err
	}
	r, err := finish(op, src, out, "Unable to delete from archive")
	if err != nil {
		return r, err
	}
	r.Message = fmt.Sprintf("Deleted %d item(s) from %s", len(p.Entries), src)
	return r, nil
}

// Messages of the Test operation.
const (
	TestPassed = "Archive passed integrity test"
	TestFailed = "Archive failed integrity test"
)

// Test checks the integrity of the archive.
// A damaged archive is not an error, instead the Result is not successful
// and the archiver output is kept in the logs.
func (e *Engine) Test(ctx context.Context, archive string) (Result, error) {
	const op = "test"
	src, err := existing(op, archive)
	if err != nil {
		return Result{}, err
	}
	out, err := e.exec(ctx, op, command.Test(src))
	if err != nil {
		return Result{}, err
	}
	r, _ := normalize(out, TestFailed)
	if r.Success {
		r.Message = TestPassed
		return r, nil
	}
	r.Message = TestFailed
	return r, nil
}

// Preview extracts the single entry of the archive into a new temporary
// directory and returns the path of the extracted file.
// On success the temporary directory is not removed, that is left to the caller.
func (e *Engine) Preview(ctx context.Context, p PreviewPayload) (PreviewResult, error) {
	const op = "preview"
	entry := command.Normalize(p.EntryPath)
	if entry == "" {
		return PreviewResult{}, invalid(op, "no entry to preview")
	}
	if err := local(op, entry); err != nil {
		return PreviewResult{}, err
	}
	src, err := existing(op, p.ArchivePath)
	if err != nil {
		return PreviewResult{}, err
	}
	dst, err := os.MkdirTemp(e.cfg.TempDir, "sevenzip-preview-*")
	if err != nil {
		return PreviewResult{}, fmt.Errorf("%s temp dir %w", op, err)
	}
	out, err := e.exec(ctx, op, command.Preview(src, dst, entry))
	if err != nil {
		defer os.RemoveAll(dst)
		return PreviewResult{}, err
	}
	r, err := finish(op, src, out, "Unable to preview archive entry")
	if err != nil {
		defer os.RemoveAll(dst)
		return PreviewResult{Result: r}, err
	}
	r.Message = "Extracted " + entry + " for preview"
	return PreviewResult{
		Result:        r,
		ExtractedPath: filepath.Join(dst, filepath.FromSlash(entry)),
	}, nil
}
