// Package loader reads ledger files from disk and parses them.
//
// The loader is a thin layer over ledger.Parse: it reads the file, checks it
// is valid UTF-8 and within the configured size limit, parses it and attaches
// the filename to any syntax or structural error so diagnostics can name the
// file. LoadAll parses several files concurrently.
//
// Example usage:
//
//	ldr := loader.New(loader.WithMaxSize(1 << 20))
//	result, err := ldr.Load(ctx, "main.ledger")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Ledger.Len())
package loader

import (
	"context"
	stdErrors "errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"unicode/utf8"

	"golang.org/x/sync/errgroup"

	"github.com/robinvdvleuten/ptaledger/builder"
	"github.com/robinvdvleuten/ptaledger/ledger"
	"github.com/robinvdvleuten/ptaledger/parser"
	"github.com/robinvdvleuten/ptaledger/telemetry"
)

// DefaultMaxSize is the largest file Load accepts unless WithMaxSize is used.
const DefaultMaxSize = 64 << 20

// ErrTooLarge is returned when a file exceeds the configured size limit.
var ErrTooLarge = stdErrors.New("file too large")

// ErrInvalidUTF8 is returned when a file is not valid UTF-8.
var ErrInvalidUTF8 = stdErrors.New("invalid UTF-8")

// Loader reads and parses ledger files.
//
// Configure the loader using functional options passed to New:
//
//	loader := New(WithMaxSize(1 << 20))
type Loader struct {
	// MaxSize bounds the number of bytes read from a single file. Zero or
	// less disables the check.
	MaxSize int64

	logger *slog.Logger
}

// Option configures how files are loaded.
type Option func(*Loader)

// WithMaxSize sets the largest accepted file size in bytes.
func WithMaxSize(n int64) Option {
	return func(l *Loader) {
		l.MaxSize = n
	}
}

// WithLogger sets the logger passed on to the parser.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New creates a new Loader with the given options.
func New(opts ...Option) *Loader {
	l := &Loader{
		MaxSize: DefaultMaxSize,
		logger:  slog.New(slog.DiscardHandler),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Result is a successfully loaded file.
type Result struct {
	Filename string
	Source   []byte
	Ledger   *ledger.ParsedLedger
}

// Load reads and parses filename.
func (l *Loader) Load(ctx context.Context, filename string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if l.MaxSize > 0 {
		info, err := os.Stat(filename)
		if err != nil {
			return nil, fmt.Errorf("failed to stat %s: %w", filename, err)
		}
		if info.Size() > l.MaxSize {
			return nil, fmt.Errorf("%s: %w (%d > %d bytes)", filename, ErrTooLarge, info.Size(), l.MaxSize)
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	return l.LoadBytes(ctx, filename, data)
}

// LoadBytes parses data as if it had been read from filename.
func (l *Loader) LoadBytes(ctx context.Context, filename string, data []byte) (*Result, error) {
	if l.MaxSize > 0 && int64(len(data)) > l.MaxSize {
		return nil, fmt.Errorf("%s: %w (%d > %d bytes)", filename, ErrTooLarge, len(data), l.MaxSize)
	}
	if !utf8.Valid(data) {
		return nil, fmt.Errorf("%s: %w", filename, ErrInvalidUTF8)
	}

	ctx, timer := telemetry.StartTimer(ctx, "load "+filepath.Base(filename))
	defer timer.End()

	l.logger.Debug("loading file", "file", filename, "bytes", len(data))

	parsed, err := ledger.Parse(ctx, string(data), ledger.WithLogger(l.logger))
	if err != nil {
		return nil, withFilename(err, filename)
	}

	return &Result{
		Filename: filename,
		Source:   data,
		Ledger:   parsed,
	}, nil
}

// LoadAll loads every file concurrently. Results are returned in the order
// of filenames. The first error cancels the remaining loads.
func (l *Loader) LoadAll(ctx context.Context, filenames ...string) ([]*Result, error) {
	results := make([]*Result, len(filenames))

	g, ctx := errgroup.WithContext(ctx)
	for i, filename := range filenames {
		g.Go(func() error {
			result, err := l.Load(ctx, filename)
			if err != nil {
				return err
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// withFilename returns a copy of a parse error carrying filename. Other
// errors are returned unchanged.
func withFilename(err error, filename string) error {
	var syntaxErr *parser.SyntaxError
	if stdErrors.As(err, &syntaxErr) {
		e := *syntaxErr
		e.Filename = filename
		return &e
	}

	var structuralErr *builder.StructuralError
	if stdErrors.As(err, &structuralErr) {
		e := *structuralErr
		e.Filename = filename
		return &e
	}

	return err
}
