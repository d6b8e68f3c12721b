// Package rowlog implements the row writer: a stateful component that
// serializes records of a fixed shape as comma-separated lines, with a
// header/append state machine deciding when a header line is due.
package rowlog

import (
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/rowlog/rowlog/pkg/codec"
	"github.com/rowlog/rowlog/pkg/logger"
	"github.com/rowlog/rowlog/pkg/schema"
)

// DefaultFloatPrecision is the digit count used for float fields when the
// caller has no preference.
const DefaultFloatPrecision = 2

// Config holds the writer configuration. It is supplied once at
// construction and never changes afterwards.
type Config struct {
	// Header controls when a header line precedes data lines
	Header HeaderPolicy

	// Destination selects the file sink, the console sink, or both
	Destination Destination

	// FilePath is the target of the file sink. Required whenever
	// Destination includes the file sink.
	FilePath string

	// FloatPrecision is the exact number of digits after the decimal
	// point for float fields. Zero is a valid setting and yields no
	// decimal point; see DefaultFloatPrecision for the usual choice.
	FloatPrecision int
}

// Validate checks the configuration invariants
func (c Config) Validate() error {
	if c.Destination.includesFile() && c.FilePath == "" {
		return fmt.Errorf("file path is required for destination %q", c.Destination)
	}
	if c.FloatPrecision < 0 {
		return fmt.Errorf("float precision cannot be negative: %d", c.FloatPrecision)
	}
	return nil
}

// Writer appends records of one fixed shape to its configured sinks.
//
// A Writer is single-owner: calls must be sequential, and at most one
// Writer may target a given file path. Two writers on the same path race
// the existence probe against the append and can both decide a header is
// due. Each call performs a full open/append/close cycle on the file
// sink, so no file handle is held between calls.
type Writer struct {
	shape         schema.Shape
	cfg           Config
	console       io.Writer
	headerEmitted bool
	sessionID     string
	log           *logger.SessionLogger
}

// New builds a Writer for the given shape and configuration. The shape is
// validated here: a shape with an unsupported field kind can never back a
// Writer, so kind errors surface at construction rather than per row.
// No I/O happens until the first AddRow call.
func New(shape schema.Shape, cfg Config, log *logger.Logger) (*Writer, error) {
	if err := shape.Validate(); err != nil {
		return nil, fmt.Errorf("invalid shape: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if log == nil {
		log = logger.Discard()
	}

	sessionID := uuid.New().String()
	return &Writer{
		shape:     shape,
		cfg:       cfg,
		console:   os.Stdout,
		sessionID: sessionID,
		log:       log.WithSession(sessionID).WithComponent("row_writer"),
	}, nil
}

// SessionID returns the identifier of this writer session
func (w *Writer) SessionID() string {
	return w.sessionID
}

// SetConsole redirects the console sink. The default is os.Stdout.
func (w *Writer) SetConsole(out io.Writer) {
	w.console = out
}

// AddRow serializes one record and dispatches it to the configured sinks.
//
// Each call stands alone: the file sink's existence is probed fresh (a
// file removed between calls is treated as absent again), the header
// decision is made per sink, and the file is opened in append mode and
// closed before the call returns.
//
// The header decision is deliberately asymmetric. The file sink emits a
// header only when the file did not exist before this call, so a header
// appears once per file lifetime even across writer sessions. The console
// sink has nothing persistent to probe and uses the session flag instead.
// HeaderAlways and HeaderNever override both.
//
// With DestBoth the file sink is written first; the console sink is still
// attempted when the file sink fails, and the first error encountered is
// returned.
func (w *Writer) AddRow(rec codec.Record) error {
	fileExisted := false
	if w.cfg.Destination.includesFile() {
		var err error
		fileExisted, err = fileExists(w.cfg.FilePath)
		if err != nil {
			return err
		}
	}

	fileHeader := w.cfg.Header.headerDue(fileExisted)
	consoleHeader := w.cfg.Header.headerDue(w.headerEmitted)

	line, err := codec.DataLine(w.shape, rec, w.cfg.FloatPrecision)
	if err != nil {
		return fmt.Errorf("cannot encode record: %w", err)
	}

	// Marks "a row has been submitted this session", not "a header was
	// printed"; set before dispatch, even on a later sink failure.
	w.headerEmitted = true

	var firstErr error
	if w.cfg.Destination.includesFile() {
		if err := w.appendFile(fileHeader, line); err != nil {
			firstErr = err
		} else if fileHeader {
			w.log.LogHeaderEmitted("Header written to file", logger.Fields{"path": w.cfg.FilePath})
		}
	}
	if w.cfg.Destination.includesConsole() {
		if err := w.writeConsole(consoleHeader, line); err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		w.log.LogRowFailed("Row dispatch failed", firstErr, logger.Fields{
			"destination": w.cfg.Destination.String(),
		})
		return firstErr
	}

	w.log.LogRowAppended("Row appended", logger.Fields{
		"destination": w.cfg.Destination.String(),
		"columns":     len(w.shape),
	})
	return nil
}

// headerDue decides whether a header precedes this emission, given
// whether the sink already carries one (file: existed before the call,
// console: a row was already submitted this session).
func (p HeaderPolicy) headerDue(alreadyThere bool) bool {
	switch p {
	case HeaderAlways:
		return true
	case HeaderNever:
		return false
	default:
		return !alreadyThere
	}
}

// appendFile performs one open/append/close cycle on the file sink
func (w *Writer) appendFile(header bool, line string) error {
	f, err := os.OpenFile(w.cfg.FilePath, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", w.cfg.FilePath, err)
	}

	werr := writeLines(f, header, w.headerLine(), line)
	cerr := f.Close()
	if werr != nil {
		return fmt.Errorf("failed to write to %s: %w", w.cfg.FilePath, werr)
	}
	if cerr != nil {
		return fmt.Errorf("failed to close %s: %w", w.cfg.FilePath, cerr)
	}
	return nil
}

// writeConsole writes to the live console stream; the stream stays open
// for the life of the process.
func (w *Writer) writeConsole(header bool, line string) error {
	if err := writeLines(w.console, header, w.headerLine(), line); err != nil {
		return fmt.Errorf("failed to write to console: %w", err)
	}
	return nil
}

func (w *Writer) headerLine() string {
	return codec.HeaderLine(w.shape)
}

func writeLines(out io.Writer, header bool, headerLine, dataLine string) error {
	if header {
		if _, err := io.WriteString(out, headerLine); err != nil {
			return err
		}
	}
	_, err := io.WriteString(out, dataLine)
	return err
}

// fileExists probes the path. A stat failure other than non-existence is
// surfaced, not treated as absence.
func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to probe %s: %w", path, err)
}
