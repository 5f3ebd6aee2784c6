package tdif

import (
	"io"
	"strings"

	"go.uber.org/zap"
)

// phase is the writer's lifecycle state.
type phase interface{ isPhase() }

// awaitingHeader accepts comments and a single header.
type awaitingHeader struct{}

// writingRecords accepts comments and records of exactly columns fields.
type writingRecords struct{ columns int }

// closed rejects every write.
type closed struct{}

func (awaitingHeader) isPhase() {}
func (writingRecords) isPhase() {}
func (closed) isPhase() {}

// Writer emits a TDIF stream: one quoted header, records of the header's width
// and free-standing comment lines. It is not safe for concurrent use.
type Writer struct {
	dst io.Writer

	// LineTerminator ends every line. Default is the platform separator.
	// Values other than "\n" and "\r\n" fall back to the default.
	LineTerminator string
	// Logger receives header, comment and sink failure events. Default is a no-op logger.
	Logger *zap.Logger

	phase phase
	line  []byte
}

// NewWriter creates a Writer that owns w. Closing the Writer closes w if it
// implements io.Closer.
func NewWriter(w io.Writer) (*Writer, error) {
	if w == nil {
		return nil, nullValue("writer must not be null")
	}
	return &Writer{
		dst:            w,
		LineTerminator: platformLineTerminator,
		Logger:         zap.NewNop(),
		phase:          awaitingHeader{},
		line:           make([]byte, 0, 256),
	}, nil
}

// WriteHeader writes the column names and fixes the record width for the rest
// of the writer's lifetime. Names must be non-empty and unique ignoring case.
func (w *Writer) WriteHeader(fields ...string) (*Writer, error) {
	if err := w.check(); err != nil {
		return w, err
	}
	if len(fields) == 0 {
		return w, invalidArgument("Header must not be empty")
	}
	switch w.phase.(type) {
	case closed:
		return w, errWriterClosed()
	case writingRecords:
		return w, invalidState("Header already written")
	}
	if err := validateHeader(fields); err != nil {
		return w, err
	}

	w.line = appendHeader(w.line[:0], fields, w.eol())
	if err := w.writeLine("write header"); err != nil {
		return w, err
	}
	w.phase = writingRecords{columns: len(fields)}
	w.logger().Debug("header written", zap.Int("columns", len(fields)))
	return w, nil
}

// validateHeader checks each name in order: empty names first, then a
// case-insensitive duplicate among the names that follow it.
func validateHeader(fields []string) error {
	for i := range fields {
		if fields[i] == "" {
			return invalidArgument("Header must not contain empty string")
		}
		for j := i + 1; j < len(fields); j++ {
			if strings.EqualFold(fields[i], fields[j]) {
				return invalidArgument("Duplicate header: %s", fields[i])
			}
		}
	}
	return nil
}

// WriteRecord resolves each field with ValueOf and writes them as one record.
func (w *Writer) WriteRecord(fields ...any) (*Writer, error) {
	if err := w.check(); err != nil {
		return w, err
	}
	if len(fields) == 0 {
		return w, invalidArgument("Fields must not be empty")
	}
	return w.WriteValues(Values(fields...)...)
}

// WriteValues writes one record. The number of fields must equal the header width.
func (w *Writer) WriteValues(fields ...Value) (*Writer, error) {
	if err := w.check(); err != nil {
		return w, err
	}
	if len(fields) == 0 {
		return w, invalidArgument("Fields must not be empty")
	}
	var columns int
	switch p := w.phase.(type) {
	case closed:
		return w, errWriterClosed()
	case writingRecords:
		columns = p.columns
	default:
		return w, invalidState("Header not written")
	}
	if len(fields) != columns {
		return w, invalidArgument("Expected %d fields, got %d", columns, len(fields))
	}

	w.line = appendRecord(w.line[:0], fields, w.eol())
	return w, w.writeLine("write record")
}

// WriteAll writes multiple records, stopping at the first error.
func (w *Writer) WriteAll(records [][]any) error {
	for _, record := range records {
		if _, err := w.WriteRecord(record...); err != nil {
			return err
		}
	}
	return nil
}

// WriteComment writes a #-prefixed line. Comments may appear anywhere and do
// not count as records.
func (w *Writer) WriteComment(text string) (*Writer, error) {
	if err := w.check(); err != nil {
		return w, err
	}
	if strings.ContainsAny(text, "\r\n") {
		return w, invalidArgument("comment must not contain line breaks")
	}
	if _, ok := w.phase.(closed); ok {
		return w, errWriterClosed()
	}

	w.line = appendComment(w.line[:0], text, w.eol())
	if err := w.writeLine("write comment"); err != nil {
		return w, err
	}
	w.logger().Debug("comment written", zap.Int("length", len(text)))
	return w, nil
}

// Columns returns the header width, or 0 while no header has been written.
func (w *Writer) Columns() int {
	if w == nil {
		return 0
	}
	if p, ok := w.phase.(writingRecords); ok {
		return p.columns
	}
	return 0
}

// Flush forwards to the sink when it exposes a Flush method.
func (w *Writer) Flush() error {
	if err := w.check(); err != nil {
		return err
	}
	f, ok := w.dst.(interface{ Flush() error })
	if !ok {
		return nil
	}
	if err := f.Flush(); err != nil {
		return ioFailure("flush", err)
	}
	return nil
}

// Close moves the writer to its terminal state and closes the sink. Repeated
// calls are forwarded to the sink, which defines their outcome.
func (w *Writer) Close() error {
	if err := w.check(); err != nil {
		return err
	}
	w.phase = closed{}
	c, ok := w.dst.(io.Closer)
	if !ok {
		return nil
	}
	if err := c.Close(); err != nil {
		w.logger().Warn("sink close failed", zap.Error(err))
		return ioFailure("close", err)
	}
	return nil
}

func (w *Writer) check() error {
	if w == nil || w.dst == nil {
		return nullValue("writer must not be null")
	}
	if w.phase == nil {
		w.phase = awaitingHeader{}
	}
	return nil
}

// writeLine hands the assembled line to the sink in a single call.
func (w *Writer) writeLine(op string) error {
	n, err := w.dst.Write(w.line)
	if err == nil && n < len(w.line) {
		err = io.ErrShortWrite
	}
	if err != nil {
		w.logger().Warn("sink write failed", zap.String("op", op), zap.Error(err))
		return ioFailure(op, err)
	}
	return nil
}

func (w *Writer) eol() string {
	switch w.LineTerminator {
	case "\n", "\r\n":
		return w.LineTerminator
	}
	return platformLineTerminator
}

func (w *Writer) logger() *zap.Logger {
	if w.Logger == nil {
		return zap.NewNop()
	}
	return w.Logger
}

func errWriterClosed() error {
	return invalidState("Writer closed")
}
