package tdif

import (
	"bufio"
	"errors"
	"io"
	"os"
)

const defaultBufferSize = 64 << 10

// fileSink layers an optional encoder over a buffered file.
type fileSink struct {
	enc  io.WriteCloser
	buf  *bufio.Writer
	file *os.File
}

// OpenSink creates or truncates the file at path and returns a buffered sink
// that encodes its input with c. Closing the sink flushes every layer and
// closes the file.
func OpenSink(path string, c Compression) (io.WriteCloser, error) {
	if path == "" {
		return nil, nullValue("file must not be null")
	}
	if !c.valid() {
		return nil, invalidArgument("unknown compression type %d", int(c))
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, ioFailure("open file", err)
	}
	buf := bufio.NewWriterSize(f, defaultBufferSize)
	enc, err := newCompressWriter(c, buf)
	if err != nil {
		_ = f.Close()
		if KindOf(err) != 0 {
			return nil, err
		}
		return nil, ioFailure("open "+c.String()+" encoder", err)
	}
	return &fileSink{enc: enc, buf: buf, file: f}, nil
}

func (s *fileSink) Write(p []byte) (int, error) {
	return s.enc.Write(p)
}

// Flush pushes buffered bytes to the file. Encoders without a flush point keep
// their pending block until Close.
func (s *fileSink) Flush() error {
	if f, ok := s.enc.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return err
		}
	}
	return s.buf.Flush()
}

// Close releases every layer, even when an earlier one fails.
func (s *fileSink) Close() error {
	encErr := s.enc.Close()
	flushErr := s.buf.Flush()
	closeErr := s.file.Close()
	return errors.Join(encErr, flushErr, closeErr)
}

// Create opens a Writer on the file at path, compressing according to its
// extension (.gz, .bz2, .br, .lz4, .xz).
func Create(path string) (*Writer, error) {
	return CreateCompressed(path, CompressionFromPath(path))
}

// CreateCompressed opens a Writer on the file at path with an explicit compression.
func CreateCompressed(path string, c Compression) (*Writer, error) {
	sink, err := OpenSink(path, c)
	if err != nil {
		return nil, err
	}
	w, err := NewWriter(sink)
	if err != nil {
		_ = sink.Close()
		return nil, err
	}
	return w, nil
}
