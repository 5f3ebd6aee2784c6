package tdif

import (
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/pierrec/lz4"
	"github.com/ulikunitz/xz"
)

// Compression selects the encoding layer between a Writer and its file.
type Compression int

const (
	// None writes the stream unencoded.
	None Compression = iota
	// Gzip selects compress/gzip (.gz).
	Gzip
	// Bzip2 selects dsnet/compress bzip2 (.bz2).
	Bzip2
	// Brotli selects andybalholm/brotli (.br).
	Brotli
	// LZ4 selects the pierrec/lz4 frame format (.lz4).
	LZ4
	// XZ selects ulikunitz/xz (.xz).
	XZ
)

// CompressionNames maps the accepted names and aliases to their Compression.
var CompressionNames = map[string]Compression{
	"none":   None,
	"gzip":   Gzip,
	"gz":     Gzip,
	"bzip2":  Bzip2,
	"bz2":    Bzip2,
	"br":     Brotli,
	"brotli": Brotli,
	"lz4":    LZ4,
	"xz":     XZ,
}

var compressionExts = map[string]Compression{
	".gz":  Gzip,
	".bz2": Bzip2,
	".br":  Brotli,
	".lz4": LZ4,
	".xz":  XZ,
}

// String returns the canonical name accepted by ParseCompression.
func (c Compression) String() string {
	switch c {
	case None:
		return "none"
	case Gzip:
		return "gzip"
	case Bzip2:
		return "bzip2"
	case Brotli:
		return "brotli"
	case LZ4:
		return "lz4"
	case XZ:
		return "xz"
	default:
		return fmt.Sprintf("Compression(%d)", int(c))
	}
}

func (c Compression) valid() bool {
	return c >= None && c <= XZ
}

// ParseCompression looks up a compression by name, ignoring case.
func ParseCompression(name string) (Compression, error) {
	c, ok := CompressionNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return None, invalidArgument("unknown compression type %s", name)
	}
	return c, nil
}

// CompressionFromPath infers the compression from the file extension.
// Unknown extensions mean None.
func CompressionFromPath(path string) Compression {
	return compressionExts[strings.ToLower(filepath.Ext(path))]
}

// newCompressWriter wraps w with the encoder for c.
func newCompressWriter(c Compression, w io.Writer) (io.WriteCloser, error) {
	switch c {
	case None:
		return nopWriteCloser{w}, nil
	case Gzip:
		return gzip.NewWriter(w), nil
	case Bzip2:
		return bzip2.NewWriter(w, nil)
	case Brotli:
		return brotli.NewWriter(w), nil
	case LZ4:
		return lz4.NewWriter(w), nil
	case XZ:
		return xz.NewWriter(w)
	default:
		return nil, invalidArgument("unknown compression type %d", int(c))
	}
}

// nopWriteCloser passes writes through and leaves closing to the next layer.
type nopWriteCloser struct {
	io.Writer
}

func (nopWriteCloser) Close() error { return nil }
