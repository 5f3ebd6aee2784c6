package tdif

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/andybalholm/brotli"
	"github.com/dsnet/compress/bzip2"
	"github.com/pierrec/lz4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ulikunitz/xz"
)

func decompressReader(t *testing.T, c Compression, r io.Reader) io.Reader {
	t.Helper()
	switch c {
	case Gzip:
		zr, err := gzip.NewReader(r)
		require.NoError(t, err)
		return zr
	case Bzip2:
		zr, err := bzip2.NewReader(r, nil)
		require.NoError(t, err)
		return zr
	case Brotli:
		return brotli.NewReader(r)
	case LZ4:
		return lz4.NewReader(r)
	case XZ:
		zr, err := xz.NewReader(r)
		require.NoError(t, err)
		return zr
	}
	return r
}

func TestCreateCompressionRoundTrip(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want Compression
	}{
		{file: "foo.tdif", want: None},
		{file: "foo.tdif.gz", want: Gzip},
		{file: "foo.tdif.bz2", want: Bzip2},
		{file: "foo.tdif.br", want: Brotli},
		{file: "foo.tdif.lz4", want: LZ4},
		{file: "foo.tdif.XZ", want: XZ},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.file, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tc.want, CompressionFromPath(tc.file))

			path := filepath.Join(t.TempDir(), tc.file)
			w, err := Create(path)
			require.NoError(t, err)
			w.LineTerminator = "\n"

			_, err = w.WriteComment("1st comment")
			require.NoError(t, err)
			_, err = w.WriteHeader("h1")
			require.NoError(t, err)
			_, err = w.WriteComment("2nd comment")
			require.NoError(t, err)
			_, err = w.WriteRecord("foo")
			require.NoError(t, err)
			_, err = w.WriteComment("3rd comment")
			require.NoError(t, err)
			require.NoError(t, w.Close())

			f, err := os.Open(path)
			require.NoError(t, err)
			defer f.Close()
			got, err := io.ReadAll(decompressReader(t, tc.want, f))
			require.NoError(t, err)
			assert.Equal(t, "#1st comment\n\"h1\"\n#2nd comment\n\"foo\"\n#3rd comment\n", string(got))
		})
	}
}

func TestCreateFlushReachesFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "flush.tdif")
	w, err := Create(path)
	require.NoError(t, err)
	defer w.Close()
	w.LineTerminator = "\n"

	_, err = w.WriteHeader("a")
	require.NoError(t, err)
	require.NoError(t, w.Flush())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"a\"\n", string(got))
}

func TestCreateTruncatesExistingFile(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "existing.tdif")
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer\n"), 0o644))

	w, err := Create(path)
	require.NoError(t, err)
	w.LineTerminator = "\n"
	_, err = w.WriteHeader("x")
	require.NoError(t, err)
	require.NoError(t, w.Close())

	got, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "\"x\"\n", string(got))
}

func TestCreateErrors(t *testing.T) {
	t.Parallel()

	_, err := Create("")
	requireTDIFError(t, err, KindNullValue, "file must not be null")

	_, err = Create(filepath.Join(t.TempDir(), "missing", "dir", "out.tdif"))
	assert.ErrorIs(t, err, ErrIO)
	assert.ErrorIs(t, err, os.ErrNotExist)

	existing := filepath.Join(t.TempDir(), "out.tdif")
	require.NoError(t, os.WriteFile(existing, []byte("precious data\n"), 0o644))
	_, err = CreateCompressed(existing, Compression(99))
	requireTDIFError(t, err, KindInvalidArgument, "unknown compression type 99")
	got, err := os.ReadFile(existing)
	require.NoError(t, err)
	assert.Equal(t, "precious data\n", string(got), "a rejected compression must not truncate the file")

	_, err = OpenSink(filepath.Join(t.TempDir(), "never.tdif"), Compression(-1))
	requireTDIFError(t, err, KindInvalidArgument, "unknown compression type -1")
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]Compression{
		"gzip":   Gzip,
		"GZ":     Gzip,
		"bz2":    Bzip2,
		"bzip2":  Bzip2,
		"br":     Brotli,
		"brotli": Brotli,
		"lz4":    LZ4,
		"xz":     XZ,
		" none ": None,
	} {
		got, err := ParseCompression(name)
		require.NoError(t, err, name)
		assert.Equal(t, want, got, name)
	}

	_, err := ParseCompression("zip")
	requireTDIFError(t, err, KindInvalidArgument, "unknown compression type zip")
	assert.Equal(t, "brotli", Brotli.String())
}
