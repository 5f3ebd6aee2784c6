package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"go.uber.org/zap"

	tdif "github.com/osiegmar/tabular-data-interchange-format"
)

// ConvertCmd converts JSON Lines into a TDIF stream.
type ConvertCmd struct {
	Input       string   `arg:"" optional:"" help:"JSON Lines input file, - for stdin" default:"-"`
	Output      string   `short:"o" help:"output file, stdout if empty" default:""`
	Header      []string `short:"H" help:"comma separated column names; the first input line is the header when empty"`
	Comment     []string `short:"c" sep:"none" help:"comment line written before the header, repeatable"`
	Compression string   `short:"z" help:"output compression, auto infers it from the output extension" enum:"auto,none,gzip,gz,bzip2,bz2,br,brotli,lz4,xz" default:"auto"`
}

// env carries what commands need from main.
type env struct {
	cfg    *Config
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
}

// Run converts Input into Output, closing the output on every path.
func (c *ConvertCmd) Run(e *env) (err error) {
	in := e.stdin
	if c.Input != "-" {
		f, err := os.Open(c.Input)
		if err != nil {
			return err
		}
		defer f.Close()
		in = f
	}

	w, err := c.openWriter(e)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := w.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()
	if lt := e.cfg.LineTerminator(); lt != "" {
		w.LineTerminator = lt
	}
	w.Logger = e.log

	n, err := convert(in, w, c.Header, c.Comment, e.log)
	if err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	e.log.Info("conversion done", zap.Int("records", n), zap.String("output", c.outputName()))
	return nil
}

func (c *ConvertCmd) outputName() string {
	if c.Output == "" {
		return "stdout"
	}
	return c.Output
}

func (c *ConvertCmd) openWriter(e *env) (*tdif.Writer, error) {
	if c.Output == "" {
		return tdif.NewWriter(&stdoutSink{bufio.NewWriter(e.stdout)})
	}
	name := c.Compression
	if name == "auto" && e.cfg.Compression != "" {
		name = e.cfg.Compression
	}
	if name == "auto" {
		return tdif.Create(c.Output)
	}
	ct, err := tdif.ParseCompression(name)
	if err != nil {
		return nil, err
	}
	return tdif.CreateCompressed(c.Output, ct)
}

// stdoutSink flushes on Close without closing the process's stdout.
type stdoutSink struct {
	*bufio.Writer
}

func (s *stdoutSink) Close() error { return s.Flush() }

// convert reads a stream of JSON values and writes one TDIF record per value.
// Without a header, the first value must be an array of column names.
// It returns the number of records written.
func convert(in io.Reader, w *tdif.Writer, header, comments []string, log *zap.Logger) (int, error) {
	for _, c := range comments {
		if _, err := w.WriteComment(c); err != nil {
			return 0, err
		}
	}

	dec := json.NewDecoder(in)
	dec.UseNumber()

	if len(header) > 0 {
		if _, err := w.WriteHeader(header...); err != nil {
			return 0, err
		}
	}

	records := 0
	for line := 1; ; line++ {
		var doc any
		if err := dec.Decode(&doc); err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return records, fmt.Errorf("input value %d: %w", line, err)
		}

		if w.Columns() == 0 {
			names, err := headerNames(doc)
			if err != nil {
				return records, fmt.Errorf("input value %d: %w", line, err)
			}
			if _, err := w.WriteHeader(names...); err != nil {
				return records, err
			}
			header = names
			continue
		}

		fields, err := recordValues(doc, header)
		if err != nil {
			return records, fmt.Errorf("input value %d: %w", line, err)
		}
		if _, err := w.WriteValues(fields...); err != nil {
			return records, fmt.Errorf("input value %d: %w", line, err)
		}
		records++
	}

	if w.Columns() == 0 {
		return records, errors.New("input contains no header")
	}
	log.Debug("input consumed", zap.Int("records", records))
	return records, nil
}

func headerNames(doc any) ([]string, error) {
	arr, ok := doc.([]any)
	if !ok {
		return nil, errors.New("header must be a JSON array of strings")
	}
	names := make([]string, len(arr))
	for i, v := range arr {
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("header column %d is not a string", i+1)
		}
		names[i] = s
	}
	return names, nil
}

// recordValues maps an array positionally and an object by column name;
// columns missing from an object are null.
func recordValues(doc any, header []string) ([]tdif.Value, error) {
	switch t := doc.(type) {
	case []any:
		out := make([]tdif.Value, len(t))
		for i, v := range t {
			fv, err := jsonValue(v)
			if err != nil {
				return nil, err
			}
			out[i] = fv
		}
		return out, nil
	case map[string]any:
		out := make([]tdif.Value, len(header))
		for i, name := range header {
			fv, err := jsonValue(t[name])
			if err != nil {
				return nil, err
			}
			out[i] = fv
		}
		return out, nil
	}
	return nil, errors.New("record must be a JSON array or object")
}

func jsonValue(v any) (tdif.Value, error) {
	switch t := v.(type) {
	case json.Number:
		return tdif.Number(t.String()), nil
	case map[string]any, []any:
		b, err := json.Marshal(t)
		if err != nil {
			return tdif.Null(), err
		}
		return tdif.String(string(b)), nil
	}
	return tdif.ValueOf(v), nil
}
