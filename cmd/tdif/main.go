package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/osiegmar/tabular-data-interchange-format/internal/version"
)

// VersionCmd prints the build version of the binary.
type VersionCmd struct{}

// Run writes the version banner to stdout.
func (VersionCmd) Run(e *env) error {
	_, err := fmt.Fprintln(e.stdout, version.BuildVersion())
	return err
}

// cli is the root of the kong command tree.
type cli struct {
	Config   string `help:"YAML config file with defaults" type:"existingfile"`
	LogLevel string `help:"log level (debug, info, warn, error), overrides the config file"`

	Convert ConvertCmd `cmd:"" aliases:"c" help:"convert JSON Lines into TDIF"`
	Version VersionCmd `cmd:"" help:"print version"`
}

func newParser(c *cli, stdout, stderr io.Writer, exit func(int)) (*kong.Kong, error) {
	return kong.New(c,
		kong.Name("tdif"),
		kong.Description("Write Tabular Data Interchange Format files."),
		kong.UsageOnError(),
		kong.Writers(stdout, stderr),
		kong.Exit(exit),
	)
}

// run parses args and executes the selected command, returning the exit code.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	var c cli
	exited, exitCode := false, 0
	parser, err := newParser(&c, stdout, stderr, func(code int) {
		exited, exitCode = true, code
	})
	if err != nil {
		fmt.Fprintf(stderr, "tdif: %v\n", err)
		return 2
	}
	ctx, err := parser.Parse(args)
	// Help and similar hooks ask kong to exit; the command must not run.
	if exited {
		return exitCode
	}
	if err != nil {
		parser.Errorf("%s", err)
		return 2
	}

	cfg, err := LoadConfig(c.Config)
	if err != nil {
		fmt.Fprintf(stderr, "tdif: %v\n", err)
		return 1
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
		if err := cfg.Validate(); err != nil {
			fmt.Fprintf(stderr, "tdif: %v\n", err)
			return 2
		}
	}
	log, err := newLogger(cfg.Log.Level, cfg.Log.Format)
	if err != nil {
		fmt.Fprintf(stderr, "tdif: %v\n", err)
		return 1
	}
	defer func() { _ = log.Sync() }()

	if err := ctx.Run(&env{cfg: cfg, log: log, stdin: stdin, stdout: stdout}); err != nil {
		log.Error("command failed", zap.String("command", ctx.Command()), zap.Error(err))
		return 1
	}
	return 0
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}
