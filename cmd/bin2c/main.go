// Package main provides the bin2c command. It renders binary files as C array
// declarations, either one file at a time (encode) or for every asset listed
// in a TOML manifest (build).
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/isseis/go-bin2c/internal/assets"
	"github.com/isseis/go-bin2c/internal/encoder"
	"github.com/isseis/go-bin2c/internal/logging"
	"github.com/isseis/go-bin2c/internal/terminal"
	"github.com/spf13/cobra"
)

const (
	envManifest = "BIN2C_MANIFEST"
	envLogLevel = "BIN2C_LOG_LEVEL"
)

var (
	errInvalidLineSize = errors.New("invalid LINESIZE")
	errInvalidIndent   = errors.New("invalid INDENT")
)

// globalOptions holds the persistent flags shared by every subcommand.
type globalOptions struct {
	logLevel    string
	logFile     string
	interactive bool
	quiet       bool
	color       bool
	noColor     bool
}

func (o *globalOptions) terminalOptions() terminal.Options {
	return terminal.Options{
		PreferenceOptions: terminal.PreferenceOptions{
			ForceColor:   o.color,
			DisableColor: o.noColor,
		},
		DetectorOptions: terminal.DetectorOptions{
			ForceInteractive:    o.interactive,
			ForceNonInteractive: o.quiet,
		},
	}
}

// app carries the state of one invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	options  globalOptions
	logger   *slog.Logger
	closeLog func() error
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	a := &app{
		stdout:   stdout,
		stderr:   stderr,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
		closeLog: func() error { return nil },
	}
	defer func() {
		if err := a.closeLog(); err != nil {
			_, _ = fmt.Fprintf(stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	root := a.newRootCommand()
	root.SetArgs(args)
	root.SetOut(stdout)
	root.SetErr(stderr)

	if err := root.ExecuteContext(context.Background()); err != nil {
		_, _ = fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

func (a *app) newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "bin2c",
		Short:         "Render binary files as C array declarations",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setupLogging(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.options.logLevel, "log-level", "info", "Log level (debug|info|warn|error), overrides "+envLogLevel)
	flags.StringVar(&a.options.logFile, "log-file", "", "Write JSON log records to this file")
	flags.BoolVar(&a.options.interactive, "interactive", false, "Force interactive console output")
	flags.BoolVar(&a.options.quiet, "quiet", false, "Plain console output with errors only")
	flags.BoolVar(&a.options.color, "color", false, "Always use colored output")
	flags.BoolVar(&a.options.noColor, "no-color", false, "Never use colored output")
	root.MarkFlagsMutuallyExclusive("interactive", "quiet")
	root.MarkFlagsMutuallyExclusive("color", "no-color")

	root.AddCommand(a.newEncodeCommand(), a.newBuildCommand())
	return root
}

func (a *app) setupLogging(cmd *cobra.Command) error {
	levelName := a.options.logLevel
	if !cmd.Flags().Changed("log-level") {
		if env := os.Getenv(envLogLevel); env != "" {
			levelName = env
		}
	}
	level, err := logging.ParseLevel(levelName)
	if err != nil {
		return err
	}
	if a.options.quiet {
		level = slog.LevelError
	}

	runID := logging.GenerateRunID()
	logger, closeLog, err := logging.Setup(logging.Config{
		Level:         level,
		ConsoleWriter: a.stderr,
		LogFile:       a.options.logFile,
		RunID:         runID,
		Terminal:      a.options.terminalOptions(),
	})
	if err != nil {
		return err
	}

	a.logger = logger
	a.closeLog = closeLog
	a.logger.Debug("bin2c started", slog.String("command", cmd.Name()))
	return nil
}

type encodeOptions struct {
	gzip   bool
	word16 bool
	level  int
}

func (a *app) newEncodeCommand() *cobra.Command {
	var opts encodeOptions

	cmd := &cobra.Command{
		Use:   "encode [flags] FILE [VARNAME] [LINESIZE] [INDENT]",
		Short: "Print one file as a C array declaration",
		Long: "Print FILE as a C array declaration followed by a length constant.\n" +
			"VARNAME defaults to \"" + encoder.DefaultVariableName + "\", LINESIZE to " +
			strconv.Itoa(encoder.DefaultLineWidth) + " (minimum " + strconv.Itoa(encoder.MinLineWidth) +
			") and INDENT to " + strconv.Itoa(encoder.DefaultIndent) + ".",
		Args: cobra.RangeArgs(1, 4),
		RunE: func(_ *cobra.Command, args []string) error {
			return a.runEncode(args, opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.gzip, "gzip", "z", false, "Compress the file with gzip before rendering")
	cmd.Flags().BoolVar(&opts.word16, "word16", false, "Render 16-bit elements, high byte first")
	cmd.Flags().IntVar(&opts.level, "level", encoder.DefaultCompressionLevel, "gzip compression level (-2..9)")
	return cmd
}

func (a *app) runEncode(args []string, opts encodeOptions) error {
	source := args[0]
	name := encoder.DefaultVariableName
	if len(args) > 1 {
		name = args[1]
	}
	lineWidth := encoder.DefaultLineWidth
	if len(args) > 2 {
		v, err := strconv.Atoi(args[2])
		if err != nil {
			return fmt.Errorf("%w: %q", errInvalidLineSize, args[2])
		}
		lineWidth = v
	}
	indent := encoder.DefaultIndent
	if len(args) > 3 {
		v, err := strconv.Atoi(args[3])
		if err != nil {
			return fmt.Errorf("%w: %q", errInvalidIndent, args[3])
		}
		indent = v
	}

	mode := encoder.ModeByte
	if opts.word16 {
		mode = encoder.ModeWord16
	}

	req, err := encoder.NewRequest(source, name,
		encoder.WithLineWidth(lineWidth),
		encoder.WithIndent(indent),
		encoder.WithCompression(opts.gzip),
		encoder.WithCompressionLevel(opts.level),
		encoder.WithMode(mode),
	)
	if err != nil {
		return err
	}

	out, err := encoder.Encode(req)
	if err != nil {
		return err
	}
	a.logger.Debug("encoded",
		slog.String("source", source),
		slog.Int("elements", out.ElementCount),
		slog.Int("source_bytes", out.SourceSize),
		slog.Int("payload_bytes", out.ByteCount))

	_, err = fmt.Fprintln(a.stdout, out.Text)
	return err
}

type buildOptions struct {
	manifest string
	force    bool
	dryRun   bool
}

func (a *app) newBuildCommand() *cobra.Command {
	var opts buildOptions

	cmd := &cobra.Command{
		Use:   "build [flags]",
		Short: "Regenerate stale headers listed in an asset manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !cmd.Flags().Changed("manifest") {
				if env := os.Getenv(envManifest); env != "" {
					opts.manifest = env
				}
			}
			return a.runBuild(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVarP(&opts.manifest, "manifest", "m", assets.DefaultManifestName, "Asset manifest, overrides "+envManifest)
	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "Regenerate every header regardless of timestamps")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Encode assets and report without writing headers")
	return cmd
}

func (a *app) runBuild(ctx context.Context, opts buildOptions) error {
	manifest, err := assets.NewLoader().Load(opts.manifest)
	if err != nil {
		return err
	}

	total := len(manifest.Targets)
	label := "assets"
	if total == 1 {
		label = "asset"
	}
	a.logger.Info(fmt.Sprintf("Processing %d %s", total, label), slog.String("manifest", manifest.Path))

	generator := assets.NewGenerator(
		assets.WithForce(opts.force),
		assets.WithDryRun(opts.dryRun),
		assets.WithLogger(a.logger),
	)
	report, genErr := generator.Generate(ctx, manifest)

	useColor := terminal.NewCapabilities(a.options.terminalOptions()).SupportsColor()
	if err := report.Render(a.stdout, useColor); err != nil {
		return err
	}
	return genErr
}
