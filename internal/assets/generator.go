package assets

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/isseis/go-bin2c/internal/encoder"
	"github.com/isseis/go-bin2c/internal/safefileio"
)

const headerFilePerm os.FileMode = 0o644

// Encoder renders one request. *encoder.Encoder satisfies it.
type Encoder interface {
	Encode(req encoder.Request) (*encoder.Output, error)
}

// Generator regenerates stale headers for the targets of a manifest.
type Generator struct {
	encoder Encoder
	fs      safefileio.FileSystem
	logger  *slog.Logger
	force   bool
	dryRun  bool
}

// GeneratorOption configures a Generator.
type GeneratorOption func(*Generator)

// WithForce regenerates every header regardless of timestamps.
func WithForce(force bool) GeneratorOption {
	return func(g *Generator) {
		g.force = force
	}
}

// WithDryRun encodes assets but does not write any header.
func WithDryRun(dryRun bool) GeneratorOption {
	return func(g *Generator) {
		g.dryRun = dryRun
	}
}

// WithLogger sets the logger. slog.Default() is used otherwise.
func WithLogger(logger *slog.Logger) GeneratorOption {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithEncoder replaces the encoder.
func WithEncoder(enc Encoder) GeneratorOption {
	return func(g *Generator) {
		g.encoder = enc
	}
}

// WithFileSystem replaces the file system used for timestamps and writes.
// The default encoder keeps reading from the local disk.
func WithFileSystem(fs safefileio.FileSystem) GeneratorOption {
	return func(g *Generator) {
		g.fs = fs
	}
}

// NewGenerator creates a Generator working on the local disk.
func NewGenerator(opts ...GeneratorOption) *Generator {
	g := &Generator{
		encoder: encoder.New(),
		fs:      safefileio.NewFileSystem(),
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate processes the targets of m one after another in manifest order.
// A failing asset does not stop the others; the returned Report always
// covers every processed asset and the error wraps ErrGenerationFailed when
// any of them failed. Cancellation of ctx is checked before each asset.
func (g *Generator) Generate(ctx context.Context, m *Manifest) (*Report, error) {
	report := &Report{DryRun: g.dryRun}

	for _, target := range m.Targets {
		if err := ctx.Err(); err != nil {
			return report, err
		}
		report.Results = append(report.Results, g.generateOne(target))
	}

	if failed := report.Count(StatusFailed); failed > 0 {
		return report, fmt.Errorf("%w: %d of %d assets", ErrGenerationFailed, failed, len(report.Results))
	}
	return report, nil
}

func (g *Generator) generateOne(t Target) Result {
	logger := g.logger.With(slog.String("asset", t.Name))
	result := Result{Target: t}

	fail := func(stage Stage, err error) Result {
		result.Status = StatusFailed
		result.Err = &AssetError{Asset: t.Name, Stage: stage, Err: err}
		logger.Error("asset failed", slog.String("stage", string(stage)), slog.Any("error", err))
		return result
	}

	if !g.force {
		stale, err := IsStale(g.fs, t.Source, t.Output)
		if err != nil {
			return fail(StageStat, err)
		}
		if !stale {
			result.Status = StatusUpToDate
			logger.Debug("header is up to date", slog.String("output", t.Output))
			return result
		}
	}

	req, err := encoder.NewRequest(t.Source, t.Name, t.RequestOptions()...)
	if err != nil {
		return fail(StageRequest, err)
	}

	logger.Debug("encoding",
		slog.String("source", t.Source),
		slog.String("mode", t.Mode.String()),
		slog.Bool("compress", t.Compress))

	out, err := g.encoder.Encode(req)
	if err != nil {
		return fail(StageEncode, err)
	}
	result.ElementCount = out.ElementCount
	result.ByteCount = out.ByteCount
	result.SourceSize = out.SourceSize

	if g.dryRun {
		result.Status = StatusPlanned
		logger.Info("would generate header", slog.String("output", t.Output), slog.Int("elements", out.ElementCount))
		return result
	}

	if err := g.fs.SafeWriteFile(t.Output, []byte(out.Text), headerFilePerm); err != nil {
		return fail(StageWrite, err)
	}

	result.Status = StatusGenerated
	logger.Info("generated header",
		slog.String("output", t.Output),
		slog.Int("elements", out.ElementCount),
		slog.Int("source_bytes", out.SourceSize),
		slog.Int("payload_bytes", out.ByteCount))
	return result
}
