// Package assets regenerates C headers for the binary assets listed in a TOML
// manifest. A header is rewritten only when it is missing or older than its
// source.
package assets

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/isseis/go-bin2c/internal/encoder"
	"github.com/isseis/go-bin2c/internal/safefileio"
	"github.com/pelletier/go-toml/v2"
)

// DefaultManifestName is the manifest file looked up when none is given.
const DefaultManifestName = "assets.toml"

// headerExt is appended to the variable name to form the default output file name.
const headerExt = ".h"

// ManifestSpec is the TOML document as written by the user.
type ManifestSpec struct {
	Defaults DefaultsSpec `toml:"defaults"`
	Assets   []AssetSpec  `toml:"asset"`
}

// DefaultsSpec holds settings shared by every asset.
type DefaultsSpec struct {
	SourceDir        string `toml:"source_dir"`
	OutputDir        string `toml:"output_dir"`
	LineWidth        *int   `toml:"line_width"`
	Indent           *int   `toml:"indent"`
	Compress         bool   `toml:"compress"`
	CompressionLevel *int   `toml:"compression_level"`
	Mode             string `toml:"mode"`
}

// AssetSpec describes one asset. Unset fields fall back to DefaultsSpec.
type AssetSpec struct {
	Path             string `toml:"path"`
	Name             string `toml:"name"`
	Output           string `toml:"output"`
	LineWidth        *int   `toml:"line_width"`
	Indent           *int   `toml:"indent"`
	Compress         *bool  `toml:"compress"`
	CompressionLevel *int   `toml:"compression_level"`
	Mode             string `toml:"mode"`
}

// Target is a fully resolved asset: absolute paths and concrete settings.
type Target struct {
	Name             string
	Source           string
	Output           string
	LineWidth        int
	Indent           int
	Compress         bool
	CompressionLevel int
	Mode             encoder.Mode
}

// RequestOptions converts the target settings into encoder options.
func (t Target) RequestOptions() []encoder.RequestOption {
	return []encoder.RequestOption{
		encoder.WithLineWidth(t.LineWidth),
		encoder.WithIndent(t.Indent),
		encoder.WithCompression(t.Compress),
		encoder.WithCompressionLevel(t.CompressionLevel),
		encoder.WithMode(t.Mode),
	}
}

// Manifest is a loaded and validated manifest.
type Manifest struct {
	// Path is the absolute path of the manifest file
	Path string
	// Targets are listed in manifest order
	Targets []Target
}

// Loader reads manifests from a FileSystem.
type Loader struct {
	fs safefileio.FileSystem
}

// NewLoader creates a Loader reading from the local disk.
func NewLoader() *Loader {
	return NewLoaderWithFS(safefileio.NewFileSystem())
}

// NewLoaderWithFS creates a Loader with a custom FileSystem.
func NewLoaderWithFS(fs safefileio.FileSystem) *Loader {
	return &Loader{fs: fs}
}

// Load reads and validates the manifest at path. Relative directories in
// the manifest are resolved against the manifest's own directory.
func (l *Loader) Load(path string) (*Manifest, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidManifest, err)
	}

	content, err := l.fs.SafeReadFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest %s: %w", absPath, err)
	}

	targets, err := ParseManifest(content, filepath.Dir(absPath))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", absPath, err)
	}

	return &Manifest{Path: absPath, Targets: targets}, nil
}

// ParseManifest decodes content and resolves it into targets relative to baseDir.
func ParseManifest(content []byte, baseDir string) ([]Target, error) {
	var spec ManifestSpec
	decoder := toml.NewDecoder(bytes.NewReader(content))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&spec); err != nil {
		var strictErr *toml.StrictMissingError
		if errors.As(err, &strictErr) {
			return nil, fmt.Errorf("%w: %s", ErrManifestUnknownField, strictErr.String())
		}
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return resolve(&spec, baseDir)
}

func resolve(spec *ManifestSpec, baseDir string) ([]Target, error) {
	if len(spec.Assets) == 0 {
		return nil, ErrNoAssets
	}

	defaults := spec.Defaults
	sourceDir := resolvePath(baseDir, defaults.SourceDir)
	outputDir := sourceDir
	if defaults.OutputDir != "" {
		outputDir = resolvePath(baseDir, defaults.OutputDir)
	}

	defaultMode, err := encoder.ParseMode(defaults.Mode)
	if err != nil {
		return nil, fmt.Errorf("defaults: %w", err)
	}

	targets := make([]Target, 0, len(spec.Assets))
	names := make(map[string]int, len(spec.Assets))
	outputs := make(map[string]int, len(spec.Assets))

	for i, asset := range spec.Assets {
		if asset.Path == "" {
			return nil, fmt.Errorf("asset #%d: %w", i+1, ErrEmptyAssetPath)
		}

		t := Target{
			Name:             asset.Name,
			Source:           resolvePath(sourceDir, asset.Path),
			LineWidth:        intOr(asset.LineWidth, intOr(defaults.LineWidth, encoder.DefaultLineWidth)),
			Indent:           intOr(asset.Indent, intOr(defaults.Indent, encoder.DefaultIndent)),
			Compress:         defaults.Compress,
			CompressionLevel: intOr(asset.CompressionLevel, intOr(defaults.CompressionLevel, encoder.DefaultCompressionLevel)),
			Mode:             defaultMode,
		}
		if t.Name == "" {
			t.Name = SanitizeName(asset.Path)
		}
		if asset.Compress != nil {
			t.Compress = *asset.Compress
		}
		if asset.Mode != "" {
			if t.Mode, err = encoder.ParseMode(asset.Mode); err != nil {
				return nil, fmt.Errorf("asset %s: %w", asset.Path, err)
			}
		}
		if asset.Output != "" {
			t.Output = resolvePath(outputDir, asset.Output)
		} else {
			t.Output = filepath.Join(outputDir, t.Name+headerExt)
		}

		if prev, ok := names[t.Name]; ok {
			return nil, fmt.Errorf("%w: name %q used by assets #%d and #%d", ErrDuplicateAsset, t.Name, prev+1, i+1)
		}
		if prev, ok := outputs[t.Output]; ok {
			return nil, fmt.Errorf("%w: output %s used by assets #%d and #%d", ErrDuplicateAsset, t.Output, prev+1, i+1)
		}
		names[t.Name] = i
		outputs[t.Output] = i

		targets = append(targets, t)
	}

	return targets, nil
}

// resolvePath joins path onto base unless path is already absolute.
func resolvePath(base, path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(base, path)
}

func intOr(v *int, fallback int) int {
	if v != nil {
		return *v
	}
	return fallback
}
