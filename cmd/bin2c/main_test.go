package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// safeTempDir creates a temporary directory and resolves any symlinks in its path
// to ensure consistent behavior across different environments.
func safeTempDir(t *testing.T) string {
	t.Helper()
	tempDir := t.TempDir()
	realPath, err := filepath.EvalSymlinks(tempDir)
	require.NoError(t, err, "Failed to resolve symlinks in temp dir")
	return realPath
}

func runCommand(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	code := run(append([]string{"--no-color", "--quiet"}, args...), &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func writeAsset(t *testing.T, dir, name string, content []byte) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	past := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(path, past, past))
	return path
}

func TestEncode(t *testing.T) {
	dir := safeTempDir(t)
	source := writeAsset(t, dir, "in.bin", []byte{0x00, 0x01, 0xff})

	tests := []struct {
		name string
		args []string
		want string
	}{
		{
			name: "defaults",
			args: []string{"encode", source},
			want: "const uint8_t data[3] = {\n    0x00, 0x01, 0xff\n};\n\nconst size_t data_length = 3;\n\n",
		},
		{
			name: "all positional arguments",
			args: []string{"encode", source, "blob", "40", "0"},
			want: "const uint8_t blob[3] = {\n0x00, 0x01, 0xff\n};\n\nconst size_t blob_length = 3;\n\n",
		},
		{
			name: "flags after positional arguments",
			args: []string{"encode", source, "blob", "--level", "9"},
			want: "const uint8_t blob[3] = {\n    0x00, 0x01, 0xff\n};\n\nconst size_t blob_length = 3;\n\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCommand(t, tt.args...)
			assert.Equal(t, 0, code, "stderr: %s", stderr)
			assert.Equal(t, tt.want, stdout)
		})
	}
}

func TestEncodeWord16(t *testing.T) {
	dir := safeTempDir(t)
	source := writeAsset(t, dir, "in.bin", []byte{0xaa, 0xbb, 0xcc, 0xdd})

	code, stdout, stderr := runCommand(t, "encode", "--word16", source, "words")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Equal(t, "const uint16_t words[2] = {\n    0xaabb, 0xccdd\n};\n\nconst size_t words_length = 2;\n\n", stdout)
}

func TestEncodeGzip(t *testing.T) {
	dir := safeTempDir(t)
	source := writeAsset(t, dir, "in.txt", []byte(strings.Repeat("hello bin2c ", 20)))

	code, stdout, stderr := runCommand(t, "encode", "-z", source, "text")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.True(t, strings.HasPrefix(stdout, "const uint8_t text["), stdout)
	// gzip magic followed by the deflate method byte
	assert.Contains(t, stdout, "    0x1f, 0x8b, 0x08, ")
}

func TestEncodeErrors(t *testing.T) {
	dir := safeTempDir(t)
	source := writeAsset(t, dir, "odd.bin", []byte{1, 2, 3})

	tests := []struct {
		name    string
		args    []string
		wantErr string
	}{
		{"missing file", []string{"encode", filepath.Join(dir, "missing.bin")}, "file not found"},
		{"invalid identifier", []string{"encode", source, "1abc"}, "invalid identifier"},
		{"invalid line size", []string{"encode", source, "data", "wide"}, "invalid LINESIZE"},
		{"invalid indent", []string{"encode", source, "data", "80", "x"}, "invalid INDENT"},
		{"negative indent", []string{"encode", "--", source, "data", "80", "-1"}, "indent"},
		{"odd length in word16 mode", []string{"encode", "--word16", source}, "odd"},
		{"invalid compression level", []string{"encode", "-z", "--level", "12", source}, "compression level"},
		{"no file", []string{"encode"}, "arg"},
		{"too many arguments", []string{"encode", source, "a", "80", "4", "extra"}, "arg"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, stdout, stderr := runCommand(t, tt.args...)
			assert.Equal(t, 1, code)
			assert.Empty(t, stdout)
			assert.Contains(t, stderr, "Error: ")
			assert.Contains(t, strings.ToLower(stderr), strings.ToLower(tt.wantErr))
		})
	}
}

func TestBuild(t *testing.T) {
	dir := safeTempDir(t)
	writeAsset(t, dir, "index.html", []byte("<html></html>"))
	writeAsset(t, dir, "logo.png", []byte{0x89, 0x50, 0x4e, 0x47})
	manifest := filepath.Join(dir, "assets.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
[defaults]
compress = true

[[asset]]
path = "index.html"

[[asset]]
path = "logo.png"
compress = false
mode = "word16"
`), 0o600))

	code, stdout, stderr := runCommand(t, "build", "-m", manifest)
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "index_html")
	assert.Contains(t, stdout, "logo_png")
	assert.Contains(t, stdout, "Summary: 2 generated, 0 up to date, 0 failed\n")

	header, err := os.ReadFile(filepath.Join(dir, "logo_png.h"))
	require.NoError(t, err)
	assert.Equal(t, "const uint16_t logo_png[2] = {\n    0x8950, 0x4e47\n};\n\nconst size_t logo_png_length = 2;\n", string(header))

	header, err = os.ReadFile(filepath.Join(dir, "index_html.h"))
	require.NoError(t, err)
	assert.Contains(t, string(header), "0x1f, 0x8b, 0x08")

	code, stdout, _ = runCommand(t, "build", "--manifest", manifest)
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Summary: 0 generated, 2 up to date, 0 failed\n")

	code, stdout, _ = runCommand(t, "build", "-m", manifest, "--force")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Summary: 2 generated, 0 up to date, 0 failed\n")
}

func TestBuildManifestFromEnvironment(t *testing.T) {
	dir := safeTempDir(t)
	writeAsset(t, dir, "a.bin", []byte{1})
	manifest := filepath.Join(dir, "custom.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[[asset]]\npath = \"a.bin\"\n"), 0o600))
	t.Setenv(envManifest, manifest)

	code, stdout, stderr := runCommand(t, "build", "--dry-run")
	require.Equal(t, 0, code, "stderr: %s", stderr)
	assert.Contains(t, stdout, "Summary: 1 planned, 0 up to date, 0 failed\n")

	_, err := os.Stat(filepath.Join(dir, "a_bin.h"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestBuildReportsFailures(t *testing.T) {
	dir := safeTempDir(t)
	writeAsset(t, dir, "a.bin", []byte{1})
	manifest := filepath.Join(dir, "assets.toml")
	require.NoError(t, os.WriteFile(manifest, []byte(`
[[asset]]
path = "missing.bin"

[[asset]]
path = "a.bin"
`), 0o600))

	code, stdout, stderr := runCommand(t, "build", "-m", manifest)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "Summary: 1 generated, 0 up to date, 1 failed\n")
	assert.Contains(t, stderr, "asset generation failed")

	_, err := os.Stat(filepath.Join(dir, "a_bin.h"))
	assert.NoError(t, err)
}

func TestBuildInvalidManifest(t *testing.T) {
	dir := safeTempDir(t)
	manifest := filepath.Join(dir, "assets.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[[asset]]\npath = \"a.bin\"\nsize = 3\n"), 0o600))

	code, stdout, stderr := runCommand(t, "build", "-m", manifest)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "unknown field")
}

func TestBuildMissingManifest(t *testing.T) {
	dir := safeTempDir(t)

	code, _, stderr := runCommand(t, "build", "-m", filepath.Join(dir, "nope.toml"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "failed to read manifest")
}

func TestInvalidLogLevel(t *testing.T) {
	var stdout, stderr bytes.Buffer
	code := run([]string{"--log-level", "verbose", "encode", "x"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid log level")
}

func TestLogLevelFromEnvironment(t *testing.T) {
	t.Setenv(envLogLevel, "loud")

	var stdout, stderr bytes.Buffer
	code := run([]string{"encode", "x"}, &stdout, &stderr)
	assert.Equal(t, 1, code)
	assert.Contains(t, stderr.String(), "invalid log level \"loud\"")
}

func TestLogFile(t *testing.T) {
	dir := safeTempDir(t)
	writeAsset(t, dir, "a.bin", []byte{1, 2})
	manifest := filepath.Join(dir, "assets.toml")
	require.NoError(t, os.WriteFile(manifest, []byte("[[asset]]\npath = \"a.bin\"\n"), 0o600))
	logFile := filepath.Join(dir, "bin2c.log")

	var stdout, stderr bytes.Buffer
	code := run([]string{"--no-color", "--log-level", "debug", "--log-file", logFile, "build", "-m", manifest}, &stdout, &stderr)
	require.Equal(t, 0, code, "stderr: %s", stderr.String())

	content, err := os.ReadFile(logFile)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(content)), "\n")
	require.NotEmpty(t, lines)

	var runID string
	var sawGenerated bool
	for _, line := range lines {
		var record map[string]any
		require.NoError(t, json.Unmarshal([]byte(line), &record), line)
		id, ok := record["run_id"].(string)
		require.True(t, ok, line)
		if runID == "" {
			runID = id
		}
		assert.Equal(t, runID, id)
		if record["msg"] == "generated header" {
			sawGenerated = true
			assert.Equal(t, "a_bin", record["asset"])
		}
	}
	assert.Len(t, runID, 26)
	assert.True(t, sawGenerated)
}
