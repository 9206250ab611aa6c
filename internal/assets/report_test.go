package assets

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReport(dryRun bool) *Report {
	return &Report{
		DryRun: dryRun,
		Results: []Result{
			{
				Target:       Target{Name: "index_html", Output: "/project/src/index_html.h"},
				Status:       StatusGenerated,
				ElementCount: 812,
				ByteCount:    812,
				SourceSize:   2048,
			},
			{
				Target: Target{Name: "logo_png", Output: "/project/src/logo_png.h"},
				Status: StatusUpToDate,
			},
			{
				Target: Target{Name: "font_bin", Output: "/project/src/font_bin.h"},
				Status: StatusFailed,
				Err:    &AssetError{Asset: "font_bin", Stage: StageEncode, Err: errors.New("odd length")},
			},
		},
	}
}

func TestReportCount(t *testing.T) {
	r := sampleReport(false)

	assert.Equal(t, 1, r.Count(StatusGenerated))
	assert.Equal(t, 1, r.Count(StatusUpToDate))
	assert.Equal(t, 1, r.Count(StatusFailed))
	assert.Equal(t, 0, r.Count(StatusPlanned))

	failed := r.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, "font_bin", failed[0].Target.Name)
}

func TestReportRender(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport(false).Render(&buf, false))
	out := buf.String()

	assert.Contains(t, out, "Asset")
	assert.Contains(t, out, "index_html")
	assert.Contains(t, out, "index_html.h")
	assert.Contains(t, out, "812")
	assert.Contains(t, out, "2048")
	assert.Contains(t, out, "up-to-date")
	assert.Contains(t, out, "  font_bin: asset font_bin: encode: odd length\n")
	assert.Contains(t, out, "Summary: 1 generated, 1 up to date, 1 failed\n")
	assert.NotContains(t, out, "/project/src")
	assert.NotContains(t, out, "\x1b[")
}

func TestReportRenderDryRun(t *testing.T) {
	r := &Report{
		DryRun: true,
		Results: []Result{
			{Target: Target{Name: "a_bin", Output: "a_bin.h"}, Status: StatusPlanned, ElementCount: 4},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, r.Render(&buf, false))
	assert.Contains(t, buf.String(), "planned")
	assert.Contains(t, buf.String(), "Summary: 1 planned, 0 up to date, 0 failed\n")
}

func TestReportRenderColor(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, sampleReport(false).Render(&buf, true))
	assert.Contains(t, buf.String(), "\x1b[")
}
