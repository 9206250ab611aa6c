package assets

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"
)

// Status is the outcome of one asset.
type Status string

// Asset outcomes.
const (
	StatusGenerated Status = "generated"
	StatusUpToDate  Status = "up-to-date"
	StatusPlanned   Status = "planned"
	StatusFailed    Status = "failed"
)

// Result is the outcome of one target.
type Result struct {
	Target       Target
	Status       Status
	ElementCount int
	ByteCount    int
	SourceSize   int
	Err          error
}

// Report collects the results of a Generate call in manifest order.
type Report struct {
	DryRun  bool
	Results []Result
}

// Count returns how many results have the given status.
func (r *Report) Count(status Status) int {
	n := 0
	for _, res := range r.Results {
		if res.Status == status {
			n++
		}
	}
	return n
}

// Failed returns the results whose status is StatusFailed.
func (r *Report) Failed() []Result {
	var failed []Result
	for _, res := range r.Results {
		if res.Status == StatusFailed {
			failed = append(failed, res)
		}
	}
	return failed
}

// Render writes a table of all results followed by a summary line.
// Status cells are colored when useColor is set.
func (r *Report) Render(w io.Writer, useColor bool) error {
	table := tablewriter.NewWriter(w)
	table.SetHeader([]string{"Asset", "Status", "Elements", "Source", "Payload", "Output"})
	table.SetAutoWrapText(false)
	table.SetAutoFormatHeaders(false)
	table.SetBorder(false)
	table.SetAlignment(tablewriter.ALIGN_LEFT)

	for _, res := range r.Results {
		row := []string{
			res.Target.Name,
			statusCell(res.Status, useColor),
			"-", "-", "-",
			filepath.Base(res.Target.Output),
		}
		if res.Status == StatusGenerated || res.Status == StatusPlanned {
			row[2] = strconv.Itoa(res.ElementCount)
			row[3] = strconv.Itoa(res.SourceSize)
			row[4] = strconv.Itoa(res.ByteCount)
		}
		table.Append(row)
	}
	table.Render()

	for _, res := range r.Failed() {
		if _, err := fmt.Fprintf(w, "  %s: %v\n", res.Target.Name, res.Err); err != nil {
			return err
		}
	}

	done, verb := r.Count(StatusGenerated), "generated"
	if r.DryRun {
		done, verb = r.Count(StatusPlanned), "planned"
	}
	_, err := fmt.Fprintf(w, "Summary: %d %s, %d up to date, %d failed\n",
		done, verb, r.Count(StatusUpToDate), r.Count(StatusFailed))
	return err
}

func statusCell(status Status, useColor bool) string {
	var c *color.Color
	switch status {
	case StatusGenerated:
		c = color.New(color.FgGreen)
	case StatusPlanned:
		c = color.New(color.FgCyan)
	case StatusFailed:
		c = color.New(color.FgRed, color.Bold)
	default:
		c = color.New(color.FgHiBlack)
	}
	if useColor {
		c.EnableColor()
	} else {
		c.DisableColor()
	}
	return c.Sprint(string(status))
}
