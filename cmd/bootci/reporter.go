package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"
	"golang.org/x/term"

	"github.com/spboyer/bootci/internal/projectconfig"
	"github.com/spboyer/bootci/internal/statistics"
)

// labelWidth is the display width of the label column in table output.
const labelWidth = 20

// writeReport renders report on w as a table or as indented JSON.
func writeReport(w io.Writer, report *statistics.ConfidenceReport, format string, colorize bool) error {
	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}
	_, err := io.WriteString(w, formatTable(report, colorize))
	return err
}

// formatTable renders the human-readable report. Numbers use %g with six
// significant digits.
func formatTable(r *statistics.ConfidenceReport, colorize bool) string {
	heading := color.New(color.Bold)
	bound := color.New(color.FgCyan)
	if colorize {
		heading.EnableColor()
		bound.EnableColor()
	} else {
		heading.DisableColor()
		bound.DisableColor()
	}

	var b strings.Builder
	b.WriteString(heading.Sprintf("Bootstrap confidence interval (%d%%)", r.Confidence))
	b.WriteString("\n")

	row := func(label, value string) {
		b.WriteString(padRight(label, labelWidth))
		b.WriteString(value)
		b.WriteString("\n")
	}

	row("CI:", bound.Sprintf("[%.6g , %.6g]", r.Lower, r.Upper))
	row("Original mean:", fmt.Sprintf("%.6g", r.OriginalMean))
	row("Bootstrapped mean:", fmt.Sprintf("%.6g", r.BootstrappedMean))
	row("Standard error:", fmt.Sprintf("%.6g", r.StdErr))
	row("Sample size:", printer.Sprintf("%d", r.SampleSize))

	trials := printer.Sprintf("%d", r.Trials)
	if r.Workers > 0 {
		trials += printer.Sprintf(" on %d workers", r.Workers)
	}
	row("Trials:", trials)

	return b.String()
}

// padRight pads s with spaces so its terminal display width reaches width.
func padRight(s string, width int) string {
	sw := runewidth.StringWidth(s)
	if sw >= width {
		return s
	}
	return s + strings.Repeat(" ", width-sw)
}

// useColor reports whether output to w should be coloured: the config file
// decides when it sets output.color, otherwise only terminals get colour.
func useColor(cfg *projectconfig.ProjectConfig, w io.Writer) bool {
	if cfg.Output.Color != nil {
		return *cfg.Output.Color
	}
	return isTerminal(w)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}
