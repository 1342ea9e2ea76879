package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/piwi3910/SpritePack/internal/engine"
	"github.com/piwi3910/SpritePack/internal/model"
)

// =============================================================================
// Color Palette
// =============================================================================

var (
	colorCyan   = lipgloss.Color("36")  // Teal - primary actions
	colorGreen  = lipgloss.Color("35")  // Green - success
	colorYellow = lipgloss.Color("220") // Amber - warnings
	colorRed    = lipgloss.Color("167") // Soft red - errors
	colorWhite  = lipgloss.Color("255") // Bright white - values
	colorGray   = lipgloss.Color("245") // Gray - secondary text
	colorDim    = lipgloss.Color("240") // Dim gray - muted text
)

// =============================================================================
// Styles
// =============================================================================

var (
	StyleTitle   = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	StyleDim     = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue   = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber  = lipgloss.NewStyle().Foreground(colorCyan)
	StyleWarning = lipgloss.NewStyle().Foreground(colorYellow)

	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconError   = lipgloss.NewStyle().Foreground(colorRed)
	styleIconWarning = lipgloss.NewStyle().Foreground(colorYellow)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)
	styleHeader      = lipgloss.NewStyle().Bold(true).Foreground(colorCyan).Padding(0, 1)
	styleCell        = lipgloss.NewStyle().Padding(0, 1)
	styleBestCell    = lipgloss.NewStyle().Padding(0, 1).Foreground(colorGreen)
)

const (
	iconSuccess = "✓"
	iconError   = "✗"
	iconWarning = "!"
	iconInfo    = "›"
	iconArrow   = "→"
)

// out and stderr receive all user-facing output; tests swap them for buffers.
var (
	out    io.Writer = os.Stdout
	stderr io.Writer = os.Stderr
)

// =============================================================================
// Status Output
// =============================================================================

func printSuccess(format string, args ...any) {
	fmt.Fprintln(out, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printError(format string, args ...any) {
	fmt.Fprintln(out, styleIconError.Render(iconError)+" "+fmt.Sprintf(format, args...))
}

func printWarning(format string, args ...any) {
	fmt.Fprintln(out, styleIconWarning.Render(iconWarning)+" "+StyleWarning.Render(fmt.Sprintf(format, args...)))
}

func printInfo(format string, args ...any) {
	fmt.Fprintln(out, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

func printDetail(format string, args ...any) {
	fmt.Fprintln(out, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

func printFile(path string) {
	fmt.Fprintln(out, "  "+StyleDim.Render(iconArrow)+" "+StyleValue.Render(path))
}

func printKeyValue(key, value string) {
	keyStyle := lipgloss.NewStyle().Foreground(colorGray).Width(12)
	fmt.Fprintln(out, keyStyle.Render(key)+" "+StyleValue.Render(value))
}

func printNewline() {
	fmt.Fprintln(out)
}

// =============================================================================
// Pack Summary
// =============================================================================

// printPackSummary prints the settings and outcome of one pack run.
func printPackSummary(cfg model.AtlasConfig, result model.PackResult, entries []model.ImageEntry) {
	w, h := result.Extent(cfg.Padding)

	fmt.Fprintln(out, StyleTitle.Render("Atlas"))
	printKeyValue("Size", cfg.SizeLabel())
	printKeyValue("Padding", fmt.Sprintf("%d px", cfg.Padding))
	printKeyValue("Sort", cfg.Sort.Label())
	printKeyValue("Placed", StyleNumber.Render(fmt.Sprintf("%d / %d", len(result.Placed), len(entries))))
	printKeyValue("Used", fmt.Sprintf("%s (%.1f%%)", model.FormatSize(w, h), result.Efficiency(cfg)))

	if len(result.Rejected) == 0 {
		return
	}
	index := model.EntryIndex(entries)
	printWarning("%d sprite(s) did not fit", len(result.Rejected))
	for _, id := range result.Rejected {
		name := id
		if e, ok := index[id]; ok {
			name = fmt.Sprintf("%s (%s)", e.Name, model.FormatSize(e.Width, e.Height))
		}
		printDetail("%s", name)
	}
}

// renderComparison renders comparison results as a table, highlighting best.
func renderComparison(results []engine.ComparisonResult, best int) string {
	rows := make([][]string, 0, len(results))
	for _, r := range results {
		if r.Err != nil {
			rows = append(rows, []string{r.Scenario.Name, r.Scenario.Config.SizeLabel(), "-", "-", "error: " + r.Err.Error()})
			continue
		}
		rows = append(rows, []string{
			r.Scenario.Name,
			r.Scenario.Config.SizeLabel(),
			fmt.Sprintf("%d", r.PlacedCount),
			fmt.Sprintf("%d", r.RejectedCount),
			fmt.Sprintf("%.1f%%", r.Efficiency),
		})
	}

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("Scenario", "Size", "Placed", "Rejected", "Efficiency").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			switch {
			case row == table.HeaderRow:
				return styleHeader
			case row == best:
				return styleBestCell
			default:
				return styleCell
			}
		})
	return t.Render()
}
