package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/willbeason/newton-fractal/pkg/pipeline"
)

var (
	colorCyan  = lipgloss.Color("36")
	colorGreen = lipgloss.Color("35")
	colorWhite = lipgloss.Color("255")
	colorGray  = lipgloss.Color("245")
	colorDim   = lipgloss.Color("240")
)

var (
	StyleDim    = lipgloss.NewStyle().Foreground(colorDim)
	StyleValue  = lipgloss.NewStyle().Foreground(colorWhite)
	StyleNumber = lipgloss.NewStyle().Foreground(colorCyan)
)

var (
	styleIconSuccess = lipgloss.NewStyle().Foreground(colorGreen)
	styleIconInfo    = lipgloss.NewStyle().Foreground(colorGray)

	styleCached   = lipgloss.NewStyle().Foreground(colorGreen)
	styleComputed = lipgloss.NewStyle().Foreground(colorGray)
)

const (
	iconSuccess = "✓"
	iconInfo    = "›"
	iconCached  = "cached"
	iconFresh   = "fresh"
)

func printSuccess(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconSuccess.Render(iconSuccess)+" "+fmt.Sprintf(format, args...))
}

func printInfo(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, styleIconInfo.Render(iconInfo)+" "+fmt.Sprintf(format, args...))
}

// printDetail prints an indented, dimmed line.
func printDetail(w io.Writer, format string, args ...any) {
	fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf(format, args...)))
}

// printStats prints the outcome of a render on one line.
func printStats(w io.Writer, res *pipeline.Result) {
	var parts []string
	if !res.CacheHit {
		s := res.Stats
		parts = append(parts,
			StyleNumber.Render(fmt.Sprint(len(s.Roots)))+" roots",
			StyleNumber.Render(fmt.Sprint(s.Converged))+" converged",
			StyleNumber.Render(fmt.Sprint(s.Exhausted))+" exhausted",
			StyleNumber.Render(fmt.Sprint(s.Degenerate))+" degenerate",
		)
	}

	status, style := iconFresh, styleComputed
	if res.CacheHit {
		status, style = iconCached, styleCached
	}
	parts = append(parts, style.Render(status))

	fmt.Fprintln(w, "  "+strings.Join(parts, StyleDim.Render(" · ")))
}

// printRoots lists the roots found by a render in id order.
func printRoots(w io.Writer, res *pipeline.Result) {
	for id, root := range res.Stats.Roots {
		fmt.Fprintln(w, "  "+StyleDim.Render(fmt.Sprintf("root %d", id))+" "+StyleValue.Render(root.String()))
	}
}
