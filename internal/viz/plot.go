// Package viz renders simulation results in the terminal: convergence
// curves and histograms as ascii charts, plus a live Bubble Tea view of
// a run in progress. The engine itself stays free of rendering; viz
// consumes the plain numeric forms exposed by mc and stats.
package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/blokeley/montecarlo/internal/mc"
	"github.com/blokeley/montecarlo/internal/stats"
)

const (
	plotWidth  = 60
	plotHeight = 10
	barWidth   = 40
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	barStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("49"))
)

// ConvergencePlot charts the standard error of the mean against batch
// count.
func ConvergencePlot(trace []mc.ConvergencePoint) string {
	if len(trace) < 2 {
		return "not enough batches to plot"
	}
	series := make([]float64, len(trace))
	for i, p := range trace {
		series[i] = p.StdErr
	}
	caption := fmt.Sprintf("std error vs batch (final n=%d)", trace[len(trace)-1].N)
	return asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption(caption))
}

// MeanPlot charts the running mean against batch count.
func MeanPlot(trace []mc.ConvergencePoint) string {
	if len(trace) < 2 {
		return "not enough batches to plot"
	}
	series := make([]float64, len(trace))
	for i, p := range trace {
		series[i] = p.Mean
	}
	return asciigraph.Plot(series,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("running mean vs batch"))
}

// HistogramPlot renders horizontal frequency bars, one per bin.
func HistogramPlot(bins []stats.Bin) string {
	if len(bins) == 0 {
		return "no histogram"
	}
	var max int64
	for _, b := range bins {
		if b.Count > max {
			max = b.Count
		}
	}
	if max == 0 {
		return "no histogram"
	}

	var sb strings.Builder
	sb.WriteString(titleStyle.Render("histogram") + "\n")
	for _, b := range bins {
		n := int(b.Count * barWidth / max)
		bar := strings.Repeat("█", n)
		label := fmt.Sprintf("[%10.4f, %10.4f)", b.Lo, b.Hi)
		sb.WriteString(labelStyle.Render(label))
		sb.WriteString(" " + barStyle.Render(bar))
		sb.WriteString(fmt.Sprintf(" %d\n", b.Count))
	}
	return sb.String()
}
