package presentation

import (
	"fmt"
	"strconv"
	"strings"

	"coincorr/internal/domain"
)

// ANSI color codes
const (
	ansiReset  = "\033[0m"
	ansiRed    = "\033[31m"
	ansiGreen  = "\033[32m"
	ansiYellow = "\033[33m"
	ansiDim    = "\033[2m"
)

// Colorize applies ANSI color to a string
func Colorize(s, color string) string {
	return color + s + ansiReset
}

// Renderer formats aligned tables and correlation matrices for the terminal.
type Renderer struct {
	previewRows int
}

// NewRenderer creates a Renderer that previews at most previewRows table rows.
func NewRenderer(previewRows int) *Renderer {
	if previewRows <= 0 {
		previewRows = 5
	}
	return &Renderer{previewRows: previewRows}
}

const cellWidth = 12

// RenderTable renders the tail of an aligned table: header with column
// labels, then the last previewRows rows. Missing cells show as "--".
func (r *Renderer) RenderTable(title string, t *domain.Table) string {
	var sb strings.Builder
	sb.WriteString(Colorize("== "+title+" ==", ansiDim))
	sb.WriteString("\n")

	sb.WriteString(fmt.Sprintf("%-10s", "date"))
	for _, l := range t.Labels {
		sb.WriteString(fmt.Sprintf(" %*s", cellWidth, l))
	}
	sb.WriteString("\n")

	start := t.NumRows() - r.previewRows
	if start < 0 {
		start = 0
	}
	if start > 0 {
		sb.WriteString(Colorize(fmt.Sprintf("... %d earlier rows ...", start), ansiDim))
		sb.WriteString("\n")
	}
	for i := start; i < t.NumRows(); i++ {
		sb.WriteString(t.Times[i].Format("2006-01-02"))
		for _, v := range t.Rows[i] {
			sb.WriteString(" ")
			sb.WriteString(formatCell(v))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// RenderMatrix renders a correlation heatmap: strong positive coefficients in
// green, strong negative in red, weak in yellow, undefined dimmed.
func (r *Renderer) RenderMatrix(title string, m *domain.Matrix) string {
	var sb strings.Builder
	sb.WriteString(Colorize("== "+title+" ==", ansiDim))
	sb.WriteString("\n")

	width := 6
	for _, l := range m.Labels {
		if len(l) > width {
			width = len(l)
		}
	}

	sb.WriteString(strings.Repeat(" ", width))
	for _, l := range m.Labels {
		sb.WriteString(fmt.Sprintf(" %*s", width, l))
	}
	sb.WriteString("\n")

	for i, l := range m.Labels {
		sb.WriteString(fmt.Sprintf("%*s", width, l))
		for j := range m.Labels {
			sb.WriteString(" ")
			sb.WriteString(coefCell(m.Coef[i][j], width))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

func formatCell(v domain.Value) string {
	if !v.Valid {
		return fmt.Sprintf("%*s", cellWidth, "--")
	}
	return fmt.Sprintf("%*s", cellWidth, strconv.FormatFloat(v.Float64, 'g', 6, 64))
}

func coefCell(v domain.Value, width int) string {
	if !v.Valid {
		return Colorize(fmt.Sprintf("%*s", width, "--"), ansiDim)
	}
	cell := fmt.Sprintf("%*.2f", width, v.Float64)
	switch {
	case v.Float64 >= 0.5:
		return Colorize(cell, ansiGreen)
	case v.Float64 <= -0.5:
		return Colorize(cell, ansiRed)
	default:
		return Colorize(cell, ansiYellow)
	}
}
