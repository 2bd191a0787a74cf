package ui

import (
	"strings"

	"github.com/Dicklesworthstone/sysmoni/internal/layout"
	"github.com/Dicklesworthstone/sysmoni/internal/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"
)

// blank fills r with spaces.
func blank(r layout.Rect) string {
	if r.Empty() {
		return ""
	}
	line := strings.Repeat(" ", r.Width)
	lines := make([]string, r.Height)
	for i := range lines {
		lines[i] = line
	}
	return strings.Join(lines, "\n")
}

// box draws lines inside a rounded border occupying exactly r. Missing lines
// are blank, extra lines are dropped.
func box(title string, lines []string, r layout.Rect, accent lipgloss.Color, focused bool) string {
	if r.Width < 2 || r.Height < 2 {
		return blank(r)
	}
	iw, ih := r.Width-2, r.Height-2

	edge := lipgloss.NewStyle().Foreground(borderColor)
	if focused {
		edge = edge.Foreground(focusColor).Bold(true)
	}
	heading := lipgloss.NewStyle().Foreground(accent).Bold(focused)

	label := truncate.StringWithTail(" "+title+" ", uint(iw), "…")
	if title == "" {
		label = ""
	}
	fill := iw - lipgloss.Width(label)

	out := make([]string, 0, r.Height)
	out = append(out, edge.Render("╭")+heading.Render(label)+edge.Render(strings.Repeat("─", fill)+"╮"))
	side := edge.Render("│")
	for i := 0; i < ih; i++ {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out = append(out, side+fit(line, iw)+side)
	}
	out = append(out, edge.Render("╰"+strings.Repeat("─", iw)+"╯"))
	return strings.Join(out, "\n")
}

// withVerticalBar reserves the last column of a width x height area for a
// scrollbar bound to v.
func withVerticalBar(lines []string, width, height int, v *viewport.Viewport, accent lipgloss.Color) []string {
	if width < 2 || height < 1 {
		return lines
	}
	bar := scrollbar(v, height, trackVertical, thumbVertical, accent)
	out := make([]string, height)
	for i := range out {
		var line string
		if i < len(lines) {
			line = lines[i]
		}
		out[i] = fit(line, width-1) + bar[i]
	}
	return out
}

// withHorizontalBar reserves the last row of a width x height area for a
// scrollbar bound to v.
func withHorizontalBar(lines []string, width, height int, v *viewport.Viewport, accent lipgloss.Color) []string {
	if height < 2 || width < 1 {
		return lines
	}
	out := make([]string, height)
	for i := 0; i < height-1; i++ {
		if i < len(lines) {
			out[i] = lines[i]
		}
	}
	out[height-1] = strings.Join(scrollbar(v, width, trackHorizontal, thumbHorizontal, accent), "")
	return out
}

// scrollbar returns one cell per track position. A viewport with nothing to
// scroll draws an empty track.
func scrollbar(v *viewport.Viewport, n int, trackCell, thumbCell string, accent lipgloss.Color) []string {
	cells := make([]string, n)
	track := subtleStyle.Render(trackCell)
	for i := range cells {
		cells[i] = track
	}
	if v.MaxScroll() == 0 {
		return cells
	}
	thumb := lipgloss.NewStyle().Foreground(accent).Render(thumbCell)
	offset, length := v.Thumb(n)
	for i := offset; i < offset+length && i < n; i++ {
		cells[i] = thumb
	}
	return cells
}
