package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/muesli/reflow/truncate"
)

// gaugeBar renders "[███░░░]  42.0%" in exactly width cells when width allows.
func gaugeBar(pct float64, width int) string {
	pct = clampPct(pct)
	const suffix = 8 // "] " + "%5.1f%%"
	inner := width - 1 - suffix
	if inner < 1 {
		return fmt.Sprintf("%5.1f%%", pct)
	}
	filled := int((pct / 100) * float64(inner))
	if filled > inner {
		filled = inner
	}
	return fmt.Sprintf("[%s%s] %5.1f%%",
		strings.Repeat(gaugeFill, filled),
		strings.Repeat(gaugeEmpty, inner-filled),
		pct)
}

func clampPct(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func pct(used, total uint64) float64 {
	if total == 0 {
		return 0
	}
	return float64(used) * 100 / float64(total)
}

// size formats a byte count with binary units ("1.5 GiB").
func size(n uint64) string { return humanize.IBytes(n) }

// rate formats a per-refresh byte delta as a per-second rate.
func rate(n uint64, elapsed time.Duration) string {
	secs := elapsed.Seconds()
	if secs <= 0 {
		secs = 1
	}
	return humanize.IBytes(uint64(float64(n)/secs)) + "/s"
}

// clock formats a duration as HH:MM:SS; hours may exceed two digits.
func clock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	secs := int64(d / time.Second)
	return fmt.Sprintf("%02d:%02d:%02d", secs/3600, secs/60%60, secs%60)
}

// fit truncates or pads s to exactly width cells, keeping ANSI styling intact.
func fit(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if lipgloss.Width(s) > width {
		s = truncate.StringWithTail(s, uint(width), "…")
	}
	if w := lipgloss.Width(s); w < width {
		s += strings.Repeat(" ", width-w)
	}
	return s
}

// cell left-aligns s in a column of width cells.
func cell(s string, width int) string { return fit(s, width) }

// rcell right-aligns s in a column of width cells.
func rcell(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return strings.Repeat(" ", width-w) + s
	}
	return fit(s, width)
}
