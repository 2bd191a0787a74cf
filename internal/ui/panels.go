package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/Dicklesworthstone/sysmoni/internal/focus"
	"github.com/Dicklesworthstone/sysmoni/internal/layout"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/proctable"
	"github.com/charmbracelet/lipgloss"
)

// CPU bars are drawn as fixed-width columns; one horizontal scroll step
// moves by one column.
const (
	cpuBarWidth   = 4
	cpuBarGap     = 2
	cpuBlockWidth = cpuBarWidth + cpuBarGap
)

// Process table column widths; Command takes the rest.
var processWidths = map[proctable.Column]int{
	proctable.User:   10,
	proctable.PID:    8,
	proctable.PPID:   8,
	proctable.CPU:    7,
	proctable.Memory: 10,
	proctable.Time:   10,
}

// CPUCapacity is the number of CPU bars that fit in r.
func CPUCapacity(r layout.Rect) int {
	return max(r.Width-2, 0) / cpuBlockWidth
}

// ProcessCapacity is the number of process rows that fit in r below the
// column headers.
func ProcessCapacity(r layout.Rect) int {
	return max(r.Height-3, 0)
}

// ListCapacity is the number of text lines that fit in r.
func ListCapacity(r layout.Rect) int {
	return max(r.Height-2, 0)
}

func cpuPanel(f Frame) string {
	r := f.Layout.CPU
	cpu := f.Snapshot.CPU
	title := fmt.Sprintf("CPU: %s, Total: %.0f%%, Freq: %.0f MHz", orUnknown(cpu.Brand), cpu.Total, cpu.FrequencyMHz)
	if r.Width < 2 || r.Height < 2 {
		return blank(r)
	}
	iw, ih := r.Width-2, r.Height-2

	start, end := f.CPUView.Window(len(cpu.PerCore))
	contentH := ih - 1
	barH := max(contentH-2, 0)
	barStyle := lipgloss.NewStyle().Foreground(cpuColor)
	gap := strings.Repeat(" ", cpuBarGap)

	var values, labels strings.Builder
	bars := make([]strings.Builder, barH)
	for i := start; i < end; i++ {
		usage := clampPct(cpu.PerCore[i])
		values.WriteString(rcell(fmt.Sprintf("%.0f%%", usage), cpuBarWidth) + gap)
		labels.WriteString(cell(fmt.Sprintf("#%d", i+1), cpuBarWidth) + gap)
		filled := int(math.Round(usage / 100 * float64(barH)))
		for row := range bars {
			if barH-row <= filled {
				bars[row].WriteString(barStyle.Render(strings.Repeat(gaugeFill, cpuBarWidth)) + gap)
			} else {
				bars[row].WriteString(strings.Repeat(" ", cpuBlockWidth))
			}
		}
	}

	lines := []string{values.String()}
	for i := range bars {
		lines = append(lines, bars[i].String())
	}
	lines = append(lines, labelStyle.Render(labels.String()))
	if len(lines) > contentH {
		// Too short for bars: keep the labels visible.
		lines = lines[len(lines)-max(contentH, 0):]
	}

	lines = withHorizontalBar(lines, iw, ih, f.CPUView, cpuColor)
	return box(title, lines, r, cpuColor, f.Focus == focus.CPU)
}

func memoryPanels(f Frame) []string {
	mem := f.Snapshot.Memory
	var out []string
	if r := f.Layout.RAM; !r.Empty() {
		title := fmt.Sprintf("Memory, Total: %s, Used: %s", size(mem.TotalBytes), size(mem.UsedBytes))
		out = append(out, box(title, []string{gaugeBar(pct(mem.UsedBytes, mem.TotalBytes), r.Width-2)}, r, memoryColor, false))
	}
	if r := f.Layout.Swap; !r.Empty() {
		title := fmt.Sprintf("Swap, Total: %s, Used: %s", size(mem.SwapTotal), size(mem.SwapUsed))
		out = append(out, box(title, []string{gaugeBar(pct(mem.SwapUsed, mem.SwapTotal), r.Width-2)}, r, swapColor, false))
	}
	return out
}

func processesPanel(f Frame) string {
	r := f.Layout.Processes
	title := fmt.Sprintf("Processes (%d), sort: %s", len(f.Processes), sortLabel(f.Sort))
	if r.Width < 2 || r.Height < 2 {
		return blank(r)
	}
	iw, ih := r.Width-2, r.Height-2

	lines := []string{processHeader(f.Sort, iw-1)}
	start, end := f.ProcessesView.Window(len(f.Processes))
	for _, p := range f.Processes[start:end] {
		lines = append(lines, processRow(f.Snapshot, p, iw-1))
	}

	lines = withVerticalBar(lines, iw, ih, f.ProcessesView, processesColor)
	return box(title, lines, r, processesColor, f.Focus == focus.Processes)
}

func sortLabel(s proctable.SortState) string {
	column, direction, ok := s.Active()
	if !ok {
		return "cpu+mem"
	}
	return column.String() + " " + direction.Arrow()
}

func commandWidth(width int) int {
	used := 0
	for _, w := range processWidths {
		used += w + 1
	}
	return max(width-used, 0)
}

func processHeader(s proctable.SortState, width int) string {
	column, direction, sorted := s.Active()
	cells := make([]string, 0, len(proctable.Columns))
	for _, c := range proctable.Columns {
		w, ok := processWidths[c]
		if !ok {
			w = commandWidth(width)
		}
		title := c.Title()
		style := headerStyle
		if sorted && c == column {
			title += direction.Arrow()
			style = sortStyle
		}
		cells = append(cells, style.Render(cell(title, w)))
	}
	return strings.Join(cells, " ")
}

func processRow(snap *model.Snapshot, p model.Process, width int) string {
	cells := []string{
		cell(p.User, processWidths[proctable.User]),
		cell(fmt.Sprint(p.PID), processWidths[proctable.PID]),
		cell(fmt.Sprint(p.PPID), processWidths[proctable.PPID]),
		cell(fmt.Sprintf("%.1f", p.CPU), processWidths[proctable.CPU]),
		cell(size(p.MemoryBytes), processWidths[proctable.Memory]),
		cell(clock(p.RunTime), processWidths[proctable.Time]),
		cell(p.Command, commandWidth(width)),
	}
	return strings.Join(cells, " ")
}

func disksPanel(f Frame) string {
	r := f.Layout.Disks
	disks := f.Snapshot.Disks
	var total, avail uint64
	for _, d := range disks {
		total += d.TotalBytes
		avail += d.AvailableBytes
	}
	title := fmt.Sprintf("Disks (%d), Free: %s of %s", len(disks), size(avail), size(total))
	if r.Width < 2 || r.Height < 2 {
		return blank(r)
	}
	iw, ih := r.Width-2, r.Height-2

	var lines []string
	start, end := f.DisksView.Window(len(disks))
	for i := start; i < end; i++ {
		d := disks[i]
		lines = append(lines, fmt.Sprintf("%d. %s on %s [Free: %.0f%% (%s), Used: %.0f%% (%s), Total: %s]",
			i+1, d.Name, d.Mountpoint,
			pct(d.AvailableBytes, d.TotalBytes), size(d.AvailableBytes),
			pct(d.UsedBytes(), d.TotalBytes), size(d.UsedBytes()),
			size(d.TotalBytes)))
	}

	lines = withVerticalBar(lines, iw, ih, f.DisksView, disksColor)
	return box(title, lines, r, disksColor, f.Focus == focus.Disks)
}

func networksPanel(f Frame) string {
	r := f.Layout.Networks
	snap := f.Snapshot
	var tx, rx, txp, rxp uint64
	for _, n := range snap.Networks {
		tx += n.TxBytes
		rx += n.RxBytes
		txp += n.TxPackets
		rxp += n.RxPackets
	}
	title := fmt.Sprintf("Networks, Total: ↑ %s ↓ %s | Packets: TX %d RX %d",
		rate(tx, snap.Elapsed), rate(rx, snap.Elapsed), txp, rxp)
	if r.Width < 2 || r.Height < 2 {
		return blank(r)
	}
	iw, ih := r.Width-2, r.Height-2

	var lines []string
	start, end := f.NetworksView.Window(len(snap.Networks))
	for _, n := range snap.Networks[start:end] {
		lines = append(lines, fmt.Sprintf("%s: ↑ %s ↓ %s | Packets: TX %d RX %d | MAC: %s",
			n.Name, rate(n.TxBytes, snap.Elapsed), rate(n.RxBytes, snap.Elapsed),
			n.TxPackets, n.RxPackets, orUnknown(n.MAC)))
	}

	lines = withVerticalBar(lines, iw, ih, f.NetworksView, networksColor)
	return box(title, lines, r, networksColor, f.Focus == focus.Networks)
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
