package ui

import (
	"fmt"
	"strings"

	"github.com/Dicklesworthstone/sysmoni/internal/focus"
	"github.com/Dicklesworthstone/sysmoni/internal/input"
	"github.com/Dicklesworthstone/sysmoni/internal/layout"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/proctable"
	"github.com/Dicklesworthstone/sysmoni/internal/viewport"
	"github.com/charmbracelet/lipgloss"
)

// Frame is everything one redraw needs. Snapshot is borrowed for the duration
// of Compose and not retained. Processes is the already filtered and sorted
// table content.
type Frame struct {
	Layout    layout.Layout
	Snapshot  *model.Snapshot
	Processes []model.Process
	Focus     focus.Target
	Sort      proctable.SortState

	CPUView       *viewport.Viewport
	ProcessesView *viewport.Viewport
	DisksView     *viewport.Viewport
	NetworksView  *viewport.Viewport
}

// Composer turns a Frame into terminal output.
type Composer struct {
	keys input.KeyMap
}

func NewComposer(keys input.KeyMap) *Composer {
	return &Composer{keys: keys}
}

// Compose renders f. Every panel occupies exactly its layout rectangle, so the
// output lines up with the rectangles used for hit-testing.
func (c *Composer) Compose(f Frame) string {
	l := f.Layout
	var parts []string
	if !l.Header.Empty() {
		parts = append(parts, header(f.Snapshot, l.Header.Width))
	}
	if !l.CPUMemory.Empty() {
		right := lipgloss.JoinVertical(lipgloss.Left, memoryPanels(f)...)
		if l.CPU.Empty() {
			parts = append(parts, right)
		} else {
			parts = append(parts, lipgloss.JoinHorizontal(lipgloss.Top, cpuPanel(f), right))
		}
	}
	if !l.Processes.Empty() {
		parts = append(parts, processesPanel(f))
	}
	if !l.Disks.Empty() {
		parts = append(parts, disksPanel(f))
	}
	if !l.Networks.Empty() {
		parts = append(parts, networksPanel(f))
	}
	if !l.Footer.Empty() {
		parts = append(parts, c.footer(f.Focus, l.Footer.Width))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func header(snap *model.Snapshot, width int) string {
	cpu := snap.CPU
	line := strings.Join([]string{
		titleStyle.Render("sysmoni"),
		orUnknown(cpu.Brand),
		fmt.Sprintf("%.0f MHz", cpu.FrequencyMHz),
		fmt.Sprintf("load %.2f %.2f %.2f", cpu.Load1, cpu.Load5, cpu.Load15),
		subtleStyle.Render(snap.Timestamp.Format("Mon Jan 2 15:04:05 MST 2006")),
	}, "  ")
	return fit(line, width)
}

func (c *Composer) footer(target focus.Target, width int) string {
	help := make([]string, 0, len(c.keys.ShortHelp()))
	for _, b := range c.keys.ShortHelp() {
		h := b.Help()
		help = append(help, h.Key+" "+h.Desc)
	}
	line := labelStyle.Render("["+target.String()+"]") + " " + subtleStyle.Render(strings.Join(help, " • "))
	return fit(line, width)
}
