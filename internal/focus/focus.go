// Package focus tracks which dashboard panel receives scroll and sort keys.
package focus

import "github.com/Dicklesworthstone/sysmoni/internal/layout"

// Target identifies a focusable panel.
type Target int

const (
	None Target = iota
	CPU
	Processes
	Disks
	Networks
)

// cycle is the keyboard order. None sits between Networks and CPU.
var cycle = []Target{CPU, Processes, Disks, Networks, None}

func (t Target) String() string {
	switch t {
	case CPU:
		return "cpu"
	case Processes:
		return "processes"
	case Disks:
		return "disks"
	case Networks:
		return "networks"
	default:
		return "none"
	}
}

// Next returns the target after t in keyboard order.
func (t Target) Next() Target {
	return cycle[(t.index()+1)%len(cycle)]
}

// Prev returns the target before t in keyboard order.
func (t Target) Prev() Target {
	return cycle[(t.index()-1+len(cycle))%len(cycle)]
}

func (t Target) index() int {
	for i, c := range cycle {
		if c == t {
			return i
		}
	}
	return len(cycle) - 1
}

// Machine holds the current focus. The zero value has nothing focused.
type Machine struct {
	current Target
}

// Current returns the focused target.
func (m *Machine) Current() Target { return m.current }

// Is reports whether t has focus.
func (m *Machine) Is(t Target) bool { return m.current == t }

// Next advances focus in keyboard order and returns the new target.
func (m *Machine) Next() Target {
	m.current = m.current.Next()
	return m.current
}

// Prev moves focus backwards in keyboard order and returns the new target.
func (m *Machine) Prev() Target {
	m.current = m.current.Prev()
	return m.current
}

// Set focuses t directly.
func (m *Machine) Set(t Target) { m.current = t }

// Hover focuses the panel under the pointer, or None when the pointer is
// over no focusable panel. It overrides any keyboard selection.
func (m *Machine) Hover(x, y int, l layout.Layout) Target {
	m.current = HitTest(x, y, l)
	return m.current
}

// HitTest resolves a point to a panel, checking CPU, Processes, Disks and
// Networks in that order.
func HitTest(x, y int, l layout.Layout) Target {
	candidates := []struct {
		target Target
		rect   layout.Rect
	}{
		{CPU, l.CPU},
		{Processes, l.Processes},
		{Disks, l.Disks},
		{Networks, l.Networks},
	}
	for _, c := range candidates {
		if c.rect.Contains(x, y) {
			return c.target
		}
	}
	return None
}
