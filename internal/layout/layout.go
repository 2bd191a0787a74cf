// Package layout splits the terminal into the dashboard's panel rectangles.
//
// Compute is pure: the same terminal size always yields the same tree. The
// result is recomputed on every redraw and kept until the next one so that
// pointer events can be hit-tested against what is on screen.
package layout

// Band heights of the main area, top to bottom, in percent. The networks band
// takes whatever is left so rounding never leaves unclaimed rows.
const (
	CPUMemoryPercent = 30
	ProcessesPercent = 30
	DisksPercent     = 18

	CPUWidthPercent  = 50
	RAMHeightPercent = 50
)

// Rect is an axis-aligned rectangle in terminal cells.
type Rect struct {
	X, Y          int
	Width, Height int
}

// Contains reports whether the point lies inside r. The high edges are
// exclusive so adjacent rectangles never both claim a boundary cell.
func (r Rect) Contains(x, y int) bool {
	return r.X <= x && x < r.X+r.Width &&
		r.Y <= y && y < r.Y+r.Height
}

// Empty reports whether r covers no cells.
func (r Rect) Empty() bool { return r.Width <= 0 || r.Height <= 0 }

// Layout is the panel tree for one frame.
type Layout struct {
	Area   Rect
	Header Rect // zero when the header is disabled
	Main   Rect
	Footer Rect

	CPUMemory Rect
	CPU       Rect
	Memory    Rect
	RAM       Rect
	Swap      Rect
	Processes Rect
	Disks     Rect
	Networks  Rect
}

// Compute builds the layout for a width x height terminal.
func Compute(width, height int, header bool) Layout {
	area := Rect{Width: max(width, 0), Height: max(height, 0)}
	l := Layout{Area: area}

	rest := area
	if header {
		l.Header, rest = cutTop(rest, 1)
	}
	l.Main, l.Footer = cutBottom(rest, 1)

	bands := splitVertical(l.Main, CPUMemoryPercent, ProcessesPercent, DisksPercent)
	l.CPUMemory, l.Processes, l.Disks, l.Networks = bands[0], bands[1], bands[2], bands[3]

	cols := splitHorizontal(l.CPUMemory, CPUWidthPercent)
	l.CPU, l.Memory = cols[0], cols[1]

	mem := splitVertical(l.Memory, RAMHeightPercent)
	l.RAM, l.Swap = mem[0], mem[1]
	return l
}

func cutTop(r Rect, n int) (top, rest Rect) {
	n = min(n, r.Height)
	top = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: n}
	rest = Rect{X: r.X, Y: r.Y + n, Width: r.Width, Height: r.Height - n}
	return top, rest
}

func cutBottom(r Rect, n int) (rest, bottom Rect) {
	n = min(n, r.Height)
	rest = Rect{X: r.X, Y: r.Y, Width: r.Width, Height: r.Height - n}
	bottom = Rect{X: r.X, Y: r.Y + r.Height - n, Width: r.Width, Height: n}
	return rest, bottom
}

// splitVertical stacks len(percents)+1 rows; the last row gets the remainder.
func splitVertical(r Rect, percents ...int) []Rect {
	sizes := split(r.Height, percents)
	out := make([]Rect, len(sizes))
	y := r.Y
	for i, h := range sizes {
		out[i] = Rect{X: r.X, Y: y, Width: r.Width, Height: h}
		y += h
	}
	return out
}

// splitHorizontal places len(percents)+1 columns; the last gets the remainder.
func splitHorizontal(r Rect, percents ...int) []Rect {
	sizes := split(r.Width, percents)
	out := make([]Rect, len(sizes))
	x := r.X
	for i, w := range sizes {
		out[i] = Rect{X: x, Y: r.Y, Width: w, Height: r.Height}
		x += w
	}
	return out
}

func split(total int, percents []int) []int {
	sizes := make([]int, 0, len(percents)+1)
	used := 0
	for _, p := range percents {
		n := min(total*p/100, total-used)
		sizes = append(sizes, n)
		used += n
	}
	return append(sizes, total-used)
}
