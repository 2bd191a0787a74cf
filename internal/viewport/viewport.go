// Package viewport tracks the scroll window of one dashboard panel.
//
// A Viewport only knows about discrete scroll steps. What a step means (one
// table row, one CPU bar) is decided by the caller through SetBounds, which is
// called once per frame because both the panel size and the content length
// can change between frames.
package viewport

// Orientation is the scroll axis of a panel.
type Orientation int

const (
	Vertical Orientation = iota
	Horizontal
)

func (o Orientation) String() string {
	if o == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Viewport holds the scroll position of a panel. The zero value is a vertical
// viewport with nothing to scroll.
type Viewport struct {
	orientation Orientation
	position    int
	maxScroll   int
	visible     int
}

// New returns an empty viewport scrolling along o.
func New(o Orientation) *Viewport {
	return &Viewport{orientation: o}
}

func (v *Viewport) Orientation() Orientation { return v.orientation }
func (v *Viewport) Position() int            { return v.position }
func (v *Viewport) MaxScroll() int           { return v.maxScroll }
func (v *Viewport) Visible() int             { return v.visible }

// ScrollNext moves one step towards the end. With nothing to scroll it only
// pulls a stale position back into range.
func (v *Viewport) ScrollNext() {
	if v.maxScroll == 0 {
		v.position = 0
		return
	}
	v.position = clamp(v.position+1, 0, v.maxScroll)
}

// ScrollPrev moves one step towards the start. With nothing to scroll it only
// pulls a stale position back into range.
func (v *Viewport) ScrollPrev() {
	if v.maxScroll == 0 {
		v.position = 0
		return
	}
	v.position = clamp(v.position-1, 0, v.maxScroll)
}

// SetBounds installs the bounds computed for the current frame.
//
// When the bound shrinks while the viewport sat at the old end, the position
// backs off by a single step instead of jumping to the new end. Any other
// out-of-range position is clamped.
func (v *Viewport) SetBounds(maxScroll, visible int) {
	maxScroll = max(maxScroll, 0)
	switch {
	case maxScroll < v.maxScroll && v.position == v.maxScroll && v.position > 0:
		v.position--
	case v.position > maxScroll:
		v.position = maxScroll
	}
	v.maxScroll = maxScroll
	v.visible = max(visible, 0)
}

// Window returns the half-open index range of items visible out of n.
// Callers can slice with it even in a frame where the position still sits
// past the new bound; such a frame still shows as many items as fit.
func (v *Viewport) Window(n int) (start, end int) {
	n = max(n, 0)
	start = clamp(v.position, 0, Bound(n, v.visible))
	end = min(start+v.visible, n)
	return start, end
}

// Thumb maps the position onto a scrollbar track of the given length and
// returns the thumb offset and length in cells. The same proportional mapping
// serves both line-based and block-based content:
//
//	offset = position / maxScroll * (track - length)
func (v *Viewport) Thumb(track int) (offset, length int) {
	if track <= 0 {
		return 0, 0
	}
	if v.maxScroll == 0 {
		return 0, track
	}
	total := v.visible + v.maxScroll
	length = 1
	if total > 0 {
		length = clamp(track*v.visible/total, 1, track)
	}
	pos := clamp(v.position, 0, v.maxScroll)
	offset = pos * (track - length) / v.maxScroll
	return offset, length
}

// Bound returns the largest useful scroll position for content of the given
// length shown through a window of visible items.
func Bound(content, visible int) int {
	return max(content-max(visible, 0), 0)
}

func clamp(n, lo, hi int) int {
	if n < lo {
		return lo
	}
	if n > hi {
		return hi
	}
	return n
}
