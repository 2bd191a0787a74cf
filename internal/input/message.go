// Package input turns raw terminal events into dashboard messages.
//
// Capture runs on its own goroutine and is the only producer on the message
// queue. It never touches dashboard state.
package input

import "fmt"

// QueueSize is the capacity of the message queue between Capture and the
// dispatcher.
const QueueSize = 10

// Message is one of KeyPress, MouseScroll, MouseMove or Quit.
type Message interface {
	message()
}

// KeyPress carries a key in bubbletea notation ("tab", "shift+tab", "j").
type KeyPress struct {
	Code string
}

// String lets a KeyPress be matched against key bindings.
func (k KeyPress) String() string { return k.Code }

// ScrollDirection is the direction of a wheel event.
type ScrollDirection int

const (
	ScrollUp ScrollDirection = iota
	ScrollDown
	ScrollLeft
	ScrollRight
)

func (d ScrollDirection) String() string {
	switch d {
	case ScrollUp:
		return "up"
	case ScrollDown:
		return "down"
	case ScrollLeft:
		return "left"
	case ScrollRight:
		return "right"
	default:
		return fmt.Sprintf("ScrollDirection(%d)", int(d))
	}
}

// MouseScroll is a wheel event.
type MouseScroll struct {
	Direction ScrollDirection
}

// MouseMove is a pointer motion event in terminal cells.
type MouseMove struct {
	X, Y int
}

// Quit asks the dashboard to exit.
type Quit struct{}

func (KeyPress) message()    {}
func (MouseScroll) message() {}
func (MouseMove) message()   {}
func (Quit) message()        {}
