package input

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// Classify converts a raw terminal event into a Message. ok is false for
// events the dashboard ignores (releases, clicks, resizes and so on).
func Classify(ev tea.Msg) (msg Message, ok bool) {
	switch ev := ev.(type) {
	case tea.KeyMsg:
		if key.Matches(ev, Keys.Quit) {
			return Quit{}, true
		}
		return KeyPress{Code: ev.String()}, true
	case tea.MouseMsg:
		return classifyMouse(tea.MouseEvent(ev))
	}
	return nil, false
}

func classifyMouse(ev tea.MouseEvent) (Message, bool) {
	if ev.Action == tea.MouseActionMotion {
		return MouseMove{X: ev.X, Y: ev.Y}, true
	}
	if ev.Action != tea.MouseActionPress {
		return nil, false
	}
	switch ev.Button {
	case tea.MouseButtonWheelUp:
		return MouseScroll{Direction: ScrollUp}, true
	case tea.MouseButtonWheelDown:
		return MouseScroll{Direction: ScrollDown}, true
	case tea.MouseButtonWheelLeft:
		return MouseScroll{Direction: ScrollLeft}, true
	case tea.MouseButtonWheelRight:
		return MouseScroll{Direction: ScrollRight}, true
	}
	return nil, false
}

// Capture reads raw events until events is closed or done is closed,
// forwarding classified messages to out. Closing done means the consumer is
// gone; Capture then returns without draining anything still in flight.
func Capture(done <-chan struct{}, events <-chan tea.Msg, out chan<- Message) {
	for {
		var ev tea.Msg
		select {
		case <-done:
			return
		case raw, ok := <-events:
			if !ok {
				return
			}
			ev = raw
		}

		msg, ok := Classify(ev)
		if !ok {
			continue
		}
		select {
		case out <- msg:
		case <-done:
			return
		}
	}
}
