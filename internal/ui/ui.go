package ui

import (
	"context"
	"errors"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

var ErrUIExit = errors.New("ui error returned")

// Fallback size when the output is not a terminal.
const (
	defaultWidth  = 120
	defaultHeight = 40
)

// Model is the bubbletea side of the Screen. It owns no dashboard state: it
// forwards raw input to the event channel and shows the latest frame.
type Model struct {
	events chan<- tea.Msg
	frames <-chan string
	done   <-chan struct{}
	frame  string
}

// Messages
type frameMsg string

func (m *Model) waitFrame() tea.Cmd {
	frames, done := m.frames, m.done
	return func() tea.Msg {
		select {
		case f := <-frames:
			return frameMsg(f)
		case <-done:
			return nil
		}
	}
}

func (m *Model) Init() tea.Cmd { return m.waitFrame() }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case frameMsg:
		m.frame = string(msg)
		return m, m.waitFrame()
	case tea.KeyMsg, tea.MouseMsg:
		select {
		case m.events <- msg:
		case <-m.done:
		}
	}
	return m, nil
}

func (m *Model) View() string { return m.frame }

// Screen is the terminal: a bubbletea program in raw mode on the alternate
// screen with mouse motion reporting. The program restores the terminal on
// every exit path, including panics inside its own loop.
type Screen struct {
	program *tea.Program
	events  chan tea.Msg
	frames  chan string
	out     *os.File
	width   int
	height  int
}

// NewScreen prepares the terminal program. done must be closed when the
// consumer of Events goes away.
func NewScreen(ctx context.Context, done <-chan struct{}, opts ...tea.ProgramOption) *Screen {
	s := &Screen{
		events: make(chan tea.Msg, 1),
		frames: make(chan string, 1),
		out:    os.Stdout,
		width:  defaultWidth,
		height: defaultHeight,
	}
	model := &Model{events: s.events, frames: s.frames, done: done}
	opts = append([]tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseAllMotion(),
		tea.WithContext(ctx),
	}, opts...)
	s.program = tea.NewProgram(model, opts...)
	return s
}

// Run blocks until the program quits.
func (s *Screen) Run() error {
	if _, err := s.program.Run(); err != nil {
		return errors.Join(err, ErrUIExit)
	}
	return nil
}

// Events is the raw terminal event stream.
func (s *Screen) Events() <-chan tea.Msg { return s.events }

// Draw replaces the pending frame without blocking; a frame that has not been
// picked up yet is superseded.
func (s *Screen) Draw(frame string) {
	select {
	case <-s.frames:
	default:
	}
	select {
	case s.frames <- frame:
	default:
	}
}

// Size queries the terminal, falling back to the last known size.
func (s *Screen) Size() (width, height int) {
	if w, h, err := term.GetSize(int(s.out.Fd())); err == nil && w > 0 && h > 0 {
		s.width, s.height = w, h
	}
	return s.width, s.height
}

// Quit stops the program; Run returns once the terminal is restored.
func (s *Screen) Quit() { s.program.Quit() }

// IsTerminal reports whether stdout is attached to a terminal.
func IsTerminal() bool { return term.IsTerminal(int(os.Stdout.Fd())) }
