// Package dashboard runs the event loop that owns every piece of mutable
// dashboard state.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/config"
	"github.com/Dicklesworthstone/sysmoni/internal/focus"
	"github.com/Dicklesworthstone/sysmoni/internal/input"
	"github.com/Dicklesworthstone/sysmoni/internal/layout"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/proctable"
	"github.com/Dicklesworthstone/sysmoni/internal/ui"
	"github.com/Dicklesworthstone/sysmoni/internal/viewport"
	"github.com/charmbracelet/bubbles/key"
)

var errDashboard = errors.New("dashboard error")

// AppState is the lifecycle of the dispatcher. Exiting is terminal.
type AppState int

const (
	Running AppState = iota
	Exiting
)

func (s AppState) String() string {
	if s == Exiting {
		return "exiting"
	}
	return "running"
}

// Probe produces metrics snapshots. Refresh blocks until the snapshot is
// complete and degrades to partial data instead of failing.
type Probe interface {
	Refresh() model.Snapshot
}

// Screen receives finished frames.
type Screen interface {
	Size() (width, height int)
	Draw(frame string)
}

// Dispatcher multiplexes the refresh timer, the redraw timer and the input
// queue. Exactly one event is serviced per loop iteration, so nothing it owns
// needs locking.
type Dispatcher struct {
	probe    Probe
	screen   Screen
	messages <-chan input.Message
	composer *ui.Composer
	keys     input.KeyMap

	refreshInterval time.Duration
	redrawInterval  time.Duration
	showHeader      bool
	filter          *regexp.Regexp

	state    AppState
	snapshot model.Snapshot
	layout   layout.Layout
	focus    focus.Machine
	sort     proctable.SortState

	cpuView       *viewport.Viewport
	processesView *viewport.Viewport
	disksView     *viewport.Viewport
	networksView  *viewport.Viewport
}

func NewDispatcher(cfg config.Config, probe Probe, screen Screen, messages <-chan input.Message) (*Dispatcher, error) {
	sort, errSort := cfg.InitialSort()
	if errSort != nil {
		return nil, errors.Join(errSort, errDashboard)
	}
	filter, errFilter := cfg.FilterRegexp()
	if errFilter != nil {
		return nil, errors.Join(errFilter, errDashboard)
	}

	return &Dispatcher{
		probe:           probe,
		screen:          screen,
		messages:        messages,
		composer:        ui.NewComposer(input.Keys),
		keys:            input.Keys,
		refreshInterval: cfg.RefreshInterval,
		redrawInterval:  cfg.RedrawInterval,
		showHeader:      cfg.ShowHeader,
		filter:          filter,
		state:           Running,
		snapshot:        model.Zero(),
		sort:            sort,
		cpuView:         viewport.New(viewport.Horizontal),
		processesView:   viewport.New(viewport.Vertical),
		disksView:       viewport.New(viewport.Vertical),
		networksView:    viewport.New(viewport.Vertical),
	}, nil
}

// State reports the lifecycle state.
func (d *Dispatcher) State() AppState { return d.state }

// Run loops until a Quit message arrives, the message queue closes or ctx is
// done. The first frame is drawn before any event is awaited.
func (d *Dispatcher) Run(ctx context.Context) error {
	slog.Info("Dashboard starting", slog.Duration("refresh", d.refreshInterval),
		slog.Duration("redraw", d.redrawInterval), slog.String("sort", d.sort.String()))
	d.refresh()
	d.redraw()

	refresh := time.NewTicker(d.refreshInterval)
	defer refresh.Stop()
	redraw := time.NewTicker(d.redrawInterval)
	defer redraw.Stop()

	for d.state == Running {
		select {
		case <-ctx.Done():
			slog.Debug("Dispatcher context done", slog.String("error", ctx.Err().Error()))
			return nil
		case <-refresh.C:
			d.refresh()
		case <-redraw.C:
			d.redraw()
		case msg, ok := <-d.messages:
			if !ok {
				slog.Debug("Input queue closed")
				d.state = Exiting
				continue
			}
			d.handle(msg)
		}
	}
	slog.Info("Dashboard exiting")
	return nil
}

func (d *Dispatcher) refresh() {
	start := time.Now()
	d.snapshot = d.probe.Refresh()
	slog.Debug("Refreshed metrics", slog.Duration("took", time.Since(start)),
		slog.Int("processes", len(d.snapshot.Processes)))
}

// redraw recomputes the layout, rebinds every viewport to the current content
// and terminal size, and hands one frame to the screen. The layout is kept
// for hit-testing the next pointer event.
func (d *Dispatcher) redraw() {
	width, height := d.screen.Size()
	d.layout = layout.Compute(width, height, d.showHeader)

	rows := proctable.Rows(&d.snapshot, d.sort, d.filter)
	bind(d.cpuView, len(d.snapshot.CPU.PerCore), ui.CPUCapacity(d.layout.CPU))
	bind(d.processesView, len(rows), ui.ProcessCapacity(d.layout.Processes))
	bind(d.disksView, len(d.snapshot.Disks), ui.ListCapacity(d.layout.Disks))
	bind(d.networksView, len(d.snapshot.Networks), ui.ListCapacity(d.layout.Networks))

	d.screen.Draw(d.composer.Compose(ui.Frame{
		Layout:        d.layout,
		Snapshot:      &d.snapshot,
		Processes:     rows,
		Focus:         d.focus.Current(),
		Sort:          d.sort,
		CPUView:       d.cpuView,
		ProcessesView: d.processesView,
		DisksView:     d.disksView,
		NetworksView:  d.networksView,
	}))
}

func bind(v *viewport.Viewport, content, visible int) {
	v.SetBounds(viewport.Bound(content, visible), visible)
}

// handle applies exactly one transition.
func (d *Dispatcher) handle(msg input.Message) {
	switch msg := msg.(type) {
	case input.Quit:
		d.state = Exiting
	case input.KeyPress:
		d.handleKey(msg)
	case input.MouseScroll:
		d.scroll(msg.Direction)
	case input.MouseMove:
		d.focus.Hover(msg.X, msg.Y, d.layout)
	default:
		slog.Warn("Unhandled message", slog.Any("msg", msg))
	}
}

func (d *Dispatcher) handleKey(k input.KeyPress) {
	switch {
	case key.Matches(k, d.keys.NextPanel):
		slog.Debug("Focus changed", slog.String("focus", d.focus.Next().String()))
	case key.Matches(k, d.keys.PrevPanel):
		slog.Debug("Focus changed", slog.String("focus", d.focus.Prev().String()))
	case key.Matches(k, d.keys.Left):
		d.scroll(input.ScrollLeft)
	case key.Matches(k, d.keys.Right):
		d.scroll(input.ScrollRight)
	case key.Matches(k, d.keys.Up):
		d.scroll(input.ScrollUp)
	case key.Matches(k, d.keys.Down):
		d.scroll(input.ScrollDown)
	case key.Matches(k, d.keys.Sort):
		if !d.focus.Is(focus.Processes) {
			return
		}
		if column, ok := proctable.ColumnForDigit(k.Code); ok {
			d.sort.Toggle(column)
			slog.Debug("Sort changed", slog.String("sort", d.sort.String()))
		}
	case key.Matches(k, d.keys.ResetSort):
		if d.focus.Is(focus.Processes) {
			d.sort.Reset()
		}
	}
}

// scroll moves the focused panel's viewport. Horizontal steps only reach the
// CPU panel and vertical steps only the list panels.
func (d *Dispatcher) scroll(dir input.ScrollDirection) {
	switch dir {
	case input.ScrollLeft:
		if d.focus.Is(focus.CPU) {
			d.cpuView.ScrollPrev()
		}
	case input.ScrollRight:
		if d.focus.Is(focus.CPU) {
			d.cpuView.ScrollNext()
		}
	case input.ScrollUp:
		if v := d.focusedList(); v != nil {
			v.ScrollPrev()
		}
	case input.ScrollDown:
		if v := d.focusedList(); v != nil {
			v.ScrollNext()
		}
	}
}

func (d *Dispatcher) focusedList() *viewport.Viewport {
	switch d.focus.Current() {
	case focus.Processes:
		return d.processesView
	case focus.Disks:
		return d.disksView
	case focus.Networks:
		return d.networksView
	default:
		return nil
	}
}
