package dashboard

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/config"
	"github.com/Dicklesworthstone/sysmoni/internal/focus"
	"github.com/Dicklesworthstone/sysmoni/internal/input"
	"github.com/Dicklesworthstone/sysmoni/internal/model"
	"github.com/Dicklesworthstone/sysmoni/internal/proctable"
	"github.com/Dicklesworthstone/sysmoni/internal/ui"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProbe struct {
	calls    atomic.Int32
	snapshot model.Snapshot
	onCall   func(n int32)
}

func (p *fakeProbe) Refresh() model.Snapshot {
	n := p.calls.Add(1)
	if p.onCall != nil {
		p.onCall(n)
	}
	return p.snapshot
}

type fakeScreen struct {
	width, height int
	frames        []string
}

func (s *fakeScreen) Size() (int, int) { return s.width, s.height }
func (s *fakeScreen) Draw(frame string) { s.frames = append(s.frames, frame) }

func testSnapshot() model.Snapshot {
	snap := model.Zero()
	snap.CPU.PerCore = make([]float64, 32)
	snap.Memory = model.Memory{UsedBytes: 1 << 30, TotalBytes: 4 << 30}
	for i := 0; i < 6; i++ {
		snap.Disks = append(snap.Disks, model.Disk{Name: fmt.Sprintf("disk%d", i), TotalBytes: 100, AvailableBytes: 50})
		snap.Networks = append(snap.Networks, model.Network{Name: fmt.Sprintf("eth%d", i)})
	}
	for i := 0; i < 30; i++ {
		snap.Processes = append(snap.Processes, model.Process{PID: int32(i + 1), Command: fmt.Sprintf("cmd%02d", i)})
	}
	return snap
}

func newTestDispatcher(t *testing.T, cfg config.Config) (*Dispatcher, *fakeProbe, *fakeScreen, chan input.Message) {
	t.Helper()
	probe := &fakeProbe{snapshot: testSnapshot()}
	screen := &fakeScreen{width: 100, height: 52}
	messages := make(chan input.Message, input.QueueSize)
	d, err := NewDispatcher(cfg, probe, screen, messages)
	require.NoError(t, err)
	return d, probe, screen, messages
}

// quietConfig keeps the timers out of the way so only queued messages drive
// the loop.
func quietConfig() config.Config {
	cfg := config.Default()
	cfg.RefreshInterval = time.Hour
	cfg.RedrawInterval = time.Hour
	return cfg
}

func primed(t *testing.T) (*Dispatcher, *fakeScreen) {
	t.Helper()
	d, _, screen, _ := newTestDispatcher(t, quietConfig())
	d.refresh()
	d.redraw()
	return d, screen
}

func TestNewDispatcherRejectsBadConfig(t *testing.T) {
	cfg := quietConfig()
	cfg.Sort = "bogus"
	_, err := NewDispatcher(cfg, &fakeProbe{}, &fakeScreen{}, nil)
	require.ErrorIs(t, err, errDashboard)

	cfg = quietConfig()
	cfg.Filter = "("
	_, err = NewDispatcher(cfg, &fakeProbe{}, &fakeScreen{}, nil)
	require.ErrorIs(t, err, errDashboard)
}

func TestNewDispatcherInitialSort(t *testing.T) {
	cfg := quietConfig()
	cfg.Sort = "pid"
	d, _, _, _ := newTestDispatcher(t, cfg)
	assert.Equal(t, proctable.Sorted(proctable.PID), d.sort)
	assert.Equal(t, Running, d.State())
	assert.Equal(t, focus.None, d.focus.Current())
}

func TestRunStopsAtQuit(t *testing.T) {
	d, probe, screen, messages := newTestDispatcher(t, quietConfig())
	messages <- input.KeyPress{Code: "tab"}
	messages <- input.Quit{}
	messages <- input.KeyPress{Code: "tab"}
	messages <- input.KeyPress{Code: "tab"}

	require.NoError(t, d.Run(context.Background()))

	assert.Equal(t, Exiting, d.State())
	assert.Equal(t, focus.CPU, d.focus.Current(), "no transition after quit")
	assert.Len(t, messages, 2)
	assert.EqualValues(t, 1, probe.calls.Load())
	assert.Len(t, screen.frames, 1)
}

func TestRunStopsWhenQueueCloses(t *testing.T) {
	d, _, _, messages := newTestDispatcher(t, quietConfig())
	messages <- input.KeyPress{Code: "tab"}
	close(messages)

	require.NoError(t, d.Run(context.Background()))
	assert.Equal(t, Exiting, d.State())
	assert.Equal(t, focus.CPU, d.focus.Current())
}

func TestRunStopsOnContextDone(t *testing.T) {
	d, _, screen, _ := newTestDispatcher(t, quietConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, d.Run(ctx))
	assert.Len(t, screen.frames, 1, "first frame is drawn before waiting")
}

func TestRunRefreshesOnTimer(t *testing.T) {
	cfg := quietConfig()
	cfg.RefreshInterval = time.Millisecond
	d, probe, _, messages := newTestDispatcher(t, cfg)
	probe.onCall = func(n int32) {
		if n == 3 {
			messages <- input.Quit{}
		}
	}

	require.NoError(t, d.Run(context.Background()))
	assert.GreaterOrEqual(t, probe.calls.Load(), int32(3))
}

func TestRunRedrawsOnTimer(t *testing.T) {
	cfg := quietConfig()
	cfg.RedrawInterval = time.Millisecond
	d, _, screen, messages := newTestDispatcher(t, cfg)
	screen.width, screen.height = 80, 24

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	require.NoError(t, d.Run(ctx))
	assert.Greater(t, len(screen.frames), 1)
	assert.Empty(t, messages)
}

func TestTabCycle(t *testing.T) {
	d, _ := primed(t)
	want := []focus.Target{focus.CPU, focus.Processes, focus.Disks, focus.Networks, focus.None}
	for _, target := range want {
		d.handle(input.KeyPress{Code: "tab"})
		assert.Equal(t, target, d.focus.Current())
	}
	d.handle(input.KeyPress{Code: "shift+tab"})
	assert.Equal(t, focus.Networks, d.focus.Current())
}

func TestScrollOnlyMovesFocusedPanel(t *testing.T) {
	d, _ := primed(t)

	d.handle(input.KeyPress{Code: "j"})
	d.handle(input.KeyPress{Code: "l"})
	assert.Zero(t, d.processesView.Position())
	assert.Zero(t, d.cpuView.Position())

	d.focus.Set(focus.Processes)
	d.handle(input.KeyPress{Code: "j"})
	d.handle(input.KeyPress{Code: "down"})
	d.handle(input.MouseScroll{Direction: input.ScrollDown})
	d.handle(input.KeyPress{Code: "l"})
	assert.Equal(t, 3, d.processesView.Position())
	assert.Zero(t, d.cpuView.Position())
	assert.Zero(t, d.disksView.Position())

	d.handle(input.KeyPress{Code: "k"})
	d.handle(input.MouseScroll{Direction: input.ScrollUp})
	assert.Equal(t, 1, d.processesView.Position())

	d.focus.Set(focus.CPU)
	d.handle(input.KeyPress{Code: "right"})
	d.handle(input.MouseScroll{Direction: input.ScrollRight})
	d.handle(input.KeyPress{Code: "j"})
	assert.Equal(t, 2, d.cpuView.Position())
	assert.Equal(t, 1, d.processesView.Position())

	d.handle(input.KeyPress{Code: "h"})
	d.handle(input.MouseScroll{Direction: input.ScrollLeft})
	d.handle(input.KeyPress{Code: "left"})
	assert.Zero(t, d.cpuView.Position())
}

func TestScrollWithNothingToScroll(t *testing.T) {
	d, _ := primed(t)
	// Six disks fit in the 100x52 layout.
	require.Zero(t, d.disksView.MaxScroll())

	d.focus.Set(focus.Disks)
	d.handle(input.KeyPress{Code: "j"})
	assert.Zero(t, d.disksView.Position())
}

func TestSortKeysNeedProcessesFocus(t *testing.T) {
	d, _ := primed(t)

	d.handle(input.KeyPress{Code: "4"})
	_, _, sorted := d.sort.Active()
	assert.False(t, sorted)

	d.focus.Set(focus.Processes)
	d.handle(input.KeyPress{Code: "4"})
	assert.Equal(t, proctable.Sorted(proctable.CPU), d.sort)

	d.handle(input.KeyPress{Code: "4"})
	column, direction, sorted := d.sort.Active()
	assert.True(t, sorted)
	assert.Equal(t, proctable.CPU, column)
	assert.Equal(t, proctable.Descending, direction)

	d.focus.Set(focus.Disks)
	d.handle(input.KeyPress{Code: "r"})
	_, _, sorted = d.sort.Active()
	assert.True(t, sorted, "reset ignored without focus")

	d.focus.Set(focus.Processes)
	d.handle(input.KeyPress{Code: "r"})
	_, _, sorted = d.sort.Active()
	assert.False(t, sorted)
}

func TestHoverFollowsPointer(t *testing.T) {
	d, _ := primed(t)
	l := d.layout

	d.handle(input.MouseMove{X: l.Disks.X + 3, Y: l.Disks.Y + 1})
	assert.Equal(t, focus.Disks, d.focus.Current())

	d.handle(input.MouseMove{X: l.CPU.X, Y: l.CPU.Y})
	assert.Equal(t, focus.CPU, d.focus.Current())

	d.handle(input.KeyPress{Code: "tab"})
	assert.Equal(t, focus.Processes, d.focus.Current())

	d.handle(input.MouseMove{X: l.RAM.X, Y: l.RAM.Y})
	assert.Equal(t, focus.None, d.focus.Current())

	d.handle(input.MouseMove{X: 0, Y: l.Header.Y})
	assert.Equal(t, focus.None, d.focus.Current())
}

func TestRedrawBindsViewports(t *testing.T) {
	d, screen := primed(t)
	l := d.layout

	assert.Equal(t, 30-ui.ProcessCapacity(l.Processes), d.processesView.MaxScroll())
	assert.Equal(t, ui.ProcessCapacity(l.Processes), d.processesView.Visible())
	assert.Equal(t, 32-ui.CPUCapacity(l.CPU), d.cpuView.MaxScroll())

	require.Len(t, screen.frames, 1)
	assert.Len(t, strings.Split(screen.frames[0], "\n"), 52)
}

func TestRedrawAfterResizeBacksOff(t *testing.T) {
	d, screen := primed(t)
	d.focus.Set(focus.Processes)
	for i := 0; i < 40; i++ {
		d.handle(input.KeyPress{Code: "j"})
	}
	end := d.processesView.MaxScroll()
	require.Equal(t, end, d.processesView.Position())

	screen.height = 80
	d.redraw()
	assert.Less(t, d.processesView.MaxScroll(), end)
	assert.Equal(t, end-1, d.processesView.Position())
}

func TestRedrawAppliesFilter(t *testing.T) {
	cfg := quietConfig()
	cfg.Filter = "^cmd0"
	d, _, screen, _ := newTestDispatcher(t, cfg)
	d.refresh()
	d.redraw()

	assert.Zero(t, d.processesView.MaxScroll())
	assert.Contains(t, screen.frames[0], "Processes (10)")
	assert.NotContains(t, screen.frames[0], "cmd10")
}

func TestSupervise(t *testing.T) {
	err := supervise(func() error { panic("boom") })
	require.ErrorIs(t, err, errDashboard)
	assert.Contains(t, err.Error(), "boom")

	want := errors.New("plain")
	assert.Equal(t, want, supervise(func() error { return want }))
	assert.NoError(t, supervise(func() error { return nil }))
}
