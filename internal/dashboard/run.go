package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Dicklesworthstone/sysmoni/internal/config"
	"github.com/Dicklesworthstone/sysmoni/internal/input"
	"github.com/Dicklesworthstone/sysmoni/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/sync/errgroup"
)

// Run takes over the terminal and blocks until the user quits. The terminal
// is restored on every exit path, including a panic in the dispatcher.
func Run(ctx context.Context, cfg config.Config, probe Probe) error {
	return run(ctx, cfg, probe)
}

func run(parent context.Context, cfg config.Config, probe Probe, opts ...tea.ProgramOption) error {
	ctx, cancel := context.WithCancel(parent)
	defer cancel()

	group, groupCtx := errgroup.WithContext(ctx)
	done := make(chan struct{})
	messages := make(chan input.Message, input.QueueSize)
	screen := ui.NewScreen(groupCtx, done, opts...)

	dispatcher, errDispatcher := NewDispatcher(cfg, probe, screen, messages)
	if errDispatcher != nil {
		return errDispatcher
	}

	go input.Capture(done, screen.Events(), messages)

	group.Go(func() error {
		// The program can end on its own, e.g. on SIGTERM.
		defer cancel()

		return screen.Run()
	})

	group.Go(func() error {
		// done closes first so the program loop is never stuck forwarding
		// input when the quit request arrives.
		defer screen.Quit()
		defer close(done)

		return supervise(func() error {
			return dispatcher.Run(groupCtx)
		})
	})

	if err := group.Wait(); err != nil {
		if parent.Err() != nil && errors.Is(err, context.Canceled) {
			return nil
		}
		return err
	}
	return nil
}

// supervise runs fn and turns a panic into an error.
func supervise(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("Dispatcher panicked", slog.Any("panic", r))
			err = errors.Join(fmt.Errorf("panic: %v", r), errDashboard)
		}
	}()

	return fn()
}
