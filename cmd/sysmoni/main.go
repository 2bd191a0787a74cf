package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"time"

	"github.com/Dicklesworthstone/sysmoni/internal/config"
	"github.com/Dicklesworthstone/sysmoni/internal/dashboard"
	"github.com/Dicklesworthstone/sysmoni/internal/sampler"
	"github.com/Dicklesworthstone/sysmoni/internal/ui"
	"github.com/spf13/cobra"
)

var (
	BuildVersion   = "master"
	BuildCommit    = "00000000"
	BuildDate      = time.Now().Format("2006-01-02T15:04:05Z")
	BuildGoVersion = runtime.Version()
	cfgFile        string
	jsonOutput     bool
	rootCmd        = &cobra.Command{
		Use:          "sysmoni",
		Short:        "Terminal system monitor",
		Long:         `sysmoni - A live CPU, memory, disk, network and process dashboard for the terminal`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         run,
	}

	versionCmd = &cobra.Command{
		Use:               "version",
		Short:             "Print version information",
		Long:              "Print detailed version information about sysmoni",
		Args:              cobra.NoArgs,
		ValidArgsFunction: cobra.NoFileCompletions,
		Run:               version,
	}
)

var (
	errApp = errors.New("application error")

	// ErrNotTerminal is returned when the dashboard would draw into a pipe or file.
	ErrNotTerminal = errors.New("stdout is not a terminal, use --json for non-interactive output")
)

func main() {
	registerFlags(rootCmd)
	rootCmd.AddCommand(versionCmd)

	// cobra prints the error to stderr.
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}

func registerFlags(cmd *cobra.Command) {
	def := config.Default()
	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"Config file path (default $XDG_CONFIG_HOME/sysmoni/config.yaml)")

	flags := cmd.Flags()
	flags.Duration("refresh", def.RefreshInterval, "Metrics refresh interval")
	flags.Duration("redraw", def.RedrawInterval, "Screen redraw interval")
	flags.Bool("no-header", false, "Hide the header row")
	flags.String("sort", def.Sort, "Initial process sort column: user, pid, ppid, cpu, memory, time or command")
	flags.String("filter", def.Filter, "Only list processes whose command matches this regular expression")
	flags.String("log-level", def.LogLevel, "Log level: debug, info, warn or error")
	flags.String("log-file", def.LogFile, "Log file path (default $XDG_STATE_HOME/sysmoni/sysmoni.log)")
	flags.BoolVar(&jsonOutput, "json", false, "Print one snapshot as JSON and exit")
}

func version(_ *cobra.Command, _ []string) {
	fmt.Printf("sysmoni - Terminal system monitor\n\n") //nolint:forbidigo
	fmt.Printf("  Version: %s\n", BuildVersion)         //nolint:forbidigo
	fmt.Printf("  Commit:  %s\n", BuildCommit)          //nolint:forbidigo
	fmt.Printf("  Built:   %s\n", BuildDate)            //nolint:forbidigo
	fmt.Printf("  Runtime: %s\n\n", BuildGoVersion)     //nolint:forbidigo
}

// run is the main entry point of sysmoni.
func run(cmd *cobra.Command, _ []string) (err error) {
	cfg, errConfig := config.Load(cfgFile, cmd.Flags())
	if errConfig != nil {
		return errors.Join(errConfig, errApp)
	}

	if jsonOutput {
		return writeSnapshot(cmd.OutOrStdout(), sampler.New(), cfg.RefreshInterval)
	}

	level, errLevel := config.ParseLevel(cfg.LogLevel)
	if errLevel != nil {
		return errors.Join(errLevel, errApp)
	}
	// The dashboard owns the terminal, so logs go to a file.
	logFile, errLogger := config.LoggerInit(cfg.LogFile, level)
	if errLogger != nil {
		return errors.Join(errLogger, errApp)
	}

	defer func(closer io.Closer) {
		if errClose := closer.Close(); errClose != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "failed to close log file: %v\n", errClose)
		}
	}(logFile)

	// Runs before the log file closes.
	defer func() {
		if err != nil {
			slog.Error("Exited with error", slog.String("error", err.Error()))
		}
	}()

	slog.Info("Starting sysmoni", slog.String("version", BuildVersion),
		slog.String("commit", BuildCommit), slog.String("date", BuildDate),
		slog.String("go", runtime.Version()))

	if !ui.IsTerminal() {
		return errors.Join(ErrNotTerminal, errApp)
	}

	if errRun := dashboard.Run(cmd.Context(), cfg, sampler.New()); errRun != nil {
		return errors.Join(errRun, errApp)
	}

	return nil
}

// writeSnapshot samples twice, interval apart, so rates and CPU usage cover a
// real window, then prints the second snapshot.
func writeSnapshot(w io.Writer, probe dashboard.Probe, interval time.Duration) error {
	probe.Refresh()
	time.Sleep(interval)

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(probe.Refresh()); err != nil {
		return errors.Join(err, errApp)
	}

	return nil
}
