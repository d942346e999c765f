package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/ghsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghsync/internal/logger"
)

var watchConfig bool

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the synchroniser as a daemon",
	Long: `Starts the background worker, which repeats full resync cycles at the
configured interval until interrupted. A stop signal lets the in-flight
cycle finish before the process exits; a second signal exits at once.`,
	RunE: runDaemon,
}

func init() {
	runCmd.Flags().BoolVar(&watchConfig, "watch", false,
		"restart the worker when the configuration file changes")
	rootCmd.AddCommand(runCmd)
}

func runDaemon(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Once the first signal lands the shutdown is already underway, so
	// restore default handling: a second signal kills the process instead
	// of waiting out the in-flight cycle.
	context.AfterFunc(ctx, stop)

	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer func() { comps.close() }()

	// Credential problems should surface at startup, not one cycle in.
	// They are a warning only: anonymous access still syncs public data.
	if err := comps.client.CheckCredentials(ctx); err != nil {
		logger.Warn("credential preflight: %v", err)
	}

	logger.Info("started, index %s, %d repositories",
		comps.cfg.SyncConfig().IndexName(), len(comps.cfg.Repositories))

	var events <-chan fsnotify.Event
	if watchConfig {
		watcher, ch, err := watchConfigFile()
		if err != nil {
			logger.Warn("config watch disabled: %v", err)
		} else {
			defer watcher.Close()
			events = ch
		}
	}

	comps, err = supervise(ctx, comps, events, buildComponents)
	return err
}

// supervise runs the worker until ctx is cancelled, restarting it when
// the configuration file changes. The worker is started on a fresh
// context: cancelling ctx requests a stop but never aborts the cycle
// already in flight. It returns whichever component stack is current so
// the caller can release it; nil when a reload left none.
func supervise(ctx context.Context, comps *components, events <-chan fsnotify.Event, rebuild func() (*components, error)) (*components, error) {
	if err := comps.scheduler.Start(context.Background()); err != nil {
		return comps, err
	}

	for {
		select {
		case <-ctx.Done():
			logger.Info("shutting down after current cycle")
			return comps, comps.scheduler.Stop()

		case event := <-events:
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) {
				continue
			}
			logger.Info("configuration changed, restarting worker")
			if err := comps.scheduler.Stop(); err != nil {
				logger.Warn("stopping worker: %v", err)
			}
			comps.close()

			next, err := rebuild()
			if err != nil {
				return nil, err
			}
			comps = next
			if err := comps.scheduler.Start(context.Background()); err != nil {
				return comps, err
			}
		}
	}
}

// watchConfigFile watches the active configuration file for changes.
func watchConfigFile() (*fsnotify.Watcher, chan fsnotify.Event, error) {
	path := cfgPath
	if path == "" {
		var err error
		path, err = configfile.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, err
	}
	if err := watcher.Add(path); err != nil {
		watcher.Close()
		return nil, nil, err
	}

	go func() {
		for err := range watcher.Errors {
			logger.Warn("config watch: %v", err)
		}
	}()

	return watcher, watcher.Events, nil
}
