// Package cli wires the cobra command tree for ghsync.
package cli

import (
	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/ghsync/internal/adapters/driven/config/file"
	"github.com/custodia-labs/ghsync/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/ghsync/internal/connectors/github"
	"github.com/custodia-labs/ghsync/internal/core/services"
	"github.com/custodia-labs/ghsync/internal/logger"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ghsync",
	Short: "Synchronise GitHub repository data into a local document store",
	Long: `ghsync periodically pulls activity events, issues, pull requests,
milestones, labels and collaborators for a configured set of
repositories and keeps them searchable in a local document store.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "",
		"configuration file (default ~/.ghsync/config.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"enable debug logging")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// components bundles everything a command needs to sync.
type components struct {
	cfg       *configfile.Config
	store     *sqlite.Store
	client    *github.Client
	syncer    *services.Syncer
	scheduler *services.Scheduler
}

// buildComponents loads the configuration and assembles the sync stack.
func buildComponents() (*components, error) {
	cfg, err := configfile.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	sync := cfg.SyncConfig()

	store, err := sqlite.NewStore(cfg.Store.Path)
	if err != nil {
		return nil, err
	}

	client := github.NewClient(sync.Credentials)
	pacer := github.NewPacer(sync.PaceInterval)
	fetcher := github.NewFetcher(client, pacer, github.FetcherConfig{
		Owner:    sync.Owner,
		PageSize: sync.PageSize,
	})

	syncer := services.NewSyncer(sync, store, fetcher)
	scheduler := services.NewScheduler(sync, store, syncer)

	return &components{
		cfg:       cfg,
		store:     store,
		client:    client,
		syncer:    syncer,
		scheduler: scheduler,
	}, nil
}

// close releases the component stack. Safe on a nil receiver, so a
// deferred close does not care whether a reload left any stack behind.
func (c *components) close() {
	if c == nil {
		return
	}
	if c.store != nil {
		if err := c.store.Close(); err != nil {
			logger.Warn("closing store: %v", err)
		}
	}
}
