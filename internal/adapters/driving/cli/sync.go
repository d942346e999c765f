package cli

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghsync/internal/core/domain"
	"github.com/custodia-labs/ghsync/internal/logger"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run exactly one synchronisation cycle",
	Long: `Purges the volatile resource kinds, refetches every resource kind for
every configured repository, and prints the cycle report. Individual
fetch, write or purge failures are reported but do not fail the run;
the next cycle retries them from scratch.`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer comps.close()

	ctx := context.Background()

	if err := comps.client.CheckCredentials(ctx); err != nil {
		logger.Warn("credential preflight: %v", err)
	}

	sync := comps.cfg.SyncConfig()
	if err := comps.store.CreateIndex(ctx, sync.IndexName(), domain.DefaultIndexSettings()); err != nil {
		return err
	}

	cmd.Printf("Synchronising %d repositories for %s...\n", len(sync.Repositories), sync.Owner)
	report := comps.syncer.RunCycle(ctx)

	cmd.Printf("Cycle %s finished in %s\n", report.ID, report.Duration().Round(time.Millisecond))
	cmd.Printf("  documents written: %d\n", report.Documents)
	if !report.Clean() {
		cmd.Printf("  failures: %d fetch, %d write, %d purge (retried next cycle)\n",
			report.FetchFailures, report.WriteFailures, report.PurgeFailures)
	}
	return nil
}
