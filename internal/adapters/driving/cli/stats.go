package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/ghsync/internal/core/domain"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show stored document counts per resource kind",
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	comps, err := buildComponents()
	if err != nil {
		return err
	}
	defer comps.close()

	sync := comps.cfg.SyncConfig()
	stats, err := comps.store.Stats(context.Background(), sync.IndexName())
	if err != nil {
		return err
	}

	cmd.Printf("Index %s:\n", sync.IndexName())
	total := 0
	for _, kind := range domain.AllKinds() {
		cmd.Printf("  %-14s %d\n", kind, stats[kind])
		total += stats[kind]
	}
	cmd.Printf("  %-14s %d\n", "total", total)
	return nil
}
