package cmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/PAlucas/investsite/internal/scheduler"
)

var pipelineCmd = &cobra.Command{
	Use:   "pipeline",
	Short: "Run the full daily pipeline once",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(func(ctx context.Context, a *app) error {
			pipeline := scheduler.NewPipeline(a.cfg.Scheduler, a.loc, a.stocksSvc, a.newsSvc, a.coordinator)
			pipeline.RunOnce(ctx)
			return nil
		})
	},
}
