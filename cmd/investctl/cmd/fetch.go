package cmd

import (
	"context"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var historyPages int

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch external data",
}

var fetchStocksCmd = &cobra.Command{
	Use:   "stocks",
	Short: "Ingest the external stock listing",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(func(ctx context.Context, a *app) error {
			created, err := a.stocksSvc.FetchAndSaveStocks(ctx)
			if err != nil {
				return err
			}
			log.Info().Int("created", len(created)).Msg("Stock listing ingested")
			return nil
		})
	},
}

var fetchNewsCmd = &cobra.Command{
	Use:   "news",
	Short: "Discover news URLs, collect and enrich articles",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(func(ctx context.Context, a *app) error {
			updated, err := a.newsSvc.DiscoverNewsURLs(ctx)
			if err != nil {
				return err
			}
			created, err := a.newsSvc.CollectArticles(ctx)
			if err != nil {
				return err
			}
			enriched, err := a.newsSvc.EnrichArticles(ctx)
			if err != nil {
				return err
			}
			log.Info().
				Int("urls_discovered", updated).
				Int("articles_created", created).
				Int("articles_enriched", enriched).
				Msg("News fetch finished")
			return nil
		})
	},
}

var fetchHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Ingest price history pages for tracked stocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runWithApp(func(ctx context.Context, a *app) error {
			results, err := a.coordinator.RunAll(ctx, historyPages)
			if err != nil {
				return err
			}

			saved, skipped, failed := 0, 0, 0
			for _, r := range results {
				saved += r.EntriesSaved
				skipped += r.DuplicatesSkipped
				if !r.Success() {
					failed++
				}
			}
			log.Info().
				Int("stocks", len(results)).
				Int("saved", saved).
				Int("duplicates_skipped", skipped).
				Int("failed", failed).
				Msg("History ingestion finished")
			return nil
		})
	},
}

func init() {
	fetchHistoryCmd.Flags().IntVar(&historyPages, "pages", 1, "pages of history to fetch per stock")

	fetchCmd.AddCommand(fetchStocksCmd)
	fetchCmd.AddCommand(fetchNewsCmd)
	fetchCmd.AddCommand(fetchHistoryCmd)
}
