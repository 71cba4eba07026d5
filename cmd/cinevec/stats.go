package main

import (
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show catalog and vector coverage statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	stats, err := a.vectorize.Stats(ctx)
	if err != nil {
		return err
	}

	out := struct {
		TotalItems      int     `json:"total_items"`
		VectorizedItems int     `json:"vectorized_items"`
		CoveragePercent float64 `json:"coverage_percent"`
		Ready           bool    `json:"ready_for_recommendation"`
		VocabularySize  int     `json:"vocabulary_size"`
	}{
		TotalItems:      stats.TotalItems,
		VectorizedItems: stats.VectorizedItems,
		CoveragePercent: stats.CoveragePercent,
		Ready:           stats.Ready,
		VocabularySize:  a.vectorizer.VocabSize(),
	}
	return printJSON(cmd, out)
}
