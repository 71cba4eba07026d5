package main

import (
	"github.com/spf13/cobra"
)

var trainCmd = &cobra.Command{
	Use:   "train",
	Short: "Fit the vocabulary model over the stored catalog",
	Long: `Builds the training corpus from every stored item, fits the model,
persists it, and regenerates all stored vectors against the new vocabulary.`,
	Args: cobra.NoArgs,
	RunE: runTrain,
}

func init() {
	rootCmd.AddCommand(trainCmd)
}

func runTrain(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.vectorize.EnsureIndex(ctx); err != nil {
		return err
	}

	result, err := a.train.Train(ctx)
	if err != nil {
		return err
	}
	return printJSON(cmd, result)
}
