package main

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var vectorizeCmd = &cobra.Command{
	Use:   "vectorize [id...]",
	Short: "Generate vectors for catalog items",
	Long: `Generates a vector for each given item ID, skipping items that already
have one. Without arguments the whole catalog is covered.`,
	RunE: runVectorize,
}

func init() {
	rootCmd.AddCommand(vectorizeCmd)
}

func runVectorize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.vectorize.EnsureIndex(ctx); err != nil {
		return err
	}

	ids, err := vectorizeTargets(ctx, a, args)
	if err != nil {
		return err
	}

	summary := a.vectorize.EnsureVectors(ctx, ids)
	return printJSON(cmd, summary)
}

func vectorizeTargets(ctx context.Context, a *app, args []string) ([]int64, error) {
	if len(args) == 0 {
		return a.items.ListIDs(ctx)
	}
	ids := make([]int64, 0, len(args))
	for _, arg := range args {
		id, err := strconv.ParseInt(arg, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid item id %q", arg)
		}
		ids = append(ids, id)
	}
	return ids, nil
}
