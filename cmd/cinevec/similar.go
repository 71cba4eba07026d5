package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domrec "github.com/cinevec/cinevec/internal/domain/recommend"
)

var similarLimit int

var similarCmd = &cobra.Command{
	Use:   "similar <id>",
	Short: "List items most similar to one item",
	Args:  cobra.ExactArgs(1),
	RunE:  runSimilar,
}

func init() {
	similarCmd.Flags().IntVar(&similarLimit, "limit", domrec.DefaultLimit,
		"maximum number of similar items")
	rootCmd.AddCommand(similarCmd)
}

func runSimilar(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("invalid item id %q", args[0])
	}
	req, err := domrec.NewSimilar(id, similarLimit)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := a.recommend.Similar(ctx, &req)
	if err != nil {
		return err
	}
	return printJSON(cmd, recs)
}
