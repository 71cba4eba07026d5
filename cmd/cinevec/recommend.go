package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	domrec "github.com/cinevec/cinevec/internal/domain/recommend"
)

var recommendLimit int

var recommendCmd = &cobra.Command{
	Use:   "recommend <id> [id...]",
	Short: "Recommend items for a set of liked items",
	Long: `Aggregates the vectors of the given liked items into a preference
vector and prints the closest catalog items, excluding the inputs.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRecommend,
}

func init() {
	recommendCmd.Flags().IntVar(&recommendLimit, "limit", domrec.DefaultLimit,
		"maximum number of recommendations")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseItemIDs(args)
	if err != nil {
		return err
	}
	req, err := domrec.New(ids, recommendLimit)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	recs, err := a.recommend.Recommend(ctx, &req)
	if err != nil {
		return err
	}
	return printJSON(cmd, recs)
}

func parseItemIDs(args []string) ([]int64, error) {
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
