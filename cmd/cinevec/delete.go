package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var deleteCmd = &cobra.Command{
	Use:   "delete <id> [id...]",
	Short: "Remove items and their vectors from the store",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runDelete,
}

func init() {
	rootCmd.AddCommand(deleteCmd)
}

func runDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	ids, err := parseItemIDs(args)
	if err != nil {
		return err
	}

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	for _, id := range ids {
		if err := a.vectorize.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete vector %d: %w", id, err)
		}
		if err := a.items.Delete(ctx, id); err != nil {
			return fmt.Errorf("delete item %d: %w", id, err)
		}
	}

	cmd.Printf("Deleted %d items\n", len(ids))
	return nil
}
