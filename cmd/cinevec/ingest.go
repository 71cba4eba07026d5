package main

import (
	"fmt"
	"os"

	json "github.com/goccy/go-json"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/cinevec/cinevec/internal/domain"
)

var ingestVectorize bool

var ingestCmd = &cobra.Command{
	Use:   "ingest [file]",
	Short: "Load catalog items from a JSON file",
	Long: `Reads a JSON array of movie records and stores each as a catalog item.
Expected record fields: id, title, original_title, release_date, overview,
original_language, popularity, vote_average, vote_count, poster_path,
genres, keywords.`,
	Args: cobra.ExactArgs(1),
	RunE: runIngest,
}

func init() {
	ingestCmd.Flags().BoolVar(&ingestVectorize, "vectorize", false,
		"generate vectors for ingested items (requires a trained model)")
	rootCmd.AddCommand(ingestCmd)
}

// ingestRecord mirrors the JSON catalog dump format.
type ingestRecord struct {
	ID               int64    `json:"id"`
	Title            string   `json:"title"`
	OriginalTitle    string   `json:"original_title"`
	ReleaseDate      string   `json:"release_date"`
	Overview         string   `json:"overview"`
	OriginalLanguage string   `json:"original_language"`
	Popularity       float64  `json:"popularity"`
	VoteAverage      float64  `json:"vote_average"`
	VoteCount        int64    `json:"vote_count"`
	PosterPath       string   `json:"poster_path"`
	Genres           []string `json:"genres"`
	Keywords         []string `json:"keywords"`
}

func runIngest(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	var records []ingestRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return fmt.Errorf("parse input: %w", err)
	}

	ids := make([]int64, 0, len(records))
	for i := range records {
		rec := &records[i]
		if rec.ID <= 0 {
			a.logger.Warn("skipping record without id", zap.Int("position", i))
			continue
		}
		it := &domain.Item{
			ID:               rec.ID,
			Title:            rec.Title,
			OriginalTitle:    rec.OriginalTitle,
			ReleaseDate:      rec.ReleaseDate,
			Overview:         rec.Overview,
			OriginalLanguage: rec.OriginalLanguage,
			Popularity:       rec.Popularity,
			VoteAverage:      rec.VoteAverage,
			VoteCount:        rec.VoteCount,
			PosterPath:       rec.PosterPath,
			Genres:           rec.Genres,
			Keywords:         rec.Keywords,
		}
		if err := a.items.Put(ctx, it); err != nil {
			return fmt.Errorf("store item %d: %w", rec.ID, err)
		}
		ids = append(ids, rec.ID)
	}

	cmd.Printf("Ingested %d items\n", len(ids))

	if ingestVectorize {
		if err := a.vectorize.EnsureIndex(ctx); err != nil {
			return fmt.Errorf("ensure index: %w", err)
		}
		summary := a.vectorize.EnsureVectors(ctx, ids)
		return printJSON(cmd, summary)
	}
	return nil
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
