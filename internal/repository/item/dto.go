package item

import (
	"fmt"
	"strconv"

	json "github.com/goccy/go-json"

	"github.com/cinevec/cinevec/internal/domain"
)

// buildHashFields converts a domain Item into a flat map[string]string for HSET.
// Genre and keyword lists are stored as JSON arrays.
func buildHashFields(it *domain.Item) map[string]string {
	genres, _ := json.Marshal(it.Genres)
	keywords, _ := json.Marshal(it.Keywords)

	return map[string]string{
		"title":             it.Title,
		"original_title":    it.OriginalTitle,
		"release_date":      it.ReleaseDate,
		"overview":          it.Overview,
		"original_language": it.OriginalLanguage,
		"popularity":        strconv.FormatFloat(it.Popularity, 'f', -1, 64),
		"vote_average":      strconv.FormatFloat(it.VoteAverage, 'f', -1, 64),
		"vote_count":        strconv.FormatInt(it.VoteCount, 10),
		"poster_path":       it.PosterPath,
		"genres":            string(genres),
		"keywords":          string(keywords),
	}
}

// parseHashFields converts a flat hash map back into a domain Item.
func parseHashFields(id int64, m map[string]string) (*domain.Item, error) {
	it := &domain.Item{
		ID:               id,
		Title:            m["title"],
		OriginalTitle:    m["original_title"],
		ReleaseDate:      m["release_date"],
		Overview:         m["overview"],
		OriginalLanguage: m["original_language"],
		PosterPath:       m["poster_path"],
	}

	if v := m["popularity"]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse popularity for item %d: %w", id, err)
		}
		it.Popularity = f
	}
	if v := m["vote_average"]; v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return nil, fmt.Errorf("parse vote_average for item %d: %w", id, err)
		}
		it.VoteAverage = f
	}
	if v := m["vote_count"]; v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("parse vote_count for item %d: %w", id, err)
		}
		it.VoteCount = n
	}

	if v := m["genres"]; v != "" {
		if err := json.Unmarshal([]byte(v), &it.Genres); err != nil {
			return nil, fmt.Errorf("parse genres for item %d: %w", id, err)
		}
	}
	if v := m["keywords"]; v != "" {
		if err := json.Unmarshal([]byte(v), &it.Keywords); err != nil {
			return nil, fmt.Errorf("parse keywords for item %d: %w", id, err)
		}
	}

	return it, nil
}
