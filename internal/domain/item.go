package domain

import "strings"

// Attribute weights for the composed document. Genres dominate because they
// carry the strongest taste signal; the overview describes content and mood;
// keywords add secondary detail. Changing these changes which items get
// recommended, so they are fixed.
const (
	GenreWeight    = 5
	OverviewWeight = 3
	KeywordWeight  = 2
)

// Item is a movie record as provided by the external record store.
// The core only reads these fields; identity is externally assigned.
type Item struct {
	ID               int64
	Title            string
	OriginalTitle    string
	ReleaseDate      string
	Overview         string
	OriginalLanguage string
	Popularity       float64
	VoteAverage      float64
	VoteCount        int64
	PosterPath       string
	Genres           []string
	Keywords         []string
}

// ComposedDocument builds the single weighted text blob used for
// vectorization: the genre block repeated 5 times, the overview 3 times, the
// keyword block twice, all space-joined. Empty attributes contribute nothing;
// an item with no textual signal yields the empty string.
//
// The weighting is deliberately naive repetition rather than a weighted
// term-frequency formula: duplicated text inflates local term frequency and
// document length but not corpus-wide document frequency. The trained IDF
// statistics depend on this exact construction, so it must not be "fixed".
func (it Item) ComposedDocument() string {
	var parts []string

	if len(it.Genres) > 0 {
		block := strings.Join(it.Genres, " ")
		for range GenreWeight {
			parts = append(parts, block)
		}
	}

	if it.Overview != "" {
		for range OverviewWeight {
			parts = append(parts, it.Overview)
		}
	}

	if len(it.Keywords) > 0 {
		block := strings.Join(it.Keywords, " ")
		for range KeywordWeight {
			parts = append(parts, block)
		}
	}

	return strings.Join(parts, " ")
}
