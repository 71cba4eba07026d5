package recommend

import "math"

// Recommendation is one ranked result with its item attributes attached.
type Recommendation struct {
	ID                int64    `json:"id"`
	Title             string   `json:"title"`
	OriginalTitle     string   `json:"original_title,omitempty"`
	ReleaseDate       string   `json:"release_date,omitempty"`
	Overview          string   `json:"overview,omitempty"`
	VoteAverage       float64  `json:"vote_average,omitempty"`
	PosterPath        string   `json:"poster_path,omitempty"`
	Genres            []string `json:"genres"`
	Keywords          []string `json:"keywords"`
	Similarity        float64  `json:"similarity"`
	SimilarityPercent float64  `json:"similarity_percent"`
}

// SimilarityPercent converts a cosine similarity score into its percentage
// form, rounded to one decimal place.
func SimilarityPercent(similarity float64) float64 {
	return math.Round(similarity*1000) / 10
}
