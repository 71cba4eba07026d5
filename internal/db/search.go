package db

// KNNQuery is the input for a vector similarity search.
type KNNQuery struct {
	IndexName string
	Vector    []float32
	K         int
	// ExcludeField / ExcludeValues produce a negated TAG pre-filter, so
	// excluded documents never enter the KNN candidate set.
	ExcludeField  string
	ExcludeValues []string
	ReturnFields  []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit from a search.
type SearchEntry struct {
	Key    string
	Score  float64
	Fields map[string]string
}
