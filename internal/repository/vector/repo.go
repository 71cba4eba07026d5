// Package vector persists item vectors as Redis hashes behind an FT index
// and runs exact KNN similarity queries over them.
package vector

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/cinevec/cinevec/internal/db"
	"github.com/cinevec/cinevec/internal/domain"
)

// IndexName is the FT index covering all item vectors.
const IndexName = domain.KeyPrefix + "vector:idx"

// Hit is a single similarity match.
type Hit struct {
	ItemID     int64
	Similarity float64
}

// store is the consumer interface for vectors (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	CreateIndex(ctx context.Context, def *db.IndexDefinition) error
	IndexExists(ctx context.Context, name string) (bool, error)
	SearchKNN(ctx context.Context, q *db.KNNQuery) (*db.SearchResult, error)
	SearchCount(ctx context.Context, index, query string) (int, error)
}

// Repo implements the vector repository over a searchable hash store.
type Repo struct {
	store store
}

// New creates a vector repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// EnsureIndex creates the vector FT index if it does not exist yet.
func (r *Repo) EnsureIndex(ctx context.Context) error {
	exists, err := r.store.IndexExists(ctx, IndexName)
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	if exists {
		return nil
	}

	def := db.NewIndex(IndexName).
		Prefix(vectorKeyPrefix()).
		Tag("item_id").
		VectorFlat("vector", domain.VectorDim, db.DistanceCosine, 0).
		MustBuild()

	if err := r.store.CreateIndex(ctx, def); err != nil {
		// Concurrent creation is fine.
		if errors.Is(err, db.ErrIndexExists) {
			return nil
		}
		return fmt.Errorf("create index: %w", err)
	}
	return nil
}

// Put stores the vector for an item. The vector length must match the
// index dimension.
func (r *Repo) Put(ctx context.Context, itemID int64, vec []float32) error {
	if len(vec) != domain.VectorDim {
		return fmt.Errorf("item %d has %d dimensions: %w", itemID, len(vec), domain.ErrVectorDimMismatch)
	}

	key := vectorKey(itemID)
	fields := map[string]string{
		"item_id": strconv.FormatInt(itemID, 10),
		"vector":  vectorToBytes(vec),
	}
	if err := r.store.HSet(ctx, key, fields); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns the stored vector for an item.
func (r *Repo) Get(ctx context.Context, itemID int64) ([]float32, error) {
	key := vectorKey(itemID)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrVectorNotFound
		}
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}

	raw, ok := fields["vector"]
	if !ok {
		return nil, domain.ErrVectorNotFound
	}
	return bytesToVector(raw), nil
}

// Exists reports whether a vector is stored for an item.
func (r *Repo) Exists(ctx context.Context, itemID int64) (bool, error) {
	ok, err := r.store.Exists(ctx, vectorKey(itemID))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", vectorKey(itemID), err)
	}
	return ok, nil
}

// Delete removes the vector for an item.
func (r *Repo) Delete(ctx context.Context, itemID int64) error {
	key := vectorKey(itemID)
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// Count returns the number of indexed vectors.
func (r *Repo) Count(ctx context.Context) (int, error) {
	n, err := r.store.SearchCount(ctx, IndexName, "*")
	if err != nil {
		return 0, fmt.Errorf("search count: %w", err)
	}
	return n, nil
}

// TopKSimilar returns the k items most similar to query, best first.
// Items in excludeIDs are filtered out before the KNN candidate set is built,
// so k results can still come back even when many seeds are excluded.
func (r *Repo) TopKSimilar(ctx context.Context, query []float32, k int, excludeIDs []int64) ([]Hit, error) {
	if len(query) != domain.VectorDim {
		return nil, fmt.Errorf("query has %d dimensions: %w", len(query), domain.ErrVectorDimMismatch)
	}
	if k <= 0 {
		return nil, nil
	}

	q := &db.KNNQuery{
		IndexName:    IndexName,
		Vector:       query,
		K:            k,
		ReturnFields: []string{"item_id", "__vector_score"},
	}
	if len(excludeIDs) > 0 {
		q.ExcludeField = "item_id"
		q.ExcludeValues = make([]string, len(excludeIDs))
		for i, id := range excludeIDs {
			q.ExcludeValues[i] = strconv.FormatInt(id, 10)
		}
	}

	result, err := r.store.SearchKNN(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("knn search: %w", err)
	}

	hits := make([]Hit, 0, len(result.Entries))
	for _, entry := range result.Entries {
		id, err := entryItemID(entry)
		if err != nil {
			continue
		}
		hits = append(hits, Hit{ItemID: id, Similarity: entry.Score})
	}
	return hits, nil
}

func entryItemID(entry db.SearchEntry) (int64, error) {
	if raw, ok := entry.Fields["item_id"]; ok {
		return strconv.ParseInt(raw, 10, 64)
	}
	// Fall back to the key suffix when RETURN fields were dropped.
	raw := strings.TrimPrefix(entry.Key, vectorKeyPrefix())
	return strconv.ParseInt(raw, 10, 64)
}

func vectorKey(itemID int64) string {
	return fmt.Sprintf("%svector:%d", domain.KeyPrefix, itemID)
}

func vectorKeyPrefix() string {
	return domain.KeyPrefix + "vector:"
}
