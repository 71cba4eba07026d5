package recommend

import (
	"context"

	"github.com/cinevec/cinevec/internal/domain"
	"github.com/cinevec/cinevec/internal/domain/vectorgen"
	"github.com/cinevec/cinevec/internal/repository/vector"
)

// VectorReader reads stored item vectors and runs similarity queries.
type VectorReader interface {
	Get(ctx context.Context, itemID int64) ([]float32, error)
	TopKSimilar(ctx context.Context, query []float32, k int, excludeIDs []int64) ([]vector.Hit, error)
}

// ItemReader loads item details for result hydration.
type ItemReader interface {
	GetMulti(ctx context.Context, ids []int64) (map[int64]*domain.Item, error)
}

// VectorEnsurer lazily creates missing vectors for seed items.
type VectorEnsurer interface {
	EnsureVectors(ctx context.Context, itemIDs []int64) vectorgen.Summary
}
