package vectorize

import (
	"context"

	"github.com/cinevec/cinevec/internal/domain"
)

// ItemReader reads catalog items for vector generation.
type ItemReader interface {
	Get(ctx context.Context, id int64) (*domain.Item, error)
	ListIDs(ctx context.Context) ([]int64, error)
	Count(ctx context.Context) (int, error)
}

// VectorStore persists item vectors.
type VectorStore interface {
	EnsureIndex(ctx context.Context) error
	Put(ctx context.Context, itemID int64, vec []float32) error
	Exists(ctx context.Context, itemID int64) (bool, error)
	Delete(ctx context.Context, itemID int64) error
	Count(ctx context.Context) (int, error)
}

// Transformer turns a composed document into a term-weight vector.
type Transformer interface {
	Transform(text string) ([]float32, error)
	Trained() bool
}
