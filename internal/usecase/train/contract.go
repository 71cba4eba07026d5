package train

import (
	"context"

	"github.com/cinevec/cinevec/internal/domain"
)

// ItemReader reads catalog items used as the training corpus.
type ItemReader interface {
	ListIDs(ctx context.Context) ([]int64, error)
	GetMulti(ctx context.Context, ids []int64) (map[int64]*domain.Item, error)
}

// Fitter is the trainable side of the term-weight model.
type Fitter interface {
	Fit(docs []string) error
	MarshalState() ([]byte, error)
	VocabSize() int
}

// ModelStore persists the trained model blob.
type ModelStore interface {
	Save(ctx context.Context, data []byte) error
	Load(ctx context.Context) ([]byte, error)
}

// Regenerator recomputes stored vectors after a retrain.
type Regenerator interface {
	RegenerateAll(ctx context.Context) (int, error)
}
