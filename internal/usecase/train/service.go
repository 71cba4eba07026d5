// Package train fits the vocabulary model over the item catalog and
// persists it for other processes.
package train

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/cinevec/cinevec/internal/domain"
	"github.com/cinevec/cinevec/internal/metrics"
)

// corpusBatchSize bounds how many items are fetched per round trip while
// building the training corpus.
const corpusBatchSize = 200

// Result describes a completed training run.
type Result struct {
	Documents   int `json:"documents"`
	VocabSize   int `json:"vocab_size"`
	Regenerated int `json:"regenerated"`
}

// Service trains the vocabulary model.
type Service struct {
	items  ItemReader
	fitter Fitter
	stores []ModelStore
	regen  Regenerator
	logger *zap.Logger
}

// New creates a train service. The model blob is saved to every store, so a
// file and a shared database copy can be kept in sync.
func New(items ItemReader, fitter Fitter, stores []ModelStore, regen Regenerator, logger *zap.Logger) *Service {
	return &Service{
		items:  items,
		fitter: fitter,
		stores: stores,
		regen:  regen,
		logger: logger,
	}
}

// Train fits the model over every stored item's composed document, persists
// the resulting state, and regenerates all stored vectors so they reflect the
// new vocabulary.
func (s *Service) Train(ctx context.Context) (Result, error) {
	docs, err := s.buildCorpus(ctx)
	if err != nil {
		return Result{}, err
	}
	if len(docs) == 0 {
		return Result{}, fmt.Errorf("training corpus: %w", domain.ErrItemNotFound)
	}

	if err := s.fitter.Fit(docs); err != nil {
		return Result{}, fmt.Errorf("fit model: %w", err)
	}

	if err := s.persist(ctx); err != nil {
		return Result{}, err
	}

	regenerated := 0
	if s.regen != nil {
		regenerated, err = s.regen.RegenerateAll(ctx)
		if err != nil {
			return Result{}, fmt.Errorf("regenerate after train: %w", err)
		}
	}

	vocab := s.fitter.VocabSize()
	metrics.VocabularySize.Set(float64(vocab))
	s.logger.Info("model trained",
		zap.Int("documents", len(docs)),
		zap.Int("vocab_size", vocab),
		zap.Int("regenerated", regenerated),
	)

	return Result{Documents: len(docs), VocabSize: vocab, Regenerated: regenerated}, nil
}

// buildCorpus composes one document per stored item, in ID order.
func (s *Service) buildCorpus(ctx context.Context) ([]string, error) {
	ids, err := s.items.ListIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	docs := make([]string, 0, len(ids))
	for start := 0; start < len(ids); start += corpusBatchSize {
		end := min(start+corpusBatchSize, len(ids))
		batch, err := s.items.GetMulti(ctx, ids[start:end])
		if err != nil {
			return nil, fmt.Errorf("load corpus batch: %w", err)
		}
		for _, id := range ids[start:end] {
			it, ok := batch[id]
			if !ok {
				continue
			}
			docs = append(docs, it.ComposedDocument())
		}
	}
	return docs, nil
}

func (s *Service) persist(ctx context.Context) error {
	blob, err := s.fitter.MarshalState()
	if err != nil {
		return fmt.Errorf("marshal model: %w", err)
	}
	for _, store := range s.stores {
		if err := store.Save(ctx, blob); err != nil {
			return fmt.Errorf("save model: %w", err)
		}
	}
	return nil
}
