// Package vectorize turns catalog items into stored term-weight vectors.
package vectorize

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/cinevec/cinevec/internal/domain"
	"github.com/cinevec/cinevec/internal/domain/vectorgen"
	"github.com/cinevec/cinevec/internal/metrics"
	"github.com/cinevec/cinevec/internal/tfidf"
)

// DefaultParallelism bounds concurrent vector regeneration.
const DefaultParallelism = 8

// Stats describes vector coverage over the catalog.
type Stats struct {
	TotalItems      int     `json:"total_items"`
	VectorizedItems int     `json:"vectorized_items"`
	CoveragePercent float64 `json:"coverage_percent"`
	Ready           bool    `json:"ready_for_recommendation"`
}

// Service generates and stores item vectors.
type Service struct {
	items       ItemReader
	vectors     VectorStore
	transformer Transformer
	logger      *zap.Logger
	parallelism int
}

// New creates a vectorize service.
func New(items ItemReader, vectors VectorStore, transformer Transformer, logger *zap.Logger) *Service {
	return &Service{
		items:       items,
		vectors:     vectors,
		transformer: transformer,
		logger:      logger,
		parallelism: DefaultParallelism,
	}
}

// WithParallelism configures how many items are regenerated concurrently.
func (s *Service) WithParallelism(n int) *Service {
	if n > 0 {
		s.parallelism = n
	}
	return s
}

// Vector computes the stored-dimension vector for an item without persisting it.
func (s *Service) Vector(it *domain.Item) ([]float32, error) {
	if !s.transformer.Trained() {
		return nil, domain.ErrModelNotTrained
	}

	vec, err := s.transformer.Transform(it.ComposedDocument())
	if err != nil {
		return nil, fmt.Errorf("transform item %d: %w", it.ID, err)
	}
	return tfidf.FitDim(vec, domain.VectorDim), nil
}

// Generate computes and stores the vector for one item, replacing any
// existing vector.
func (s *Service) Generate(ctx context.Context, itemID int64) error {
	start := time.Now()

	it, err := s.items.Get(ctx, itemID)
	if err != nil {
		metrics.VectorGenerationTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("load item %d: %w", itemID, err)
	}

	vec, err := s.Vector(it)
	if err != nil {
		metrics.VectorGenerationTotal.WithLabelValues("failed").Inc()
		return err
	}

	if err := s.vectors.Put(ctx, itemID, vec); err != nil {
		metrics.VectorGenerationTotal.WithLabelValues("failed").Inc()
		return fmt.Errorf("store vector %d: %w", itemID, err)
	}

	metrics.VectorGenerationTotal.WithLabelValues("created").Inc()
	metrics.VectorGenerationDuration.Observe(time.Since(start).Seconds())
	return nil
}

// EnsureVectors makes sure every listed item has a stored vector, creating
// the missing ones. Failures are isolated per item: one broken item never
// aborts the rest of the batch.
func (s *Service) EnsureVectors(ctx context.Context, itemIDs []int64) vectorgen.Summary {
	results := make([]vectorgen.Result, 0, len(itemIDs))

	for _, id := range itemIDs {
		results = append(results, s.ensureOne(ctx, id))
	}

	summary := vectorgen.Summarize(results)
	if summary.Failed > 0 {
		s.logger.Warn("vector generation had failures",
			zap.Int("failed", summary.Failed),
			zap.Int64s("failed_ids", summary.FailedIDs),
		)
	}
	return summary
}

func (s *Service) ensureOne(ctx context.Context, itemID int64) vectorgen.Result {
	exists, err := s.vectors.Exists(ctx, itemID)
	if err != nil {
		metrics.VectorGenerationTotal.WithLabelValues("failed").Inc()
		return vectorgen.NewFailed(itemID, fmt.Errorf("check vector %d: %w", itemID, err))
	}
	if exists {
		metrics.VectorGenerationTotal.WithLabelValues("exists").Inc()
		return vectorgen.NewExists(itemID)
	}

	if err := s.Generate(ctx, itemID); err != nil {
		s.logger.Warn("failed to generate vector",
			zap.Int64("item_id", itemID),
			zap.Error(err),
		)
		return vectorgen.NewFailed(itemID, err)
	}
	return vectorgen.NewCreated(itemID)
}

// RegenerateAll recomputes every stored item's vector with the current model.
// Failures are isolated per item: a broken item is logged and skipped, the
// rest of the catalog is still regenerated. Returns the number of items
// regenerated successfully.
func (s *Service) RegenerateAll(ctx context.Context) (int, error) {
	if !s.transformer.Trained() {
		return 0, domain.ErrModelNotTrained
	}

	ids, err := s.items.ListIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("list items: %w", err)
	}

	var (
		mu     sync.Mutex
		failed []int64
	)

	// Goroutines never return errors to the group: a failed item must not
	// cancel the shared context and take the rest of the batch down with it.
	var g errgroup.Group
	g.SetLimit(s.parallelism)

	for _, id := range ids {
		g.Go(func() error {
			if err := s.Generate(ctx, id); err != nil {
				s.logger.Warn("failed to regenerate vector",
					zap.Int64("item_id", id),
					zap.Error(err),
				)
				mu.Lock()
				failed = append(failed, id)
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	regenerated := len(ids) - len(failed)
	if len(failed) > 0 {
		s.logger.Warn("regeneration had failures",
			zap.Int("failed", len(failed)),
			zap.Int64s("failed_ids", failed),
		)
	}
	s.logger.Info("regenerated vectors",
		zap.Int("count", regenerated),
		zap.Int("failed", len(failed)),
	)
	return regenerated, nil
}

// EnsureIndex creates the vector search index if missing.
func (s *Service) EnsureIndex(ctx context.Context) error {
	return s.vectors.EnsureIndex(ctx)
}

// Delete removes the stored vector for an item. Missing vectors are not an error.
func (s *Service) Delete(ctx context.Context, itemID int64) error {
	if err := s.vectors.Delete(ctx, itemID); err != nil &&
		!errors.Is(err, domain.ErrVectorNotFound) {
		return err
	}
	return nil
}

// Stats reports vector coverage over the catalog.
func (s *Service) Stats(ctx context.Context) (Stats, error) {
	total, err := s.items.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count items: %w", err)
	}
	vectorized, err := s.vectors.Count(ctx)
	if err != nil {
		return Stats{}, fmt.Errorf("count vectors: %w", err)
	}

	st := Stats{
		TotalItems:      total,
		VectorizedItems: vectorized,
		Ready:           s.transformer.Trained() && vectorized > 0,
	}
	if total > 0 {
		st.CoveragePercent = math.Round(float64(vectorized)/float64(total)*1000) / 10
	}
	return st, nil
}
