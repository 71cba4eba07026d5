// Package recommend ranks catalog items against a user's taste profile.
package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/cinevec/cinevec/internal/domain"
	domrec "github.com/cinevec/cinevec/internal/domain/recommend"
	"github.com/cinevec/cinevec/internal/metrics"
)

// Service produces content-based recommendations from stored item vectors.
type Service struct {
	vectors VectorReader
	items   ItemReader
	ensurer VectorEnsurer
	logger  *zap.Logger
}

// New creates a recommend service.
func New(vectors VectorReader, items ItemReader, ensurer VectorEnsurer, logger *zap.Logger) *Service {
	return &Service{
		vectors: vectors,
		items:   items,
		ensurer: ensurer,
		logger:  logger,
	}
}

// Recommend returns items similar to the user's taste, built as the
// normalized mean of the seed item vectors. Seed items themselves are never
// recommended. Seeds without stored vectors are skipped, and store or query
// failures degrade to an empty result rather than an error: the caller gets
// "nothing to recommend", the cause goes to the log and the error counter.
func (s *Service) Recommend(ctx context.Context, req *domrec.Request) ([]domrec.Recommendation, error) {
	start := time.Now()

	seedIDs := req.ItemIDs()
	if s.ensurer != nil {
		// Seeds may have been ingested after the last vectorize run.
		summary := s.ensurer.EnsureVectors(ctx, seedIDs)
		if summary.NewlyCreated > 0 {
			s.logger.Info("generated missing seed vectors",
				zap.Int("newly_created", summary.NewlyCreated),
			)
		}
	}

	seedVectors := make([][]float32, 0, len(seedIDs))
	for _, id := range seedIDs {
		vec, err := s.vectors.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrVectorNotFound) {
				s.logger.Warn("seed item has no vector", zap.Int64("item_id", id))
				continue
			}
			s.logger.Error("failed to load seed vector",
				zap.Int64("item_id", id),
				zap.Error(err),
			)
			metrics.SimilarityQueriesTotal.WithLabelValues("recommend", "error").Inc()
			return []domrec.Recommendation{}, nil
		}
		seedVectors = append(seedVectors, vec)
	}

	if len(seedVectors) == 0 {
		s.logger.Warn("no seed vectors available", zap.Int64s("item_ids", seedIDs))
		metrics.SimilarityQueriesTotal.WithLabelValues("recommend", "no_signal").Inc()
		return []domrec.Recommendation{}, nil
	}

	preference := domain.L2Normalize(domain.MeanVector(seedVectors))

	recs, err := s.rank(ctx, preference, req.Limit(), seedIDs)
	if err != nil {
		s.logger.Error("recommendation query failed", zap.Error(err))
		metrics.SimilarityQueriesTotal.WithLabelValues("recommend", "error").Inc()
		return []domrec.Recommendation{}, nil
	}

	metrics.SimilarityQueriesTotal.WithLabelValues("recommend", "ok").Inc()
	metrics.SimilarityQueryDuration.WithLabelValues("recommend").Observe(time.Since(start).Seconds())
	return recs, nil
}

// Similar returns items similar to one base item, excluding the item itself.
// A base item without a stored vector yields an empty result, and store or
// query failures degrade the same way after logging.
func (s *Service) Similar(ctx context.Context, req *domrec.SimilarRequest) ([]domrec.Recommendation, error) {
	start := time.Now()

	base, err := s.vectors.Get(ctx, req.ItemID())
	if err != nil {
		if errors.Is(err, domain.ErrVectorNotFound) {
			s.logger.Warn("base item has no vector", zap.Int64("item_id", req.ItemID()))
			metrics.SimilarityQueriesTotal.WithLabelValues("similar", "no_signal").Inc()
			return []domrec.Recommendation{}, nil
		}
		s.logger.Error("failed to load base vector",
			zap.Int64("item_id", req.ItemID()),
			zap.Error(err),
		)
		metrics.SimilarityQueriesTotal.WithLabelValues("similar", "error").Inc()
		return []domrec.Recommendation{}, nil
	}

	recs, err := s.rank(ctx, base, req.Limit(), []int64{req.ItemID()})
	if err != nil {
		s.logger.Error("similar-items query failed", zap.Error(err))
		metrics.SimilarityQueriesTotal.WithLabelValues("similar", "error").Inc()
		return []domrec.Recommendation{}, nil
	}

	metrics.SimilarityQueriesTotal.WithLabelValues("similar", "ok").Inc()
	metrics.SimilarityQueryDuration.WithLabelValues("similar").Observe(time.Since(start).Seconds())
	return recs, nil
}

// rank runs the KNN query and hydrates hits with item details. Hits whose
// item record disappeared are dropped.
func (s *Service) rank(ctx context.Context, query []float32, limit int, excludeIDs []int64) ([]domrec.Recommendation, error) {
	hits, err := s.vectors.TopKSimilar(ctx, query, limit, excludeIDs)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}
	if len(hits) == 0 {
		return []domrec.Recommendation{}, nil
	}

	ids := make([]int64, len(hits))
	for i, h := range hits {
		ids[i] = h.ItemID
	}

	details, err := s.items.GetMulti(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load item details: %w", err)
	}

	recs := make([]domrec.Recommendation, 0, len(hits))
	for _, h := range hits {
		it, ok := details[h.ItemID]
		if !ok {
			s.logger.Warn("ranked item has no detail record", zap.Int64("item_id", h.ItemID))
			continue
		}
		recs = append(recs, domrec.Recommendation{
			ID:                it.ID,
			Title:             it.Title,
			OriginalTitle:     it.OriginalTitle,
			ReleaseDate:       it.ReleaseDate,
			Overview:          it.Overview,
			VoteAverage:       it.VoteAverage,
			PosterPath:        it.PosterPath,
			Genres:            it.Genres,
			Keywords:          it.Keywords,
			Similarity:        h.Similarity,
			SimilarityPercent: domrec.SimilarityPercent(h.Similarity),
		})
	}
	return recs, nil
}
