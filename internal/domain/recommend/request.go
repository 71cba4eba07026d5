package recommend

import (
	"fmt"

	"github.com/cinevec/cinevec/internal/domain"
)

// Result count limits shared by both request kinds.
const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// Request is a validated taste-based recommendation query.
type Request struct {
	itemIDs []int64
	limit   int
}

// New validates and normalizes recommendation parameters.
// Defaults: limit=10. Limit above MaxLimit is rejected, not clamped.
func New(itemIDs []int64, limit int) (Request, error) {
	if len(itemIDs) == 0 {
		return Request{}, fmt.Errorf("item_ids is required: %w", domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return Request{}, fmt.Errorf("limit must be between 1 and %d: %w", MaxLimit, domain.ErrInvalidRequest)
	}
	return Request{itemIDs: itemIDs, limit: limit}, nil
}

// ItemIDs returns the seed item identifiers.
func (r *Request) ItemIDs() []int64 { return r.itemIDs }

// Limit returns the maximum number of recommendations.
func (r *Request) Limit() int { return r.limit }

// SimilarRequest is a validated "items similar to X" query.
type SimilarRequest struct {
	itemID int64
	limit  int
}

// NewSimilar validates and normalizes similar-items parameters.
func NewSimilar(itemID int64, limit int) (SimilarRequest, error) {
	if itemID <= 0 {
		return SimilarRequest{}, fmt.Errorf("item_id is required: %w", domain.ErrInvalidRequest)
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		return SimilarRequest{}, fmt.Errorf("limit must be between 1 and %d: %w", MaxLimit, domain.ErrInvalidRequest)
	}
	return SimilarRequest{itemID: itemID, limit: limit}, nil
}

// ItemID returns the base item identifier.
func (r *SimilarRequest) ItemID() int64 { return r.itemID }

// Limit returns the maximum number of similar items.
func (r *SimilarRequest) Limit() int { return r.limit }
