// Package item persists movie catalog entries as Redis hashes.
package item

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/cinevec/cinevec/internal/db"
	"github.com/cinevec/cinevec/internal/domain"
)

// store is the consumer interface for items (ISP).
type store interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	HGetAllMulti(ctx context.Context, keys []string) ([]map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo implements the item repository over a hash store.
type Repo struct {
	store store
}

// New creates an item repository.
func New(s store) *Repo {
	return &Repo{store: s}
}

// Put creates or replaces an item.
func (r *Repo) Put(ctx context.Context, it *domain.Item) error {
	key := itemKey(it.ID)
	if err := r.store.HSet(ctx, key, buildHashFields(it)); err != nil {
		return fmt.Errorf("hset %s: %w", key, err)
	}
	return nil
}

// Get returns an item by ID.
func (r *Repo) Get(ctx context.Context, id int64) (*domain.Item, error) {
	key := itemKey(id)
	fields, err := r.store.HGetAll(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrItemNotFound
		}
		return nil, fmt.Errorf("hgetall %s: %w", key, err)
	}
	if len(fields) == 0 {
		return nil, domain.ErrItemNotFound
	}
	return parseHashFields(id, fields)
}

// GetMulti returns the items for ids in a single round trip. IDs with no
// stored item are silently absent from the result.
func (r *Repo) GetMulti(ctx context.Context, ids []int64) (map[int64]*domain.Item, error) {
	if len(ids) == 0 {
		return map[int64]*domain.Item{}, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = itemKey(id)
	}

	results, err := r.store.HGetAllMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("hgetall multi: %w", err)
	}

	out := make(map[int64]*domain.Item, len(ids))
	for i, fields := range results {
		if len(fields) == 0 {
			continue
		}
		it, err := parseHashFields(ids[i], fields)
		if err != nil {
			return nil, err
		}
		out[ids[i]] = it
	}
	return out, nil
}

// Exists reports whether an item is stored.
func (r *Repo) Exists(ctx context.Context, id int64) (bool, error) {
	ok, err := r.store.Exists(ctx, itemKey(id))
	if err != nil {
		return false, fmt.Errorf("exists %s: %w", itemKey(id), err)
	}
	return ok, nil
}

// Delete removes an item.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	key := itemKey(id)
	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return domain.ErrItemNotFound
	}
	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// ListIDs returns all stored item IDs in ascending order.
func (r *Repo) ListIDs(ctx context.Context) ([]int64, error) {
	keys, err := r.store.Scan(ctx, keyPattern())
	if err != nil {
		return nil, fmt.Errorf("scan items: %w", err)
	}

	ids := make([]int64, 0, len(keys))
	for _, key := range keys {
		id, err := extractItemID(key)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}

// Count returns the number of stored items.
func (r *Repo) Count(ctx context.Context) (int, error) {
	keys, err := r.store.Scan(ctx, keyPattern())
	if err != nil {
		return 0, fmt.Errorf("scan items: %w", err)
	}
	return len(keys), nil
}

func itemKey(id int64) string {
	return fmt.Sprintf("%sitem:%d", domain.KeyPrefix, id)
}

func keyPattern() string {
	return domain.KeyPrefix + "item:*"
}

func extractItemID(key string) (int64, error) {
	raw := strings.TrimPrefix(key, domain.KeyPrefix+"item:")
	return strconv.ParseInt(raw, 10, 64)
}
