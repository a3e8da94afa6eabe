package store

import (
	"context"
	"sync"

	"github.com/JustJay7/court-scheduler/internal/cache"
	"github.com/JustJay7/court-scheduler/internal/database"
	"github.com/JustJay7/court-scheduler/pkg/logger"
)

// CachedStore serves judge lookups from a cache and drops the affected
// judges' entries on every write.
//
// gen is bumped by every invalidation; a lookup only writes its result
// back when gen is unchanged since its miss, so a read that raced a
// write cannot reinsert the pre-write list.
type CachedStore struct {
	inner  CaseStore
	cache  cache.Cache
	logger *logger.Logger

	mu  sync.Mutex
	gen uint64
}

func Cached(inner CaseStore, c cache.Cache, log *logger.Logger) *CachedStore {
	return &CachedStore{inner: inner, cache: c, logger: log}
}

func (s *CachedStore) FindCasesByJudgeID(ctx context.Context, judgeID int) ([]database.CaseRecord, error) {
	key := cache.GenerateCacheKey(judgeID)
	if records, found := s.cache.Get(key); found {
		s.logger.Debug("Cache hit", "key", key)
		return records, nil
	}

	s.mu.Lock()
	gen := s.gen
	s.mu.Unlock()

	records, err := s.inner.FindCasesByJudgeID(ctx, judgeID)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		s.logger.Debug("Skipping stale cache fill", "key", key)
		return records, nil
	}
	if err := s.cache.Set(key, records); err != nil {
		s.logger.Warn("Failed to cache cases", "key", key, "error", err)
	}
	return records, nil
}

func (s *CachedStore) GetCase(ctx context.Context, id string) (*database.CaseRecord, error) {
	return s.inner.GetCase(ctx, id)
}

func (s *CachedStore) CreateCase(ctx context.Context, rec *database.CaseRecord) error {
	if err := s.inner.CreateCase(ctx, rec); err != nil {
		return err
	}
	s.invalidate(rec.JudgeID)
	return nil
}

func (s *CachedStore) UpdateCase(ctx context.Context, rec *database.CaseRecord) error {
	existing, err := s.inner.GetCase(ctx, rec.ID)
	if err != nil {
		return err
	}
	if err := s.inner.UpdateCase(ctx, rec); err != nil {
		return err
	}
	s.invalidate(existing.JudgeID)
	return nil
}

func (s *CachedStore) DeleteCase(ctx context.Context, id string) error {
	existing, err := s.inner.GetCase(ctx, id)
	if err != nil {
		return err
	}
	if err := s.inner.DeleteCase(ctx, id); err != nil {
		return err
	}
	s.invalidate(existing.JudgeID)
	return nil
}

// UpsertCases clears the whole cache: an upserted appearance may already
// belong to a judge other than the one named in the batch.
func (s *CachedStore) UpsertCases(ctx context.Context, recs []database.CaseRecord) (int64, error) {
	n, err := s.inner.UpsertCases(ctx, recs)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	s.gen++
	s.cache.Clear()
	s.mu.Unlock()
	return n, nil
}

func (s *CachedStore) invalidate(judgeID int) {
	s.mu.Lock()
	s.gen++
	s.cache.Delete(cache.GenerateCacheKey(judgeID))
	s.mu.Unlock()
}
