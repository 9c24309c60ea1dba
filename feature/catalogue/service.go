package catalogue

import (
	"context"
	"maps"
	"strconv"
	"sync"
	"time"

	"vehicle-catalogue/core/metrics"
	"vehicle-catalogue/core/snapshot"
	"vehicle-catalogue/feature/catalogue/store"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// Resolver produces snapshots. *Loader is the production implementation.
type Resolver interface {
	Load(ctx context.Context, opts Options) (*snapshot.Snapshot, error)
}

// maxCachedVersions bounds the number of game versions kept in the cache.
const maxCachedVersions = 16

// cacheEntry holds a resolved snapshot and when it was built.
type cacheEntry struct {
	snap  *snapshot.Snapshot
	built time.Time
	ttl   time.Duration
}

// IsExpired reports whether the entry must be rebuilt. A zero TTL disables
// caching.
func (e *cacheEntry) IsExpired() bool {
	if e.ttl == 0 {
		return true
	}
	return time.Since(e.built) > e.ttl
}

// Service serves snapshots to the HTTP layer and the CLI. Each game version
// is resolved at most once per TTL, however many requests ask for it.
type Service struct {
	resolver Resolver
	store    *store.Store
	metrics  *metrics.Metrics
	logger   *zap.Logger
	ttl      time.Duration

	mu         sync.RWMutex
	entries    map[int]*cacheEntry
	maxEntries int
	sf         singleflight.Group
}

// NewService creates a service. st and m may be nil.
func NewService(resolver Resolver, st *store.Store, m *metrics.Metrics, logger *zap.Logger, ttl time.Duration) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		resolver:   resolver,
		store:      st,
		metrics:    m,
		logger:     logger,
		ttl:        ttl,
		entries:    make(map[int]*cacheEntry),
		maxEntries: maxCachedVersions,
	}
}

// Snapshot returns the snapshot for gameVersion, zero meaning the installed
// version.
func (s *Service) Snapshot(ctx context.Context, gameVersion int) (*snapshot.Snapshot, error) {
	if snap, ok := s.cached(gameVersion); ok {
		if s.metrics != nil {
			s.metrics.RecordCacheHit()
		}
		return snap, nil
	}

	result, err, _ := s.sf.Do(strconv.Itoa(gameVersion), func() (any, error) {
		if snap, ok := s.cached(gameVersion); ok {
			return snap, nil
		}

		snap, err := s.resolve(ctx, gameVersion)
		if err != nil {
			return nil, err
		}

		s.remember(&cacheEntry{snap: snap, built: time.Now(), ttl: s.ttl}, gameVersion, snap.GameVersion())
		return snap, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*snapshot.Snapshot), nil
}

func (s *Service) cached(gameVersion int) (*snapshot.Snapshot, bool) {
	s.mu.RLock()
	entry, ok := s.entries[gameVersion]
	s.mu.RUnlock()
	if !ok || entry.IsExpired() {
		return nil, false
	}
	return entry.snap, true
}

// remember caches entry under every given version. Expired entries are
// dropped first, then the oldest ones until the cache fits maxEntries.
func (s *Service) remember(entry *cacheEntry, versions ...int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	maps.DeleteFunc(s.entries, func(_ int, e *cacheEntry) bool {
		return e.IsExpired()
	})
	if entry.IsExpired() {
		return
	}
	for _, v := range versions {
		s.entries[v] = entry
	}
	for len(s.entries) > s.maxEntries {
		oldest, first := 0, true
		for v, e := range s.entries {
			if first || e.built.Before(s.entries[oldest].built) {
				oldest, first = v, false
			}
		}
		delete(s.entries, oldest)
	}
}

func (s *Service) resolve(ctx context.Context, gameVersion int) (*snapshot.Snapshot, error) {
	start := time.Now()
	snap, err := s.resolver.Load(ctx, Options{GameVersion: gameVersion})
	if err != nil {
		if s.metrics != nil {
			s.metrics.RecordFailure()
		}
		return s.fallback(ctx, gameVersion, err)
	}

	if s.metrics != nil {
		s.metrics.RecordResolution(strconv.Itoa(snap.GameVersion()), len(snap.Vehicles()), len(snap.Warnings()), time.Since(start))
	}
	s.persist(ctx, snap)
	return snap, nil
}

// fallback serves the last stored snapshot when resolving fails.
func (s *Service) fallback(ctx context.Context, gameVersion int, cause error) (*snapshot.Snapshot, error) {
	if s.store == nil || gameVersion == 0 {
		return nil, cause
	}
	snap, rec, err := s.store.Latest(ctx, gameVersion)
	if err != nil {
		return nil, cause
	}
	s.logger.Warn("Resolution failed, serving stored snapshot",
		zap.Error(cause),
		zap.String("snapshot_id", rec.ID),
		zap.Time("created_at", rec.CreatedAt))
	return snap, nil
}

func (s *Service) persist(ctx context.Context, snap *snapshot.Snapshot) {
	if s.store == nil {
		return
	}
	rec, created, err := s.store.Save(ctx, snap)
	if err != nil {
		s.logger.Error("Failed to persist snapshot", zap.Error(err))
		return
	}
	if !created {
		return
	}
	if s.metrics != nil {
		s.metrics.SnapshotsPersisted.Inc()
	}
	s.logger.Info("Snapshot persisted",
		zap.String("snapshot_id", rec.ID),
		zap.Int("game_version", rec.GameVersion),
		zap.String("digest", rec.Digest))
}

// Invalidate drops every cached snapshot.
func (s *Service) Invalidate() {
	s.mu.Lock()
	clear(s.entries)
	s.mu.Unlock()
}
