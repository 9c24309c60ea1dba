package catalogue

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"vehicle-catalogue/core/database"
	"vehicle-catalogue/core/metrics"
	"vehicle-catalogue/core/override"
	"vehicle-catalogue/core/snapshot"
	"vehicle-catalogue/feature/catalogue/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockResolver struct {
	mock.Mock
}

func (m *mockResolver) Load(ctx context.Context, opts Options) (*snapshot.Snapshot, error) {
	args := m.Called(ctx, opts)
	if snap, ok := args.Get(0).(*snapshot.Snapshot); ok {
		return snap, args.Error(1)
	}
	return nil, args.Error(1)
}

// countingResolver blocks every Load for delay and counts the calls.
type countingResolver struct {
	calls atomic.Int32
	delay time.Duration
}

func (r *countingResolver) Load(ctx context.Context, opts Options) (*snapshot.Snapshot, error) {
	r.calls.Add(1)
	time.Sleep(r.delay)
	return testSnapshot(opts.GameVersion, 7), nil
}

func ptr[T any](v T) *T { return &v }

func testSnapshot(gameVersion, tier int) *snapshot.Snapshot {
	table := override.MergeBuiltins([]override.BuiltinFile{{
		Name:        "builtin",
		FileVersion: 1,
		Rows: []override.BuiltinOverride{
			{Entity: "germany-Tiger", Country: ptr(override.CountryGermany), Tier: ptr(tier), Class: ptr(override.ClassHeavy), Category: ptr(override.CategoryNormal)},
			{Entity: "usa-T1", Country: ptr(override.CountryUSA), Tier: ptr(1), Class: ptr(override.ClassLight), Category: ptr(override.CategoryNormal)},
		},
	}}, nil)
	props := override.MergeExtras([]override.ExtraColumn{{
		Name:         "names",
		FileVersion:  1,
		Property:     override.PropertyID{FileID: "NameFull", Author: "Wargaming"},
		Descriptions: map[string]string{"en": "Full names"},
		Rows:         []override.ExtraOverride{{Entity: "germany-Tiger", Value: "Tiger I"}},
	}}, nil)
	return snapshot.Build(snapshot.Input{
		GameVersion:   gameVersion,
		Builtins:      table,
		Properties:    props,
		DefaultAuthor: "Wargaming",
	})
}

func TestService_CachesPerGameVersion(t *testing.T) {
	r := new(mockResolver)
	r.On("Load", mock.Anything, Options{GameVersion: 100}).Return(testSnapshot(100, 7), nil).Once()
	r.On("Load", mock.Anything, Options{GameVersion: 101}).Return(testSnapshot(101, 8), nil).Once()

	m := metrics.New()
	svc := NewService(r, nil, m, nil, time.Minute)
	ctx := context.Background()

	for range 3 {
		snap, err := svc.Snapshot(ctx, 100)
		require.NoError(t, err)
		assert.Equal(t, 100, snap.GameVersion())
	}
	snap, err := svc.Snapshot(ctx, 101)
	require.NoError(t, err)
	assert.Equal(t, 101, snap.GameVersion())

	r.AssertExpectations(t)
}

func TestService_CurrentVersionAlsoCachesResolvedVersion(t *testing.T) {
	r := new(mockResolver)
	r.On("Load", mock.Anything, Options{}).Return(testSnapshot(100, 7), nil).Once()

	svc := NewService(r, nil, nil, nil, time.Minute)

	_, err := svc.Snapshot(context.Background(), 0)
	require.NoError(t, err)
	snap, err := svc.Snapshot(context.Background(), 100)
	require.NoError(t, err)
	assert.Equal(t, 100, snap.GameVersion())

	r.AssertExpectations(t)
}

func TestService_ZeroTTLDisablesCache(t *testing.T) {
	r := &countingResolver{}
	svc := NewService(r, nil, nil, nil, 0)

	for range 3 {
		_, err := svc.Snapshot(context.Background(), 5)
		require.NoError(t, err)
	}
	assert.EqualValues(t, 3, r.calls.Load())
}

func TestService_CacheIsBounded(t *testing.T) {
	r := &countingResolver{}
	svc := NewService(r, nil, nil, nil, time.Minute)
	svc.maxEntries = 2

	for v := 1; v <= 5; v++ {
		_, err := svc.Snapshot(context.Background(), v)
		require.NoError(t, err)
	}
	assert.Len(t, svc.entries, 2)
	assert.Contains(t, svc.entries, 5)

	_, err := svc.Snapshot(context.Background(), 5)
	require.NoError(t, err)
	assert.EqualValues(t, 5, r.calls.Load())
}

func TestService_ExpiredEntriesArePruned(t *testing.T) {
	r := &countingResolver{}
	svc := NewService(r, nil, nil, nil, time.Minute)
	svc.entries[1] = &cacheEntry{snap: testSnapshot(1, 7), built: time.Now().Add(-time.Hour), ttl: time.Minute}

	_, err := svc.Snapshot(context.Background(), 2)
	require.NoError(t, err)

	assert.NotContains(t, svc.entries, 1)
	assert.Contains(t, svc.entries, 2)
}

func TestService_ConcurrentRequestsResolveOnce(t *testing.T) {
	r := &countingResolver{delay: 50 * time.Millisecond}
	svc := NewService(r, nil, nil, nil, time.Minute)

	var wg sync.WaitGroup
	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Snapshot(context.Background(), 7)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	assert.EqualValues(t, 1, r.calls.Load())
}

func TestService_Invalidate(t *testing.T) {
	r := &countingResolver{}
	svc := NewService(r, nil, nil, nil, time.Minute)

	_, _ = svc.Snapshot(context.Background(), 7)
	svc.Invalidate()
	_, _ = svc.Snapshot(context.Background(), 7)

	assert.EqualValues(t, 2, r.calls.Load())
}

func TestService_ErrorIsNotCached(t *testing.T) {
	r := new(mockResolver)
	r.On("Load", mock.Anything, Options{GameVersion: 3}).Return(nil, errors.New("boom")).Once()
	r.On("Load", mock.Anything, Options{GameVersion: 3}).Return(testSnapshot(3, 7), nil).Once()

	svc := NewService(r, nil, metrics.New(), nil, time.Minute)

	_, err := svc.Snapshot(context.Background(), 3)
	assert.EqualError(t, err, "boom")
	snap, err := svc.Snapshot(context.Background(), 3)
	require.NoError(t, err)
	assert.Equal(t, 3, snap.GameVersion())
}

func newStore(t *testing.T) *store.Store {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	st := store.New(db)
	require.NoError(t, st.Migrate(context.Background()))
	return st
}

func TestService_PersistsAndFallsBack(t *testing.T) {
	st := newStore(t)
	ctx := context.Background()

	r := new(mockResolver)
	r.On("Load", mock.Anything, Options{GameVersion: 100}).Return(testSnapshot(100, 9), nil).Once()
	r.On("Load", mock.Anything, Options{GameVersion: 100}).Return(nil, errors.New("source offline")).Once()

	svc := NewService(r, st, metrics.New(), nil, 0)

	_, err := svc.Snapshot(ctx, 100)
	require.NoError(t, err)

	_, rec, err := st.Latest(ctx, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, rec.Vehicles)

	snap, err := svc.Snapshot(ctx, 100)
	require.NoError(t, err)
	tiger, ok := snap.Vehicle("germany-Tiger")
	require.True(t, ok)
	assert.Equal(t, 9, tiger.Tier())
}

func TestService_FallbackWithoutStoredSnapshot(t *testing.T) {
	r := new(mockResolver)
	r.On("Load", mock.Anything, Options{GameVersion: 100}).Return(nil, errors.New("source offline"))

	svc := NewService(r, newStore(t), nil, nil, 0)

	_, err := svc.Snapshot(context.Background(), 100)
	assert.EqualError(t, err, "source offline")
}
