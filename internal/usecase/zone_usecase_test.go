package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"dzstorefront-backend/internal/domain"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeZoneProvider struct {
	mu    sync.Mutex
	calls int
	delay time.Duration
	resp  *domain.ShippingZonesResponse
	err   error
}

func (f *fakeZoneProvider) FetchShippingZones(ctx context.Context) (*domain.ShippingZonesResponse, error) {
	f.mu.Lock()
	f.calls++
	f.mu.Unlock()
	if f.delay > 0 {
		time.Sleep(f.delay)
	}
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeZoneProvider) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

type fakeZoneStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

func newFakeZoneStore() *fakeZoneStore {
	return &fakeZoneStore{data: map[string][]byte{}}
}

func (s *fakeZoneStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *fakeZoneStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *fakeZoneStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func sampleZonesResponse() *domain.ShippingZonesResponse {
	return &domain.ShippingZonesResponse{
		Success: true,
		Zones: []domain.ShippingZone{
			{
				ID:   5,
				Name: "Alger",
				Locations: []domain.ShippingLocation{
					{Code: "DZ:DZ-16", Type: domain.LocationTypeState},
				},
				Methods: []domain.ShippingMethod{
					{
						InstanceID:        11,
						Title:             "Livraison à domicile",
						Enabled:           true,
						MethodID:          "flat_rate",
						MethodDescription: "<p>Livraison sous 48h</p>",
						Settings: domain.ShippingMethodSettings{
							Cost: &domain.MethodSetting{Value: "500.00 * [qty]"},
						},
					},
					{
						InstanceID: 12,
						Title:      "Stop Desk",
						Enabled:    true,
						MethodID:   "local_pickup",
						Settings: domain.ShippingMethodSettings{
							Cost: &domain.MethodSetting{Value: "350"},
						},
					},
				},
			},
		},
		TotalZones:  2,
		ActiveZones: 1,
	}
}

func TestGetZonesNormalizes(t *testing.T) {
	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	zones, version, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), version)
	require.Len(t, zones, 1)

	zone := zones[0]
	assert.Equal(t, 5, zone.ID)
	assert.Equal(t, []string{"DZ:DZ-16"}, zone.Locations)
	require.Len(t, zone.Methods, 2)

	domicile := zone.Methods[0]
	assert.Equal(t, "Livraison à domicile", domicile.Title)
	assert.Equal(t, 500.0, domicile.Cost)
	assert.Equal(t, "Livraison sous 48h", domicile.Description)
	assert.False(t, domicile.IsFree)

	stopdesk := zone.Methods[1]
	assert.Equal(t, 350.0, stopdesk.Cost)
}

func TestGetZonesTitlePrecedence(t *testing.T) {
	resp := sampleZonesResponse()
	resp.Zones[0].Methods[0].Settings.Title = &domain.MethodSetting{Value: "Domicile Express"}
	provider := &fakeZoneProvider{resp: resp}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	zones, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Domicile Express", zones[0].Methods[0].Title)
}

func TestGetZonesCollapsesConcurrentFetches(t *testing.T) {
	provider := &fakeZoneProvider{resp: sampleZonesResponse(), delay: 50 * time.Millisecond}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	const callers = 10
	results := make([][]domain.ParsedShippingZone, callers)
	errs := make([]error, callers)

	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], _, errs[i] = uc.GetZones(context.Background())
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, provider.callCount(), "concurrent callers must share one fetch")
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, results[0], results[i])
	}
}

func TestGetZonesCacheExpiry(t *testing.T) {
	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	current := time.Now()
	uc.now = func() time.Time { return current }

	_, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())

	// Within the window: served from memory
	current = current.Add(4*time.Minute + 59*time.Second)
	_, _, err = uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())

	// Just past the window: exactly one refetch
	current = current.Add(2 * time.Second)
	_, version, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount())
	assert.Equal(t, uint64(2), version)
}

func TestGetZonesErrorDoesNotPopulateCache(t *testing.T) {
	provider := &fakeZoneProvider{err: errors.New("connection refused")}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	_, _, err := uc.GetZones(context.Background())
	require.Error(t, err)

	provider.mu.Lock()
	provider.err = nil
	provider.resp = sampleZonesResponse()
	provider.mu.Unlock()

	zones, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Len(t, zones, 1)
	assert.Equal(t, 2, provider.callCount())
}

func TestGetZonesEnvelopeFailure(t *testing.T) {
	provider := &fakeZoneProvider{resp: &domain.ShippingZonesResponse{Success: false}}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	_, _, err := uc.GetZones(context.Background())
	assert.ErrorIs(t, err, ErrZonesUnavailable)
}

func TestGetZonesAdoptsFreshPersistedSnapshot(t *testing.T) {
	store := newFakeZoneStore()
	persisted := persistedZones{
		Data: []domain.ParsedShippingZone{
			{ID: 5, Name: "Alger", Locations: []string{"DZ:DZ-16"}},
		},
		Timestamp: time.Now().Add(-1 * time.Minute).UnixMilli(),
	}
	payload, err := json.Marshal(persisted)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), zoneCacheKey, payload))

	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, store, 5*time.Minute)

	zones, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, provider.callCount(), "warm durable cache must skip the network")
	require.Len(t, zones, 1)
	assert.Equal(t, "Alger", zones[0].Name)
}

func TestGetZonesDiscardsExpiredPersistedSnapshot(t *testing.T) {
	store := newFakeZoneStore()
	persisted := persistedZones{
		Data:      []domain.ParsedShippingZone{{ID: 5, Name: "Alger"}},
		Timestamp: time.Now().Add(-10 * time.Minute).UnixMilli(),
	}
	payload, err := json.Marshal(persisted)
	require.NoError(t, err)
	require.NoError(t, store.Set(context.Background(), zoneCacheKey, payload))

	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, store, 5*time.Minute)

	_, _, err = uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())
}

func TestGetZonesDiscardsCorruptedPersistedSnapshot(t *testing.T) {
	store := newFakeZoneStore()
	require.NoError(t, store.Set(context.Background(), zoneCacheKey, []byte("{not json")))

	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, store, 5*time.Minute)

	zones, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	require.Len(t, zones, 1)
	assert.Equal(t, 1, provider.callCount())

	// The fetch must have replaced the corrupted entry with a valid one
	raw, found, err := store.Get(context.Background(), zoneCacheKey)
	require.NoError(t, err)
	require.True(t, found)
	var roundTrip persistedZones
	require.NoError(t, json.Unmarshal(raw, &roundTrip))
	assert.Len(t, roundTrip.Data, 1)
}

func TestGetZonesPersistsAfterFetch(t *testing.T) {
	store := newFakeZoneStore()
	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, store, 5*time.Minute)

	_, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)

	_, found, err := store.Get(context.Background(), zoneCacheKey)
	require.NoError(t, err)
	assert.True(t, found)
}

func TestInvalidateForcesRefetch(t *testing.T) {
	store := newFakeZoneStore()
	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, store, 5*time.Minute)

	_, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount())

	uc.Invalidate(context.Background())

	_, found, err := store.Get(context.Background(), zoneCacheKey)
	require.NoError(t, err)
	assert.False(t, found, "durable entry must be cleared")

	_, version, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, provider.callCount())
	assert.Equal(t, uint64(2), version)
}

func TestPreloadWarmsCache(t *testing.T) {
	provider := &fakeZoneProvider{resp: sampleZonesResponse()}
	uc := NewShippingZoneUsecase(provider, nil, 5*time.Minute)

	uc.Preload(context.Background())

	require.Eventually(t, func() bool {
		_, ok := uc.cached()
		return ok
	}, time.Second, 10*time.Millisecond)

	_, _, err := uc.GetZones(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, provider.callCount(), "consumer after preload must hit the warm cache")
}
