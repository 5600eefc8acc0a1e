package usecase

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/pkg/logger"
	"dzstorefront-backend/pkg/utils"

	"github.com/goccy/go-json"
	"golang.org/x/sync/singleflight"
)

// zoneCacheKey addresses the persisted snapshot in the durable store
const zoneCacheKey = "shipping_zones_cache"

// ErrZonesUnavailable is returned when the zones endpoint answers but
// reports failure in its envelope.
var ErrZonesUnavailable = errors.New("shipping zones endpoint reported failure")

type zoneSnapshot struct {
	zones   []domain.ParsedShippingZone
	version uint64
}

// persistedZones is the durable-store payload. Timestamp is unix millis.
type persistedZones struct {
	Data      []domain.ParsedShippingZone `json:"data"`
	Timestamp int64                       `json:"timestamp"`
}

// ShippingZoneUsecase fetches, normalizes and caches shipping zones.
//
// Three cooperating layers keep resolution cheap: an in-memory snapshot
// valid for one TTL window, a durable store mirror read on cold start, and
// singleflight collapsing so N concurrent cold callers cost exactly one
// upstream request. Failed fetches never populate the cache, so the next
// caller retries.
type ShippingZoneUsecase struct {
	provider domain.ZoneProvider
	store    domain.ZoneCacheStore // optional, may be nil
	ttl      time.Duration

	mu           sync.Mutex
	zones        []domain.ParsedShippingZone
	fetchedAt    time.Time
	version      uint64
	storeChecked bool

	group singleflight.Group

	now func() time.Time
}

func NewShippingZoneUsecase(provider domain.ZoneProvider, store domain.ZoneCacheStore, ttl time.Duration) *ShippingZoneUsecase {
	return &ShippingZoneUsecase{
		provider: provider,
		store:    store,
		ttl:      ttl,
		now:      time.Now,
	}
}

// GetZones returns the normalized zone list and its version. The version
// increments on every adoption of new data; derived caches key on it so a
// refetch implicitly invalidates them.
func (uc *ShippingZoneUsecase) GetZones(ctx context.Context) ([]domain.ParsedShippingZone, uint64, error) {
	if snap, ok := uc.cached(); ok {
		return snap.zones, snap.version, nil
	}

	v, err, _ := uc.group.Do(zoneCacheKey, func() (interface{}, error) {
		// Re-check under the flight: a racing caller may have refreshed
		// between our cache miss and joining the group.
		if snap, ok := uc.cached(); ok {
			return snap, nil
		}
		// The refresh outlives any single caller; a consumer giving up
		// must not cancel the fetch the other collapsed callers share.
		refreshCtx := context.WithoutCancel(ctx)
		if snap, ok := uc.adoptFromStore(refreshCtx); ok {
			return snap, nil
		}
		return uc.refresh(refreshCtx)
	})
	if err != nil {
		return nil, 0, err
	}
	snap := v.(zoneSnapshot)
	return snap.zones, snap.version, nil
}

// Preload warms the cache without blocking the caller. No-op when the cache
// is warm or a fetch is already in flight. Intended to run once at startup
// so the first real consumer usually finds a warm cache.
func (uc *ShippingZoneUsecase) Preload(ctx context.Context) {
	if _, ok := uc.cached(); ok {
		return
	}
	bg := context.WithoutCancel(ctx)
	go func() {
		if _, _, err := uc.GetZones(bg); err != nil {
			logger.Get().Warn().Err(err).Msg("Shipping zone preload failed")
		}
	}()
}

// Invalidate drops the in-memory snapshot and the durable mirror
func (uc *ShippingZoneUsecase) Invalidate(ctx context.Context) {
	uc.mu.Lock()
	uc.zones = nil
	uc.fetchedAt = time.Time{}
	// The persisted snapshot is stale too; do not re-adopt it
	uc.storeChecked = true
	uc.mu.Unlock()

	if uc.store != nil {
		if err := uc.store.Delete(ctx, zoneCacheKey); err != nil {
			logger.WithContext(ctx).Warn().Err(err).Msg("Failed to clear persisted zone cache")
		}
	}
	logger.WithContext(ctx).Info().Msg("Shipping zone cache invalidated")
}

func (uc *ShippingZoneUsecase) cached() (zoneSnapshot, bool) {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	if uc.zones != nil && uc.now().Sub(uc.fetchedAt) < uc.ttl {
		return zoneSnapshot{zones: uc.zones, version: uc.version}, true
	}
	return zoneSnapshot{}, false
}

// adoptFromStore reads the persisted snapshot once per process lifetime.
// Expired or corrupted entries are deleted and treated as a cold cache.
func (uc *ShippingZoneUsecase) adoptFromStore(ctx context.Context) (zoneSnapshot, bool) {
	if uc.store == nil {
		return zoneSnapshot{}, false
	}

	uc.mu.Lock()
	checked := uc.storeChecked
	uc.storeChecked = true
	uc.mu.Unlock()
	if checked {
		return zoneSnapshot{}, false
	}

	raw, found, err := uc.store.Get(ctx, zoneCacheKey)
	if err != nil {
		logger.WithContext(ctx).Warn().Err(err).Msg("Durable zone cache read failed")
		return zoneSnapshot{}, false
	}
	if !found {
		return zoneSnapshot{}, false
	}

	var persisted persistedZones
	if err := json.Unmarshal(raw, &persisted); err != nil {
		logger.WithContext(ctx).Debug().Err(err).Msg("Discarding corrupted persisted zone cache")
		_ = uc.store.Delete(ctx, zoneCacheKey)
		return zoneSnapshot{}, false
	}

	fetchedAt := time.UnixMilli(persisted.Timestamp)
	if persisted.Data == nil || uc.now().Sub(fetchedAt) >= uc.ttl {
		_ = uc.store.Delete(ctx, zoneCacheKey)
		return zoneSnapshot{}, false
	}

	uc.mu.Lock()
	uc.zones = persisted.Data
	uc.fetchedAt = fetchedAt
	uc.version++
	snap := zoneSnapshot{zones: uc.zones, version: uc.version}
	uc.mu.Unlock()

	logger.WithContext(ctx).Info().
		Int("zones", len(persisted.Data)).
		Time("fetched_at", fetchedAt).
		Msg("Adopted persisted shipping zones")
	return snap, true
}

func (uc *ShippingZoneUsecase) refresh(ctx context.Context) (interface{}, error) {
	resp, err := uc.provider.FetchShippingZones(ctx)
	if err != nil {
		return nil, err
	}
	if !resp.Success {
		return nil, ErrZonesUnavailable
	}

	parsed := normalizeZones(ctx, resp.Zones)
	now := uc.now()

	uc.mu.Lock()
	uc.zones = parsed
	uc.fetchedAt = now
	uc.version++
	snap := zoneSnapshot{zones: parsed, version: uc.version}
	uc.mu.Unlock()

	uc.persist(ctx, parsed, now)

	logger.WithContext(ctx).Info().
		Int("zones", len(parsed)).
		Int("total_zones", resp.TotalZones).
		Msg("Shipping zones refreshed")
	return snap, nil
}

func (uc *ShippingZoneUsecase) persist(ctx context.Context, zones []domain.ParsedShippingZone, fetchedAt time.Time) {
	if uc.store == nil {
		return
	}
	payload, err := json.Marshal(persistedZones{Data: zones, Timestamp: fetchedAt.UnixMilli()})
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Msg("Failed to serialize zone cache")
		return
	}
	if err := uc.store.Set(ctx, zoneCacheKey, payload); err != nil {
		// Durable mirror is best effort; memory cache already holds the data
		logger.WithContext(ctx).Warn().Err(err).Msg("Failed to persist zone cache")
	}
}

// normalizeZones flattens raw zones into the parsed shape the resolution
// pipeline works with.
func normalizeZones(ctx context.Context, zones []domain.ShippingZone) []domain.ParsedShippingZone {
	parsed := make([]domain.ParsedShippingZone, 0, len(zones))
	for _, z := range zones {
		locations := make([]string, 0, len(z.Locations))
		for _, l := range z.Locations {
			locations = append(locations, l.Code)
		}

		methods := make([]domain.ParsedShippingMethod, 0, len(z.Methods))
		for _, m := range z.Methods {
			title := ""
			if m.Settings.Title != nil {
				title = m.Settings.Title.Value
			}
			if title == "" {
				title = m.Title
			}
			if title == "" {
				title = m.MethodTitle
			}

			costRaw := ""
			if m.Settings.Cost != nil {
				costRaw = m.Settings.Cost.Value
			}
			cost := utils.ParseLeadingFloat(costRaw)
			isFree := m.MethodID == domain.MethodFreeShipping
			if cost == 0 && !isFree && costRaw != "" && !strings.HasPrefix(strings.TrimSpace(costRaw), "0") {
				// A purely multiplicative formula like "[qty] * 10" has no
				// flat component and silently understates the rate
				logger.WithContext(ctx).Warn().
					Str("cost", costRaw).
					Str("method", title).
					Int("zone_id", z.ID).
					Msg("Shipping cost parsed to zero")
			}

			var minAmount *float64
			if m.Settings.MinAmount != nil && m.Settings.MinAmount.Value != "" {
				if v, err := strconv.ParseFloat(m.Settings.MinAmount.Value, 64); err == nil {
					minAmount = &v
				}
			}

			methods = append(methods, domain.ParsedShippingMethod{
				ID:          m.InstanceID,
				MethodID:    m.MethodID,
				Title:       title,
				Cost:        cost,
				Description: utils.StripHTMLTags(m.MethodDescription),
				IsFree:      isFree,
				MinAmount:   minAmount,
			})
		}

		parsed = append(parsed, domain.ParsedShippingZone{
			ID:        z.ID,
			Name:      z.Name,
			Locations: locations,
			Methods:   methods,
		})
	}
	return parsed
}
