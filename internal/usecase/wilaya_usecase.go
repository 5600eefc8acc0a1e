package usecase

import (
	"context"
	"fmt"
	"time"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/pkg/cache"
	"dzstorefront-backend/pkg/logger"
)

// wilayaCachePrefix namespaces per-wilaya derived results in the memory cache
const wilayaCachePrefix = "shipping:wilaya:"

// WilayaShippingUsecase is the public query surface for wilaya shipping
// rates. It memoizes derived results per wilaya on top of the zone cache;
// entries are keyed to the zone list version, so a zone refetch naturally
// invalidates them on next read.
type WilayaShippingUsecase struct {
	zoneUC *ShippingZoneUsecase
	cache  cache.CacheService
	ttl    time.Duration
}

func NewWilayaShippingUsecase(zoneUC *ShippingZoneUsecase, memCache cache.CacheService, ttl time.Duration) *WilayaShippingUsecase {
	return &WilayaShippingUsecase{
		zoneUC: zoneUC,
		cache:  memCache,
		ttl:    ttl,
	}
}

// GetWilayaShipping resolves delivery prices for one wilaya.
//
// A nil result with a nil error is a valid "no shipping data" outcome
// (unmapped wilaya, or no zone covers it); only transient fetch failures
// come back as errors. Callers never need to distinguish panics or wrapped
// exceptions, just this tuple.
func (uc *WilayaShippingUsecase) GetWilayaShipping(ctx context.Context, wilaya string) (*domain.WilayaShippingData, error) {
	if wilaya == "" {
		return nil, nil
	}

	zones, version, err := uc.zoneUC.GetZones(ctx)
	if err != nil {
		return nil, err
	}
	if len(zones) == 0 {
		return nil, nil
	}

	key := fmt.Sprintf("%s%s:v%d", wilayaCachePrefix, wilaya, version)
	if v, found := uc.cache.Get(key); found {
		if data, ok := v.(*domain.WilayaShippingData); ok {
			return data, nil
		}
	}

	locationCode, ok := domain.WilayaCodeMap[wilaya]
	if !ok {
		logger.WithContext(ctx).Warn().Str("wilaya", wilaya).Msg("No location code mapped for wilaya")
		return nil, nil
	}

	zone := FindZoneForLocation(locationCode, zones)
	if zone == nil {
		// Last resort: any zone configured for the whole country
		zone = FindZoneForLocation(domain.CountryCode, zones)
		if zone == nil {
			logger.WithContext(ctx).Debug().Str("wilaya", wilaya).Str("code", locationCode).Msg("No shipping zone resolves for wilaya")
			return nil, nil
		}
	}

	data := mapZoneToShippingData(zone)
	uc.cache.Set(key, data, uc.ttl)
	return data, nil
}

// InvalidateDerived drops every memoized per-wilaya result
func (uc *WilayaShippingUsecase) InvalidateDerived() {
	uc.cache.DeletePrefix(wilayaCachePrefix)
}

// mapZoneToShippingData classifies each method and computes the derived
// price fields: first domicile/stopdesk method cost (0 when absent) and the
// cheapest method, where a free method beats any paid one.
func mapZoneToShippingData(zone *domain.ParsedShippingZone) *domain.WilayaShippingData {
	methods := make([]domain.WilayaShippingMethod, 0, len(zone.Methods))
	for _, m := range zone.Methods {
		methods = append(methods, domain.WilayaShippingMethod{
			ParsedShippingMethod: m,
			DeliveryType:         DetectDeliveryType(m.Title, m.MethodID),
		})
	}

	var domicilePrice, stopdeskPrice float64
	domicileSet, stopdeskSet := false, false
	for _, m := range methods {
		switch m.DeliveryType {
		case domain.DeliveryDomicile:
			if !domicileSet {
				domicilePrice = m.Cost
				domicileSet = true
			}
		case domain.DeliveryStopdesk:
			if !stopdeskSet {
				stopdeskPrice = m.Cost
				stopdeskSet = true
			}
		}
	}

	var cheapest *domain.WilayaShippingMethod
	for i := range methods {
		m := &methods[i]
		switch {
		case cheapest == nil:
			cheapest = m
		case m.IsFree && !cheapest.IsFree:
			cheapest = m
		case !m.IsFree && !cheapest.IsFree && m.Cost < cheapest.Cost:
			cheapest = m
		}
	}

	return &domain.WilayaShippingData{
		ZoneName:       zone.Name,
		ZoneID:         zone.ID,
		Methods:        methods,
		DomicilePrice:  domicilePrice,
		StopdeskPrice:  stopdeskPrice,
		CheapestMethod: cheapest,
	}
}
