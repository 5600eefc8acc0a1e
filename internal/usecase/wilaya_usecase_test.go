package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"dzstorefront-backend/internal/domain"
	infracache "dzstorefront-backend/internal/infrastructure/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func wilayaZonesResponse() *domain.ShippingZonesResponse {
	return &domain.ShippingZonesResponse{
		Success: true,
		Zones: []domain.ShippingZone{
			{
				ID:   5,
				Name: "Centre",
				Locations: []domain.ShippingLocation{
					{Code: "DZ:DZ-16", Type: domain.LocationTypeState},
					{Code: "DZ:DZ-09", Type: domain.LocationTypeState},
				},
				Methods: []domain.ShippingMethod{
					{
						InstanceID: 11,
						Title:      "Livraison à domicile",
						MethodID:   "flat_rate",
						Settings: domain.ShippingMethodSettings{
							Cost: &domain.MethodSetting{Value: "500"},
						},
					},
					{
						InstanceID: 12,
						Title:      "Stop Desk",
						MethodID:   "local_pickup",
						Settings: domain.ShippingMethodSettings{
							Cost: &domain.MethodSetting{Value: "350"},
						},
					},
				},
			},
			{
				ID:   0,
				Name: "Reste du pays",
				Methods: []domain.ShippingMethod{
					{
						InstanceID: 21,
						Title:      "Livraison à domicile",
						MethodID:   "flat_rate",
						Settings: domain.ShippingMethodSettings{
							Cost: &domain.MethodSetting{Value: "800"},
						},
					},
				},
			},
		},
		TotalZones:  2,
		ActiveZones: 2,
	}
}

func newWilayaUsecase(t *testing.T, provider domain.ZoneProvider) *WilayaShippingUsecase {
	t.Helper()
	zoneUC := NewShippingZoneUsecase(provider, nil, 5*time.Minute)
	memCache := infracache.NewMemoryCache(5*time.Minute, 10*time.Minute)
	return NewWilayaShippingUsecase(zoneUC, memCache, 5*time.Minute)
}

func TestGetWilayaShippingDerivesPrices(t *testing.T) {
	provider := &fakeZoneProvider{resp: wilayaZonesResponse()}
	uc := newWilayaUsecase(t, provider)

	data, err := uc.GetWilayaShipping(context.Background(), "Alger")
	require.NoError(t, err)
	require.NotNil(t, data)

	assert.Equal(t, "Centre", data.ZoneName)
	assert.Equal(t, 5, data.ZoneID)
	assert.Equal(t, 500.0, data.DomicilePrice)
	assert.Equal(t, 350.0, data.StopdeskPrice)
	require.Len(t, data.Methods, 2)
	assert.Equal(t, domain.DeliveryDomicile, data.Methods[0].DeliveryType)
	assert.Equal(t, domain.DeliveryStopdesk, data.Methods[1].DeliveryType)

	require.NotNil(t, data.CheapestMethod)
	assert.Equal(t, "Stop Desk", data.CheapestMethod.Title)
	assert.Equal(t, 350.0, data.CheapestMethod.Cost)
}

func TestGetWilayaShippingFreeMethodWinsCheapest(t *testing.T) {
	resp := wilayaZonesResponse()
	resp.Zones[0].Methods = append(resp.Zones[0].Methods, domain.ShippingMethod{
		InstanceID: 13,
		Title:      "Livraison gratuite",
		MethodID:   domain.MethodFreeShipping,
		Settings: domain.ShippingMethodSettings{
			MinAmount: &domain.MethodSetting{Value: "5000"},
		},
	})
	provider := &fakeZoneProvider{resp: resp}
	uc := newWilayaUsecase(t, provider)

	data, err := uc.GetWilayaShipping(context.Background(), "Alger")
	require.NoError(t, err)
	require.NotNil(t, data)
	require.NotNil(t, data.CheapestMethod)
	assert.True(t, data.CheapestMethod.IsFree)
	assert.Equal(t, "Livraison gratuite", data.CheapestMethod.Title)
}

func TestGetWilayaShippingCountryFallback(t *testing.T) {
	resp := wilayaZonesResponse()
	// Oran is not listed in any zone; zone 0 with no locations catches it
	provider := &fakeZoneProvider{resp: resp}
	uc := newWilayaUsecase(t, provider)

	data, err := uc.GetWilayaShipping(context.Background(), "Oran")
	require.NoError(t, err)
	require.NotNil(t, data)
	assert.Equal(t, 0, data.ZoneID)
	assert.Equal(t, 800.0, data.DomicilePrice)
}

func TestGetWilayaShippingUnmappedRegion(t *testing.T) {
	provider := &fakeZoneProvider{resp: wilayaZonesResponse()}
	uc := newWilayaUsecase(t, provider)

	data, err := uc.GetWilayaShipping(context.Background(), "Atlantis")
	assert.NoError(t, err)
	assert.Nil(t, data)
}

func TestGetWilayaShippingEmptyName(t *testing.T) {
	provider := &fakeZoneProvider{resp: wilayaZonesResponse()}
	uc := newWilayaUsecase(t, provider)

	data, err := uc.GetWilayaShipping(context.Background(), "")
	assert.NoError(t, err)
	assert.Nil(t, data)
	assert.Equal(t, 0, provider.callCount(), "empty wilaya must not touch the upstream")
}

func TestGetWilayaShippingMemoizes(t *testing.T) {
	provider := &fakeZoneProvider{resp: wilayaZonesResponse()}
	uc := newWilayaUsecase(t, provider)

	first, err := uc.GetWilayaShipping(context.Background(), "Alger")
	require.NoError(t, err)
	second, err := uc.GetWilayaShipping(context.Background(), "Alger")
	require.NoError(t, err)

	assert.Same(t, first, second, "second lookup must hit the derived cache")
	assert.Equal(t, 1, provider.callCount())
}

func TestGetWilayaShippingPropagatesFetchError(t *testing.T) {
	provider := &fakeZoneProvider{err: errors.New("upstream timeout")}
	uc := newWilayaUsecase(t, provider)

	data, err := uc.GetWilayaShipping(context.Background(), "Alger")
	assert.Error(t, err)
	assert.Nil(t, data)
}

func TestInvalidateDerivedDropsMemoizedResults(t *testing.T) {
	provider := &fakeZoneProvider{resp: wilayaZonesResponse()}
	uc := newWilayaUsecase(t, provider)

	first, err := uc.GetWilayaShipping(context.Background(), "Alger")
	require.NoError(t, err)

	uc.InvalidateDerived()

	second, err := uc.GetWilayaShipping(context.Background(), "Alger")
	require.NoError(t, err)
	assert.NotSame(t, first, second, "derived entry must be recomputed after invalidation")
	assert.Equal(t, first, second)
}
