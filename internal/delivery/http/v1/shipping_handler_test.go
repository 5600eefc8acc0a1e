package v1

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"dzstorefront-backend/internal/domain"
	infracache "dzstorefront-backend/internal/infrastructure/cache"
	"dzstorefront-backend/internal/usecase"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubZoneProvider struct {
	resp *domain.ShippingZonesResponse
	err  error
}

func (s *stubZoneProvider) FetchShippingZones(ctx context.Context) (*domain.ShippingZonesResponse, error) {
	return s.resp, s.err
}

func shippingTestMux(provider domain.ZoneProvider) *http.ServeMux {
	zoneUC := usecase.NewShippingZoneUsecase(provider, nil, 5*time.Minute)
	memCache := infracache.NewMemoryCache(5*time.Minute, 10*time.Minute)
	wilayaUC := usecase.NewWilayaShippingUsecase(zoneUC, memCache, 5*time.Minute)
	h := NewShippingHandler(zoneUC, wilayaUC)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/shipping/zones", h.GetZones)
	mux.HandleFunc("GET /api/v1/shipping/wilayas", h.ListWilayas)
	mux.HandleFunc("GET /api/v1/shipping/wilaya/{name}", h.GetWilayaShipping)
	return mux
}

func stubZonesResponse() *domain.ShippingZonesResponse {
	return &domain.ShippingZonesResponse{
		Success: true,
		Zones: []domain.ShippingZone{
			{
				ID:   5,
				Name: "Centre",
				Locations: []domain.ShippingLocation{
					{Code: "DZ:DZ-16", Type: domain.LocationTypeState},
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
				},
			},
		},
		TotalZones:  1,
		ActiveZones: 1,
	}
}

func TestGetWilayaShippingHandlerKnownWilaya(t *testing.T) {
	mux := shippingTestMux(&stubZoneProvider{resp: stubZonesResponse()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/wilaya/Alger", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body wilayaShippingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.ShippingData)
	assert.Nil(t, body.Error)
	assert.Equal(t, "Centre", body.ShippingData.ZoneName)
	assert.Equal(t, 500.0, body.ShippingData.DomicilePrice)
}

func TestGetWilayaShippingHandlerUnknownWilaya(t *testing.T) {
	mux := shippingTestMux(&stubZoneProvider{resp: stubZonesResponse()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/wilaya/Atlantis", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body wilayaShippingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.ShippingData)
	assert.Nil(t, body.Error)
}

func TestGetWilayaShippingHandlerUpstreamFailure(t *testing.T) {
	mux := shippingTestMux(&stubZoneProvider{err: errors.New("upstream timeout")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/wilaya/Alger", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	// Failures surface through the payload, not the status code
	require.Equal(t, http.StatusOK, rec.Code)

	var body wilayaShippingResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Nil(t, body.ShippingData)
	require.NotNil(t, body.Error)
	assert.Contains(t, *body.Error, "upstream timeout")
}

func TestGetZonesHandler(t *testing.T) {
	mux := shippingTestMux(&stubZoneProvider{resp: stubZonesResponse()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/zones", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Success     bool                        `json:"success"`
		Zones       []domain.ParsedShippingZone `json:"zones"`
		ActiveZones int                         `json:"activeZones"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.True(t, body.Success)
	require.Len(t, body.Zones, 1)
	assert.Equal(t, 1, body.ActiveZones)
	assert.Equal(t, "Centre", body.Zones[0].Name)
}

func TestGetZonesHandlerUpstreamFailure(t *testing.T) {
	mux := shippingTestMux(&stubZoneProvider{err: errors.New("connection refused")})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/zones", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadGateway, rec.Code)
}

func TestListWilayasHandler(t *testing.T) {
	mux := shippingTestMux(&stubZoneProvider{resp: stubZonesResponse()})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/shipping/wilayas", nil)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Wilayas []string `json:"wilayas"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Len(t, body.Wilayas, 58)
	assert.Contains(t, body.Wilayas, "Alger")
	assert.Contains(t, body.Wilayas, "Tindouf")
}
