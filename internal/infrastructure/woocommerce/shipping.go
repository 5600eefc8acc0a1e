package woocommerce

import (
	"context"
	"fmt"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/pkg/logger"

	"golang.org/x/sync/errgroup"
)

// Zone details are fetched per zone; cap the fan-out so a store with many
// zones does not hammer the backend.
const zoneFetchConcurrency = 4

type zoneHead struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// FetchShippingZones aggregates the backend's shipping-zones,
// zone-locations and zone-methods endpoints into a single envelope,
// keeping only enabled methods and zones that have at least one.
func (c *Client) FetchShippingZones(ctx context.Context) (*domain.ShippingZonesResponse, error) {
	var heads []zoneHead
	if err := c.get(ctx, "shipping/zones", nil, &heads); err != nil {
		return nil, err
	}

	zones := make([]domain.ShippingZone, len(heads))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(zoneFetchConcurrency)
	for i, head := range heads {
		g.Go(func() error {
			zone := domain.ShippingZone{
				ID:    head.ID,
				Name:  head.Name,
				Order: head.Order,
			}

			// A zone whose detail endpoints fail is carried with empty
			// lists rather than failing the whole aggregate; it gets
			// filtered out below when it has no methods.
			var locations []domain.ShippingLocation
			if err := c.get(gctx, fmt.Sprintf("shipping/zones/%d/locations", head.ID), nil, &locations); err != nil {
				logger.WithContext(gctx).Warn().Err(err).Int("zone_id", head.ID).Msg("Failed to fetch zone locations")
				locations = nil
			}
			zone.Locations = locations

			var methods []domain.ShippingMethod
			if err := c.get(gctx, fmt.Sprintf("shipping/zones/%d/methods", head.ID), nil, &methods); err != nil {
				logger.WithContext(gctx).Warn().Err(err).Int("zone_id", head.ID).Msg("Failed to fetch zone methods")
				methods = nil
			}
			enabled := methods[:0]
			for _, m := range methods {
				if m.Enabled {
					enabled = append(enabled, m)
				}
			}
			zone.Methods = enabled

			zones[i] = zone
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	active := make([]domain.ShippingZone, 0, len(zones))
	for _, z := range zones {
		if len(z.Methods) > 0 {
			active = append(active, z)
		}
	}

	return &domain.ShippingZonesResponse{
		Success:     true,
		Zones:       active,
		TotalZones:  len(heads),
		ActiveZones: len(active),
	}, nil
}
