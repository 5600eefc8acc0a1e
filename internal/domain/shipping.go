package domain

import "context"

// Location match granularities used by the commerce platform
const (
	LocationTypePostcode  = "postcode"
	LocationTypeState     = "state"
	LocationTypeCountry   = "country"
	LocationTypeContinent = "continent"
)

// MethodFreeShipping is the platform's built-in free shipping method id
const MethodFreeShipping = "free_shipping"

// ShippingLocation is a single location rule attached to a zone
type ShippingLocation struct {
	Code string `json:"code"`
	Type string `json:"type"`
}

// MethodSetting wraps the platform's {value: "..."} setting envelope
type MethodSetting struct {
	Value string `json:"value"`
}

type ShippingMethodSettings struct {
	Title     *MethodSetting `json:"title,omitempty"`
	Cost      *MethodSetting `json:"cost,omitempty"`
	MinAmount *MethodSetting `json:"min_amount,omitempty"`
	Requires  *MethodSetting `json:"requires,omitempty"`
}

// ShippingMethod is a raw shipping method as returned by the commerce backend
type ShippingMethod struct {
	InstanceID        int                    `json:"instance_id"`
	Title             string                 `json:"title"`
	Order             int                    `json:"order"`
	Enabled           bool                   `json:"enabled"`
	MethodID          string                 `json:"method_id"`
	MethodTitle       string                 `json:"method_title"`
	MethodDescription string                 `json:"method_description"`
	Settings          ShippingMethodSettings `json:"settings"`
}

// ShippingZone is a raw zone with its location rules and enabled methods
type ShippingZone struct {
	ID        int                `json:"id"`
	Name      string             `json:"name"`
	Order     int                `json:"order"`
	Locations []ShippingLocation `json:"locations"`
	Methods   []ShippingMethod   `json:"methods"`
}

// ShippingZonesResponse is the aggregate envelope served by the zones endpoint
type ShippingZonesResponse struct {
	Success     bool           `json:"success"`
	Zones       []ShippingZone `json:"zones"`
	TotalZones  int            `json:"totalZones"`
	ActiveZones int            `json:"activeZones"`
}

// ParsedShippingMethod is a normalized method with a numeric cost
type ParsedShippingMethod struct {
	ID          int      `json:"id"`
	MethodID    string   `json:"methodId"`
	Title       string   `json:"title"`
	Cost        float64  `json:"cost"`
	Description string   `json:"description"`
	IsFree      bool     `json:"isFree"`
	MinAmount   *float64 `json:"minAmount,omitempty"`
}

// ParsedShippingZone is a normalized zone. Immutable once constructed:
// consumers must never mutate it in place.
type ParsedShippingZone struct {
	ID        int                    `json:"id"`
	Name      string                 `json:"name"`
	Locations []string               `json:"locations"`
	Methods   []ParsedShippingMethod `json:"methods"`
}

// DeliveryType is the closed classification of a shipping method
type DeliveryType string

const (
	DeliveryDomicile DeliveryType = "domicile"
	DeliveryStopdesk DeliveryType = "stopdesk"
	DeliveryOther    DeliveryType = "other"
)

// WilayaShippingMethod is a parsed method tagged with its delivery type
type WilayaShippingMethod struct {
	ParsedShippingMethod
	DeliveryType DeliveryType `json:"deliveryType"`
}

// WilayaShippingData is the resolved shipping offer for one wilaya.
// DomicilePrice/StopdeskPrice are the cost of the first method of that type
// (0 when absent); CheapestMethod prefers a free method over any paid one.
type WilayaShippingData struct {
	ZoneName       string                 `json:"zoneName"`
	ZoneID         int                    `json:"zoneId"`
	Methods        []WilayaShippingMethod `json:"methods"`
	DomicilePrice  float64                `json:"domicilePrice"`
	StopdeskPrice  float64                `json:"stopdeskPrice"`
	CheapestMethod *WilayaShippingMethod  `json:"cheapestMethod"`
}

// ZoneProvider is the upstream source of raw shipping zones
type ZoneProvider interface {
	FetchShippingZones(ctx context.Context) (*ShippingZonesResponse, error)
}

// ZoneCacheStore persists a serialized zone snapshot across restarts.
// Implementations must treat a missing key as (nil, false, nil).
type ZoneCacheStore interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
