package usecase

import (
	"strings"

	"dzstorefront-backend/internal/domain"
)

// restOfWorldZoneID is the platform's conventional catch-all zone
const restOfWorldZoneID = 0

// FindZoneForLocation resolves a location code (e.g. "DZ:DZ-16") to the
// best-matching zone. Zone rules can be declared at postcode, state,
// country or continent granularity while customers always select at state
// granularity, so matching widens in tiers: exact code, then bare country
// code, then the catch-all zone. Returns nil when nothing matches.
func FindZoneForLocation(code string, zones []domain.ParsedShippingZone) *domain.ParsedShippingZone {
	for i := range zones {
		if containsCode(zones[i].Locations, code) {
			return &zones[i]
		}
	}

	countryCode := strings.SplitN(code, ":", 2)[0]
	for i := range zones {
		if containsCode(zones[i].Locations, countryCode) {
			return &zones[i]
		}
	}

	for i := range zones {
		if zones[i].ID == restOfWorldZoneID {
			return &zones[i]
		}
	}
	return nil
}

func containsCode(locations []string, code string) bool {
	for _, l := range locations {
		if l == code {
			return true
		}
	}
	return false
}
