package usecase

import (
	"strings"

	"dzstorefront-backend/internal/domain"
)

// Delivery titles come from free-text backend configuration, so
// classification is a keyword heuristic. The rules below are evaluated in
// order and the first match wins: carrier-integration method ids are checked
// before generic keywords because a title like "Point relais domicile" would
// otherwise be misread by a plain keyword pass.
type deliveryRule struct {
	matches func(title, methodID string) bool
	result  domain.DeliveryType
}

var stopdeskKeywords = []string{
	"stop desk", "stopdesk", "point relais", "relais",
	"pickup", "collect", "local_pickup", "مكتب",
}

var domicileKeywords = []string{
	"domicile", "home", "door", "porte",
	"maison", "adresse", "flat_rate", "منزل",
}

var deliveryRules = []deliveryRule{
	// Ecotrack carrier integration ids and their Arabic labels
	{
		matches: func(title, methodID string) bool {
			return strings.Contains(methodID, "local_pickup_ecotrack") || strings.Contains(title, "للمكتب")
		},
		result: domain.DeliveryStopdesk,
	},
	{
		matches: func(title, methodID string) bool {
			return strings.Contains(methodID, "flat_rate_ecotrack") || strings.Contains(title, "للمنزل")
		},
		result: domain.DeliveryDomicile,
	},
	// Generic pickup-point wording, French and Arabic
	{
		matches: func(title, methodID string) bool {
			return containsAny(title, methodID, stopdeskKeywords)
		},
		result: domain.DeliveryStopdesk,
	},
	// Generic home-delivery wording
	{
		matches: func(title, methodID string) bool {
			return containsAny(title, methodID, domicileKeywords)
		},
		result: domain.DeliveryDomicile,
	},
	// Assumption, not a platform contract: a bare flat_rate method is
	// treated as home delivery. Confirm against the store's shipping
	// configuration before relying on it.
	{
		matches: func(_, methodID string) bool {
			return strings.Contains(methodID, "flat_rate")
		},
		result: domain.DeliveryDomicile,
	},
}

func containsAny(title, methodID string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(title, kw) || strings.Contains(methodID, kw) {
			return true
		}
	}
	return false
}

// DetectDeliveryType maps a shipping method to its delivery type.
// Pure function: same input always yields the same result.
func DetectDeliveryType(title, methodID string) domain.DeliveryType {
	t := strings.ToLower(title)
	id := strings.ToLower(methodID)

	for _, rule := range deliveryRules {
		if rule.matches(t, id) {
			return rule.result
		}
	}
	return domain.DeliveryOther
}
