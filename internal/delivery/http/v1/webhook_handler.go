package v1

import (
	"net/http"
	"strings"

	"dzstorefront-backend/internal/usecase"
	"dzstorefront-backend/pkg/logger"
	"dzstorefront-backend/pkg/utils"
)

// WebhookHandler receives change notifications from the commerce backend
// and invalidates the matching caches so the storefront converges faster
// than the TTL window alone would allow.
type WebhookHandler struct {
	zoneUC    *usecase.ShippingZoneUsecase
	wilayaUC  *usecase.WilayaShippingUsecase
	catalogUC *usecase.CatalogUsecase
	token     string
}

func NewWebhookHandler(zoneUC *usecase.ShippingZoneUsecase, wilayaUC *usecase.WilayaShippingUsecase, catalogUC *usecase.CatalogUsecase, token string) *WebhookHandler {
	return &WebhookHandler{
		zoneUC:    zoneUC,
		wilayaUC:  wilayaUC,
		catalogUC: catalogUC,
		token:     token,
	}
}

// POST /api/v1/webhooks/woocommerce
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	if h.token != "" && r.Header.Get("X-Webhook-Token") != h.token {
		utils.WriteError(w, http.StatusUnauthorized, "Invalid webhook token")
		return
	}

	topic := r.Header.Get("X-WC-Webhook-Topic")
	log := logger.WithContext(r.Context())

	switch {
	case strings.HasPrefix(topic, "shipping"):
		h.zoneUC.Invalidate(r.Context())
		h.wilayaUC.InvalidateDerived()
		log.Info().Str("topic", topic).Msg("Webhook: shipping caches invalidated")
	case strings.HasPrefix(topic, "product"), strings.HasPrefix(topic, "category"):
		h.catalogUC.InvalidateCatalog()
		log.Info().Str("topic", topic).Msg("Webhook: catalog caches invalidated")
	default:
		// Order webhooks and anything unrecognized: nothing cached to drop
		log.Debug().Str("topic", topic).Msg("Webhook ignored")
	}

	utils.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}
