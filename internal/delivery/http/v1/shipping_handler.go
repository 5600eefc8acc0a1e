package v1

import (
	"net/http"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/internal/usecase"
	"dzstorefront-backend/pkg/utils"
)

type ShippingHandler struct {
	zoneUC   *usecase.ShippingZoneUsecase
	wilayaUC *usecase.WilayaShippingUsecase
}

func NewShippingHandler(zoneUC *usecase.ShippingZoneUsecase, wilayaUC *usecase.WilayaShippingUsecase) *ShippingHandler {
	return &ShippingHandler{zoneUC: zoneUC, wilayaUC: wilayaUC}
}

// GET /api/v1/shipping/zones
func (h *ShippingHandler) GetZones(w http.ResponseWriter, r *http.Request) {
	zones, _, err := h.zoneUC.GetZones(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusBadGateway, "Failed to fetch shipping zones")
		return
	}

	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"success":     true,
		"zones":       zones,
		"activeZones": len(zones),
	})
}

// wilayaShippingResponse mirrors what the checkout UI consumes: shippingData
// is null both while unresolvable and on failure; error distinguishes the two.
type wilayaShippingResponse struct {
	ShippingData *domain.WilayaShippingData `json:"shippingData"`
	Error        *string                    `json:"error"`
}

// GET /api/v1/shipping/wilaya/{name}
func (h *ShippingHandler) GetWilayaShipping(w http.ResponseWriter, r *http.Request) {
	wilaya := r.PathValue("name")

	data, err := h.wilayaUC.GetWilayaShipping(r.Context(), wilaya)
	if err != nil {
		// Transient upstream failure: still a well-formed tuple, 200 with
		// the error string, so the UI can show a pending/unavailable state
		msg := err.Error()
		utils.WriteJSON(w, http.StatusOK, wilayaShippingResponse{Error: &msg})
		return
	}

	utils.WriteJSON(w, http.StatusOK, wilayaShippingResponse{ShippingData: data})
}

// GET /api/v1/shipping/wilayas
func (h *ShippingHandler) ListWilayas(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"wilayas": domain.Wilayas,
	})
}
