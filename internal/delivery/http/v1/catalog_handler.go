package v1

import (
	"net/http"
	"strconv"

	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/internal/usecase"
	"dzstorefront-backend/pkg/utils"
)

type CatalogHandler struct {
	catalogUC *usecase.CatalogUsecase
}

func NewCatalogHandler(uc *usecase.CatalogUsecase) *CatalogHandler {
	return &CatalogHandler{catalogUC: uc}
}

// GET /api/v1/products
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := domain.ProductListOptions{
		Page:     utils.ParseInt(q.Get("page"), 1),
		PerPage:  utils.ParseInt(q.Get("per_page"), 12),
		Category: q.Get("category"),
		Search:   q.Get("search"),
		OrderBy:  q.Get("orderby"),
	}
	if opts.PerPage > 100 {
		opts.PerPage = 100
	}

	products, err := h.catalogUC.ListProducts(r.Context(), opts)
	if err != nil {
		utils.WriteError(w, http.StatusBadGateway, "Failed to fetch products")
		return
	}
	utils.WriteJSON(w, http.StatusOK, products)
}

// GET /api/v1/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(r.PathValue("id"))
	if err != nil || id <= 0 {
		utils.WriteError(w, http.StatusBadRequest, "Invalid product id")
		return
	}

	product, err := h.catalogUC.GetProduct(r.Context(), id)
	if err != nil {
		utils.WriteError(w, http.StatusBadGateway, "Failed to fetch product")
		return
	}
	utils.WriteJSON(w, http.StatusOK, product)
}

// GET /api/v1/categories
func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogUC.ListCategories(r.Context())
	if err != nil {
		utils.WriteError(w, http.StatusBadGateway, "Failed to fetch categories")
		return
	}
	utils.WriteJSON(w, http.StatusOK, categories)
}
