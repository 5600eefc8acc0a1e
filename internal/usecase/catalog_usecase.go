package usecase

import (
	"context"
	"fmt"

	"dzstorefront-backend/config"
	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/pkg/cache"
)

// CatalogUsecase proxies catalog reads from the commerce backend with
// cache-aside memoization. The storefront owns no catalog state; every miss
// goes straight upstream.
type CatalogUsecase struct {
	provider domain.CatalogProvider
	cache    cache.CacheService
	cfg      *config.Config
}

func NewCatalogUsecase(provider domain.CatalogProvider, memCache cache.CacheService, cfg *config.Config) *CatalogUsecase {
	return &CatalogUsecase{
		provider: provider,
		cache:    memCache,
		cfg:      cfg,
	}
}

func (uc *CatalogUsecase) ListProducts(ctx context.Context, opts domain.ProductListOptions) ([]domain.Product, error) {
	key := fmt.Sprintf("catalog:products:p%d:n%d:c%s:q%s:o%s",
		opts.Page, opts.PerPage, opts.Category, opts.Search, opts.OrderBy)
	if val, found := uc.cache.Get(key); found {
		return val.([]domain.Product), nil
	}

	products, err := uc.provider.FetchProducts(ctx, opts)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, products, uc.cfg.CacheProductTTL)
	return products, nil
}

func (uc *CatalogUsecase) GetProduct(ctx context.Context, id int) (*domain.Product, error) {
	key := fmt.Sprintf("catalog:product:%d", id)
	if val, found := uc.cache.Get(key); found {
		return val.(*domain.Product), nil
	}

	product, err := uc.provider.FetchProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, product, uc.cfg.CacheProductTTL)
	return product, nil
}

func (uc *CatalogUsecase) ListCategories(ctx context.Context) ([]domain.Category, error) {
	key := "catalog:categories"
	if val, found := uc.cache.Get(key); found {
		return val.([]domain.Category), nil
	}

	categories, err := uc.provider.FetchCategories(ctx)
	if err != nil {
		return nil, err
	}
	uc.cache.Set(key, categories, uc.cfg.CacheCategoryTTL)
	return categories, nil
}

// InvalidateCatalog drops all memoized catalog entries (webhook driven)
func (uc *CatalogUsecase) InvalidateCatalog() {
	uc.cache.DeletePrefix("catalog:")
}
