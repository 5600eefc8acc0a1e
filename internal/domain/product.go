package domain

import "context"

// ProductImage is a single product image as exposed by the commerce backend
type ProductImage struct {
	ID  int    `json:"id"`
	Src string `json:"src"`
	Alt string `json:"alt"`
}

// ProductCategoryRef is the category reference embedded in a product
type ProductCategoryRef struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// Product is the catalog shape proxied to the storefront UI. Prices stay
// strings on the wire because the platform serializes them that way.
type Product struct {
	ID               int                  `json:"id"`
	Name             string               `json:"name"`
	Slug             string               `json:"slug"`
	Permalink        string               `json:"permalink"`
	Description      string               `json:"description"`
	ShortDescription string               `json:"short_description"`
	Price            string               `json:"price"`
	RegularPrice     string               `json:"regular_price"`
	SalePrice        string               `json:"sale_price"`
	OnSale           bool                 `json:"on_sale"`
	StockStatus      string               `json:"stock_status"`
	Images           []ProductImage       `json:"images"`
	Categories       []ProductCategoryRef `json:"categories"`
}

// Category is a catalog category proxied from the commerce backend
type Category struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Slug  string `json:"slug"`
	Count int    `json:"count"`
	Image *struct {
		Src string `json:"src"`
	} `json:"image,omitempty"`
}

// ProductListOptions narrows a catalog listing request
type ProductListOptions struct {
	Page     int
	PerPage  int
	Category string
	Search   string
	OrderBy  string
}

// CatalogProvider fetches catalog data from the commerce backend
type CatalogProvider interface {
	FetchProducts(ctx context.Context, opts ProductListOptions) ([]Product, error)
	FetchProduct(ctx context.Context, id int) (*Product, error)
	FetchCategories(ctx context.Context) ([]Category, error)
}
