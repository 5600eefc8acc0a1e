package domain

import "context"

// Checkout is cash-on-delivery only; there is no payment gateway.
const (
	PaymentMethodCOD      = "cod"
	PaymentMethodCODTitle = "Paiement à la livraison"
)

// OrderItem is one cart line submitted at checkout
type OrderItem struct {
	ProductID int `json:"productId"`
	Quantity  int `json:"quantity"`
}

// CheckoutRequest is the storefront checkout payload
type CheckoutRequest struct {
	FirstName      string      `json:"firstName"`
	LastName       string      `json:"lastName"`
	Phone          string      `json:"phone"`
	Wilaya         string      `json:"wilaya"`
	Commune        string      `json:"commune"`
	Address        string      `json:"address"`
	DeliveryType   string      `json:"deliveryType"`
	Items          []OrderItem `json:"items"`
	Subtotal       float64     `json:"subtotal"`
	ShippingCost   float64     `json:"shippingCost"`
	ShippingMethod string      `json:"shippingMethod"`
	Note           string      `json:"note"`
}

// OrderLineItem is the platform's order line shape
type OrderLineItem struct {
	ProductID int `json:"product_id"`
	Quantity  int `json:"quantity"`
}

// OrderShippingLine carries the resolved shipping price on the order
type OrderShippingLine struct {
	MethodID    string `json:"method_id"`
	MethodTitle string `json:"method_title"`
	Total       string `json:"total"`
}

// OrderAddress is the platform billing/shipping address shape.
// State carries the wilaya location code (e.g. "DZ-16").
type OrderAddress struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Address1  string `json:"address_1"`
	City      string `json:"city"`
	State     string `json:"state"`
	Country   string `json:"country"`
	Phone     string `json:"phone,omitempty"`
}

// OrderRequest is the order document posted to the commerce backend
type OrderRequest struct {
	PaymentMethod      string              `json:"payment_method"`
	PaymentMethodTitle string              `json:"payment_method_title"`
	SetPaid            bool                `json:"set_paid"`
	Billing            OrderAddress        `json:"billing"`
	Shipping           OrderAddress        `json:"shipping"`
	LineItems          []OrderLineItem     `json:"line_items"`
	ShippingLines      []OrderShippingLine `json:"shipping_lines"`
	CustomerNote       string              `json:"customer_note,omitempty"`
}

// OrderResponse is the subset of the created order the UI needs
type OrderResponse struct {
	ID       int    `json:"id"`
	Number   string `json:"number"`
	Status   string `json:"status"`
	Total    string `json:"total"`
	OrderKey string `json:"order_key"`
}

// OrderProvider submits orders to the commerce backend
type OrderProvider interface {
	CreateOrder(ctx context.Context, req *OrderRequest) (*OrderResponse, error)
}
