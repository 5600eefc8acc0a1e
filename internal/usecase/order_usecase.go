package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"dzstorefront-backend/config"
	"dzstorefront-backend/internal/domain"
	"dzstorefront-backend/pkg/logger"
)

// ErrOrderUpstream marks a failure talking to the commerce backend, as
// opposed to a rejected checkout payload.
var ErrOrderUpstream = errors.New("commerce backend order submission failed")

// OrderUsecase validates storefront checkouts and forwards them to the
// commerce backend as cash-on-delivery orders.
type OrderUsecase struct {
	provider domain.OrderProvider
	cfg      *config.Config
}

func NewOrderUsecase(provider domain.OrderProvider, cfg *config.Config) *OrderUsecase {
	return &OrderUsecase{
		provider: provider,
		cfg:      cfg,
	}
}

func (uc *OrderUsecase) validate(req *domain.CheckoutRequest) error {
	if strings.TrimSpace(req.FirstName) == "" {
		return fmt.Errorf("firstName is required")
	}
	if strings.TrimSpace(req.Phone) == "" {
		return fmt.Errorf("phone is required")
	}
	if !domain.IsValidWilaya(req.Wilaya) {
		return fmt.Errorf("unknown wilaya: %s", req.Wilaya)
	}
	if len(req.Items) == 0 {
		return fmt.Errorf("order has no items")
	}
	for _, item := range req.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("invalid product id: %d", item.ProductID)
		}
		if item.Quantity <= 0 || item.Quantity > uc.cfg.MaxOrderQuantity {
			return fmt.Errorf("invalid quantity %d for product %d", item.Quantity, item.ProductID)
		}
	}
	return nil
}

// PlaceOrder submits a COD order. The free-shipping threshold zeroes the
// shipping line when the subtotal qualifies; the commerce backend recomputes
// line totals itself, so only the shipping amount travels with the request.
func (uc *OrderUsecase) PlaceOrder(ctx context.Context, req *domain.CheckoutRequest) (*domain.OrderResponse, error) {
	if err := uc.validate(req); err != nil {
		return nil, err
	}

	shippingCost := req.ShippingCost
	if uc.cfg.FreeShippingThreshold > 0 && req.Subtotal >= uc.cfg.FreeShippingThreshold {
		shippingCost = 0
	}

	lineItems := make([]domain.OrderLineItem, 0, len(req.Items))
	for _, item := range req.Items {
		lineItems = append(lineItems, domain.OrderLineItem{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	// "DZ:DZ-16" -> state "DZ-16" on the order address
	state := domain.WilayaCodeMap[req.Wilaya]
	if idx := strings.Index(state, ":"); idx >= 0 {
		state = state[idx+1:]
	}

	address := domain.OrderAddress{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Address1:  req.Address,
		City:      req.Commune,
		State:     state,
		Country:   domain.CountryCode,
		Phone:     req.Phone,
	}

	methodTitle := req.ShippingMethod
	if methodTitle == "" {
		methodTitle = req.DeliveryType
	}

	order := &domain.OrderRequest{
		PaymentMethod:      domain.PaymentMethodCOD,
		PaymentMethodTitle: domain.PaymentMethodCODTitle,
		SetPaid:            false,
		Billing:            address,
		Shipping:           address,
		LineItems:          lineItems,
		ShippingLines: []domain.OrderShippingLine{
			{
				MethodID:    "flat_rate",
				MethodTitle: methodTitle,
				Total:       strconv.FormatFloat(shippingCost, 'f', 2, 64),
			},
		},
		CustomerNote: req.Note,
	}

	resp, err := uc.provider.CreateOrder(ctx, order)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOrderUpstream, err)
	}

	logger.WithContext(ctx).Info().
		Int("order_id", resp.ID).
		Str("wilaya", req.Wilaya).
		Str("delivery_type", req.DeliveryType).
		Float64("shipping_cost", shippingCost).
		Msg("Order placed")
	return resp, nil
}
