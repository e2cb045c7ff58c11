package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/xenking/storefront-checkout/gen/oas"
	"github.com/xenking/storefront-checkout/internal/domain/order"
)

// ListOrders returns the caller's orders, newest first.
func (h *Handler) ListOrders(ctx context.Context) ([]oas.Order, error) {
	orders, err := h.orders.ListByUser(ctx, UserFromContext(ctx))
	if err != nil {
		return nil, err
	}
	out := make([]oas.Order, len(orders))
	for i := range orders {
		out[i] = *h.toOrder(&orders[i])
	}
	return out, nil
}

// GetOrder returns one of the caller's orders.
func (h *Handler) GetOrder(ctx context.Context, params oas.GetOrderParams) (*oas.Order, error) {
	id, err := parseOrderID(params.OrderId)
	if err != nil {
		return nil, err
	}
	o, err := h.orders.GetForUser(ctx, UserFromContext(ctx), id)
	if err != nil {
		return nil, err
	}
	return h.toOrder(o), nil
}

// AdminGetOrder returns any order by id.
func (h *Handler) AdminGetOrder(ctx context.Context, params oas.AdminGetOrderParams) (*oas.Order, error) {
	id, err := parseOrderID(params.OrderId)
	if err != nil {
		return nil, err
	}
	o, err := h.orders.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return h.toOrder(o), nil
}

// MarkOrderPaid records a payment confirmation from the payment processor.
func (h *Handler) MarkOrderPaid(ctx context.Context, req *oas.PaymentRequest, params oas.MarkOrderPaidParams) (*oas.Order, error) {
	id, err := parseOrderID(params.OrderId)
	if err != nil {
		return nil, err
	}
	o, err := h.orders.MarkPaid(ctx, id, order.Payment{
		Method:     order.PaymentMethod(req.Method),
		Reference:  req.Reference.Or(""),
		PayerEmail: req.PayerEmail.Or(""),
		PaidAt:     req.PaidAt.Or(time.Time{}),
	})
	if err != nil {
		return nil, err
	}
	return h.toOrder(o), nil
}

// UpdateOrderStatus moves an order to the requested fulfilment status.
func (h *Handler) UpdateOrderStatus(ctx context.Context, req *oas.StatusUpdate, params oas.UpdateOrderStatusParams) (*oas.Order, error) {
	id, err := parseOrderID(params.OrderId)
	if err != nil {
		return nil, err
	}
	to, err := order.ParseStatus(req.Status)
	if err != nil {
		return nil, err
	}
	o, err := h.orders.UpdateStatus(ctx, id, to)
	if err != nil {
		return nil, err
	}
	return h.toOrder(o), nil
}

// parseOrderID reports malformed ids as missing orders.
func parseOrderID(raw string) (uuid.UUID, error) {
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, order.ErrNotFound
	}
	return id, nil
}
