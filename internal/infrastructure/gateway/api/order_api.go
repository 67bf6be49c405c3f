package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/model/order"
)

// OrderAPI implements output.OrderAPI.
type OrderAPI struct {
	client *Client
}

// NewOrderAPI creates the order gateway.
func NewOrderAPI(client *Client) output.OrderAPI {
	return &OrderAPI{client: client}
}

type createOrderRequest struct {
	Items      []order.LineItem `json:"items"`
	TotalPrice float64          `json:"totalPrice"`
}

// Create submits one order. Each call carries a fresh idempotency key so a
// retried submit cannot double-create the order.
func (a *OrderAPI) Create(ctx context.Context, items []order.LineItem, totalPrice float64) (*order.Placed, error) {
	header := http.Header{}
	header.Set("Idempotency-Key", uuid.NewString())

	var placed order.Placed
	req := createOrderRequest{Items: items, TotalPrice: totalPrice}
	if err := a.client.do(ctx, http.MethodPost, "/orders", nil, req, &placed, header); err != nil {
		return nil, fmt.Errorf("create order failed: %w", err)
	}
	return &placed, nil
}

func (a *OrderAPI) ListMine(ctx context.Context) (*order.Page, error) {
	var page order.Page
	if err := a.client.get(ctx, "/orders/me", nil, &page); err != nil {
		return nil, fmt.Errorf("list orders failed: %w", err)
	}
	return &page, nil
}

func (a *OrderAPI) Get(ctx context.Context, id int) (*order.Details, error) {
	var details order.Details
	if err := a.client.get(ctx, fmt.Sprintf("/orders/%d", id), nil, &details); err != nil {
		return nil, fmt.Errorf("get order failed: %w", err)
	}
	return &details, nil
}
