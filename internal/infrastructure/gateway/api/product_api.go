package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/am24/brickshop/internal/application/port/output"
	"github.com/am24/brickshop/internal/domain/model/catalog"
)

// ProductAPI implements output.CatalogAPI.
type ProductAPI struct {
	client *Client
}

// NewProductAPI creates the catalog gateway.
func NewProductAPI(client *Client) output.CatalogAPI {
	return &ProductAPI{client: client}
}

func (a *ProductAPI) ListByType(ctx context.Context, productType string) ([]catalog.Product, error) {
	query := url.Values{}
	query.Set("type", productType)

	var products []catalog.Product
	if err := a.client.get(ctx, "/products", query, &products); err != nil {
		return nil, fmt.Errorf("list products by type failed: %w", err)
	}
	return products, nil
}

func (a *ProductAPI) GetByID(ctx context.Context, id int) (*catalog.Product, error) {
	var product catalog.Product
	if err := a.client.get(ctx, fmt.Sprintf("/products/%d", id), nil, &product); err != nil {
		return nil, fmt.Errorf("get product failed: %w", err)
	}
	return &product, nil
}
