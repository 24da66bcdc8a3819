package upstream

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// CatalogGateway implements domain.CatalogGateway. All calls are anonymous
// reads; the backend owns filtering and pagination, we only map parameters.
type CatalogGateway struct {
	client *Client
}

// NewCatalogGateway creates the catalog gateway.
func NewCatalogGateway(client *Client) domain.CatalogGateway {
	return &CatalogGateway{client: client}
}

type productPagePayload struct {
	Data []domain.Product `json:"data"`
	Meta domain.PageMeta  `json:"meta"`
}

// Products implements domain.CatalogGateway.
func (g *CatalogGateway) Products(ctx context.Context, filters domain.ProductFilters) (*domain.ProductPage, error) {
	var payload productPagePayload
	if err := g.client.getRaw(ctx, "/products", filters.Query(), "", &payload); err != nil {
		return nil, err
	}
	return &domain.ProductPage{Data: payload.Data, Meta: payload.Meta}, nil
}

// Product implements domain.CatalogGateway.
func (g *CatalogGateway) Product(ctx context.Context, slug string) (*domain.Product, error) {
	var product domain.Product
	if err := g.client.get(ctx, "/products/"+url.PathEscape(slug), nil, "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// FeaturedProducts implements domain.CatalogGateway.
func (g *CatalogGateway) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if limit <= 0 {
		limit = 8
	}
	q := url.Values{"limit": []string{strconv.Itoa(limit)}}
	var products []domain.Product
	if err := g.client.get(ctx, "/products/featured", q, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories implements domain.CatalogGateway.
func (g *CatalogGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	var categories []domain.Category
	if err := g.client.get(ctx, "/categories", nil, "", &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Category implements domain.CatalogGateway.
func (g *CatalogGateway) Category(ctx context.Context, slug string) (*domain.Category, error) {
	var category domain.Category
	if err := g.client.get(ctx, "/categories/"+url.PathEscape(slug), nil, "", &category); err != nil {
		return nil, err
	}
	return &category, nil
}

// CategoryProducts implements domain.CatalogGateway.
func (g *CatalogGateway) CategoryProducts(ctx context.Context, categoryID uint, filters domain.ProductFilters) (*domain.ProductPage, error) {
	var payload productPagePayload
	path := fmt.Sprintf("/categories/%d/products", categoryID)
	if err := g.client.getRaw(ctx, path, filters.Query(), "", &payload); err != nil {
		return nil, err
	}
	return &domain.ProductPage{Data: payload.Data, Meta: payload.Meta}, nil
}
