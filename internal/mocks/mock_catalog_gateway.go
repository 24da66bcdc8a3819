package mocks

import (
	"context"

	"github.com/ruabo2004/totnghiep0kho-frontend/domain"
)

// MockCatalogGateway implements domain.CatalogGateway with overridable
// functions.
type MockCatalogGateway struct {
	ProductsFunc         func(ctx context.Context, filters domain.ProductFilters) (*domain.ProductPage, error)
	ProductFunc          func(ctx context.Context, slug string) (*domain.Product, error)
	FeaturedProductsFunc func(ctx context.Context, limit int) ([]domain.Product, error)
	CategoriesFunc       func(ctx context.Context) ([]domain.Category, error)
	CategoryFunc         func(ctx context.Context, slug string) (*domain.Category, error)
	CategoryProductsFunc func(ctx context.Context, categoryID uint, filters domain.ProductFilters) (*domain.ProductPage, error)
}

func (m *MockCatalogGateway) Products(ctx context.Context, filters domain.ProductFilters) (*domain.ProductPage, error) {
	if m.ProductsFunc != nil {
		return m.ProductsFunc(ctx, filters)
	}
	return &domain.ProductPage{}, nil
}

func (m *MockCatalogGateway) Product(ctx context.Context, slug string) (*domain.Product, error) {
	if m.ProductFunc != nil {
		return m.ProductFunc(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *MockCatalogGateway) FeaturedProducts(ctx context.Context, limit int) ([]domain.Product, error) {
	if m.FeaturedProductsFunc != nil {
		return m.FeaturedProductsFunc(ctx, limit)
	}
	return nil, nil
}

func (m *MockCatalogGateway) Categories(ctx context.Context) ([]domain.Category, error) {
	if m.CategoriesFunc != nil {
		return m.CategoriesFunc(ctx)
	}
	return nil, nil
}

func (m *MockCatalogGateway) Category(ctx context.Context, slug string) (*domain.Category, error) {
	if m.CategoryFunc != nil {
		return m.CategoryFunc(ctx, slug)
	}
	return nil, domain.ErrNotFound
}

func (m *MockCatalogGateway) CategoryProducts(ctx context.Context, categoryID uint, filters domain.ProductFilters) (*domain.ProductPage, error) {
	if m.CategoryProductsFunc != nil {
		return m.CategoryProductsFunc(ctx, categoryID, filters)
	}
	return &domain.ProductPage{}, nil
}
