package services

import (
	"context"

	"github.com/Govind-619/OrderSphere/models"
	"github.com/Govind-619/OrderSphere/repository"
	"github.com/samber/lo"
)

type CatalogService struct {
	products ProductStore
}

func NewCatalogService(products ProductStore) *CatalogService {
	return &CatalogService{products: products}
}

// ListProducts returns the sellable catalog priced for client.
func (s *CatalogService) ListProducts(ctx context.Context, client models.Client) ([]ProductView, error) {
	products, err := s.products.ListAvailable(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return s.views(products, client), nil
}

func (s *CatalogService) Search(ctx context.Context, client models.Client, f repository.ProductFilter) ([]ProductView, error) {
	products, err := s.products.Search(ctx, f)
	if err != nil {
		return nil, dbError(err)
	}
	return s.views(products, client), nil
}

func (s *CatalogService) GetProduct(ctx context.Context, client models.Client, id uint) (*ProductView, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "Product not found")
	}
	view := newProductView(*product, client)
	return &view, nil
}

func (s *CatalogService) Brands(ctx context.Context) ([]string, error) {
	brands, err := s.products.Brands(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return lo.Compact(brands), nil
}

func (s *CatalogService) Packagings(ctx context.Context) ([]string, error) {
	packagings, err := s.products.Packagings(ctx)
	if err != nil {
		return nil, dbError(err)
	}
	return lo.Compact(packagings), nil
}

func (s *CatalogService) views(products []models.Product, client models.Client) []ProductView {
	return lo.Map(products, func(p models.Product, _ int) ProductView {
		return newProductView(p, client)
	})
}
