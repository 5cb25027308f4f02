package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/repository"
)

const (
	DefaultLimit = 10
	DefaultPage  = 1
)

// ListParams are the raw catalog query parameters. Zero values fall back to
// the defaults; unrecognized sort or filter input is ignored, never rejected.
type ListParams struct {
	Limit int
	Page  int
	Sort  string // "asc", "desc" or anything else for natural order
	Query string // single "key:value" filter expression
}

// ProductPage is one bounded catalog page plus its navigation metadata.
// PrevPage/NextPage are nil at the respective bounds.
type ProductPage struct {
	Payload     []domain.Product
	TotalPages  int
	Page        int
	PrevPage    *int
	NextPage    *int
	HasPrevPage bool
	HasNextPage bool
}

// CatalogService maps catalog requests onto the product collection. It only
// reads the catalog for queries; admin mutations live on the same service
// because they share validation.
type CatalogService struct {
	products repository.ProductRepository
}

func NewCatalogService(products repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// parseFilter turns a "key:value" expression into the allow-listed filter.
// Unknown keys and malformed expressions yield the empty filter.
func parseFilter(query string) domain.ProductFilter {
	var filter domain.ProductFilter

	key, value, found := strings.Cut(query, ":")
	if !found || key == "" || value == "" {
		return filter
	}

	switch key {
	case "category":
		filter.Category = value
	case "status":
		status := value == "true"
		filter.Status = &status
	case "brand":
		filter.Brand = value
	}

	return filter
}

func parseSort(sort string) domain.SortOrder {
	switch sort {
	case "asc":
		return domain.SortPriceAsc
	case "desc":
		return domain.SortPriceDesc
	default:
		return domain.SortNone
	}
}

// ListProducts returns the requested page. Out-of-range pages come back with
// an empty payload and HasNextPage=false; there is no failure path for bad
// paging input.
func (s *CatalogService) ListProducts(ctx context.Context, params ListParams) (*ProductPage, error) {
	limit := params.Limit
	if limit < 1 {
		limit = DefaultLimit
	}
	page := params.Page
	if page < 1 {
		page = DefaultPage
	}

	products, total, err := s.products.Paginate(ctx, parseFilter(params.Query), parseSort(params.Sort), page, limit)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	if totalPages < 1 {
		totalPages = 1
	}

	result := &ProductPage{
		Payload:     products,
		TotalPages:  totalPages,
		Page:        page,
		HasPrevPage: page > 1,
		HasNextPage: page < totalPages,
	}
	if result.HasPrevPage {
		prev := page - 1
		result.PrevPage = &prev
	}
	if result.HasNextPage {
		next := page + 1
		result.NextPage = &next
	}

	return result, nil
}

func (s *CatalogService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		// The contract for product reads only knows "not found".
		return nil, repository.ErrProductNotFound
	}
	return s.products.GetProduct(ctx, id)
}

func (s *CatalogService) CreateProduct(ctx context.Context, product domain.Product) (*domain.Product, error) {
	product.ApplyDefaults()
	if err := newValidationError(product.Validate()); err != nil {
		return nil, err
	}

	if err := s.products.CreateProduct(ctx, &product); err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, newValidationError([]string{fmt.Sprintf("code %q is already in use", product.Code)})
		}
		return nil, err
	}

	return &product, nil
}

func (s *CatalogService) UpdateProduct(ctx context.Context, productID string, update domain.ProductUpdate) (*domain.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}
	if update.Empty() {
		return nil, newValidationError([]string{"update carries no fields"})
	}
	if err := newValidationError(update.Validate()); err != nil {
		return nil, err
	}

	product, err := s.products.UpdateProduct(ctx, id, &update)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateCode) {
			return nil, newValidationError([]string{"code is already in use"})
		}
		return nil, err
	}

	return product, nil
}

func (s *CatalogService) DeleteProduct(ctx context.Context, productID string) (*domain.Product, error) {
	id, err := parseID(productID)
	if err != nil {
		return nil, repository.ErrProductNotFound
	}
	return s.products.DeleteProduct(ctx, id)
}
