package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/repository"
	"github.com/diazmg/phone-store/internal/service"
)

type cartsMock struct {
	cart     *domain.Cart
	resolved *domain.ResolvedCart
	outcome  repository.AddOutcome
	err      error

	lastQuantity int
	lastItems    []service.ItemInput
}

func (c *cartsMock) CreateCart(context.Context) (*domain.Cart, error) {
	return c.cart, c.err
}

func (c *cartsMock) GetCart(context.Context, string) (*domain.ResolvedCart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.resolved, nil
}

func (c *cartsMock) AddItem(_ context.Context, _, _ string, quantity int) (repository.AddOutcome, error) {
	c.lastQuantity = quantity
	return c.outcome, c.err
}

func (c *cartsMock) ReplaceItems(_ context.Context, _ string, items []service.ItemInput) (*domain.ResolvedCart, error) {
	c.lastItems = items
	if c.err != nil {
		return nil, c.err
	}
	return c.resolved, nil
}

func (c *cartsMock) RemoveItem(context.Context, string, string) error {
	return c.err
}

func (c *cartsMock) Clear(context.Context, string) (*domain.ResolvedCart, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.resolved, nil
}

type catalogMock struct {
	page    *service.ProductPage
	product *domain.Product
	err     error

	lastParams service.ListParams
}

func (c *catalogMock) ListProducts(_ context.Context, params service.ListParams) (*service.ProductPage, error) {
	c.lastParams = params
	if c.err != nil {
		return nil, c.err
	}
	return c.page, nil
}

func (c *catalogMock) GetProduct(context.Context, string) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

func (c *catalogMock) CreateProduct(context.Context, domain.Product) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

func (c *catalogMock) UpdateProduct(context.Context, string, domain.ProductUpdate) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

func (c *catalogMock) DeleteProduct(context.Context, string) (*domain.Product, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.product, nil
}

// serve routes the request through the real router so URL params resolve.
func serve(catalog Catalog, carts Carts, r *http.Request) *httptest.ResponseRecorder {
	router := NewRouter(NewProductHandler(catalog), NewCartHandler(carts), 5*time.Second)
	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, r)
	return recorder
}
