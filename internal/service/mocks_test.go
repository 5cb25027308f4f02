package service

import (
	"context"
	"sync"

	"github.com/diazmg/phone-store/internal/cache"
	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// mockCartRepository keeps carts in memory and mirrors the store's atomic
// single-document semantics under a mutex.
type mockCartRepository struct {
	m     sync.Mutex
	carts map[primitive.ObjectID]*domain.Cart
	err   error
}

func newMockCartRepository() *mockCartRepository {
	return &mockCartRepository{carts: make(map[primitive.ObjectID]*domain.Cart)}
}

func (m *mockCartRepository) CreateCart(context.Context) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart := &domain.Cart{ID: primitive.NewObjectID(), Products: []domain.LineItem{}}
	m.carts[cart.ID] = cart
	return cloneCart(cart), nil
}

func (m *mockCartRepository) GetCart(_ context.Context, cartID primitive.ObjectID) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	return cloneCart(cart), nil
}

func (m *mockCartRepository) AddItem(_ context.Context, cartID, productID primitive.ObjectID, quantity int) (repository.AddOutcome, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return 0, repository.ErrCartNotFound
	}
	for i := range cart.Products {
		if cart.Products[i].ProductID == productID {
			cart.Products[i].Quantity += quantity
			return repository.OutcomeIncremented, nil
		}
	}
	cart.Products = append(cart.Products, domain.LineItem{ProductID: productID, Quantity: quantity})
	return repository.OutcomeInserted, nil
}

func (m *mockCartRepository) ReplaceItems(_ context.Context, cartID primitive.ObjectID, items []domain.LineItem) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, repository.ErrCartNotFound
	}
	cart.Products = append([]domain.LineItem{}, items...)
	return cloneCart(cart), nil
}

func (m *mockCartRepository) RemoveItem(_ context.Context, cartID, productID primitive.ObjectID) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return repository.ErrCartNotFound
	}
	for i, item := range cart.Products {
		if item.ProductID == productID {
			cart.Products = append(cart.Products[:i], cart.Products[i+1:]...)
			return nil
		}
	}
	return repository.ErrItemNotFound
}

func (m *mockCartRepository) ClearItems(ctx context.Context, cartID primitive.ObjectID) (*domain.Cart, error) {
	return m.ReplaceItems(ctx, cartID, []domain.LineItem{})
}

func cloneCart(cart *domain.Cart) *domain.Cart {
	clone := *cart
	clone.Products = append([]domain.LineItem{}, cart.Products...)
	return &clone
}

// mockProductRepository serves a fixed product list.
type mockProductRepository struct {
	m        sync.Mutex
	products map[primitive.ObjectID]domain.Product

	// captured Paginate arguments, for asserting query translation
	lastFilter domain.ProductFilter
	lastSort   domain.SortOrder
	lastPage   int
	lastLimit  int

	paginateTotal int64
	err           error
}

func newMockProductRepository(products ...domain.Product) *mockProductRepository {
	byID := make(map[primitive.ObjectID]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	return &mockProductRepository{products: byID}
}

func (m *mockProductRepository) Paginate(_ context.Context, filter domain.ProductFilter, sort domain.SortOrder, page, limit int) ([]domain.Product, int64, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, 0, m.err
	}
	m.lastFilter = filter
	m.lastSort = sort
	m.lastPage = page
	m.lastLimit = limit

	all := make([]domain.Product, 0, len(m.products))
	for _, p := range m.products {
		all = append(all, p)
	}
	total := m.paginateTotal
	if total == 0 {
		total = int64(len(all))
	}

	start := (page - 1) * limit
	if start >= len(all) {
		return []domain.Product{}, total, nil
	}
	end := start + limit
	if end > len(all) {
		end = len(all)
	}
	return all[start:end], total, nil
}

func (m *mockProductRepository) GetProduct(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	return &p, nil
}

func (m *mockProductRepository) FindByIDs(_ context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	found := []domain.Product{}
	for _, id := range ids {
		if p, ok := m.products[id]; ok {
			found = append(found, p)
		}
	}
	return found, nil
}

func (m *mockProductRepository) CreateProduct(_ context.Context, product *domain.Product) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, p := range m.products {
		if p.Code == product.Code {
			return repository.ErrDuplicateCode
		}
	}
	product.ID = primitive.NewObjectID()
	m.products[product.ID] = *product
	return nil
}

func (m *mockProductRepository) UpdateProduct(_ context.Context, id primitive.ObjectID, update *domain.ProductUpdate) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	if update.Title != nil {
		p.Title = *update.Title
	}
	if update.Price != nil {
		p.Price = *update.Price
	}
	if update.Stock != nil {
		p.Stock = *update.Stock
	}
	if update.Status != nil {
		p.Status = *update.Status
	}
	m.products[id] = p
	return &p, nil
}

func (m *mockProductRepository) DeleteProduct(_ context.Context, id primitive.ObjectID) (*domain.Product, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	p, ok := m.products[id]
	if !ok {
		return nil, repository.ErrProductNotFound
	}
	delete(m.products, id)
	return &p, nil
}

// mockCache is a plain map-backed cart cache.
type mockCache struct {
	m     sync.Mutex
	carts map[string]*domain.Cart
	err   error
}

func newMockCache() *mockCache {
	return &mockCache{carts: make(map[string]*domain.Cart)}
}

func (m *mockCache) Get(_ context.Context, cartID string) (*domain.Cart, error) {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	cart, ok := m.carts[cartID]
	if !ok {
		return nil, cache.ErrCacheMiss
	}
	return cart, nil
}

func (m *mockCache) Set(_ context.Context, cartID string, cart *domain.Cart) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	m.carts[cartID] = cart
	return nil
}

func (m *mockCache) Delete(_ context.Context, cartID string) error {
	m.m.Lock()
	defer m.m.Unlock()
	if m.err != nil {
		return m.err
	}
	delete(m.carts, cartID)
	return nil
}
