package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/diazmg/phone-store/internal/cache"
	"github.com/diazmg/phone-store/internal/domain"
	"github.com/diazmg/phone-store/internal/repository"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/sync/singleflight"
)

// CartService owns every mutation of the cart aggregate. All cross-request
// coordination is delegated to the repository's atomic single-document
// operations; the service holds no locks and no state between requests.
type CartService struct {
	carts    repository.CartRepository
	products repository.ProductRepository
	cache    cache.CartCache
	sfg      singleflight.Group // Prevents cache stampede
}

func NewCartService(carts repository.CartRepository, products repository.ProductRepository, cartCache cache.CartCache) *CartService {
	return &CartService{
		carts:    carts,
		products: products,
		cache:    cartCache,
	}
}

// ItemInput is one caller-supplied line item for a bulk cart edit.
type ItemInput struct {
	ProductID string `json:"product"`
	Quantity  int    `json:"quantity"`
}

func (s *CartService) CreateCart(ctx context.Context) (*domain.Cart, error) {
	cart, err := s.carts.CreateCart(ctx)
	if err != nil {
		return nil, fmt.Errorf("create cart: %w", err)
	}
	return cart, nil
}

// GetCart loads a cart with its product references resolved. The raw cart is
// cached; products are re-read so a catalog update is visible immediately.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.ResolvedCart, error) {
	id, err := parseID(cartID)
	if err != nil {
		return nil, err
	}

	// Use singleflight to prevent multiple concurrent cache misses for same key
	v, err, _ := s.sfg.Do(cartID, func() (interface{}, error) {
		cart, err := s.cache.Get(ctx, cartID)
		if err == nil {
			return cart, nil // cart is in cache
		}

		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Printf("cache get error: %v", err) // log cache error but continue
		}

		cart, errGet := s.carts.GetCart(ctx, id)
		if errGet != nil {
			return nil, errGet
		}

		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Second)
			defer cancel()
			if errSet := s.cache.Set(ctx, cartID, cart); errSet != nil {
				log.Printf("cache set error: %v", errSet)
			}
		}()

		return cart, nil
	})
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, v.(*domain.Cart))
}

// AddItem is the merge-or-insert operation: it increments the line item for
// productID or inserts one when absent. Both POST and PUT on a cart item go
// through here; the PUT route deliberately keeps the same increment
// semantics rather than an absolute set.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (repository.AddOutcome, error) {
	cid, err := parseID(cartID)
	if err != nil {
		return 0, err
	}
	pid, err := parseID(productID)
	if err != nil {
		return 0, err
	}
	if quantity < 1 {
		return 0, newValidationError([]string{"quantity must be at least 1"})
	}

	outcome, err := s.carts.AddItem(ctx, cid, pid, quantity)
	if err != nil {
		return 0, err
	}

	s.invalidateCache(cartID)
	return outcome, nil
}

// ReplaceItems overwrites the whole line-item sequence. Every item is
// validated before the write; a single bad item rejects the whole batch.
func (s *CartService) ReplaceItems(ctx context.Context, cartID string, items []ItemInput) (*domain.ResolvedCart, error) {
	cid, err := parseID(cartID)
	if err != nil {
		return nil, err
	}

	var details []string
	lineItems := make([]domain.LineItem, 0, len(items))
	seen := make(map[primitive.ObjectID]bool, len(items))
	for i, item := range items {
		pid, err := primitive.ObjectIDFromHex(item.ProductID)
		if err != nil {
			details = append(details, fmt.Sprintf("item %d: %q is not a valid product id", i, item.ProductID))
			continue
		}
		if item.Quantity < 1 {
			details = append(details, fmt.Sprintf("item %d: quantity must be at least 1", i))
			continue
		}
		if seen[pid] {
			details = append(details, fmt.Sprintf("item %d: duplicate product %s", i, item.ProductID))
			continue
		}
		seen[pid] = true
		lineItems = append(lineItems, domain.LineItem{ProductID: pid, Quantity: item.Quantity})
	}
	if err := newValidationError(details); err != nil {
		return nil, err
	}

	cart, err := s.carts.ReplaceItems(ctx, cid, lineItems)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(cartID)
	return s.resolve(ctx, cart)
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) error {
	cid, err := parseID(cartID)
	if err != nil {
		return err
	}
	pid, err := parseID(productID)
	if err != nil {
		return err
	}

	if err := s.carts.RemoveItem(ctx, cid, pid); err != nil {
		return err
	}

	s.invalidateCache(cartID)
	return nil
}

// Clear empties the cart's line items. The cart document itself survives;
// deleting a cart in this system means clearing it.
func (s *CartService) Clear(ctx context.Context, cartID string) (*domain.ResolvedCart, error) {
	cid, err := parseID(cartID)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.ClearItems(ctx, cid)
	if err != nil {
		return nil, err
	}

	s.invalidateCache(cartID)
	return s.resolve(ctx, cart)
}

// resolve joins line items with their product documents, preserving line
// order. Items whose product disappeared from the catalog keep a nil
// product rather than being dropped.
func (s *CartService) resolve(ctx context.Context, cart *domain.Cart) (*domain.ResolvedCart, error) {
	ids := make([]primitive.ObjectID, 0, len(cart.Products))
	for _, item := range cart.Products {
		ids = append(ids, item.ProductID)
	}

	products, err := s.products.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}

	byID := make(map[primitive.ObjectID]*domain.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	resolved := &domain.ResolvedCart{
		ID:        cart.ID,
		Products:  make([]domain.ResolvedLineItem, 0, len(cart.Products)),
		CreatedAt: cart.CreatedAt,
	}
	for _, item := range cart.Products {
		resolved.Products = append(resolved.Products, domain.ResolvedLineItem{
			Product:  byID[item.ProductID],
			Quantity: item.Quantity,
		})
	}

	return resolved, nil
}

func (s *CartService) invalidateCache(cartID string) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	if err := s.cache.Delete(ctx, cartID); err != nil {
		log.Printf("cache invalidate error: %v", err)
	}
}

func parseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}
