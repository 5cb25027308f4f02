package repository

import (
	"context"
	"errors"

	"github.com/diazmg/phone-store/internal/domain"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrCartNotFound    = errors.New("cart not found")
	ErrItemNotFound    = errors.New("item not found in cart")
	ErrProductNotFound = errors.New("product not found")
	ErrDuplicateCode   = errors.New("product code already exists")
)

// AddOutcome reports which branch of the merge-or-insert protocol applied.
type AddOutcome int

const (
	OutcomeInserted AddOutcome = iota
	OutcomeIncremented
)

func (o AddOutcome) String() string {
	if o == OutcomeIncremented {
		return "incremented"
	}
	return "inserted"
}

// CartRepository defines the interface for cart data operations.
// Consumers define this interface, not the MongoDB implementation.
type CartRepository interface {
	CreateCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID primitive.ObjectID) (*domain.Cart, error)
	// AddItem performs the atomic merge-or-insert: one store call that
	// increments the matching line item or appends a new one.
	AddItem(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (AddOutcome, error)
	ReplaceItems(ctx context.Context, cartID primitive.ObjectID, items []domain.LineItem) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, productID primitive.ObjectID) error
	ClearItems(ctx context.Context, cartID primitive.ObjectID) (*domain.Cart, error)
}

// ProductRepository defines the catalog data operations.
type ProductRepository interface {
	Paginate(ctx context.Context, filter domain.ProductFilter, sort domain.SortOrder, page, limit int) ([]domain.Product, int64, error)
	GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
	FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error)
	CreateProduct(ctx context.Context, product *domain.Product) error
	UpdateProduct(ctx context.Context, id primitive.ObjectID, update *domain.ProductUpdate) (*domain.Product, error)
	DeleteProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error)
}
