package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/diazmg/phone-store/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type mongoCartRepository struct {
	collection *mongo.Collection
}

func NewMongoCartRepository(db *mongo.Database) CartRepository {
	return &mongoCartRepository{
		collection: db.Collection("carts"),
	}
}

func (m *mongoCartRepository) CreateCart(ctx context.Context) (*domain.Cart, error) {
	cart := &domain.Cart{
		Products:  []domain.LineItem{},
		CreatedAt: time.Now(),
	}

	result, err := m.collection.InsertOne(ctx, cart)
	if err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}

	cart.ID = result.InsertedID.(primitive.ObjectID)
	return cart, nil
}

func (m *mongoCartRepository) GetCart(ctx context.Context, cartID primitive.ObjectID) (*domain.Cart, error) {
	var cart domain.Cart

	err := m.collection.FindOne(ctx, bson.M{"_id": cartID}).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &cart, nil
}

// AddItem runs the merge-or-insert as one atomic update. The aggregation
// pipeline either rewrites the matching line item with an incremented
// quantity or appends a new line item, so two concurrent requests for the
// same product can never produce duplicate line items. The pre-image tells
// us which branch applied.
func (m *mongoCartRepository) AddItem(ctx context.Context, cartID, productID primitive.ObjectID, quantity int) (AddOutcome, error) {
	pipeline := bson.A{
		bson.M{"$set": bson.M{
			"products": bson.M{"$cond": bson.A{
				bson.M{"$in": bson.A{productID, "$products.product"}},
				bson.M{"$map": bson.M{
					"input": "$products",
					"as":    "item",
					"in": bson.M{"$cond": bson.A{
						bson.M{"$eq": bson.A{"$$item.product", productID}},
						bson.M{
							"product":  "$$item.product",
							"quantity": bson.M{"$add": bson.A{"$$item.quantity", quantity}},
						},
						"$$item",
					}},
				}},
				bson.M{"$concatArrays": bson.A{
					"$products",
					bson.A{bson.M{"product": productID, "quantity": quantity}},
				}},
			}},
		}},
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before domain.Cart
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": cartID}, pipeline, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, ErrCartNotFound
		}
		return 0, fmt.Errorf("failed to add item to cart: %w", err)
	}

	for _, item := range before.Products {
		if item.ProductID == productID {
			return OutcomeIncremented, nil
		}
	}
	return OutcomeInserted, nil
}

func (m *mongoCartRepository) ReplaceItems(ctx context.Context, cartID primitive.ObjectID, items []domain.LineItem) (*domain.Cart, error) {
	if items == nil {
		items = []domain.LineItem{}
	}

	update := bson.M{"$set": bson.M{"products": items}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var cart domain.Cart
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": cartID}, update, opts).Decode(&cart)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrCartNotFound
		}
		return nil, fmt.Errorf("failed to replace cart items: %w", err)
	}

	return &cart, nil
}

// RemoveItem pulls the line item in one update. A matched-but-unmodified
// result means the cart exists without that product, which lets us report
// the two not-found causes without a follow-up read.
func (m *mongoCartRepository) RemoveItem(ctx context.Context, cartID, productID primitive.ObjectID) error {
	update := bson.M{
		"$pull": bson.M{
			"products": bson.M{"product": productID},
		},
	}

	result, err := m.collection.UpdateOne(ctx, bson.M{"_id": cartID}, update)
	if err != nil {
		return fmt.Errorf("failed to remove item: %w", err)
	}

	if result.MatchedCount == 0 {
		return ErrCartNotFound
	}
	if result.ModifiedCount == 0 {
		return ErrItemNotFound
	}

	return nil
}

func (m *mongoCartRepository) ClearItems(ctx context.Context, cartID primitive.ObjectID) (*domain.Cart, error) {
	return m.ReplaceItems(ctx, cartID, []domain.LineItem{})
}
