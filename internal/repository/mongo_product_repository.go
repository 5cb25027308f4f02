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

type mongoProductRepository struct {
	collection *mongo.Collection
}

func NewMongoProductRepository(db *mongo.Database) ProductRepository {
	return &mongoProductRepository{
		collection: db.Collection("products"),
	}
}

func buildFilter(filter domain.ProductFilter) bson.M {
	query := bson.M{}
	if filter.Category != "" {
		query["category"] = filter.Category
	}
	if filter.Brand != "" {
		query["brand"] = filter.Brand
	}
	if filter.Status != nil {
		query["status"] = *filter.Status
	}
	return query
}

// Paginate returns one bounded page plus the total match count. Sort is
// strict on price; ties keep the store's stable order.
func (m *mongoProductRepository) Paginate(ctx context.Context, filter domain.ProductFilter, sort domain.SortOrder, page, limit int) ([]domain.Product, int64, error) {
	query := buildFilter(filter)

	total, err := m.collection.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	opts := options.Find().
		SetSkip(int64(page-1) * int64(limit)).
		SetLimit(int64(limit))

	switch sort {
	case domain.SortPriceAsc:
		opts.SetSort(bson.D{{Key: "price", Value: 1}})
	case domain.SortPriceDesc:
		opts.SetSort(bson.D{{Key: "price", Value: -1}})
	}

	cursor, err := m.collection.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query products: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, 0, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, total, nil
}

func (m *mongoProductRepository) GetProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product

	err := m.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}

	return &product, nil
}

func (m *mongoProductRepository) FindByIDs(ctx context.Context, ids []primitive.ObjectID) ([]domain.Product, error) {
	if len(ids) == 0 {
		return []domain.Product{}, nil
	}

	cursor, err := m.collection.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("failed to query products by ids: %w", err)
	}
	defer cursor.Close(ctx)

	products := []domain.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (m *mongoProductRepository) CreateProduct(ctx context.Context, product *domain.Product) error {
	product.CreatedAt = time.Now()

	result, err := m.collection.InsertOne(ctx, product)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateCode
		}
		return fmt.Errorf("failed to create product: %w", err)
	}

	product.ID = result.InsertedID.(primitive.ObjectID)
	return nil
}

func (m *mongoProductRepository) UpdateProduct(ctx context.Context, id primitive.ObjectID, update *domain.ProductUpdate) (*domain.Product, error) {
	set := bson.M{}
	setField := func(key string, v any) {
		set[key] = v
	}

	if update.Title != nil {
		setField("title", *update.Title)
	}
	if update.Description != nil {
		setField("description", *update.Description)
	}
	if update.Price != nil {
		setField("price", *update.Price)
	}
	if update.Category != nil {
		setField("category", *update.Category)
	}
	if update.Stock != nil {
		setField("stock", *update.Stock)
	}
	if update.Status != nil {
		setField("status", *update.Status)
	}
	if update.Code != nil {
		setField("code", *update.Code)
	}
	if update.Thumbnails != nil {
		setField("thumbnails", *update.Thumbnails)
	}
	if update.Brand != nil {
		setField("brand", *update.Brand)
	}
	if update.ModelName != nil {
		setField("modelName", *update.ModelName)
	}
	if update.Model != nil {
		setField("model", *update.Model)
	}
	if update.ScreenSize != nil {
		setField("screenSize", *update.ScreenSize)
	}
	if update.Storage != nil {
		setField("storage", *update.Storage)
	}
	if update.RAM != nil {
		setField("ram", *update.RAM)
	}
	if update.Camera != nil {
		setField("camera", *update.Camera)
	}
	if update.Battery != nil {
		setField("battery", *update.Battery)
	}
	if update.Color != nil {
		setField("color", *update.Color)
	}
	if update.OperativeSystem != nil {
		setField("operativeSystem", *update.OperativeSystem)
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var product domain.Product
	err := m.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set}, opts).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateCode
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return &product, nil
}

func (m *mongoProductRepository) DeleteProduct(ctx context.Context, id primitive.ObjectID) (*domain.Product, error) {
	var product domain.Product

	err := m.collection.FindOneAndDelete(ctx, bson.M{"_id": id}).Decode(&product)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to delete product: %w", err)
	}

	return &product, nil
}

// EnsureProductIndexes creates the catalog indexes, including the unique
// index backing the product-code invariant. Called once at startup.
func EnsureProductIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "code", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{Keys: bson.D{{Key: "category", Value: 1}}},
		{Keys: bson.D{{Key: "status", Value: 1}}},
		{Keys: bson.D{{Key: "brand", Value: 1}}},
		{Keys: bson.D{{Key: "modelName", Value: 1}}},
		{Keys: bson.D{{Key: "model", Value: 1}}},
		{Keys: bson.D{{Key: "color", Value: 1}}},
		{Keys: bson.D{{Key: "price", Value: 1}}},
	}

	_, err := db.Collection("products").Indexes().CreateMany(ctx, indexes)
	if err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	return nil
}
