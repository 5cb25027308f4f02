package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Cart struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Products  []LineItem         `bson:"products" json:"products"`
	CreatedAt time.Time          `bson:"createdAt" json:"createdAt"`
}

// LineItem is a weak reference to a product plus a quantity. A cart holds at
// most one line item per product; the repository's merge-or-insert protocol
// preserves that invariant.
type LineItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

// ResolvedCart is a cart with product references resolved to full products.
type ResolvedCart struct {
	ID        primitive.ObjectID `json:"id"`
	Products  []ResolvedLineItem `json:"products"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ResolvedLineItem carries the full product document for a line item.
// Product is nil when the referenced product no longer exists in the catalog.
type ResolvedLineItem struct {
	Product  *Product `json:"product"`
	Quantity int      `json:"quantity"`
}
