package domain

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Defaults applied to products created without the optional catalog fields.
const (
	DefaultCategory        = "Smartphone"
	DefaultCamera          = "Not specified"
	DefaultBattery         = "Not specified"
	DefaultColor           = "Black"
	DefaultOperativeSystem = "Android"
)

type Product struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Title           string             `bson:"title" json:"title"`
	Description     string             `bson:"description" json:"description"`
	Price           float64            `bson:"price" json:"price"`
	Category        string             `bson:"category" json:"category"`
	Stock           int                `bson:"stock" json:"stock"`
	Status          bool               `bson:"status" json:"status"`
	Code            string             `bson:"code" json:"code"`
	Thumbnails      []string           `bson:"thumbnails" json:"thumbnails"`
	Brand           string             `bson:"brand" json:"brand"`
	ModelName       string             `bson:"modelName" json:"modelName"`
	Model           string             `bson:"model" json:"model"`
	ScreenSize      float64            `bson:"screenSize" json:"screenSize"`
	Storage         float64            `bson:"storage" json:"storage"`
	RAM             float64            `bson:"ram" json:"ram"`
	Camera          string             `bson:"camera" json:"camera"`
	Battery         string             `bson:"battery" json:"battery"`
	Color           string             `bson:"color" json:"color"`
	OperativeSystem string             `bson:"operativeSystem" json:"operativeSystem"`
	CreatedAt       time.Time          `bson:"createdAt" json:"createdAt"`
}

// ApplyDefaults fills the optional fields the catalog treats as defaulted.
// Status is defaulted at the request-decoding boundary because a plain bool
// cannot distinguish false from absent.
func (p *Product) ApplyDefaults() {
	if p.Category == "" {
		p.Category = DefaultCategory
	}
	if p.Thumbnails == nil {
		p.Thumbnails = []string{}
	}
	if p.Camera == "" {
		p.Camera = DefaultCamera
	}
	if p.Battery == "" {
		p.Battery = DefaultBattery
	}
	if p.Color == "" {
		p.Color = DefaultColor
	}
	if p.OperativeSystem == "" {
		p.OperativeSystem = DefaultOperativeSystem
	}
}

// Validate checks the field constraints and returns one message per violation.
func (p *Product) Validate() []string {
	var details []string

	if len(p.Title) < 3 {
		details = append(details, "title is required and must be at least 3 characters")
	}
	if p.Description == "" {
		details = append(details, "description is required")
	}
	if p.Price < 0 {
		details = append(details, "price must be greater than or equal to 0")
	}
	if p.Stock < 0 {
		details = append(details, "stock must be greater than or equal to 0")
	}
	if p.Code == "" {
		details = append(details, "code is required")
	}
	if p.Brand == "" {
		details = append(details, "brand is required")
	}
	if p.ModelName == "" {
		details = append(details, "modelName is required")
	}
	if p.Model == "" {
		details = append(details, "model is required")
	}

	return details
}

// ProductUpdate carries a partial field replacement for an existing product.
// Nil fields are left untouched by the update.
type ProductUpdate struct {
	Title           *string   `json:"title"`
	Description     *string   `json:"description"`
	Price           *float64  `json:"price"`
	Category        *string   `json:"category"`
	Stock           *int      `json:"stock"`
	Status          *bool     `json:"status"`
	Code            *string   `json:"code"`
	Thumbnails      *[]string `json:"thumbnails"`
	Brand           *string   `json:"brand"`
	ModelName       *string   `json:"modelName"`
	Model           *string   `json:"model"`
	ScreenSize      *float64  `json:"screenSize"`
	Storage         *float64  `json:"storage"`
	RAM             *float64  `json:"ram"`
	Camera          *string   `json:"camera"`
	Battery         *string   `json:"battery"`
	Color           *string   `json:"color"`
	OperativeSystem *string   `json:"operativeSystem"`
}

// Validate re-checks the constraints for the fields the update carries.
func (u *ProductUpdate) Validate() []string {
	var details []string

	if u.Title != nil && len(*u.Title) < 3 {
		details = append(details, "title must be at least 3 characters")
	}
	if u.Description != nil && *u.Description == "" {
		details = append(details, "description must not be empty")
	}
	if u.Price != nil && *u.Price < 0 {
		details = append(details, "price must be greater than or equal to 0")
	}
	if u.Stock != nil && *u.Stock < 0 {
		details = append(details, "stock must be greater than or equal to 0")
	}
	if u.Code != nil && *u.Code == "" {
		details = append(details, "code must not be empty")
	}

	return details
}

// Empty reports whether the update carries no fields at all.
func (u *ProductUpdate) Empty() bool {
	return u.Title == nil && u.Description == nil && u.Price == nil &&
		u.Category == nil && u.Stock == nil && u.Status == nil &&
		u.Code == nil && u.Thumbnails == nil && u.Brand == nil &&
		u.ModelName == nil && u.Model == nil && u.ScreenSize == nil &&
		u.Storage == nil && u.RAM == nil && u.Camera == nil &&
		u.Battery == nil && u.Color == nil && u.OperativeSystem == nil
}

// SortOrder selects the price ordering of a catalog page.
type SortOrder int

const (
	SortNone SortOrder = iota
	SortPriceAsc
	SortPriceDesc
)

// ProductFilter is the allow-listed catalog filter. Zero value means no
// filter. Status uses a pointer so "status:false" is expressible.
type ProductFilter struct {
	Category string
	Brand    string
	Status   *bool
}

func (f ProductFilter) String() string {
	return fmt.Sprintf("category=%q brand=%q status=%v", f.Category, f.Brand, f.Status)
}
