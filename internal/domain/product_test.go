package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func validProduct() Product {
	return Product{
		Title:       "Pixel 9",
		Description: "flagship",
		Price:       799,
		Stock:       10,
		Status:      true,
		Code:        "PX9",
		Brand:       "Google",
		ModelName:   "Pixel",
		Model:       "9",
	}
}

func TestProductValidate(t *testing.T) {
	valid := validProduct()
	assert.Empty(t, valid.Validate())

	p := validProduct()
	p.Title = "ab"
	p.Price = -1
	p.Stock = -5
	p.Code = ""
	details := p.Validate()
	assert.Len(t, details, 4)
}

func TestProductApplyDefaults(t *testing.T) {
	p := Product{Title: "Pixel 9"}
	p.ApplyDefaults()

	assert.Equal(t, DefaultCategory, p.Category)
	assert.Equal(t, DefaultCamera, p.Camera)
	assert.Equal(t, DefaultBattery, p.Battery)
	assert.Equal(t, DefaultColor, p.Color)
	assert.Equal(t, DefaultOperativeSystem, p.OperativeSystem)
	assert.NotNil(t, p.Thumbnails)

	p2 := validProduct()
	p2.Category = "Tablet"
	p2.ApplyDefaults()
	assert.Equal(t, "Tablet", p2.Category)
}

func TestProductUpdateValidate(t *testing.T) {
	empty := ProductUpdate{}
	assert.True(t, empty.Empty())
	assert.Empty(t, empty.Validate())

	short := "ab"
	negative := -1.0
	u := ProductUpdate{Title: &short, Price: &negative}
	assert.False(t, u.Empty())
	assert.Len(t, u.Validate(), 2)
}
