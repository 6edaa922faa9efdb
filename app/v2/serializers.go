// Package v2 holds the serializers exposed under /api/v2.0.0. Products
// embed their category.
package v2

import (
	"encoding/json"
	"io"

	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/models"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Category Category `json:"category"`
	Price    string   `json:"price"`
	Vendor   string   `json:"vendor"`
}

func NewCategory(c models.Category) Category {
	return Category{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}

func NewProduct(p models.Product) Product {
	return Product{
		ID:       p.ID.String(),
		Name:     p.Name,
		Category: NewCategory(p.Category),
		Price:    p.Price.StringFixed(2),
		Vendor:   p.Vendor.String(),
	}
}

type CategorySerializer struct{}

func (CategorySerializer) Serialize(c models.Category) any {
	return NewCategory(c)
}

func (CategorySerializer) Deserialize(r io.Reader, c *models.Category, partial bool) error {
	var input struct {
		Name json.RawMessage `json:"name"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		return err
	}

	if api.IsNull(input.Name) {
		if !partial {
			return api.Required("name")
		}
		return nil
	}
	name, err := api.ParseString("name", input.Name)
	if err != nil {
		return err
	}
	c.Name = name
	return nil
}

type ProductSerializer struct{}

func (ProductSerializer) Serialize(p models.Product) any {
	return NewProduct(p)
}

// Deserialize applies a request body onto p. The category may be sent as
// its id or as an object carrying the id. A blank vendor leaves p.Vendor
// as it is; new products get a fresh one on insert.
func (ProductSerializer) Deserialize(r io.Reader, p *models.Product, partial bool) error {
	var input struct {
		Name     json.RawMessage `json:"name"`
		Category json.RawMessage `json:"category"`
		Price    json.RawMessage `json:"price"`
		Vendor   json.RawMessage `json:"vendor"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		return err
	}

	if !api.IsNull(input.Name) {
		name, err := api.ParseString("name", input.Name)
		if err != nil {
			return err
		}
		p.Name = name
	} else if !partial {
		return api.Required("name")
	}

	if !api.IsNull(input.Category) {
		id, err := parseCategoryRef(input.Category)
		if err != nil {
			return err
		}
		p.CategoryID = id
	} else if !partial {
		return api.Required("category")
	}

	if !api.IsNull(input.Price) {
		price, err := api.ParseDecimal("price", input.Price)
		if err != nil {
			return err
		}
		p.Price = price
	} else if !partial {
		return api.Required("price")
	}

	vendor, ok, err := api.ParseOptionalUUID("vendor", input.Vendor)
	if err != nil {
		return err
	}
	if ok {
		p.Vendor = vendor
	}
	return nil
}

func parseCategoryRef(raw json.RawMessage) (uuid.UUID, error) {
	var nested struct {
		ID json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &nested); err == nil {
		if api.IsNull(nested.ID) {
			return uuid.Nil, api.Required("category")
		}
		return api.ParseUUID("category", nested.ID)
	}
	return api.ParseUUID("category", raw)
}
