// Package v1 holds the serializers exposed under /api/v1.0.0. Products
// reference their category by id only.
package v1

import (
	"encoding/json"
	"io"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/models"
)

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Product struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Category string `json:"category"`
	Price    string `json:"price"`
	Vendor   string `json:"vendor"`
}

type CategorySerializer struct{}

func (CategorySerializer) Serialize(c models.Category) any {
	return Category{
		ID:   c.ID.String(),
		Name: c.Name,
	}
}

func (CategorySerializer) Deserialize(r io.Reader, c *models.Category, partial bool) error {
	var input struct {
		Name json.RawMessage `json:"name"`
	}
	if err := api.DecodeJSON(r, &input); err != nil {
		return err
	}
	if api.IsNull(input.Name) {
		if partial {
			return nil
		}
		return api.Required("name")
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
	return Product{
		ID:       p.ID.String(),
		Name:     p.Name,
		Category: p.CategoryID.String(),
		Price:    p.Price.StringFixed(2),
		Vendor:   p.Vendor.String(),
	}
}

// Deserialize applies a request body onto p. The category is its id. A
// blank vendor leaves p.Vendor as it is.
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

	switch {
	case !api.IsNull(input.Name):
		name, err := api.ParseString("name", input.Name)
		if err != nil {
			return err
		}
		p.Name = name
	case !partial:
		return api.Required("name")
	}

	switch {
	case !api.IsNull(input.Category):
		id, err := api.ParseUUID("category", input.Category)
		if err != nil {
			return err
		}
		p.CategoryID = id
	case !partial:
		return api.Required("category")
	}

	switch {
	case !api.IsNull(input.Price):
		price, err := api.ParseDecimal("price", input.Price)
		if err != nil {
			return err
		}
		p.Price = price
	case !partial:
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
