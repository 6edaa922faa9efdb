// Package admin serves a read-only overview of the catalog for operators.
package admin

import (
	"context"
	"net/http"

	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/models"
	"github.com/sirupsen/logrus"
)

type CategoryLister interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	CountCategories(ctx context.Context) (int64, error)
}

type ProductLister interface {
	GetAllProducts(ctx context.Context) ([]models.Product, error)
	CountProducts(ctx context.Context) (int64, error)
}

type Summary struct {
	Categories int `json:"categories"`
	Products   int `json:"products"`
}

type CategoryRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Products int    `json:"products"`
}

type ProductRow struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	CategoryID   string `json:"category_id"`
	CategoryName string `json:"category_name"`
	Price        string `json:"price"`
	Vendor       string `json:"vendor"`
}

type AdminHandler struct {
	categories CategoryLister
	products   ProductLister
	log        logrus.FieldLogger
}

func NewAdminHandler(c CategoryLister, p ProductLister, log logrus.FieldLogger) *AdminHandler {
	return &AdminHandler{categories: c, products: p, log: log}
}

func (h *AdminHandler) HandleIndex(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.CountCategories(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err, "failed to count categories")
		return
	}
	products, err := h.products.CountProducts(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err, "failed to count products")
		return
	}
	api.OKResponse(w, Summary{
		Categories: int(categories),
		Products:   int(products),
	})
}

func (h *AdminHandler) HandleCategories(w http.ResponseWriter, r *http.Request) {
	categories, products, ok := h.load(w, r)
	if !ok {
		return
	}

	counts := make(map[string]int, len(categories))
	for _, p := range products {
		counts[p.CategoryID.String()]++
	}

	rows := make([]CategoryRow, len(categories))
	for i, c := range categories {
		rows[i] = CategoryRow{
			ID:       c.ID.String(),
			Name:     c.Name,
			Products: counts[c.ID.String()],
		}
	}
	api.OKResponse(w, rows)
}

func (h *AdminHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.products.GetAllProducts(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err, "failed to get products")
		return
	}

	rows := make([]ProductRow, len(products))
	for i, p := range products {
		rows[i] = ProductRow{
			ID:           p.ID.String(),
			Name:         p.Name,
			CategoryID:   p.CategoryID.String(),
			CategoryName: p.Category.Name,
			Price:        p.Price.StringFixed(2),
			Vendor:       p.Vendor.String(),
		}
	}
	api.OKResponse(w, rows)
}

func (h *AdminHandler) load(w http.ResponseWriter, r *http.Request) ([]models.Category, []models.Product, bool) {
	categories, err := h.categories.GetAllCategories(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err, "failed to fetch categories")
		return nil, nil, false
	}
	products, err := h.products.GetAllProducts(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err, "failed to get products")
		return nil, nil, false
	}
	return categories, products, true
}
