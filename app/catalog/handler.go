package catalog

import (
	"context"
	"io"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/models"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Total    int   `json:"total"`
	Products []any `json:"products"`
}

type ProductProvider interface {
	GetFilteredProducts(ctx context.Context, offset, limit int, filters models.ProductFilters) ([]models.Product, int64, error)
	GetByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
	CreateProduct(ctx context.Context, product *models.Product) error
	UpdateProduct(ctx context.Context, product *models.Product) error
	DeleteProduct(ctx context.Context, id uuid.UUID) error
}

type CategoryLookup interface {
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
}

// Serializer maps products to and from one API version's JSON shape.
type Serializer interface {
	Serialize(product models.Product) any
	Deserialize(body io.Reader, product *models.Product, partial bool) error
}

type CatalogHandler struct {
	repo       ProductProvider
	categories CategoryLookup
	serializer Serializer
	log        logrus.FieldLogger
}

func NewCatalogHandler(r ProductProvider, c CategoryLookup, s Serializer, log logrus.FieldLogger) *CatalogHandler {
	return &CatalogHandler{
		repo:       r,
		categories: c,
		serializer: s,
		log:        log,
	}
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	offset, limit := parsePagination(r)

	// Parse filters
	filters := models.ProductFilters{
		CategoryName: r.URL.Query().Get("category_name"),
	}
	if catStr := r.URL.Query().Get("category"); catStr != "" {
		if id, err := uuid.Parse(catStr); err == nil {
			filters.CategoryID = &id
		}
	}
	if priceStr := r.URL.Query().Get("price_lt"); priceStr != "" {
		if val, err := strconv.ParseFloat(priceStr, 64); err == nil {
			filters.PriceLessThan = &val
		}
	}

	h.list(w, r, offset, limit, filters)
}

// HandleGetByCategory lists the products of the category named in the path.
func (h *CatalogHandler) HandleGetByCategory(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}
	if _, err := h.categories.GetCategoryByID(r.Context(), id); err != nil {
		api.WriteError(w, h.log, err, "failed to get products")
		return
	}

	offset, limit := parsePagination(r)
	h.list(w, r, offset, limit, models.ProductFilters{CategoryID: &id})
}

func (h *CatalogHandler) list(w http.ResponseWriter, r *http.Request, offset, limit int, filters models.ProductFilters) {
	res, total, err := h.repo.GetFilteredProducts(r.Context(), offset, limit, filters)
	if err != nil {
		api.WriteError(w, h.log, err, "failed to get products")
		return
	}

	products := make([]any, len(res))
	for i, p := range res {
		products[i] = h.serializer.Serialize(p)
	}

	api.OKResponse(w, Response{
		Total:    int(total),
		Products: products,
	})
}

func (h *CatalogHandler) HandleGetProduct(w http.ResponseWriter, r *http.Request) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}
	api.OKResponse(w, h.serializer.Serialize(*product))
}

func (h *CatalogHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var product models.Product
	if err := h.serializer.Deserialize(r.Body, &product, false); err != nil {
		api.WriteError(w, h.log, err, "Failed to create product")
		return
	}

	if err := h.repo.CreateProduct(r.Context(), &product); err != nil {
		api.WriteError(w, h.log, err, "Failed to create product")
		return
	}

	h.log.WithField("product_id", product.ID).Info("product created")
	api.JSONResponse(w, http.StatusCreated, h.serializer.Serialize(product))
}

// HandleUpdate replaces the product (PUT). Vendor keeps its value when
// the body leaves it out.
func (h *CatalogHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePatch changes only the fields present in the body.
func (h *CatalogHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *CatalogHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	product, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.serializer.Deserialize(r.Body, product, partial); err != nil {
		api.WriteError(w, h.log, err, "Failed to update product")
		return
	}

	if err := h.repo.UpdateProduct(r.Context(), product); err != nil {
		api.WriteError(w, h.log, err, "Failed to update product")
		return
	}
	api.OKResponse(w, h.serializer.Serialize(*product))
}

func (h *CatalogHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return
	}

	if err := h.repo.DeleteProduct(r.Context(), id); err != nil {
		api.WriteError(w, h.log, err, "Failed to delete product")
		return
	}

	h.log.WithField("product_id", id).Info("product deleted")
	api.NoContent(w)
}

func (h *CatalogHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Product, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusNotFound, "Product not found")
		return nil, false
	}

	product, err := h.repo.GetByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, h.log, err, "Failed to retrieve product")
		return nil, false
	}
	return product, true
}

// parsePagination reads offset and limit, clamping limit to 1..100.
// Values that do not parse are ignored.
func parsePagination(r *http.Request) (offset, limit int) {
	offset = 0
	limit = 10

	if oStr := r.URL.Query().Get("offset"); oStr != "" {
		if o, err := strconv.Atoi(oStr); err == nil && o >= 0 {
			offset = o
		}
	}

	if lStr := r.URL.Query().Get("limit"); lStr != "" {
		if l, err := strconv.Atoi(lStr); err == nil {
			if l < 1 {
				limit = 1
			} else if l > 100 {
				limit = 100
			} else {
				limit = l
			}
		}
	}
	return offset, limit
}
