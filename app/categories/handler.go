package categories

import (
	"context"
	"io"
	"net/http"

	"github.com/google/uuid"
	"github.com/mytheresa/product-catalog/app/api"
	"github.com/mytheresa/product-catalog/models"
	"github.com/sirupsen/logrus"
)

type CategoryProvider interface {
	GetAllCategories(ctx context.Context) ([]models.Category, error)
	GetCategoryByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	CreateCategory(ctx context.Context, category *models.Category) error
	UpdateCategory(ctx context.Context, category *models.Category) error
	DeleteCategory(ctx context.Context, id uuid.UUID) (int64, error)
}

// Serializer maps categories to and from one API version's JSON shape.
type Serializer interface {
	Serialize(category models.Category) any
	Deserialize(body io.Reader, category *models.Category, partial bool) error
}

type CategoryHandler struct {
	repo       CategoryProvider
	serializer Serializer
	log        logrus.FieldLogger
}

func NewCategoryHandler(r CategoryProvider, s Serializer, log logrus.FieldLogger) *CategoryHandler {
	return &CategoryHandler{repo: r, serializer: s, log: log}
}

func (h *CategoryHandler) HandleGetAll(w http.ResponseWriter, r *http.Request) {
	categories, err := h.repo.GetAllCategories(r.Context())
	if err != nil {
		api.WriteError(w, h.log, err, "failed to fetch categories")
		return
	}

	response := make([]any, len(categories))
	for i, c := range categories {
		response[i] = h.serializer.Serialize(c)
	}
	api.OKResponse(w, response)
}

func (h *CategoryHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	category, ok := h.lookup(w, r)
	if !ok {
		return
	}
	api.OKResponse(w, h.serializer.Serialize(*category))
}

func (h *CategoryHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var category models.Category
	if err := h.serializer.Deserialize(r.Body, &category, false); err != nil {
		api.WriteError(w, h.log, err, "Failed to create category")
		return
	}

	if err := h.repo.CreateCategory(r.Context(), &category); err != nil {
		api.WriteError(w, h.log, err, "Failed to create category")
		return
	}

	h.log.WithField("category_id", category.ID).Info("category created")
	api.JSONResponse(w, http.StatusCreated, h.serializer.Serialize(category))
}

// HandleUpdate replaces the category (PUT).
func (h *CategoryHandler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, false)
}

// HandlePatch changes only the fields present in the body.
func (h *CategoryHandler) HandlePatch(w http.ResponseWriter, r *http.Request) {
	h.update(w, r, true)
}

func (h *CategoryHandler) update(w http.ResponseWriter, r *http.Request, partial bool) {
	category, ok := h.lookup(w, r)
	if !ok {
		return
	}

	if err := h.serializer.Deserialize(r.Body, category, partial); err != nil {
		api.WriteError(w, h.log, err, "Failed to update category")
		return
	}

	if err := h.repo.UpdateCategory(r.Context(), category); err != nil {
		api.WriteError(w, h.log, err, "Failed to update category")
		return
	}
	api.OKResponse(w, h.serializer.Serialize(*category))
}

func (h *CategoryHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return
	}

	removed, err := h.repo.DeleteCategory(r.Context(), id)
	if err != nil {
		api.WriteError(w, h.log, err, "Failed to delete category")
		return
	}

	h.log.WithFields(logrus.Fields{
		"category_id":      id,
		"products_removed": removed,
	}).Info("category deleted")
	api.NoContent(w)
}

func (h *CategoryHandler) lookup(w http.ResponseWriter, r *http.Request) (*models.Category, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		api.ErrorResponse(w, http.StatusNotFound, "Category not found")
		return nil, false
	}

	category, err := h.repo.GetCategoryByID(r.Context(), id)
	if err != nil {
		api.WriteError(w, h.log, err, "Failed to retrieve category")
		return nil, false
	}
	return category, true
}
