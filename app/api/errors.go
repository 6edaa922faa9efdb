package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/mytheresa/product-catalog/models"
	"github.com/sirupsen/logrus"
)

// FieldError reports a malformed value for a single input field.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// WriteError answers a failed request. Validation and reference failures
// become a 400 naming the field, the rest map onto their status codes.
// Unexpected errors are logged and hidden behind fallback.
func WriteError(w http.ResponseWriter, log logrus.FieldLogger, err error, fallback string) {
	var fieldErr *FieldError
	var verrs validator.ValidationErrors

	switch {
	case errors.Is(err, ErrInvalidJSON):
		ErrorResponse(w, http.StatusBadRequest, "Invalid JSON body")
	case errors.As(err, &fieldErr):
		FieldErrorResponse(w, map[string]string{fieldErr.Field: fieldErr.Message})
	case errors.As(err, &verrs):
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fieldName(fe.Field())] = fieldMessage(fe)
		}
		FieldErrorResponse(w, fields)
	case errors.Is(err, models.ErrCategoryReference):
		FieldErrorResponse(w, map[string]string{"category": "category does not exist"})
	case errors.Is(err, models.ErrCategoryNotFound):
		ErrorResponse(w, http.StatusNotFound, "Category not found")
	case errors.Is(err, models.ErrProductNotFound):
		ErrorResponse(w, http.StatusNotFound, "Product not found")
	case errors.Is(err, models.ErrDuplicate):
		ErrorResponse(w, http.StatusConflict, "Record already exists")
	default:
		log.WithError(err).Error(fallback)
		ErrorResponse(w, http.StatusInternalServerError, fallback)
	}
}

func fieldName(field string) string {
	if field == "CategoryID" {
		return "category"
	}
	return strings.ToLower(field)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "max":
		return fmt.Sprintf("ensure this field has no more than %s characters", fe.Param())
	case "max_digits":
		return fmt.Sprintf("ensure there are no more than %s digits in total", fe.Param())
	case "decimal_places":
		return fmt.Sprintf("ensure there are no more than %s decimal places", fe.Param())
	case "max_whole_digits":
		return fmt.Sprintf("ensure there are no more than %s digits before the decimal point", fe.Param())
	default:
		return fmt.Sprintf("failed on %s", fe.Tag())
	}
}
