package catalog

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	v2 "github.com/mytheresa/product-catalog/app/v2"
	"github.com/mytheresa/product-catalog/models"
	"github.com/stretchr/testify/assert"
)

// --- Response Struct ---

type fieldErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// --- Tests ---

func TestHandleGetProduct(t *testing.T) {
	jeans := newTestProduct("Levi Jeans", clothing, "12.99")

	testCases := []struct {
		name               string
		productID          string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:      "Success with nested category",
			productID: jeans.ID.String(),
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: []models.Product{jeans}}
			},
			expectedStatusCode: http.StatusOK,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp v2.Product
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, jeans.ID.String(), resp.ID)
				assert.Equal(t, "Levi Jeans", resp.Name)
				assert.Equal(t, "12.99", resp.Price)
				assert.Equal(t, clothing.ID.String(), resp.Category.ID)
				assert.Equal(t, "Clothing", resp.Category.Name)
				assert.Equal(t, jeans.Vendor.String(), resp.Vendor)
			},
		},
		{
			name:      "Product not found",
			productID: uuid.NewString(),
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: []models.Product{jeans}}
			},
			expectedStatusCode: http.StatusNotFound,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Product not found", errResp["error"])
			},
		},
		{
			name:      "Malformed id",
			productID: "PROD001",
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{SourceProducts: []models.Product{jeans}}
			},
			expectedStatusCode: http.StatusNotFound,
		},
		{
			name:      "Repository internal error",
			productID: jeans.ID.String(),
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Err: errors.New("db connection lost")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to retrieve product", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := newTestHandler(mockRepo)
			req := httptest.NewRequest("GET", "/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			// Act
			handler.HandleGetProduct(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
		})
	}
}

func TestHandleCreate(t *testing.T) {
	fashion := models.Category{ID: uuid.New(), Name: "Fashion"}

	testCases := []struct {
		name               string
		requestBody        string
		mockRepoSetup      func() *MockProductRepo
		expectedStatusCode int
		checkResponse      func(t *testing.T, rec *httptest.ResponseRecorder)
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:        "Success with category id and blank vendor",
			requestBody: `{"category":"` + fashion.ID.String() + `","name":"Levi Jeans","price":12.99,"vendor":""}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Categories: []models.Category{fashion}}
			},
			expectedStatusCode: http.StatusCreated,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var resp v2.Product
				err := json.NewDecoder(rec.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, "Levi Jeans", resp.Name)
				assert.Equal(t, "12.99", resp.Price)
				assert.Equal(t, "Fashion", resp.Category.Name)
				_, err = uuid.Parse(resp.Vendor)
				assert.NoError(t, err, "vendor should be a generated uuid")
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.NotNil(t, repo.lastSaved)
				assert.Equal(t, fashion.ID, repo.lastSaved.CategoryID)
			},
		},
		{
			name:        "Success with nested category object",
			requestBody: `{"category":{"id":"` + fashion.ID.String() + `","name":"Fashion"},"name":"Levi Jeans","price":"12.99"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Categories: []models.Category{fashion}}
			},
			expectedStatusCode: http.StatusCreated,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, fashion.ID, repo.lastSaved.CategoryID)
				assert.Equal(t, "12.99", repo.lastSaved.Price.String())
			},
		},
		{
			name:        "Invalid JSON body",
			requestBody: `{invalid json`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Invalid JSON body", errResp["error"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.lastSaved, "CreateProduct should not be called with invalid JSON")
			},
		},
		{
			name:        "Missing price",
			requestBody: `{"category":"` + fashion.ID.String() + `","name":"Levi Jeans"}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Categories: []models.Category{fashion}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp fieldErrorResponse
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "this field is required", errResp.Fields["price"])
			},
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.lastSaved)
			},
		},
		{
			name:        "Malformed category id",
			requestBody: `{"category":"fashion","name":"Levi Jeans","price":1}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp fieldErrorResponse
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "must be a valid UUID", errResp.Fields["category"])
			},
		},
		{
			name:        "Unknown category",
			requestBody: `{"category":"` + uuid.NewString() + `","name":"Levi Jeans","price":1}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{Categories: []models.Category{fashion}}
			},
			expectedStatusCode: http.StatusBadRequest,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp fieldErrorResponse
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "category does not exist", errResp.Fields["category"])
			},
		},
		{
			name:        "Repository error on create",
			requestBody: `{"category":"` + fashion.ID.String() + `","name":"Levi Jeans","price":1}`,
			mockRepoSetup: func() *MockProductRepo {
				return &MockProductRepo{WriteErr: errors.New("insert failed")}
			},
			expectedStatusCode: http.StatusInternalServerError,
			checkResponse: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var errResp map[string]string
				err := json.NewDecoder(rec.Body).Decode(&errResp)
				assert.NoError(t, err)
				assert.Equal(t, "Failed to create product", errResp["error"])
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			mockRepo := tc.mockRepoSetup()
			handler := newTestHandler(mockRepo)
			req := httptest.NewRequest("POST", "/products", strings.NewReader(tc.requestBody))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			// Act
			handler.HandleCreate(rec, req)

			// Assert
			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			if tc.checkResponse != nil {
				tc.checkResponse(t, rec)
			}
			if tc.checkRepoCall != nil {
				tc.checkRepoCall(t, mockRepo)
			}
		})
	}
}

func TestHandleUpdate(t *testing.T) {
	jeans := newTestProduct("Levi Jeans", clothing, "12.99")

	testCases := []struct {
		name               string
		method             string
		requestBody        string
		expectedStatusCode int
		checkRepoCall      func(t *testing.T, repo *MockProductRepo)
	}{
		{
			name:               "Patch changes only the price",
			method:             http.MethodPatch,
			requestBody:        `{"price":"15.00"}`,
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "Levi Jeans", repo.lastSaved.Name)
				assert.Equal(t, "15.00", repo.lastSaved.Price.StringFixed(2))
				assert.Equal(t, jeans.Vendor, repo.lastSaved.Vendor)
			},
		},
		{
			name:               "Put keeps vendor when left out",
			method:             http.MethodPut,
			requestBody:        `{"name":"501","category":"` + clothing.ID.String() + `","price":20}`,
			expectedStatusCode: http.StatusOK,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Equal(t, "501", repo.lastSaved.Name)
				assert.Equal(t, jeans.Vendor, repo.lastSaved.Vendor)
			},
		},
		{
			name:               "Put requires every writable field",
			method:             http.MethodPut,
			requestBody:        `{"name":"501"}`,
			expectedStatusCode: http.StatusBadRequest,
			checkRepoCall: func(t *testing.T, repo *MockProductRepo) {
				assert.Nil(t, repo.lastSaved)
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockProductRepo{SourceProducts: []models.Product{jeans}, Categories: []models.Category{clothing}}
			handler := newTestHandler(mockRepo)
			req := httptest.NewRequest(tc.method, "/products/"+jeans.ID.String(), strings.NewReader(tc.requestBody))
			req.SetPathValue("id", jeans.ID.String())
			rec := httptest.NewRecorder()

			if tc.method == http.MethodPatch {
				handler.HandlePatch(rec, req)
			} else {
				handler.HandleUpdate(rec, req)
			}

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
			tc.checkRepoCall(t, mockRepo)
		})
	}
}

func TestHandleDelete(t *testing.T) {
	jeans := newTestProduct("Levi Jeans", clothing, "12.99")

	testCases := []struct {
		name               string
		productID          string
		expectedStatusCode int
	}{
		{name: "Existing product", productID: jeans.ID.String(), expectedStatusCode: http.StatusNoContent},
		{name: "Unknown product", productID: uuid.NewString(), expectedStatusCode: http.StatusNotFound},
		{name: "Malformed id", productID: "nope", expectedStatusCode: http.StatusNotFound},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			mockRepo := &MockProductRepo{SourceProducts: []models.Product{jeans}}
			handler := newTestHandler(mockRepo)
			req := httptest.NewRequest(http.MethodDelete, "/products/"+tc.productID, nil)
			req.SetPathValue("id", tc.productID)
			rec := httptest.NewRecorder()

			handler.HandleDelete(rec, req)

			assert.Equal(t, tc.expectedStatusCode, rec.Code)
		})
	}
}
