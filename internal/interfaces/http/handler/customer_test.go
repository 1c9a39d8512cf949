package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	partnerapp "github.com/wms/backend/internal/application/partner"
	"github.com/wms/backend/internal/application/validation"
	"github.com/wms/backend/internal/domain/partner"
	"github.com/wms/backend/internal/domain/shared"
)

func newCustomerRouter(repo *mockCustomerRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	service := partnerapp.NewCustomerService(repo, validation.New(), zap.NewNop())
	NewCustomerHandler(service).RegisterRoutes(engine.Group("/api"))
	return engine
}

func validCustomerBody() map[string]any {
	return map[string]any{
		"name":  "Acme Operations",
		"email": "ops@acme.test",
		"address": map[string]any{
			"street":  "1 Dock Road",
			"city":    "Rotterdam",
			"state":   "ZH",
			"country": "NL",
			"zipCode": "3011",
		},
	}
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestCustomerHandlerCreate(t *testing.T) {
	repo := new(mockCustomerRepo)
	repo.On("FindByEmailFold", mock.Anything, "ops@acme.test", mock.Anything).Return(nil, shared.ErrNotFound)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*partner.Customer")).Run(func(args mock.Arguments) {
		args.Get(1).(*partner.Customer).ID = 7
	}).Return(nil)

	w := doJSON(t, newCustomerRouter(repo), http.MethodPost, "/api/customers", validCustomerBody())

	require.Equal(t, http.StatusOK, w.Code)
	var result shared.Result[partnerapp.CustomerDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.True(t, result.Success)
	assert.Equal(t, "Customer successfully created", result.Message)
	require.NotNil(t, result.Data)
	assert.Equal(t, int64(7), result.Data.ID)
	repo.AssertExpectations(t)
}

func TestCustomerHandlerCreateDuplicateEmail(t *testing.T) {
	repo := new(mockCustomerRepo)
	existing := &partner.Customer{Entity: shared.Entity{ID: 3}, Name: "Acme", Email: "ops@acme.test"}
	repo.On("FindByEmailFold", mock.Anything, "ops@acme.test", mock.Anything).Return(existing, nil)

	w := doJSON(t, newCustomerRouter(repo), http.MethodPost, "/api/customers", validCustomerBody())

	require.Equal(t, http.StatusOK, w.Code)
	var result shared.Result[partnerapp.CustomerDTO]
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Success)
	assert.Contains(t, result.Message, "already exists")
	repo.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
}

func TestCustomerHandlerCreateMalformedBody(t *testing.T) {
	repo := new(mockCustomerRepo)
	engine := newCustomerRouter(repo)

	req := httptest.NewRequest(http.MethodPost, "/api/customers", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCustomerHandlerGet(t *testing.T) {
	repo := new(mockCustomerRepo)
	customer := &partner.Customer{
		Entity:    shared.Entity{ID: 7},
		Name:      "Acme Operations",
		Email:     "ops@acme.test",
		AddressID: 4,
		Address:   &partner.Address{Entity: shared.Entity{ID: 4}, Street: "1 Dock Road", City: "Rotterdam"},
	}
	repo.On("FindByID", mock.Anything, int64(7), mock.Anything).Return(customer, nil)

	w := doJSON(t, newCustomerRouter(repo), http.MethodGet, "/api/customers/7", nil)

	require.Equal(t, http.StatusOK, w.Code)

	// Reads return the bare object, not the envelope.
	var raw map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	_, hasEnvelope := raw["success"]
	assert.False(t, hasEnvelope)

	var dto partnerapp.CustomerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &dto))
	assert.Equal(t, int64(7), dto.ID)
	assert.Equal(t, "ops@acme.test", dto.Email)
	require.NotNil(t, dto.Address)
	assert.Equal(t, "1 Dock Road", dto.Address.Street)
}

func TestCustomerHandlerGetNotFound(t *testing.T) {
	repo := new(mockCustomerRepo)
	repo.On("FindByID", mock.Anything, int64(99), mock.Anything).Return(nil, shared.ErrNotFound)

	w := doJSON(t, newCustomerRouter(repo), http.MethodGet, "/api/customers/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCustomerHandlerGetInvalidID(t *testing.T) {
	repo := new(mockCustomerRepo)

	w := doJSON(t, newCustomerRouter(repo), http.MethodGet, "/api/customers/abc", nil)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	repo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything, mock.Anything)
}

func TestCustomerHandlerGetAll(t *testing.T) {
	repo := new(mockCustomerRepo)
	repo.On("FindAll", mock.Anything, mock.Anything).Return([]partner.Customer{
		{Entity: shared.Entity{ID: 1}, Name: "Acme", Email: "a@x.test"},
		{Entity: shared.Entity{ID: 2}, Name: "Globex", Email: "b@x.test"},
	}, nil)

	w := doJSON(t, newCustomerRouter(repo), http.MethodGet, "/api/customers", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var list []partnerapp.CustomerDTO
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list, 2)
	assert.Equal(t, "Globex", list[1].Name)
}

func TestCustomerHandlerDelete(t *testing.T) {
	repo := new(mockCustomerRepo)
	repo.On("Delete", mock.Anything, int64(7)).Return(nil)

	w := doJSON(t, newCustomerRouter(repo), http.MethodDelete, "/api/customers/7", nil)

	require.Equal(t, http.StatusOK, w.Code)
	var status shared.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Success)
	assert.Equal(t, "Record successfully deleted", status.Message)
}

func TestCustomerHandlerUploadEmptyBatch(t *testing.T) {
	repo := new(mockCustomerRepo)

	w := doJSON(t, newCustomerRouter(repo), http.MethodPost, "/api/customers/upload", []any{})

	require.Equal(t, http.StatusOK, w.Code)
	var status shared.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.False(t, status.Success)
	assert.Equal(t, "Customers are required", status.Message)
}

func TestCustomerHandlerUploadUpserts(t *testing.T) {
	repo := new(mockCustomerRepo)
	repo.On("FindByEmailFold", mock.Anything, "ops@acme.test", mock.Anything).Return(nil, shared.ErrNotFound)
	repo.On("Add", mock.Anything, mock.AnythingOfType("*partner.Customer")).Return(nil)

	w := doJSON(t, newCustomerRouter(repo), http.MethodPost, "/api/customers/upload", []any{validCustomerBody()})

	require.Equal(t, http.StatusOK, w.Code)
	var status shared.Status
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &status))
	assert.True(t, status.Success)
	assert.Equal(t, "Customers successfully uploaded", status.Message)
	repo.AssertExpectations(t)
}
