package handler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/inkhaus/backoffice-api/internal/domain"
	"github.com/inkhaus/backoffice-api/internal/http/handler"
	"github.com/inkhaus/backoffice-api/internal/repository"
	"github.com/inkhaus/backoffice-api/internal/service"
	"github.com/inkhaus/backoffice-api/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupClientRouter(t *testing.T) (*chi.Mux, *gorm.DB) {
	db := testutil.SetupTestDB(t)
	svc := service.NewClientService(repository.NewClientRepository(db), zap.NewNop())
	h := handler.NewClientHandler(svc, zap.NewNop())

	r := chi.NewRouter()
	r.Route("/clients", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Create)
		r.Get("/{id}", h.GetByID)
		r.Put("/{id}", h.Update)
		r.Delete("/{id}", h.Delete)
	})
	return r, db
}

func doJSON(t *testing.T, router http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestClientHandler_Create(t *testing.T) {
	router, _ := setupClientRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients", domain.CreateClientRequest{
		Name:  "Ama Serwaa",
		Phone: "+233201234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code)

	var created domain.ClientDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&created))
	assert.Equal(t, "Ama Serwaa", created.Name)
	assert.Equal(t, "/api/v1/clients/"+created.ID.String(), rec.Header().Get("Location"))
}

func TestClientHandler_Create_ValidationError(t *testing.T) {
	router, _ := setupClientRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/clients", domain.CreateClientRequest{})
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var apiErr domain.APIError
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&apiErr))
	assert.Contains(t, apiErr.Errors, "name")
}

func TestClientHandler_GetByID(t *testing.T) {
	router, db := setupClientRouter(t)
	client := testutil.CreateTestClient(t, db, "Kwame Mensah")

	rec := doJSON(t, router, http.MethodGet, "/clients/"+client.ID.String(), nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got domain.ClientDTO
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&got))
	assert.Equal(t, client.ID, got.ID)

	rec = doJSON(t, router, http.MethodGet, "/clients/not-a-uuid", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/clients/00000000-0000-0000-0000-000000000001", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClientHandler_Delete_ConflictWithOrders(t *testing.T) {
	router, db := setupClientRouter(t)
	client := testutil.CreateTestClient(t, db, "Akosua Boateng")
	testutil.CreateTestOrder(t, db, client.ID)

	rec := doJSON(t, router, http.MethodDelete, "/clients/"+client.ID.String(), nil)
	assert.Equal(t, http.StatusConflict, rec.Code)

	empty := testutil.CreateTestClient(t, db, "Yaw Owusu")
	rec = doJSON(t, router, http.MethodDelete, "/clients/"+empty.ID.String(), nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

func TestClientHandler_List_Paginated(t *testing.T) {
	router, db := setupClientRouter(t)
	for _, name := range []string{"Ama Serwaa", "Kwame Mensah", "Akosua Boateng"} {
		testutil.CreateTestClient(t, db, name)
	}

	rec := doJSON(t, router, http.MethodGet, "/clients?page=1&pageSize=2", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var page domain.PaginatedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&page))
	assert.Equal(t, int64(3), page.Total)
	assert.Equal(t, 2, page.TotalPages)
}
