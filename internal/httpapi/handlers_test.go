package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/egorv/homebook/internal/catalog"
	"github.com/egorv/homebook/internal/checkout"
	"github.com/egorv/homebook/internal/credentials"
	"github.com/egorv/homebook/internal/pricing"
	"github.com/egorv/homebook/internal/store"
)

// --- Mock ---

type catalogStub struct {
	services []*catalog.Service
	err      error
}

func (s catalogStub) GetAllServices(context.Context) ([]*catalog.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.services, nil
}

func (s catalogStub) GetService(_ context.Context, id string) (*catalog.Service, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, svc := range s.services {
		if svc.ID == id {
			return svc, nil
		}
	}
	return nil, catalog.ErrServiceNotFound
}

var stubServices = []*catalog.Service{
	{ID: "1", Name: "Plumbing", Description: "Fix leaky faucets, install pipes, and more.", Price: "$100"},
	{ID: "2", Name: "Electrical", Description: "Electrical wiring, troubleshooting, and installations.", Price: "$150"},
}

// --- helpers ---

type testEnv struct {
	router  chi.Router
	cart    *store.CartStore
	history *store.OrderHistory
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	pricer := pricing.NewNormalizerWithReport(func(string, ...any) {})
	cart, history := store.New(pricer)
	pipeline := checkout.NewPipeline(cart, history, pricer, &checkout.SimulatedProcessor{Delay: 10 * time.Millisecond})
	provider := catalogStub{services: stubServices}

	router := NewRouter(
		NewCatalogHandler(provider, 5*time.Second),
		NewCartHandler(cart, provider, 5*time.Second),
		NewCheckoutHandler(pipeline),
		NewOrdersHandler(history),
		NewProfileHandler(credentials.NewMemoryStore(), 5*time.Second),
		5*time.Second,
	)

	return &testEnv{router: router, cart: cart, history: history}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	request := httptest.NewRequest(method, path, reader)
	recorder := httptest.NewRecorder()
	e.router.ServeHTTP(recorder, request)
	return recorder
}

func decodeJSON[T any](t *testing.T, recorder *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(recorder.Body).Decode(&out))
	return out
}

// --- catalog ---

func TestListServices(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "GET", "/api/v1/services/", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	dtos := decodeJSON[[]ServiceDTO](t, recorder)
	require.Len(t, dtos, 2)
	assert.Equal(t, "Plumbing", dtos[0].Name)
	assert.Equal(t, "$100", dtos[0].Price)
}

func TestGetService_NotFound(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "GET", "/api/v1/services/999", nil)

	require.Equal(t, http.StatusNotFound, recorder.Code)
	resp := decodeJSON[ErrorResponse](t, recorder)
	assert.Equal(t, "not_found", resp.Code)
}

// --- cart ---

func TestAddItem_Success(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "1"})

	require.Equal(t, http.StatusCreated, recorder.Code)
	resp := decodeJSON[CartResponseDTO](t, recorder)
	assert.Equal(t, 1, resp.Count)
	assert.Equal(t, "100.00", resp.Total)
	assert.Equal(t, "Plumbing", resp.Items[0].Name)
}

func TestAddItem_UnknownService(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "999"})

	require.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, 0, env.cart.Len())
}

func TestAddItem_InvalidBody(t *testing.T) {
	env := newTestEnv(t)

	request := httptest.NewRequest("POST", "/api/v1/cart/items", bytes.NewReader([]byte("{not json")))
	recorder := httptest.NewRecorder()
	env.router.ServeHTTP(recorder, request)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestRemoveItem_OutOfRange(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "DELETE", "/api/v1/cart/items/0", nil)

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeJSON[ErrorResponse](t, recorder)
	assert.Equal(t, "index_out_of_range", resp.Code)
}

func TestRemoveItem_Success(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "1"})
	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "2"})

	recorder := env.do(t, "DELETE", "/api/v1/cart/items/0", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	resp := decodeJSON[CartResponseDTO](t, recorder)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, "Electrical", resp.Items[0].Name)
}

func TestClearCart(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "1"})

	recorder := env.do(t, "DELETE", "/api/v1/cart/", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	assert.Equal(t, 0, env.cart.Len())
}

// --- checkout ---

func validDetailsBody() map[string]string {
	return map[string]string{
		"customer_name": "Asha Rao",
		"mobile_number": "9876543210",
		"email":         "asha@example.com",
		"address":       "12 Lake View Road",
		"booking_date":  "2026-09-15",
		"booking_time":  "10:30",
	}
}

func TestValidate_EmptyCartReason(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "POST", "/api/v1/checkout/validate", nil)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	resp := decodeJSON[ErrorResponse](t, recorder)
	assert.Equal(t, "EmptyCart", resp.Code)
}

func TestValidate_MissingFieldsReason(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "1"})

	recorder := env.do(t, "POST", "/api/v1/checkout/validate", nil)

	require.Equal(t, http.StatusUnprocessableEntity, recorder.Code)
	resp := decodeJSON[ErrorResponse](t, recorder)
	assert.Equal(t, "MissingFields", resp.Code)
}

func TestSelectPayment_UnknownMethod(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "PUT", "/api/v1/checkout/payment-method", PaymentMethodRequestDTO{Method: "Bitcoin"})

	require.Equal(t, http.StatusBadRequest, recorder.Code)
	resp := decodeJSON[ErrorResponse](t, recorder)
	assert.Equal(t, "unknown_payment_method", resp.Code)
}

func TestCommit_BeforeValidation(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "POST", "/api/v1/checkout/commit", nil)

	require.Equal(t, http.StatusConflict, recorder.Code)
}

func TestCheckout_FullFlow(t *testing.T) {
	env := newTestEnv(t)

	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "1"})
	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "2"})

	recorder := env.do(t, "PUT", "/api/v1/checkout/details", validDetailsBody())
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, "PUT", "/api/v1/checkout/payment-method", PaymentMethodRequestDTO{Method: "UPI"})
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, "POST", "/api/v1/checkout/validate", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	state := decodeJSON[CheckoutStateDTO](t, recorder)
	assert.Equal(t, "VALIDATED", state.State)

	recorder = env.do(t, "POST", "/api/v1/checkout/commit", nil)
	require.Equal(t, http.StatusAccepted, recorder.Code)

	require.Eventually(t, func() bool {
		return env.history.Len() == 1
	}, 5*time.Second, 10*time.Millisecond)

	assert.Equal(t, 0, env.cart.Len())

	recorder = env.do(t, "GET", "/api/v1/orders", nil)
	require.Equal(t, http.StatusOK, recorder.Code)
	orders := decodeJSON[[]OrderResponseDTO](t, recorder)
	require.Len(t, orders, 1)
	assert.Equal(t, "250.00", orders[0].TotalAmount)
	assert.Equal(t, "UPI", orders[0].PaymentMethod)
	require.Len(t, orders[0].Services, 2)
	assert.Equal(t, "Plumbing", orders[0].Services[0].Name)
}

func TestAbort_ReturnsToDraft(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "POST", "/api/v1/cart/items", AddItemRequestDTO{ServiceID: "1"})
	env.do(t, "PUT", "/api/v1/checkout/details", validDetailsBody())

	recorder := env.do(t, "POST", "/api/v1/checkout/abort", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	state := decodeJSON[CheckoutStateDTO](t, recorder)
	assert.Equal(t, "DRAFT", state.State)
	assert.Equal(t, 1, env.cart.Len())
}

// --- profile ---

func TestProfile_EmptyByDefault(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "GET", "/api/v1/profile/", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	profile := decodeJSON[ProfileDTO](t, recorder)
	assert.Empty(t, profile.Name)
	assert.Empty(t, profile.Email)
}

func TestProfile_UpdateAndGet(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "PUT", "/api/v1/profile/", UpdateProfileRequestDTO{
		Name:     "Asha Rao",
		Email:    "asha@example.com",
		Password: "secret",
		Mobile:   "9876543210",
	})

	require.Equal(t, http.StatusOK, recorder.Code)
	profile := decodeJSON[ProfileDTO](t, recorder)
	assert.Equal(t, "Asha Rao", profile.Name)
	assert.Equal(t, "asha@example.com", profile.Email)
	assert.Equal(t, "9876543210", profile.Mobile)

	// The password must never appear in a response.
	assert.NotContains(t, recorder.Body.String(), "secret")
}

func TestProfile_PartialUpdateKeepsOtherFields(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "PUT", "/api/v1/profile/", UpdateProfileRequestDTO{Name: "Asha Rao", Email: "asha@example.com"})

	recorder := env.do(t, "PUT", "/api/v1/profile/", UpdateProfileRequestDTO{Mobile: "9876543210"})

	require.Equal(t, http.StatusOK, recorder.Code)
	profile := decodeJSON[ProfileDTO](t, recorder)
	assert.Equal(t, "Asha Rao", profile.Name)
	assert.Equal(t, "9876543210", profile.Mobile)
}

func TestProfile_ClearLogsOut(t *testing.T) {
	env := newTestEnv(t)
	env.do(t, "PUT", "/api/v1/profile/", UpdateProfileRequestDTO{Name: "Asha Rao"})

	recorder := env.do(t, "DELETE", "/api/v1/profile/", nil)
	require.Equal(t, http.StatusOK, recorder.Code)

	recorder = env.do(t, "GET", "/api/v1/profile/", nil)
	profile := decodeJSON[ProfileDTO](t, recorder)
	assert.Empty(t, profile.Name)
}

func TestListOrders_Empty(t *testing.T) {
	env := newTestEnv(t)

	recorder := env.do(t, "GET", "/api/v1/orders", nil)

	require.Equal(t, http.StatusOK, recorder.Code)
	orders := decodeJSON[[]OrderResponseDTO](t, recorder)
	assert.Empty(t, orders)
}
