package shopapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gardenshop/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type staticTokens string

func (s staticTokens) Token(_ context.Context, _ string) (string, error) {
	return string(s), nil
}

func TestCreatePaymentOrder(t *testing.T) {
	var gotAuth string
	var gotBody CreatePaymentOrderRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/payments/create-order", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(CreatePaymentOrderResponse{
			GatewayOrderID: "order_abc",
			Key:            "rzp_test_key",
			Amount:         549,
			Currency:       "INR",
		})
	}))
	defer srv.Close()

	client := New(srv.URL, staticTokens("tok-1"))
	resp, err := client.CreatePaymentOrder(context.Background(), "u1", CreatePaymentOrderRequest{
		Items: []domain.OrderItem{{ProductRef: "p1", Name: "Rose Seeds", Quantity: 2, Price: 49}},
	})
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.Equal(t, "p1", gotBody.Items[0].ProductRef)
	assert.Equal(t, "order_abc", resp.GatewayOrderID)
	assert.Equal(t, int64(549), resp.Amount)
}

func TestVerifyPayment_SendsTripleAndDraft(t *testing.T) {
	var gotBody VerifyPaymentRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/payments/verify-payment", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		json.NewEncoder(w).Encode(VerifyPaymentResponse{
			Verified: true,
			Order:    domain.Order{ID: "o1", OrderStatus: domain.StatusPending},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, staticTokens("tok-1"))
	draft := domain.OrderDraft{PaymentMode: domain.PaymentModeOnline, TotalAmount: 549}
	resp, err := client.VerifyPayment(context.Background(), "u1", VerifyPaymentRequest{
		GatewayOrderID:   "order_abc",
		GatewayPaymentID: "pay_xyz",
		Signature:        "sig",
		Draft:            draft,
	})
	require.NoError(t, err)

	assert.Equal(t, "order_abc", gotBody.GatewayOrderID)
	assert.Equal(t, "pay_xyz", gotBody.GatewayPaymentID)
	assert.Equal(t, "sig", gotBody.Signature)
	assert.Equal(t, int64(549), gotBody.Draft.TotalAmount)
	assert.Equal(t, "o1", resp.Order.ID)
}

func TestUnauthorizedIsAuthError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	client := New(srv.URL, staticTokens("stale"))
	_, err := client.GetOrder(context.Background(), "u1", "o1")
	require.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAPIErrorCarriesMessage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"message":"order not cancellable"}`))
	}))
	defer srv.Close()

	client := New(srv.URL, staticTokens("tok-1"))
	_, err := client.CancelOrder(context.Background(), "u1", "o1", "wrong size")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.Status)
	assert.Equal(t, "order not cancellable", apiErr.Message)
}

func TestMyOrders(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/myorders", r.URL.Path)
		json.NewEncoder(w).Encode([]domain.Order{
			{ID: "o1", OrderStatus: domain.StatusShipped},
			{ID: "o2", OrderStatus: domain.StatusDelivered},
		})
	}))
	defer srv.Close()

	client := New(srv.URL, staticTokens("tok-1"))
	orders, err := client.MyOrders(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, orders, 2)
	assert.Equal(t, domain.StatusShipped, orders[0].OrderStatus)
}
