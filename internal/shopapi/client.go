// Package shopapi is the HTTP client for the upstream shop REST API. The
// upstream owns orders, pricing, and payment verification; this service only
// proposes drafts and relays gateway results.
package shopapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"gardenshop/internal/domain"
)

// TokenSource supplies the bearer token for a user. Authentication is an
// external collaborator; this client only attaches what it is given.
type TokenSource interface {
	Token(ctx context.Context, userID string) (string, error)
}

// APIError is a non-2xx upstream response.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("shop api: %d %s", e.Status, e.Message)
}

type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     TokenSource
}

func New(baseURL string, tokens TokenSource) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		tokens:     tokens,
	}
}

// CreatePaymentOrderRequest proposes line items for an online payment. The
// upstream recomputes the amount from its own catalog; the client total is
// never trusted.
type CreatePaymentOrderRequest struct {
	Items []domain.OrderItem `json:"orderItems"`
}

// CreatePaymentOrderResponse carries the gateway order handle and the
// publishable key, plus the server-recomputed amount in whole units.
type CreatePaymentOrderResponse struct {
	GatewayOrderID string `json:"gatewayOrderId"`
	Key            string `json:"key"`
	Amount         int64  `json:"amount"`
	Currency       string `json:"currency"`
}

func (c *Client) CreatePaymentOrder(ctx context.Context, userID string, req CreatePaymentOrderRequest) (*CreatePaymentOrderResponse, error) {
	var out CreatePaymentOrderResponse
	if err := c.doJSON(ctx, userID, http.MethodPost, "/payments/create-order", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// VerifyPaymentRequest relays the opaque gateway triple together with the
// original draft. Signature verification happens upstream only.
type VerifyPaymentRequest struct {
	GatewayOrderID   string            `json:"gatewayOrderId"`
	GatewayPaymentID string            `json:"gatewayPaymentId"`
	Signature        string            `json:"signature"`
	Draft            domain.OrderDraft `json:"order"`
}

type VerifyPaymentResponse struct {
	Verified bool         `json:"verified"`
	Order    domain.Order `json:"order"`
}

func (c *Client) VerifyPayment(ctx context.Context, userID string, req VerifyPaymentRequest) (*VerifyPaymentResponse, error) {
	var out VerifyPaymentResponse
	if err := c.doJSON(ctx, userID, http.MethodPost, "/payments/verify-payment", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CreateOrder places a COD order in one call.
func (c *Client) CreateOrder(ctx context.Context, userID string, draft domain.OrderDraft) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, userID, http.MethodPost, "/orders", draft, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) GetOrder(ctx context.Context, userID, orderID string) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, userID, http.MethodGet, "/orders/"+orderID, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type cancelRequest struct {
	Reason string `json:"reason"`
}

// CancelOrder submits a cancellation request and returns the updated order.
func (c *Client) CancelOrder(ctx context.Context, userID, orderID, reason string) (*domain.Order, error) {
	var out domain.Order
	if err := c.doJSON(ctx, userID, http.MethodPut, "/orders/"+orderID+"/cancel", cancelRequest{Reason: reason}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) MyOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	var out []domain.Order
	if err := c.doJSON(ctx, userID, http.MethodGet, "/orders/myorders", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) doJSON(ctx context.Context, userID, method, path string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	token, err := c.tokens.Token(ctx, userID)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrUnauthorized, err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("shop api request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized {
		return domain.ErrUnauthorized
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Message: readErrorMessage(resp.Body)}
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	raw, err := io.ReadAll(io.LimitReader(r, 4096))
	if err != nil {
		return ""
	}
	var payload struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err == nil {
		if payload.Message != "" {
			return payload.Message
		}
		if payload.Error != "" {
			return payload.Error
		}
	}
	return string(raw)
}
