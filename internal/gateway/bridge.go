// Package gateway wraps the external payment widget. The widget runs in the
// customer's browser; this side prepares its checkout options, gates online
// checkout on gateway readiness, and models the widget's asynchronous
// outcome as a single tagged result.
package gateway

import (
	"log"
	"strings"
	"sync"
)

// Config identifies the shop to the payment gateway. Key is the publishable
// key; the secret never reaches this service.
type Config struct {
	Key       string
	Currency  string
	StoreName string
	StoreImg  string
	Theme     string
}

// Bridge loads the gateway configuration once per process and answers
// readiness. Online checkout is blocked while the bridge is not ready; there
// is no fallback path to COD.
type Bridge struct {
	cfg    Config
	logger *log.Logger

	once  sync.Once
	ready bool
}

func New(cfg Config, logger *log.Logger) *Bridge {
	return &Bridge{cfg: cfg, logger: logger}
}

// Load validates the gateway configuration. It runs once; later calls return
// the first outcome. A bridge that failed to load stays not-ready for the
// process lifetime.
func (b *Bridge) Load() bool {
	b.once.Do(func() {
		if strings.TrimSpace(b.cfg.Key) == "" {
			b.logger.Printf("payment gateway key missing, online checkout disabled")
			return
		}
		if strings.TrimSpace(b.cfg.Currency) == "" {
			b.cfg.Currency = "INR"
		}
		b.ready = true
	})
	return b.ready
}

// Ready reports whether online checkout may proceed.
func (b *Bridge) Ready() bool {
	return b.Load()
}

// Prefill seeds the widget's contact form.
type Prefill struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// CheckoutOptions is handed to the gateway widget verbatim. AmountMinor is
// in minor currency units; the widget contract wants paise, not rupees.
type CheckoutOptions struct {
	Key         string  `json:"key"`
	AmountMinor int64   `json:"amount"`
	Currency    string  `json:"currency"`
	OrderID     string  `json:"order_id"`
	Name        string  `json:"name"`
	Image       string  `json:"image,omitempty"`
	Prefill     Prefill `json:"prefill"`
	Theme       string  `json:"theme,omitempty"`
}

// Options builds widget options for a created gateway order. amount is in
// whole currency units as recomputed by the upstream; the x100 conversion to
// minor units happens here and nowhere else.
func (b *Bridge) Options(gatewayOrderID string, amount int64, key string, prefill Prefill) CheckoutOptions {
	if key == "" {
		key = b.cfg.Key
	}
	return CheckoutOptions{
		Key:         key,
		AmountMinor: amount * 100,
		Currency:    b.cfg.Currency,
		OrderID:     gatewayOrderID,
		Name:        b.cfg.StoreName,
		Image:       b.cfg.StoreImg,
		Prefill:     prefill,
		Theme:       b.cfg.Theme,
	}
}
