package gateway

import (
	"io"
	"log"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

func TestLoad_MissingKeyStaysNotReady(t *testing.T) {
	b := New(Config{Currency: "INR"}, testLogger())

	require.False(t, b.Load())
	// Load runs once; a later call cannot flip a failed bridge to ready.
	require.False(t, b.Ready())
}

func TestLoad_ReadyWithKey(t *testing.T) {
	b := New(Config{Key: "rzp_test_key"}, testLogger())
	require.True(t, b.Ready())
}

func TestOptions_ConvertsToMinorUnits(t *testing.T) {
	b := New(Config{Key: "rzp_test_key", Currency: "INR", StoreName: "Garden Shop"}, testLogger())
	require.True(t, b.Load())

	opts := b.Options("order_abc", 549, "", Prefill{Name: "Asha", Contact: "9999999999"})

	assert.Equal(t, int64(54900), opts.AmountMinor)
	assert.Equal(t, "order_abc", opts.OrderID)
	assert.Equal(t, "rzp_test_key", opts.Key)
	assert.Equal(t, "INR", opts.Currency)
	assert.Equal(t, "Asha", opts.Prefill.Name)
}

func TestOptions_PrefersServerIssuedKey(t *testing.T) {
	b := New(Config{Key: "rzp_config_key", Currency: "INR"}, testLogger())
	require.True(t, b.Load())

	opts := b.Options("order_abc", 100, "rzp_order_key", Prefill{})
	assert.Equal(t, "rzp_order_key", opts.Key)
}

func TestSuccessComplete(t *testing.T) {
	assert.False(t, Success{GatewayOrderID: "o", GatewayPaymentID: "p"}.Complete())
	assert.True(t, Success{GatewayOrderID: "o", GatewayPaymentID: "p", Signature: "s"}.Complete())
}
