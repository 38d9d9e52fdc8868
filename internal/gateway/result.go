package gateway

// ResultKind tags how a gateway session ended.
type ResultKind string

const (
	// ResultSuccess: the customer completed payment; the widget returned the
	// opaque verification triple.
	ResultSuccess ResultKind = "success"
	// ResultDismissed: the customer closed the widget without paying. Not an
	// error; no funds were captured and checkout may be retried.
	ResultDismissed ResultKind = "dismissed"
	// ResultFailure: the gateway reported a failure.
	ResultFailure ResultKind = "failure"
)

// Success is the triple the widget hands back on completed payment. The
// values are relayed opaquely; this service never verifies signatures.
type Success struct {
	GatewayOrderID   string `json:"gatewayOrderId"`
	GatewayPaymentID string `json:"gatewayPaymentId"`
	Signature        string `json:"signature"`
}

// Result is the settled outcome of one widget session. Exactly one variant
// is populated, keyed by Kind.
type Result struct {
	Kind          ResultKind `json:"kind"`
	Success       *Success   `json:"success,omitempty"`
	FailureReason string     `json:"failureReason,omitempty"`
}

// Complete reports whether the success payload is present and whole.
func (s Success) Complete() bool {
	return s.GatewayOrderID != "" && s.GatewayPaymentID != "" && s.Signature != ""
}
