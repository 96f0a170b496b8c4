package tracing

import (
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"
)

// Span attribute keys for this service's domain. Owner and invoice IDs are
// snowflakes rendered as strings so they survive any backend's int64 limits.
const (
	ownerIDKey   = attribute.Key("billfold.owner_id")
	invoiceIDKey = attribute.Key("billfold.invoice_id")
	rendererKey  = attribute.Key("billfold.renderer")
)

func OwnerID(id string) attribute.KeyValue    { return ownerIDKey.String(id) }
func InvoiceID(id string) attribute.KeyValue  { return invoiceIDKey.String(id) }
func Renderer(name string) attribute.KeyValue { return rendererKey.String(name) }

// SafeAttributes drops attributes whose key suggests a credential. The
// service itself never sets such keys; this guards attributes derived from
// request data.
func SafeAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		key := strings.ToLower(string(attr.Key))
		if strings.Contains(key, "password") || strings.Contains(key, "secret") || strings.Contains(key, "token") {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}

// SafeError reduces an error to its type before it is recorded on a span,
// keeping driver messages (which can quote SQL values) out of trace storage.
func SafeError(err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%T", err)
}
