package constants

// Context keys for validated requests
const (
	// Contact context keys
	ContextKeyContact = "contact"

	// Request context keys
	ContextKeyRequestID = "RequestID"
)

// HeaderRequestID carries the request id in both directions.
const HeaderRequestID = "X-Request-ID"
