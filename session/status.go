package session

// Status is the lifecycle state of the current model exchange.
type Status string

const (
	// StatusReady accepts new submissions.
	StatusReady Status = "ready"
	// StatusSubmitted means the request is sent but no content has arrived.
	StatusSubmitted Status = "submitted"
	// StatusStreaming means assistant content is arriving.
	StatusStreaming Status = "streaming"
	// StatusError means the exchange failed; resubmission is allowed.
	StatusError Status = "error"
)

// Busy reports whether an exchange is in flight.
func (s Status) Busy() bool {
	return s == StatusSubmitted || s == StatusStreaming
}
