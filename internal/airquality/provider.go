package airquality

import (
	"context"
	"fmt"
	"net/http"
)

// Provider abstracts an air-quality data source (e.g. IQAir).
type Provider interface {
	Name() string
	FetchCity(ctx context.Context, loc Location) (*CityResponse, error)
}

// FailureReason names why a fetch produced no usable body.
type FailureReason string

const (
	// ReasonTransport covers network errors, timeouts and cancellation.
	ReasonTransport FailureReason = "transport"
	// ReasonStatus means the provider answered with a non-200 status.
	ReasonStatus FailureReason = "status"
	// ReasonDecode means a 200 body was not valid JSON.
	ReasonDecode FailureReason = "decode"
	// ReasonUnavailable means the circuit breaker refused the call.
	ReasonUnavailable FailureReason = "unavailable"
	// ReasonRejected means a 200 body carried an error instead of data.
	ReasonRejected FailureReason = "rejected"
)

// FetchError is the failure side of a fetch. Providers return it instead of a nil body.
type FetchError struct {
	Provider   string
	Reason     FailureReason
	StatusCode int
	// Message is the provider's own explanation, when it sent one.
	Message string
	Err     error
}

func (e *FetchError) Error() string {
	switch {
	case e.Reason == ReasonRejected:
		return fmt.Sprintf("%s: rejected: %s", e.Provider, e.Message)
	case e.Reason == ReasonStatus && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Provider, e.StatusCode, e.Message)
	case e.Reason == ReasonStatus:
		return fmt.Sprintf("%s: status %d", e.Provider, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Reason, e.Err)
	default:
		return fmt.Sprintf("%s: %s", e.Provider, e.Reason)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ClientError reports whether the provider rejected the lookup itself
// (unknown city, bad query). Credential failures such as 401 and 403 are our
// misconfiguration and do not count.
func (e *FetchError) ClientError() bool {
	switch e.Reason {
	case ReasonRejected:
		return true
	case ReasonStatus:
		return e.StatusCode == http.StatusBadRequest || e.StatusCode == http.StatusNotFound
	default:
		return false
	}
}
