package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sony/gobreaker"
)

var errNoHTTPClient = errors.New("http client not configured")

// serverError is a 5xx answer; it counts against the circuit breaker.
type serverError struct {
	statusCode int
}

func (e *serverError) Error() string {
	return fmt.Sprintf("server error: %d", e.statusCode)
}

// callerError is a failure caused by the caller's context ending; it is not
// held against the provider.
type callerError struct {
	err error
}

func (e *callerError) Error() string {
	return e.err.Error()
}

// newCircuitBreaker returns the breaker settings shared by every provider.
func newCircuitBreaker(name string) *gobreaker.CircuitBreaker {
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:         name,
		MaxRequests:  5,
		Interval:     1 * time.Minute,
		Timeout:      2 * time.Minute,
		IsSuccessful: func(err error) bool {
			var ce *callerError
			return err == nil || errors.As(err, &ce)
		},
	})
}

// doRequest executes a single GET through the circuit breaker.
// Only transport errors and 5xx responses count against the breaker; a request
// ended by the caller's context does not. Any other response is handed back to
// the caller with its body open.
func doRequest(
	ctx context.Context,
	client *http.Client,
	cb *gobreaker.CircuitBreaker,
	url string,
) (*http.Response, error) {
	if client == nil {
		return nil, errNoHTTPClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	result, err := cb.Execute(func() (interface{}, error) {
		resp, execErr := client.Do(req)
		if execErr != nil {
			if ctx.Err() != nil {
				return nil, &callerError{err: execErr}
			}
			return nil, execErr
		}
		if resp.StatusCode >= 500 {
			resp.Body.Close()
			return nil, &serverError{statusCode: resp.StatusCode}
		}
		return resp, nil
	})
	if err != nil {
		var ce *callerError
		if errors.As(err, &ce) {
			return nil, ce.err
		}
		return nil, err
	}

	resp, ok := result.(*http.Response)
	if !ok {
		return nil, fmt.Errorf("unexpected result type from circuit breaker")
	}
	return resp, nil
}

// redactKey removes the api key from the request URL a transport error prints.
func redactKey(err error) error {
	var ue *url.Error
	if !errors.As(err, &ue) {
		return err
	}
	u, perr := url.Parse(ue.URL)
	if perr != nil {
		ue.URL = "[redacted]"
		return err
	}
	q := u.Query()
	if q.Has("key") {
		q.Set("key", "REDACTED")
		u.RawQuery = q.Encode()
	}
	ue.URL = u.String()
	return err
}

func isCircuitOpen(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}
