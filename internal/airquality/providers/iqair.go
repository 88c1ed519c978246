package providers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/sony/gobreaker"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

// DefaultIQAirBaseURL is the public AirVisual API root.
const DefaultIQAirBaseURL = "https://api.airvisual.com/v2"

// IQAirProvider implements the airquality.Provider interface for IQAir (AirVisual).
type IQAirProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

func NewIQAirProvider(client *http.Client, baseURL, apiKey string) *IQAirProvider {
	if baseURL == "" {
		baseURL = DefaultIQAirBaseURL
	}
	return &IQAirProvider{
		name:    "iqair",
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
		circuit: newCircuitBreaker("iqair"),
	}
}

func (p *IQAirProvider) Name() string {
	return p.name
}

// cityURL builds <base>/city?city=..&state=..&country=..&key=..
func (p *IQAirProvider) cityURL(loc airquality.Location) string {
	values := url.Values{}
	values.Set("city", loc.City)
	values.Set("state", loc.State)
	values.Set("country", loc.Country)
	values.Set("key", p.apiKey)
	return fmt.Sprintf("%s/city?%s", p.baseURL, values.Encode())
}

func (p *IQAirProvider) FetchCity(ctx context.Context, loc airquality.Location) (*airquality.CityResponse, error) {
	if p.apiKey == "" {
		return nil, p.fail(airquality.ReasonUnavailable, fmt.Errorf("iqair api key is not configured"))
	}

	resp, err := doRequest(ctx, p.client, p.circuit, p.cityURL(loc))
	if err != nil {
		var se *serverError
		switch {
		case errors.As(err, &se):
			return nil, &airquality.FetchError{Provider: p.name, Reason: airquality.ReasonStatus, StatusCode: se.statusCode}
		case isCircuitOpen(err):
			return nil, p.fail(airquality.ReasonUnavailable, err)
		default:
			return nil, p.fail(airquality.ReasonTransport, err)
		}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, p.fail(airquality.ReasonTransport, err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &airquality.FetchError{
			Provider:   p.name,
			Reason:     airquality.ReasonStatus,
			StatusCode: resp.StatusCode,
			Message:    failureMessage(body),
		}
	}

	var payload airquality.CityResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, p.fail(airquality.ReasonDecode, err)
	}
	return &payload, nil
}

func (p *IQAirProvider) fail(reason airquality.FailureReason, err error) *airquality.FetchError {
	return &airquality.FetchError{Provider: p.name, Reason: reason, Err: redactKey(err)}
}

// failureMessage pulls the provider's explanation out of an error body, if it
// is one of the shapes IQAir uses; otherwise it returns "".
func failureMessage(body []byte) string {
	var payload airquality.CityResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	msg, _ := payload.ProviderError()
	return msg
}
