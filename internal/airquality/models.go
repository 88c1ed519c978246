package airquality

import (
	"encoding/json"
	"strings"
)

// Location identifies the place a lookup is made for.
// All three parts are sent to the provider as-is.
type Location struct {
	City    string `json:"city" validate:"required,max=100,excludesall=<>@"`
	State   string `json:"state" validate:"required,max=100,excludesall=<>@"`
	Country string `json:"country" validate:"required,max=100,excludesall=<>@"`
}

// Validate checks each part is present, bounded and free of mention syntax.
func (l Location) Validate() error {
	return validate.Struct(l)
}

// String renders the location the way replies show it.
func (l Location) String() string {
	return l.City + ", " + l.State + ", " + l.Country
}

// CityResponse is the provider's JSON body for a city lookup.
// Nested fields are pointers so a missing key can be told apart from a zero value.
type CityResponse struct {
	Status string          `json:"status"`
	Error  json.RawMessage `json:"error,omitempty"`
	Data   *CityData       `json:"data,omitempty"`
}

// CityData is the "data" object of a successful lookup.
type CityData struct {
	City    *string  `json:"city" validate:"required"`
	State   *string  `json:"state" validate:"required"`
	Country *string  `json:"country" validate:"required"`
	Current *Current `json:"current" validate:"required"`

	// Message is only set on failure bodies ({"status":"fail","data":{"message":"..."}}).
	Message string `json:"message,omitempty"`
}

// Current holds the latest observations.
type Current struct {
	Weather   *WeatherReading   `json:"weather" validate:"required"`
	Pollution *PollutionReading `json:"pollution" validate:"required"`
}

// WeatherReading is the provider's weather block (metric units).
type WeatherReading struct {
	Temperature *float64 `json:"tp" validate:"required"`
	Humidity    *float64 `json:"hu" validate:"required"`
	WindSpeed   *float64 `json:"ws" validate:"required"`
}

// PollutionReading is the provider's pollution block.
type PollutionReading struct {
	AQIUS     *int    `json:"aqius" validate:"required"`
	Timestamp *string `json:"ts" validate:"required"`
}

// ProviderError reports the error text carried by the body, if any.
// A body counts as an error when it has an "error" key or a "fail" status.
func (r *CityResponse) ProviderError() (string, bool) {
	if r == nil {
		return "", false
	}
	if len(r.Error) > 0 && string(r.Error) != "null" {
		var msg string
		if err := json.Unmarshal(r.Error, &msg); err == nil {
			return msg, true
		}
		return strings.TrimSpace(string(r.Error)), true
	}
	if strings.EqualFold(r.Status, "fail") {
		if r.Data != nil && r.Data.Message != "" {
			return r.Data.Message, true
		}
		return "the provider reported a failure", true
	}
	return "", false
}

// Report is the flattened view of a successful lookup.
type Report struct {
	City         string  `json:"city"`
	State        string  `json:"state"`
	Country      string  `json:"country"`
	TemperatureC float64 `json:"temperatureC"`
	HumidityPct  float64 `json:"humidityPercent"`
	WindSpeedMS  float64 `json:"windSpeedMs"`
	AQIUS        int     `json:"aqiUs"`
	Updated      string  `json:"updated"`
}

// Location returns the location the provider resolved the lookup to.
func (r Report) Location() Location {
	return Location{City: r.City, State: r.State, Country: r.Country}
}
