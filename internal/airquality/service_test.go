package airquality

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type stubProvider struct {
	resp *CityResponse
	err  error
	got  Location
}

func (p *stubProvider) Name() string { return "stub" }

func (p *stubProvider) FetchCity(ctx context.Context, loc Location) (*CityResponse, error) {
	p.got = loc
	return p.resp, p.err
}

func TestServiceFetchWrapsUntypedErrors(t *testing.T) {
	svc := NewService(&stubProvider{err: errors.New("boom")}, zaptest.NewLogger(t))

	resp, err := svc.Fetch(context.Background(), Location{City: "Paris", State: "Ile-de-France", Country: "France"})
	assert.Nil(t, resp)

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ReasonTransport, fe.Reason)
	assert.Equal(t, "stub", fe.Provider)
}

func TestServiceFetchWithoutProvider(t *testing.T) {
	svc := NewService(nil, nil)

	_, err := svc.Fetch(context.Background(), Location{City: "Paris"})

	var fe *FetchError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, ReasonUnavailable, fe.Reason)
}

func TestServiceReport(t *testing.T) {
	city, state, country, ts := "Tokyo", "Tokyo", "Japan", "2024-05-01T10:00:00.000Z"
	tp, hu, ws, aqi := 21.0, 60.0, 2.1, 35
	ok := &CityResponse{Status: "success", Data: &CityData{
		City: &city, State: &state, Country: &country,
		Current: &Current{
			Weather:   &WeatherReading{Temperature: &tp, Humidity: &hu, WindSpeed: &ws},
			Pollution: &PollutionReading{AQIUS: &aqi, Timestamp: &ts},
		},
	}}

	t.Run("success", func(t *testing.T) {
		p := &stubProvider{resp: ok}
		report, err := NewService(p, zaptest.NewLogger(t)).Report(context.Background(), Location{City: "Tokyo", State: "Tokyo", Country: "Japan"})
		require.NoError(t, err)
		assert.Equal(t, 35, report.AQIUS)
		assert.Equal(t, 21.0, report.TemperatureC)
		assert.Equal(t, "Tokyo", p.got.City)
	})

	t.Run("error in body", func(t *testing.T) {
		p := &stubProvider{resp: &CityResponse{Status: "fail", Data: &CityData{Message: "city_not_found"}}}
		_, err := NewService(p, zaptest.NewLogger(t)).Report(context.Background(), Location{City: "X", State: "Y", Country: "Z"})

		var fe *FetchError
		require.True(t, errors.As(err, &fe))
		assert.Equal(t, ReasonRejected, fe.Reason)
		assert.Equal(t, "city_not_found", fe.Message)
		assert.True(t, fe.ClientError())
	})

	t.Run("no data", func(t *testing.T) {
		p := &stubProvider{resp: &CityResponse{Status: "success"}}
		_, err := NewService(p, zaptest.NewLogger(t)).Report(context.Background(), Location{City: "X", State: "Y", Country: "Z"})
		assert.ErrorIs(t, err, ErrNoData)
	})
}
