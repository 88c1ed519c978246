package bot

import (
	"context"
	"sync"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

type sentMessage struct {
	text  string
	embed *airquality.Embed
}

type recordingReplier struct {
	mu   sync.Mutex
	sent []sentMessage
	err  error
}

func (r *recordingReplier) SendText(_ context.Context, text string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMessage{text: text})
	return nil
}

func (r *recordingReplier) SendEmbed(_ context.Context, embed *airquality.Embed) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentMessage{embed: embed})
	return nil
}

func (r *recordingReplier) messages() []sentMessage {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]sentMessage(nil), r.sent...)
}

type stubFetcher struct {
	resp  *airquality.CityResponse
	err   error
	calls []airquality.Location
}

func (s *stubFetcher) Fetch(_ context.Context, loc airquality.Location) (*airquality.CityResponse, error) {
	s.calls = append(s.calls, loc)
	return s.resp, s.err
}

var testDefaults = airquality.Location{State: "Baghdad", Country: "Iraq"}

func strPtr(s string) *string     { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int           { return &i }

func parisResponse() *airquality.CityResponse {
	return &airquality.CityResponse{
		Status: "success",
		Data: &airquality.CityData{
			City:    strPtr("Paris"),
			State:   strPtr("Ile-de-France"),
			Country: strPtr("France"),
			Current: &airquality.Current{
				Weather: &airquality.WeatherReading{
					Temperature: floatPtr(18),
					Humidity:    floatPtr(60),
					WindSpeed:   floatPtr(3.6),
				},
				Pollution: &airquality.PollutionReading{
					AQIUS:     intPtr(42),
					Timestamp: strPtr("2024-05-01T10:00:00.000Z"),
				},
			},
		},
	}
}
