package bot

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want airquality.Location
	}{
		{"city only", []string{"Tokyo"}, airquality.Location{City: "Tokyo", State: "Baghdad", Country: "Iraq"}},
		{"two args", []string{"Paris", "France"}, airquality.Location{City: "Paris", State: "Paris", Country: "France"}},
		{"three args", []string{"Tokyo", "Tokyo", "Japan"}, airquality.Location{City: "Tokyo", State: "Tokyo", Country: "Japan"}},
		{"multi word city", []string{"New", "York", "NY", "USA"}, airquality.Location{City: "New York", State: "NY", Country: "USA"}},
		{"quoted city", []string{"New York", "NY", "USA"}, airquality.Location{City: "New York", State: "NY", Country: "USA"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLocation(tt.args, testDefaults)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseLocationErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		kind ArgErrorKind
	}{
		{"no args", nil, ArgMissing},
		{"mention", []string{"<@1234>"}, ArgInvalid},
		{"email like", []string{"a@b", "x", "y"}, ArgInvalid},
		{"empty quoted city", []string{""}, ArgInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseLocation(tt.args, testDefaults)
			var argErr *ArgError
			require.ErrorAs(t, err, &argErr)
			assert.Equal(t, tt.kind, argErr.Kind)
		})
	}
}

func runWeather(t *testing.T, fetcher Fetcher, args ...string) ([]sentMessage, error) {
	t.Helper()
	reply := &recordingReplier{}
	inv := &Invocation{ID: "test", Command: "weather", Prefix: "!", Args: args, Reply: reply, Logger: zaptest.NewLogger(t)}
	err := NewWeatherCommand(fetcher, testDefaults).Run(context.Background(), inv)
	return reply.messages(), err
}

func TestWeatherSuccess(t *testing.T) {
	fetcher := &stubFetcher{resp: parisResponse()}

	msgs, err := runWeather(t, fetcher, "Paris", "Ile-de-France", "France")
	require.NoError(t, err)
	require.Len(t, msgs, 2)

	assert.Equal(t, "Fetching data for Paris, Ile-de-France, France...", msgs[0].text)
	require.NotNil(t, msgs[1].embed)
	assert.Equal(t, "Air Quality & Weather in Paris, Ile-de-France, France", msgs[1].embed.Title)
	assert.Equal(t, airquality.ColorBlue, msgs[1].embed.Color)
	assert.Equal(t, "42", msgs[1].embed.Fields[3].Value)

	require.Len(t, fetcher.calls, 1)
	assert.Equal(t, airquality.Location{City: "Paris", State: "Ile-de-France", Country: "France"}, fetcher.calls[0])
}

func TestWeatherFetchFailure(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{
			name: "provider message",
			err:  &airquality.FetchError{Provider: "iqair", Reason: airquality.ReasonStatus, StatusCode: 400, Message: "city_not_found"},
			want: "❌ city_not_found",
		},
		{
			name: "no message",
			err:  &airquality.FetchError{Provider: "iqair", Reason: airquality.ReasonTransport, Err: errors.New("connection refused")},
			want: "❌ Failed to fetch data. Please check your input or try again later.",
		},
		{
			name: "untyped",
			err:  errors.New("boom"),
			want: "❌ Failed to fetch data. Please check your input or try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := runWeather(t, &stubFetcher{err: tt.err}, "Atlantis")
			require.NoError(t, err)
			require.Len(t, msgs, 2)
			assert.Equal(t, "Fetching data for Atlantis, Baghdad, Iraq...", msgs[0].text)
			assert.Equal(t, tt.want, msgs[1].text)
		})
	}
}

func TestWeatherBodyOutcomes(t *testing.T) {
	tests := []struct {
		name string
		resp *airquality.CityResponse
		want string
	}{
		{
			name: "error key",
			resp: &airquality.CityResponse{Error: json.RawMessage(`"api_key_expired"`)},
			want: "❌ api_key_expired",
		},
		{
			name: "fail status",
			resp: &airquality.CityResponse{Status: "fail", Data: &airquality.CityData{Message: "city_not_found"}},
			want: "❌ city_not_found",
		},
		{
			name: "no data",
			resp: &airquality.CityResponse{Status: "success"},
			want: airquality.NoDataMessage,
		},
		{
			name: "malformed",
			resp: &airquality.CityResponse{Status: "success", Data: &airquality.CityData{City: strPtr("Paris")}},
			want: "❌ The weather provider returned a malformed response. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msgs, err := runWeather(t, &stubFetcher{resp: tt.resp}, "Paris")
			require.NoError(t, err)
			require.Len(t, msgs, 2)
			assert.Equal(t, tt.want, msgs[1].text)
			assert.Nil(t, msgs[1].embed)
		})
	}
}

func TestWeatherArgErrorSendsNothing(t *testing.T) {
	fetcher := &stubFetcher{resp: parisResponse()}

	msgs, err := runWeather(t, fetcher)
	var argErr *ArgError
	require.ErrorAs(t, err, &argErr)
	assert.Equal(t, ArgMissing, argErr.Kind)
	assert.Empty(t, msgs)
	assert.Empty(t, fetcher.calls)
}

func TestWeatherOnError(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		title string
		desc  string
	}{
		{
			name:  "missing",
			err:   &ArgError{Kind: ArgMissing, Arg: "city"},
			title: "❌ Incorrect Command Usage",
			desc:  "Please use the command in the following format:\n`?weather <city>` or `?weather <city> <state> <country>`",
		},
		{
			name:  "invalid",
			err:   &ArgError{Kind: ArgInvalid},
			title: "❌ Invalid Argument",
			desc:  "Please provide valid arguments for the command.",
		},
		{
			name:  "other",
			err:   errors.New("boom"),
			title: "❌ Error",
			desc:  "An unexpected error occurred. Please try again later.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply := &recordingReplier{}
			inv := &Invocation{Prefix: "?", Reply: reply}
			require.NoError(t, NewWeatherCommand(nil, testDefaults).OnError(context.Background(), inv, tt.err))

			msgs := reply.messages()
			require.Len(t, msgs, 1)
			require.NotNil(t, msgs[0].embed)
			assert.Equal(t, tt.title, msgs[0].embed.Title)
			assert.Equal(t, tt.desc, msgs[0].embed.Description)
			assert.Equal(t, airquality.ColorRed, msgs[0].embed.Color)
		})
	}
}

func TestWeatherSendFailure(t *testing.T) {
	reply := &recordingReplier{err: errors.New("missing access")}
	inv := &Invocation{Prefix: "!", Args: []string{"Tokyo"}, Reply: reply}

	err := NewWeatherCommand(&stubFetcher{resp: parisResponse()}, testDefaults).Run(context.Background(), inv)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "send acknowledgement")
}
