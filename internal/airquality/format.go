package airquality

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/go-playground/validator/v10"
)

const (
	// NoDataMessage is sent when the body has no "data" object.
	NoDataMessage = "No data found for the specified location."

	// ColorBlue is the accent of report embeds.
	ColorBlue = 0x3498DB
	// ColorRed is the accent of error embeds.
	ColorRed = 0xE74C3C

	footerText = "Data provided by IQAir"
)

var (
	// ErrMalformedResponse is returned when the body has "data" but lacks one of
	// the nested keys a report needs.
	ErrMalformedResponse = errors.New("malformed provider response")

	// ErrNoData is returned when the body has no "data" object at all.
	ErrNoData = errors.New("no data for location")
)

var validate = validator.New()

// Field is one labeled value of an Embed.
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Embed is a platform-neutral rich message.
type Embed struct {
	Title       string  `json:"title"`
	Description string  `json:"description,omitempty"`
	Color       int     `json:"color"`
	Fields      []Field `json:"fields,omitempty"`
	Footer      string  `json:"footer,omitempty"`
}

// Reply is what gets sent back: plain text or an embed, never both.
type Reply struct {
	Text  string
	Embed *Embed
}

// Format turns a provider body into a reply.
func Format(resp *CityResponse) (Reply, error) {
	if resp == nil || resp.Data == nil {
		return Reply{Text: NoDataMessage}, nil
	}

	report, err := NewReport(resp)
	if err != nil {
		return Reply{}, err
	}
	return Reply{Embed: report.Embed()}, nil
}

// NewReport flattens a body into a Report. It fails with ErrNoData when there
// is no "data" object and with ErrMalformedResponse when a nested key is missing.
func NewReport(resp *CityResponse) (Report, error) {
	if resp == nil || resp.Data == nil {
		return Report{}, ErrNoData
	}
	if err := validate.Struct(resp.Data); err != nil {
		return Report{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	d := resp.Data
	w := d.Current.Weather
	p := d.Current.Pollution

	return Report{
		City:         *d.City,
		State:        *d.State,
		Country:      *d.Country,
		TemperatureC: *w.Temperature,
		HumidityPct:  *w.Humidity,
		WindSpeedMS:  *w.WindSpeed,
		AQIUS:        *p.AQIUS,
		Updated:      *p.Timestamp,
	}, nil
}

// Embed renders the report card.
func (r Report) Embed() *Embed {
	return &Embed{
		Title: "Air Quality & Weather in " + r.Location().String(),
		Color: ColorBlue,
		Fields: []Field{
			{Name: "🌡️ Temperature", Value: formatNumber(r.TemperatureC) + "°C", Inline: true},
			{Name: "💨 Humidity", Value: formatNumber(r.HumidityPct) + "%", Inline: true},
			{Name: "🌬️ Wind Speed", Value: formatNumber(r.WindSpeedMS) + " m/s", Inline: true},
			{Name: "🌫️ AQI (US)", Value: strconv.Itoa(r.AQIUS), Inline: true},
			{Name: "🗓️ Updated", Value: r.Updated, Inline: false},
		},
		Footer: footerText,
	}
}

// formatNumber prints the shortest exact form, so 25 stays "25" and 3.6 stays "3.6".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
