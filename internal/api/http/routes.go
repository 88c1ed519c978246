package httpapi

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

// Reporter produces a flattened report for a location.
type Reporter interface {
	Report(ctx context.Context, loc airquality.Location) (airquality.Report, error)
}

// RegisterRoutes wires the HTTP handlers into the Fiber app. Missing state and
// country fall back to defaults, the same way the chat command does.
func RegisterRoutes(app *fiber.App, reporter Reporter, defaults airquality.Location) {
	v1 := app.Group("/api/v1")

	v1.Get("/airquality", func(c *fiber.Ctx) error {
		q := parseLocationQuery(c)
		loc := q.toLocation(defaults)
		if err := loc.Validate(); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		report, err := reporter.Report(c.UserContext(), loc)
		if err != nil {
			return reportError(err)
		}

		return c.JSON(fiber.Map{
			"query":  loc,
			"report": report,
		})
	})
}

// locationQuery holds query parameters for identifying a location.
type locationQuery struct {
	City    string
	State   string
	Country string
}

// toLocation applies defaults when neither state nor country is given.
// Supplying only one of them is left to validation.
func (q locationQuery) toLocation(defaults airquality.Location) airquality.Location {
	loc := airquality.Location{City: q.City, State: q.State, Country: q.Country}
	if q.State == "" && q.Country == "" {
		loc.State = defaults.State
		loc.Country = defaults.Country
	}
	return loc
}

func parseLocationQuery(c *fiber.Ctx) locationQuery {
	return locationQuery{
		City:    c.Query("city"),
		State:   c.Query("state"),
		Country: c.Query("country"),
	}
}

func reportError(err error) error {
	var fe *airquality.FetchError
	switch {
	case errors.As(err, &fe) && fe.ClientError():
		msg := fe.Message
		if msg == "" {
			msg = "location not found"
		}
		return fiber.NewError(fiber.StatusNotFound, msg)
	case errors.As(err, &fe):
		return fiber.NewError(fiber.StatusBadGateway, "air quality provider unavailable")
	case errors.Is(err, airquality.ErrNoData):
		return fiber.NewError(fiber.StatusNotFound, airquality.NoDataMessage)
	case errors.Is(err, airquality.ErrMalformedResponse):
		return fiber.NewError(fiber.StatusBadGateway, "air quality provider returned a malformed response")
	default:
		return fiber.NewError(fiber.StatusInternalServerError, "failed to fetch air quality data")
	}
}
