package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

const (
	fetchFailedText = crossMark + " Failed to fetch data. Please check your input or try again later."
	malformedText   = crossMark + " The weather provider returned a malformed response. Please try again later."

	usageErrorTitle     = crossMark + " Incorrect Command Usage"
	invalidErrorTitle   = crossMark + " Invalid Argument"
	invalidErrorMessage = "Please provide valid arguments for the command."
)

// Fetcher looks up the raw provider body for a location.
type Fetcher interface {
	Fetch(ctx context.Context, loc airquality.Location) (*airquality.CityResponse, error)
}

// WeatherCommand answers "weather <city> [<state> <country>]".
type WeatherCommand struct {
	fetcher  Fetcher
	defaults airquality.Location
}

// NewWeatherCommand binds the command to a fetcher. Only State and Country of
// defaults are used.
func NewWeatherCommand(fetcher Fetcher, defaults airquality.Location) *WeatherCommand {
	return &WeatherCommand{fetcher: fetcher, defaults: defaults}
}

func (c *WeatherCommand) Name() string { return "weather" }

func (c *WeatherCommand) Description() string {
	return "Show the current air quality and weather for a city."
}

func (c *WeatherCommand) Usage(prefix string) string {
	return fmt.Sprintf("`%sweather <city>` or `%sweather <city> <state> <country>`", prefix, prefix)
}

// ParseLocation maps positional arguments to a location:
//
//	city                    -> city, default state, default country
//	a b                     -> a, a, b
//	city words... state cty -> joined city words, state, cty
func ParseLocation(args []string, defaults airquality.Location) (airquality.Location, error) {
	var loc airquality.Location
	switch n := len(args); {
	case n == 0:
		return loc, &ArgError{Kind: ArgMissing, Arg: "city"}
	case n == 1:
		loc = airquality.Location{City: args[0], State: defaults.State, Country: defaults.Country}
	case n == 2:
		loc = airquality.Location{City: args[0], State: args[0], Country: args[1]}
	default:
		loc = airquality.Location{
			City:    strings.Join(args[:n-2], " "),
			State:   args[n-2],
			Country: args[n-1],
		}
	}

	if err := loc.Validate(); err != nil {
		return loc, &ArgError{Kind: ArgInvalid, Err: err}
	}
	return loc, nil
}

func (c *WeatherCommand) Run(ctx context.Context, inv *Invocation) error {
	loc, err := ParseLocation(inv.Args, c.defaults)
	if err != nil {
		return err
	}

	if err := inv.Reply.SendText(ctx, "Fetching data for "+loc.String()+"..."); err != nil {
		return fmt.Errorf("send acknowledgement: %w", err)
	}

	resp, err := c.fetcher.Fetch(ctx, loc)
	if err != nil {
		return c.send(ctx, inv, airquality.Reply{Text: fetchFailureText(err)})
	}
	if msg, ok := resp.ProviderError(); ok {
		return c.send(ctx, inv, airquality.Reply{Text: crossMark + " " + msg})
	}

	reply, err := airquality.Format(resp)
	if err != nil {
		inv.log().Warn("unusable provider response", zap.String("location", loc.String()), zap.Error(err))
		return c.send(ctx, inv, airquality.Reply{Text: malformedText})
	}
	return c.send(ctx, inv, reply)
}

// OnError answers argument failures with usage help and everything else with
// the generic error embed.
func (c *WeatherCommand) OnError(ctx context.Context, inv *Invocation, err error) error {
	var argErr *ArgError
	if !errors.As(err, &argErr) {
		return sendGenericError(ctx, inv)
	}

	var embed *airquality.Embed
	switch argErr.Kind {
	case ArgMissing:
		embed = errorEmbed(usageErrorTitle,
			"Please use the command in the following format:\n"+c.Usage(inv.Prefix))
	case ArgInvalid:
		embed = errorEmbed(invalidErrorTitle, invalidErrorMessage)
	default:
		return sendGenericError(ctx, inv)
	}
	if err := inv.Reply.SendEmbed(ctx, embed); err != nil {
		return fmt.Errorf("send error reply: %w", err)
	}
	return nil
}

func (c *WeatherCommand) send(ctx context.Context, inv *Invocation, reply airquality.Reply) error {
	var err error
	if reply.Embed != nil {
		err = inv.Reply.SendEmbed(ctx, reply.Embed)
	} else {
		err = inv.Reply.SendText(ctx, reply.Text)
	}
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	return nil
}

func fetchFailureText(err error) string {
	var fe *airquality.FetchError
	if errors.As(err, &fe) && fe.Message != "" {
		return crossMark + " " + fe.Message
	}
	return fetchFailedText
}
