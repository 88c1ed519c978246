package bot

import (
	"context"
	"fmt"

	"github.com/i474232898/airquality-bot/internal/airquality"
)

// ArgErrorKind is the closed set of argument-parsing failures.
type ArgErrorKind int

const (
	// ArgMissing means a required argument was not supplied.
	ArgMissing ArgErrorKind = iota + 1
	// ArgInvalid means an argument was supplied but could not be used.
	ArgInvalid
)

func (k ArgErrorKind) String() string {
	switch k {
	case ArgMissing:
		return "missing_argument"
	case ArgInvalid:
		return "invalid_argument"
	default:
		return "unknown"
	}
}

// ArgError is returned by the argument-parsing stage of a command, before any
// message is sent.
type ArgError struct {
	Kind ArgErrorKind
	Arg  string
	Err  error
}

func (e *ArgError) Error() string {
	msg := e.Kind.String()
	if e.Arg != "" {
		msg += " " + e.Arg
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ArgError) Unwrap() error {
	return e.Err
}

const (
	crossMark = "❌"

	genericErrorTitle       = crossMark + " Error"
	genericErrorDescription = "An unexpected error occurred. Please try again later."
)

func errorEmbed(title, description string) *airquality.Embed {
	return &airquality.Embed{
		Title:       title,
		Description: description,
		Color:       airquality.ColorRed,
	}
}

// sendGenericError is the fallback reply for anything that is not an ArgError.
func sendGenericError(ctx context.Context, inv *Invocation) error {
	if err := inv.Reply.SendEmbed(ctx, errorEmbed(genericErrorTitle, genericErrorDescription)); err != nil {
		return fmt.Errorf("send error reply: %w", err)
	}
	return nil
}
