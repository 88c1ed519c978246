package bot

import (
	"errors"
	"strings"
	"unicode"
)

var (
	errUnclosedQuote    = errors.New("expected closing quote")
	errUnexpectedQuote  = errors.New("unexpected quote inside argument")
	errQuoteNotFollowed = errors.New("closing quote must be followed by a space")
)

// quotePairs maps each opening quote to its closing quote. Apostrophes are
// ordinary characters so names like Xi'an stay one argument.
var quotePairs = map[rune]rune{
	'"': '"',
	'“': '”',
	'«': '»',
	'„': '“',
}

func isQuote(r rune) bool {
	if _, ok := quotePairs[r]; ok {
		return true
	}
	for _, c := range quotePairs {
		if c == r {
			return true
		}
	}
	return false
}

// splitArgs breaks s into whitespace-separated arguments. A quote at the start
// of an argument groups text up to the matching closing quote; inside quotes a
// backslash escapes a quote character.
func splitArgs(s string) ([]string, error) {
	args := []string{}
	runes := []rune(s)

	for i := 0; i < len(runes); {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		var b strings.Builder
		if closing, ok := quotePairs[runes[i]]; ok {
			i++
			closed := false
			for i < len(runes) {
				r := runes[i]
				if r == '\\' && i+1 < len(runes) && isQuote(runes[i+1]) {
					b.WriteRune(runes[i+1])
					i += 2
					continue
				}
				i++
				if r == closing {
					closed = true
					break
				}
				b.WriteRune(r)
			}
			if !closed {
				return nil, errUnclosedQuote
			}
			if i < len(runes) && !unicode.IsSpace(runes[i]) {
				return nil, errQuoteNotFollowed
			}
			args = append(args, b.String())
			continue
		}

		for i < len(runes) && !unicode.IsSpace(runes[i]) {
			if isQuote(runes[i]) {
				return nil, errUnexpectedQuote
			}
			b.WriteRune(runes[i])
			i++
		}
		args = append(args, b.String())
	}
	return args, nil
}
