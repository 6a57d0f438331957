package bot

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ibraheembello/Restaurant-Chatbot/internal/models"
)

// Menu codes recognized by the engine. Compared as exact strings, so leading
// zeros or stray characters make an input unrecognized.
const (
	codePlaceOrder   = "1"
	codeCheckout     = "99"
	codeHistory      = "98"
	codeCurrentOrder = "97"
	codeCancel       = "0"
	codeScheduleYes  = "1"
	codeScheduleNo   = "2"
)

// Kind identifies a parsed command.
type Kind int

const (
	KindUnrecognized Kind = iota
	KindShowMenu
	KindCheckout
	KindHistory
	KindShowCurrent
	KindCancel
	KindAddItem
	KindScheduleYes
	KindScheduleNo
	KindDateText
)

// Input is a user message parsed once at the boundary into a tagged command,
// so the per-state handlers can match on Kind instead of raw strings.
type Input struct {
	Kind       Kind
	ItemNumber int
	Text       string
}

var digitsRe = regexp.MustCompile(`^\d+$`)

// Sanitize trims the message and strips HTML brackets.
func Sanitize(raw string) string {
	replacer := strings.NewReplacer("<", "", ">", "")
	return replacer.Replace(strings.TrimSpace(raw))
}

// Parse maps a sanitized message to a command for the given session state.
func Parse(state, input string) Input {
	switch state {
	case models.StateOrdering:
		return parseOrdering(input)
	case models.StateScheduling:
		return parseScheduling(input)
	default:
		// checkout is routed the same as idle.
		return parseIdle(input)
	}
}

func parseIdle(input string) Input {
	switch input {
	case codePlaceOrder:
		return Input{Kind: KindShowMenu}
	case codeCheckout:
		return Input{Kind: KindCheckout}
	case codeHistory:
		return Input{Kind: KindHistory}
	case codeCurrentOrder:
		return Input{Kind: KindShowCurrent}
	case codeCancel:
		return Input{Kind: KindCancel}
	default:
		return Input{Kind: KindUnrecognized, Text: input}
	}
}

func parseOrdering(input string) Input {
	switch input {
	case codeCheckout:
		return Input{Kind: KindCheckout}
	case codeCurrentOrder:
		return Input{Kind: KindShowCurrent}
	case codeCancel:
		return Input{Kind: KindCancel}
	}

	if digitsRe.MatchString(input) {
		if n, err := strconv.Atoi(input); err == nil {
			return Input{Kind: KindAddItem, ItemNumber: n}
		}
	}
	return Input{Kind: KindUnrecognized, Text: input}
}

func parseScheduling(input string) Input {
	switch input {
	case codeScheduleYes:
		return Input{Kind: KindScheduleYes}
	case codeScheduleNo:
		return Input{Kind: KindScheduleNo}
	default:
		return Input{Kind: KindDateText, Text: input}
	}
}
