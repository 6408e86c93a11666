package domain

import (
	"strings"
	"unicode"
)

// Channel identifies which delivery channel a contact string belongs to.
type Channel string

const (
	ChannelEmail   Channel = "email"
	ChannelPhone   Channel = "phone"
	ChannelUnknown Channel = "unknown"
)

// minPhoneDigits is the shortest subscriber number we accept; anything
// shorter is neither dialable nor worth an SMS attempt.
const minPhoneDigits = 7

// ClassifyContact tags a raw contact string as an email address or a phone
// number. Anything with an "@" is treated as email; otherwise the string
// must be digits, with an optional leading "+" and ignorable separators,
// to count as a phone number.
func ClassifyContact(contact string) Channel {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ChannelUnknown
	}
	if strings.Contains(contact, "@") {
		return ChannelEmail
	}

	digits := 0
	for i, r := range contact {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == '+' && i == 0:
		case r == ' ' || r == '-' || r == '(' || r == ')':
		default:
			return ChannelUnknown
		}
	}
	if digits < minPhoneDigits {
		return ChannelUnknown
	}
	return ChannelPhone
}
