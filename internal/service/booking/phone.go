package booking

import "strings"

// phoneDigits is the length of a full Brazilian mobile number: two DDD
// digits plus nine subscriber digits.
const phoneDigits = 11

func notificationDigits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteByte(byte(r))
		}
	}
	return b.String()
}

// MaskPhone formats raw input progressively as (DD) DDDDD-DDDD,
// dropping anything beyond the eleventh digit. Partial input gets a
// partial mask so the caller can echo it back as the user types.
func MaskPhone(raw string) string {
	digits := notificationDigits(raw)
	if len(digits) > phoneDigits {
		digits = digits[:phoneDigits]
	}

	switch {
	case len(digits) == 0:
		return ""
	case len(digits) <= 2:
		return "(" + digits
	case len(digits) <= 7:
		return "(" + digits[:2] + ") " + digits[2:]
	default:
		return "(" + digits[:2] + ") " + digits[2:7] + "-" + digits[7:]
	}
}
