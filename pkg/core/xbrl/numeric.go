package xbrl

import (
	"strconv"
	"strings"
)

// ParseNumeric converts the text content of a tagged fact to a number.
// It tolerates thousands separators, currency symbols, surrounding
// whitespace, and the two negative conventions filings use (leading minus
// and accounting parentheses). Anything else returns nil: a value that
// cannot be read is treated as absent, never as an error.
func ParseNumeric(s string) *float64 {
	s = strings.TrimSpace(s)
	if s == "" || s == "-" || s == "—" {
		return nil
	}

	negative := false
	if strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		negative = true
		s = strings.TrimSpace(strings.Trim(s, "()"))
	}

	s = strings.ReplaceAll(s, ",", "")
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, " ", "")

	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	if negative {
		val = -val
	}
	return &val
}
