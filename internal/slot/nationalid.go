// Package slot pulls structured values out of conversational text.
package slot

import (
	"regexp"
	"strings"

	"github.com/medic/supportbot/internal/textnorm"
)

const (
	minIDDigits = 7
	maxIDDigits = 9
)

// "dni", optionally "es" or ":", then 7-15 raw chars of digits, dots, blanks or hyphens.
var reLabeledID = regexp.MustCompile(`dni\s*(es|:)?\s*([0-9.\s-]{7,15})`)

// ExtractNationalID returns the national ID (DNI) found in text.
// A labeled form ("mi dni es 30.123.456") wins; otherwise the whole message is
// treated as a candidate number so a bare "30123456" reply also resolves.
func ExtractNationalID(text string) (string, bool) {
	t := textnorm.Normalize(text)
	if t == "" {
		return "", false
	}
	if m := reLabeledID.FindStringSubmatch(t); m != nil {
		if id, ok := validID(m[2]); ok {
			return id, true
		}
	}
	return validID(t)
}

// FormatNationalID renders a valid ID zero-padded to 8 digits as XX.XXX.XXX.
// Anything that is not a 7-9 digit string is returned unchanged.
func FormatNationalID(id string) string {
	if !isDigits(id) || len(id) < minIDDigits || len(id) > maxIDDigits {
		return id
	}
	s := id
	if len(s) < 8 {
		s = strings.Repeat("0", 8-len(s)) + s
	}
	return s[:2] + "." + s[2:5] + "." + s[5:]
}

func validID(raw string) (string, bool) {
	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()
	if len(digits) < minIDDigits || len(digits) > maxIDDigits {
		return "", false
	}
	return digits, true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
