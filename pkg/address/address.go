// Package address converts between the single free-text address stored on an
// account and its street, suburb, city and postcode parts.
//
// The stored form is "street, suburb, city postcode".
package address

import (
	"strings"
	"unicode"
)

type Address struct {
	Street   string `json:"street"`
	Suburb   string `json:"suburb"`
	City     string `json:"city"`
	Postcode string `json:"postcode"`
}

// Complete reports whether every part is present.
func (a Address) Complete() bool {
	return strings.TrimSpace(a.Street) != "" &&
		strings.TrimSpace(a.Suburb) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.Postcode) != ""
}

func Join(a Address) string {
	cityLine := strings.TrimSpace(strings.TrimSpace(a.City) + " " + strings.TrimSpace(a.Postcode))
	parts := make([]string, 0, 3)
	for _, p := range []string{a.Street, a.Suburb, cityLine} {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ", ")
}

// Parse is the inverse of Join. Addresses with fewer parts fill from the
// street side; a trailing all-digit word of the last part is the postcode.
// Join output only round-trips when no part contains a comma and the postcode
// is all digits; request validation rejects anything else.
func Parse(s string) Address {
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, p := range raw {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return Address{}
	}

	var a Address
	last := parts[len(parts)-1]
	parts = parts[:len(parts)-1]
	if i := strings.LastIndexByte(last, ' '); i >= 0 && isDigits(last[i+1:]) {
		a.City, a.Postcode = strings.TrimSpace(last[:i]), last[i+1:]
	} else if isDigits(last) {
		a.Postcode = last
	} else {
		a.City = last
	}

	switch len(parts) {
	case 0:
	case 1:
		a.Street = parts[0]
	default:
		a.Street = strings.Join(parts[:len(parts)-1], ", ")
		a.Suburb = parts[len(parts)-1]
	}
	return a
}

// Normalize folds case and whitespace so two spellings of one address compare
// equal.
func Normalize(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
