// Package phone normalizes payer mobile numbers into the international
// MSISDN form the mobile money APIs expect (e.g. 254708374149).
package phone

import (
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrUnsupportedCountry the merchant country has no number plan entry
	ErrUnsupportedCountry = errors.New("phone: unsupported country")
	// ErrInvalidNumber the number does not match the country's mobile plan
	ErrInvalidNumber = errors.New("phone: invalid mobile number")
)

// plan describes one country's mobile number plan
type plan struct {
	DialCode string
	Pattern  *regexp.Regexp
}

// plans per ISO 3166-1 alpha-2 country code, covering the markets the
// mobile money providers operate in
var plans = map[string]plan{
	"KE": {"254", regexp.MustCompile(`^254(?:7\d{8}|1\d{8})$`)},
	"TZ": {"255", regexp.MustCompile(`^255[67]\d{8}$`)},
	"UG": {"256", regexp.MustCompile(`^256[37]\d{8}$`)},
	"GH": {"233", regexp.MustCompile(`^233[2356]\d{8}$`)},
	"NG": {"234", regexp.MustCompile(`^234[789]\d{9}$`)},
}

// separators stripped before any rule is applied
var separators = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")

// Normalize rewrites a raw payer number into canonical international form
// for the given country:
//
//	0708374149      -> 254708374149 (trunk prefix replaced by dial code)
//	+254 708 374149 -> 254708374149 (already international)
//	708374149       -> 254708374149 (bare local digits)
//
// The result is validated against the country's mobile pattern.
func Normalize(country string, raw string) (string, error) {
	p, ok := plans[strings.ToUpper(country)]
	if !ok {
		return "", ErrUnsupportedCountry
	}

	number := separators.Replace(strings.TrimSpace(raw))
	number = strings.TrimPrefix(number, "+")

	if number == "" || !isDigits(number) {
		return "", ErrInvalidNumber
	}

	switch {
	case strings.HasPrefix(number, p.DialCode):
		// already international
	case strings.HasPrefix(number, "0"):
		number = p.DialCode + number[1:]
	default:
		number = p.DialCode + number
	}

	if !p.Pattern.MatchString(number) {
		return "", ErrInvalidNumber
	}
	return number, nil
}

// Supported reports whether the country has a number plan entry
func Supported(country string) bool {
	_, ok := plans[strings.ToUpper(country)]
	return ok
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
