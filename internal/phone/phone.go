// Package phone turns form-entered contact numbers into the canonical
// +94 dialing format used for outbound messaging links.
package phone

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const (
	// CountryCode is the only dialing code the dashboard understands.
	CountryCode = "94"
	// Region is the ISO region matching CountryCode.
	Region = "LK"

	minNationalDigits = 9
	intlDigitsNoPlus  = 11
)

// ErrInvalid is returned when the input cannot be classified as a phone number.
var ErrInvalid = errors.New("phone: invalid phone number")

// Normalize converts raw form input to +94XXXXXXXXX.
//
// Numbers starting with "94" are only treated as international when they have
// exactly 11 digits; other lengths fall through to the national fallback and
// get a second country code. That mirrors the form backend's historical output.
func Normalize(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrInvalid
	}
	digits := digitsOnly(raw)

	switch {
	case strings.HasPrefix(raw, "+"+CountryCode):
		return "+" + digits, nil
	case strings.HasPrefix(digits, "0"):
		return "+" + CountryCode + digits[1:], nil
	case strings.HasPrefix(digits, CountryCode) && len(digits) == intlDigitsNoPlus:
		return "+" + digits, nil
	case len(digits) < minNationalDigits:
		return "", ErrInvalid
	default:
		return "+" + CountryCode + digits, nil
	}
}

// NormalizeValue accepts the loosely typed values a spreadsheet backend sends
// for the contact column (strings, JSON numbers, floats).
func NormalizeValue(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", ErrInvalid
	case string:
		return Normalize(val)
	case json.Number:
		return Normalize(val.String())
	case float64:
		return Normalize(strconv.FormatFloat(val, 'f', -1, 64))
	case float32:
		return Normalize(strconv.FormatFloat(float64(val), 'f', -1, 32))
	case int:
		return Normalize(strconv.Itoa(val))
	case int64:
		return Normalize(strconv.FormatInt(val, 10))
	default:
		return Normalize(fmt.Sprint(val))
	}
}

// Info is display metadata for a canonical number.
type Info struct {
	National string
	Valid    bool
}

// Details parses a canonical number with libphonenumber metadata for display.
// It never changes what Normalize returned.
func Details(canonical string) Info {
	num, err := phonenumbers.Parse(canonical, Region)
	if err != nil {
		return Info{}
	}
	return Info{
		National: phonenumbers.Format(num, phonenumbers.NATIONAL),
		Valid:    phonenumbers.IsValidNumber(num),
	}
}

func digitsOnly(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if c := s[i]; c >= '0' && c <= '9' {
			b.WriteByte(c)
		}
	}
	return b.String()
}
