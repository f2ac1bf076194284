package model

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"marketplace/internal/common"
)

// Price is a non-negative amount in cents.
type Price int64

const maxPriceCents = math.MaxInt64 / 100

var errPriceFormat = common.New(common.ErrValidation, "price must be a number with at most two decimal places")

// ParsePrice parses a decimal amount such as "29.99" without going through
// float64, so no rounding happens.
func ParsePrice(s string) (Price, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errPriceFormat
	}
	if strings.ContainsAny(s, "eE") {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0, errPriceFormat
		}
		// Same two-decimal rule as plain notation: 1.999e0 is not a price.
		if cents := f * 100; math.Abs(cents-math.Round(cents)) > 1e-6 {
			return 0, errPriceFormat
		}
		return PriceFromFloat(f)
	}
	if strings.HasPrefix(s, "-") {
		return 0, common.New(common.ErrValidation, "price must not be negative")
	}
	s = strings.TrimPrefix(s, "+")

	whole, frac, hasDot := strings.Cut(s, ".")
	if whole == "" && (!hasDot || frac == "") {
		return 0, errPriceFormat
	}
	if len(frac) > 2 || !allDigits(whole) || !allDigits(frac) {
		return 0, errPriceFormat
	}
	for len(frac) < 2 {
		frac += "0"
	}

	units := int64(0)
	if whole != "" {
		var err error
		units, err = strconv.ParseInt(whole, 10, 64)
		if err != nil || units >= maxPriceCents {
			return 0, common.New(common.ErrValidation, "price is too large")
		}
	}
	cents, _ := strconv.ParseInt(frac, 10, 64)
	return Price(units*100 + cents), nil
}

// PriceFromFloat converts a float amount to cents, rounding to the nearest cent.
func PriceFromFloat(f float64) (Price, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, errPriceFormat
	}
	if f < 0 {
		return 0, common.New(common.ErrValidation, "price must not be negative")
	}
	if f >= float64(maxPriceCents) {
		return 0, common.New(common.ErrValidation, "price is too large")
	}
	return Price(math.Round(f * 100)), nil
}

func (p Price) Cents() int64 {
	return int64(p)
}

func (p Price) String() string {
	return fmt.Sprintf("%d.%02d", int64(p)/100, int64(p)%100)
}

// MarshalJSON encodes the price as a JSON number, e.g. 9.99.
func (p Price) MarshalJSON() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalJSON accepts a JSON number or a numeric string.
func (p *Price) UnmarshalJSON(b []byte) error {
	raw := strings.TrimSpace(string(b))
	if strings.HasPrefix(raw, `"`) {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return errPriceFormat
		}
		raw = unquoted
	}
	parsed, err := ParsePrice(raw)
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

func allDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
