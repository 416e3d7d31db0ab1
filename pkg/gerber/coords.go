package gerber

import (
	"strconv"
	"strings"
)

// DecodeCoordinate converts one fixed-point coordinate field into millimeters.
//
// field is the raw digit string after the X or Y marker, optionally signed.
// An empty field returns fallback: Gerber coordinates are modal, an omitted
// axis reuses the previous position on that axis. A non-empty field is
// left-padded with zeros to IntegerDigits+DecimalDigits digits, split
// DecimalDigits from the right, parsed as a fixed-point real and scaled.
//
// This implements the leading-zero-omission convention only. Trailing-zero
// suppression and explicit decimal points are not detected; files using them
// decode to wrong (but deterministic) values. The second return value is
// false when the field was non-empty but unparseable, in which case the
// value is 0.0.
func DecodeCoordinate(field string, fs FormatSpec, scale, fallback float64) (float64, bool) {
	if field == "" {
		return fallback, true
	}

	digits := field
	sign := 1.0
	switch digits[0] {
	case '-':
		sign = -1.0
		digits = digits[1:]
	case '+':
		digits = digits[1:]
	}

	total := fs.IntegerDigits + fs.DecimalDigits
	if len(digits) < total {
		digits = strings.Repeat("0", total-len(digits)) + digits
	}

	intPart := digits
	decPart := "0"
	if fs.DecimalDigits > 0 && len(digits) >= fs.DecimalDigits {
		intPart = digits[:len(digits)-fs.DecimalDigits]
		decPart = digits[len(digits)-fs.DecimalDigits:]
	}
	if intPart == "" {
		intPart = "0"
	}

	value, err := strconv.ParseFloat(intPart+"."+decPart, 64)
	if err != nil {
		return 0.0, false
	}
	return sign * value * scale, true
}
