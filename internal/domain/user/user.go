// Package user synthesizes user views from path identifiers.
//
// Identifiers follow JavaScript coercion rules: an id is accepted when
// Number(id) is not NaN, and the reported id is parseInt(id). The name
// echoes the identifier exactly as it appeared in the path, so "007"
// yields id 7 and name "User007".
package user

import (
	"errors"
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"github.com/okian/hello/internal/domain/types"
)

// NamePrefix is prepended to the raw identifier to form the user name.
const NamePrefix = "User"

// ErrNotNumeric is returned when an identifier does not coerce to a number.
var ErrNotNumeric = errors.New("user id is not numeric")

// numericLiteral matches a trimmed, non-empty JavaScript StringNumericLiteral.
var numericLiteral = regexp.MustCompile(
	`^(?:[+-]?(?:Infinity|(?:[0-9]+\.?[0-9]*|\.[0-9]+)(?:[eE][+-]?[0-9]+)?)|0[xX][0-9a-fA-F]+|0[oO][0-7]+|0[bB][01]+)$`,
)

// Lookup builds the view for raw, the identifier as taken from the path.
func Lookup(raw string) (types.UserView, error) {
	if !IsNumeric(raw) {
		return types.UserView{}, ErrNotNumeric
	}
	return types.UserView{
		ID:   types.Number(ParseInt(raw)),
		Name: NamePrefix + raw,
	}, nil
}

// IsNumeric reports whether s coerces to a number other than NaN.
// Blank strings coerce to 0 and are therefore numeric.
func IsNumeric(s string) bool {
	s = strings.TrimFunc(s, isSpace)
	if s == "" {
		return true
	}
	return numericLiteral.MatchString(s)
}

// ParseInt reads an integer from the start of s the way parseInt(s) does
// without a radix: leading whitespace and a sign are skipped, a 0x prefix
// selects base 16, and parsing stops at the first invalid digit. It returns
// NaN when no digit is found.
func ParseInt(s string) float64 {
	s = strings.TrimLeftFunc(s, isSpace)

	neg := false
	if s != "" && (s[0] == '-' || s[0] == '+') {
		neg = s[0] == '-'
		s = s[1:]
	}

	hex := false
	if len(s) >= 2 && s[0] == '0' && (s[1] == 'x' || s[1] == 'X') {
		hex = true
		s = s[2:]
	}

	end := 0
	for end < len(s) && isDigit(s[end], hex) {
		end++
	}
	if end == 0 {
		return math.NaN()
	}

	digits := s[:end]
	if hex {
		digits = "0x" + digits + "p0"
	}
	// Out-of-range inputs come back as ±Inf with ErrRange, which is what
	// parseInt yields for them too.
	v, err := strconv.ParseFloat(digits, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return math.NaN()
	}
	if neg {
		v = -v
	}
	return v
}

func isDigit(c byte, hex bool) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case !hex:
		return false
	case c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		return true
	}
	return false
}

// isSpace matches the JavaScript WhiteSpace and LineTerminator sets.
func isSpace(r rune) bool {
	switch r {
	case '\t', '\n', '\v', '\f', '\r', ' ', '\u00a0', '\ufeff', '\u2028', '\u2029':
		return true
	}
	return unicode.Is(unicode.Zs, r)
}
