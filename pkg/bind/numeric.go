package bind

import (
	"errors"
	"strconv"
	"strings"

	"github.com/woodsbury/decimal128"
)

const strconvIntBits = strconv.IntSize

var (
	errEmptyNumber = errors.New("empty input")
	errSyntax      = errors.New("invalid number syntax")
)

func textStrategy() Strategy[string] {
	return Strategy[string]{
		ParseText: func(raw, _ string) (string, error) { return raw, nil },
		Format:    func(value, _ string) (string, error) { return value, nil },
	}
}

func flagStrategy() Strategy[bool] {
	return Strategy[bool]{
		ParseFlag: func(raw bool) (bool, error) { return raw, nil },
		Format: func(value bool, _ string) (string, error) {
			return strconv.FormatBool(value), nil
		},
	}
}

func intStrategy[T int | int32 | int64](bits int) Strategy[T] {
	return Strategy[T]{
		ParseText: func(raw, _ string) (T, error) {
			n, err := parseInvariantInt(raw, bits)
			return T(n), err
		},
		Format: func(value T, _ string) (string, error) {
			return strconv.FormatInt(int64(value), 10), nil
		},
	}
}

func floatStrategy[T float32 | float64](bits int) Strategy[T] {
	return Strategy[T]{
		ParseText: func(raw, _ string) (T, error) {
			f, err := parseInvariantFloat(raw, bits)
			return T(f), err
		},
		Format: func(value T, _ string) (string, error) {
			return strconv.FormatFloat(float64(value), 'g', -1, bits), nil
		},
	}
}

func decimalStrategy() Strategy[decimal128.Decimal] {
	return Strategy[decimal128.Decimal]{
		ParseText: func(raw, _ string) (decimal128.Decimal, error) {
			text, err := normalizeNumber(raw, false)
			if err != nil {
				return decimal128.Decimal{}, err
			}
			return decimal128.Parse(text)
		},
		Format: func(value decimal128.Decimal, _ string) (string, error) {
			return value.String(), nil
		},
	}
}

// parseInvariantInt accepts surrounding whitespace, one leading sign and
// decimal digits.
func parseInvariantInt(raw string, bits int) (int64, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return 0, errEmptyNumber
	}
	digits := text
	if digits[0] == '+' || digits[0] == '-' {
		digits = digits[1:]
	}
	if !isDigits(digits) {
		return 0, errSyntax
	}
	return strconv.ParseInt(text, 10, bits)
}

func parseInvariantFloat(raw string, bits int) (float64, error) {
	text, err := normalizeNumber(raw, true)
	if err != nil {
		return 0, err
	}
	return strconv.ParseFloat(text, bits)
}

// normalizeNumber rewrites an invariant-culture number into the grammar
// strconv and decimal128 accept. Group separators are only allowed before the
// decimal point. Infinity and NaN symbols are only recognised when
// allowSpecial is set, which also enables exponents.
func normalizeNumber(raw string, allowSpecial bool) (string, error) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return "", errEmptyNumber
	}

	sign := ""
	if text[0] == '+' || text[0] == '-' {
		if text[0] == '-' {
			sign = "-"
		}
		text = text[1:]
	}

	if allowSpecial {
		switch {
		case strings.EqualFold(text, "Infinity"):
			return sign + "Inf", nil
		case strings.EqualFold(text, "NaN") && sign == "":
			return "NaN", nil
		}
	}

	mantissa, exponent := text, ""
	if allowSpecial {
		if i := strings.IndexAny(text, "eE"); i >= 0 {
			mantissa, exponent = text[:i], text[i+1:]
			if !isSignedDigits(exponent) {
				return "", errSyntax
			}
		}
	}

	whole, frac, hasPoint := strings.Cut(mantissa, ".")
	// Group separators only count after the first digit.
	if strings.HasPrefix(whole, ",") {
		return "", errSyntax
	}
	whole = strings.ReplaceAll(whole, ",", "")
	if (whole != "" && !isDigits(whole)) || (frac != "" && !isDigits(frac)) {
		return "", errSyntax
	}
	if whole == "" && frac == "" {
		return "", errSyntax
	}

	var b strings.Builder
	b.WriteString(sign)
	if whole == "" {
		b.WriteByte('0')
	} else {
		b.WriteString(whole)
	}
	if hasPoint && frac != "" {
		b.WriteByte('.')
		b.WriteString(frac)
	}
	if exponent != "" {
		b.WriteByte('e')
		b.WriteString(exponent)
	}
	return b.String(), nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func isSignedDigits(s string) bool {
	if s != "" && (s[0] == '+' || s[0] == '-') {
		s = s[1:]
	}
	return isDigits(s)
}
