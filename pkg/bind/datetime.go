package bind

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
)

// DefaultTimeLayout renders times that carry no format pattern. It is the
// invariant general date/long time form MM/dd/yyyy HH:mm:ss.
const DefaultTimeLayout = "01/02/2006 15:04:05"

var errUnrecognizedTime = errors.New("not a recognized date/time")

// invariantTimeLayouts are tried in order when a payload has no format
// pattern or does not match the declared one.
var invariantTimeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006-1-2 15:04:05",
	"2006-1-2 15:04",
	"2006-1-2 3:04:05 PM",
	"2006-1-2 3:04 PM",
	"2006-1-2",
	"2006/01/02 15:04:05",
	"2006/01/02",
	"01/02/2006 15:04:05",
	"01/02/2006 15:04",
	"01/02/2006 03:04:05 PM",
	"01/02/2006",
	"1/2/2006 15:04:05",
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04",
	"1/2/2006 3:04 PM",
	"1/2/2006",
	time.RFC1123,
	time.RFC1123Z,
	"Monday, 02 January 2006 15:04:05",
	"Monday, 02 January 2006 15:04",
	"Monday, 02 January 2006",
	"02 January 2006",
	"2 January 2006",
	"January 02, 2006",
	"January 2, 2006",
	"January 2 2006",
	"2 Jan 2006",
	"Jan 2, 2006",
	"Jan 2 2006",
}

// standardTimeFormats expands the single-letter standard patterns.
var standardTimeFormats = map[byte]string{
	'd': "MM/dd/yyyy",
	'D': "dddd, dd MMMM yyyy",
	'f': "dddd, dd MMMM yyyy HH:mm",
	'F': "dddd, dd MMMM yyyy HH:mm:ss",
	'g': "MM/dd/yyyy HH:mm",
	'G': "MM/dd/yyyy HH:mm:ss",
	'M': "MMMM dd",
	'm': "MMMM dd",
	'o': "yyyy'-'MM'-'dd'T'HH':'mm':'ss'.'fffffffK",
	'O': "yyyy'-'MM'-'dd'T'HH':'mm':'ss'.'fffffffK",
	'R': "ddd, dd MMM yyyy HH':'mm':'ss 'GMT'",
	'r': "ddd, dd MMM yyyy HH':'mm':'ss 'GMT'",
	's': "yyyy'-'MM'-'dd'T'HH':'mm':'ss",
	't': "HH:mm",
	'T': "HH:mm:ss",
	'u': "yyyy'-'MM'-'dd HH':'mm':'ss'Z'",
	'U': "dddd, dd MMMM yyyy HH:mm:ss",
	'Y': "yyyy MMMM",
	'y': "yyyy MMMM",
}

var layoutCache sync.Map // pattern -> string

// TimeLayout compiles a culture-invariant date pattern such as "yyyy-MM-dd"
// or the standard pattern "o" into a Go reference layout. Compiled layouts
// are cached.
//
// Patterns that need a token Go cannot express, or literal text that Go would
// read as a layout token, are rejected.
func TimeLayout(pattern string) (string, error) {
	if cached, ok := layoutCache.Load(pattern); ok {
		return cached.(string), nil
	}
	layout, err := compileLayout(pattern)
	if err != nil {
		return "", err
	}
	layoutCache.Store(pattern, layout)
	return layout, nil
}

type layoutBuilder struct {
	out     []byte
	literal []bool
}

func (b *layoutBuilder) token(s string) {
	b.out = append(b.out, s...)
	for range len(s) {
		b.literal = append(b.literal, false)
	}
}

func (b *layoutBuilder) text(s string) {
	b.out = append(b.out, s...)
	for range len(s) {
		b.literal = append(b.literal, true)
	}
}

// fraction appends a fractional-seconds run. Go only recognises fractions
// directly after a '.' or ',' separator, which becomes part of the token.
func (b *layoutBuilder) fraction(digit byte, n int) error {
	last := len(b.out) - 1
	if last < 0 || (b.out[last] != '.' && b.out[last] != ',') {
		return fmt.Errorf("fractional seconds must follow a '.' or ',' separator")
	}
	b.literal[last] = false
	b.token(strings.Repeat(string(digit), n))
	return nil
}

func compileLayout(pattern string) (string, error) {
	if pattern == "" {
		return "", fmt.Errorf("empty format pattern")
	}
	if len(pattern) == 1 {
		expanded, ok := standardTimeFormats[pattern[0]]
		if !ok {
			return "", fmt.Errorf("unknown standard format %q", pattern)
		}
		pattern = expanded
	}

	var b layoutBuilder
	for i := 0; i < len(pattern); {
		c := pattern[i]
		n := 1
		for i+n < len(pattern) && pattern[i+n] == c {
			n++
		}

		switch c {
		case 'y':
			switch {
			case n == 1:
				return "", fmt.Errorf("single-digit year %q is not supported", "y")
			case n == 2:
				b.token("06")
			default:
				b.token("2006")
			}
		case 'M':
			b.token(pick(n, "1", "01", "Jan", "January"))
		case 'd':
			b.token(pick(n, "2", "02", "Mon", "Monday"))
		case 'H':
			b.token("15")
		case 'h':
			b.token(pick(n, "3", "03"))
		case 'm':
			b.token(pick(n, "4", "04"))
		case 's':
			b.token(pick(n, "5", "05"))
		case 'f', 'F':
			if n > 7 {
				return "", fmt.Errorf("at most 7 fractional digits are supported, got %d", n)
			}
			digit := byte('0')
			if c == 'F' {
				digit = '9'
			}
			if err := b.fraction(digit, n); err != nil {
				return "", err
			}
		case 't':
			if n == 1 {
				return "", fmt.Errorf("single-letter AM/PM designator %q is not supported", "t")
			}
			b.token("PM")
		case 'z':
			b.token(pick(n, "-07", "-07", "-07:00"))
		case 'K':
			if n > 1 {
				return "", fmt.Errorf("repeated time zone specifier %q", pattern[i:i+n])
			}
			b.token("Z07:00")
		case 'g':
			return "", fmt.Errorf("era specifier %q is not supported", pattern[i:i+n])
		case '\'', '"':
			end := strings.IndexByte(pattern[i+1:], c)
			if end < 0 {
				return "", fmt.Errorf("unterminated quoted literal at offset %d", i)
			}
			b.text(pattern[i+1 : i+1+end])
			i += end + 2
			continue
		case '\\':
			if i+1 >= len(pattern) {
				return "", fmt.Errorf("trailing escape character")
			}
			b.text(pattern[i+1 : i+2])
			i += 2
			continue
		case '%':
			i++
			continue
		default:
			b.text(pattern[i : i+n])
		}
		i += n
	}

	if err := checkLiterals(b.out, b.literal); err != nil {
		return "", err
	}
	return string(b.out), nil
}

// pick selects the form for a specifier repeated n times, clamping to the
// longest form.
func pick(n int, forms ...string) string {
	if n > len(forms) {
		n = len(forms)
	}
	return forms[n-1]
}

// checkLiterals scans the layout the way the time package does and rejects
// any Go token that overlaps literal pattern text.
func checkLiterals(layout []byte, literal []bool) error {
	for i := 0; i < len(layout); {
		n := goTokenLen(layout, i)
		if n == 0 {
			i++
			continue
		}
		for j := i; j < i+n; j++ {
			if literal[j] {
				return fmt.Errorf("literal text %q would be read as the layout token %q", string(layout[j]), string(layout[i:i+n]))
			}
		}
		i += n
	}
	return nil
}

// goTokenLen returns the length of the time package layout token starting
// at layout[i], or 0.
func goTokenLen(layout []byte, i int) int {
	s := string(layout[i:])
	prefixes := func(options ...string) int {
		for _, opt := range options {
			if strings.HasPrefix(s, opt) {
				return len(opt)
			}
		}
		return 0
	}

	switch layout[i] {
	case 'J':
		return prefixes("January", "Jan")
	case 'M':
		return prefixes("Monday", "Mon", "MST")
	case '0':
		if len(s) >= 2 && '1' <= s[1] && s[1] <= '6' {
			return 2
		}
		return prefixes("002")
	case '1':
		return prefixes("15", "1")
	case '2':
		if strings.HasPrefix(s, "2006") {
			return 4
		}
		return 1
	case '_':
		if strings.HasPrefix(s, "_2") {
			if strings.HasPrefix(s, "_2006") {
				return 0
			}
			return 2
		}
		return prefixes("__2")
	case '3', '4', '5':
		return 1
	case 'P':
		return prefixes("PM")
	case 'p':
		return prefixes("pm")
	case '-':
		return prefixes("-07:00:00", "-070000", "-07:00", "-0700", "-07")
	case 'Z':
		return prefixes("Z07:00:00", "Z070000", "Z07:00", "Z0700", "Z07")
	case '.', ',':
		if len(s) >= 2 && (s[1] == '0' || s[1] == '9') {
			j := 1
			for j < len(s) && s[j] == s[1] {
				j++
			}
			if j >= len(s) || s[j] < '0' || s[j] > '9' {
				return j
			}
		}
	}
	return 0
}

func timeStrategy() Strategy[time.Time] {
	return Strategy[time.Time]{
		ParseText: parseTime,
		Format: func(value time.Time, format string) (string, error) {
			return formatTime(value, format)
		},
		CheckFormat: func(format string) error {
			_, err := TimeLayout(format)
			return err
		},
	}
}

// parseTime maps an empty payload to the zero time, tries the declared
// pattern exactly, and otherwise falls back to general invariant parsing.
// The fallback can accept dates that do not match the declared pattern.
func parseTime(raw, format string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	if format != "" {
		if layout, err := TimeLayout(format); err == nil {
			if t, err := time.Parse(layout, raw); err == nil {
				return t, nil
			}
		}
	}
	return parseInvariantTime(raw)
}

func parseInvariantTime(raw string) (time.Time, error) {
	text := strings.TrimSpace(raw)
	for _, layout := range invariantTimeLayouts {
		if t, err := time.Parse(layout, text); err == nil {
			return t, nil
		}
	}
	return time.Time{}, errUnrecognizedTime
}

func formatTime(value time.Time, format string) (string, error) {
	if value.IsZero() {
		return "", nil
	}
	if format == "" {
		return value.Format(DefaultTimeLayout), nil
	}
	layout, err := TimeLayout(format)
	if err != nil {
		return "", err
	}
	return value.Format(layout), nil
}
