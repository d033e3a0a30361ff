package jsontext

import (
	"fmt"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

const hexDigits = "0123456789ABCDEF"

// DecodeError is returned when text is not valid UTF-8.
type DecodeError struct {
	Offset int
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid utf-8 sequence at byte %d", e.Offset)
}

// DecodeBytes interprets b as UTF-8 text.
func DecodeBytes(b []byte) (string, error) {
	if err := Validate(string(b)); err != nil {
		return "", err
	}
	return string(b), nil
}

// Validate reports the first invalid UTF-8 sequence in s, if any.
func Validate(s string) error {
	if utf8.ValidString(s) {
		return nil
	}
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			return &DecodeError{Offset: i}
		}
		i += size
	}
	return nil
}

// IsPrintable reports whether r is in the printable ASCII range.
func IsPrintable(r rune) bool {
	return r >= 0x20 && r < 0x7f
}

// Escape returns the body of a JSON string literal for s.
// Everything outside printable ASCII is written as \uXXXX escapes of
// UTF-16 code units. s must be valid UTF-8.
func Escape(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	WriteEscaped(&sb, s)
	return sb.String()
}

// EscapeBytes decodes b and escapes the result.
func EscapeBytes(b []byte) (string, error) {
	s, err := DecodeBytes(b)
	if err != nil {
		return "", err
	}
	return Escape(s), nil
}

// Quote returns s escaped and wrapped in double quotes.
func Quote(s string) string {
	var sb strings.Builder
	sb.Grow(len(s) + 2)
	WriteQuoted(&sb, s)
	return sb.String()
}

// WriteQuoted writes s as a complete JSON string literal.
func WriteQuoted(sb *strings.Builder, s string) {
	sb.WriteByte('"')
	WriteEscaped(sb, s)
	sb.WriteByte('"')
}

// WriteEscaped writes the escaped form of s to sb.
func WriteEscaped(sb *strings.Builder, s string) {
	for _, r := range s {
		switch r {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			if IsPrintable(r) {
				sb.WriteRune(r)
				continue
			}
			if r1, r2 := utf16.EncodeRune(r); r1 != utf8.RuneError {
				writeUnit(sb, r1)
				writeUnit(sb, r2)
				continue
			}
			writeUnit(sb, r)
		}
	}
}

func writeUnit(sb *strings.Builder, u rune) {
	sb.WriteString(`\u`)
	sb.WriteByte(hexDigits[(u>>12)&0xf])
	sb.WriteByte(hexDigits[(u>>8)&0xf])
	sb.WriteByte(hexDigits[(u>>4)&0xf])
	sb.WriteByte(hexDigits[u&0xf])
}
