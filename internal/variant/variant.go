// Package variant models the closed set of dynamic values an evaluation
// script may report alongside a score, and their JSON encoding.
package variant

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/programme-lv/reporter/internal/jsontext"
)

// ErrConversion is returned by the As* accessors for a non-matching kind.
var ErrConversion = errors.New("variant holds a different kind")

// Value is one of Null, Int, Float or Text.
type Value interface {
	// Kind names the variant for diagnostics.
	Kind() string
	isValue()
}

type (
	Null  struct{}
	Int   int64
	Float float64
	Text  string
)

func (Null) Kind() string  { return "null" }
func (Int) Kind() string   { return "int" }
func (Float) Kind() string { return "float" }
func (Text) Kind() string  { return "text" }

func (Null) isValue()  {}
func (Int) isValue()   {}
func (Float) isValue() {}
func (Text) isValue()  {}

func IsNull(v Value) bool {
	_, ok := v.(Null)
	return ok || v == nil
}

func AsInt(v Value) (int64, error) {
	if i, ok := v.(Int); ok {
		return int64(i), nil
	}
	return 0, fmt.Errorf("as int: %w (%s)", ErrConversion, kindOf(v))
}

func AsFloat(v Value) (float64, error) {
	if f, ok := v.(Float); ok {
		return float64(f), nil
	}
	return 0, fmt.Errorf("as float: %w (%s)", ErrConversion, kindOf(v))
}

func AsText(v Value) (string, error) {
	if s, ok := v.(Text); ok {
		return string(s), nil
	}
	return "", fmt.Errorf("as text: %w (%s)", ErrConversion, kindOf(v))
}

func kindOf(v Value) string {
	if v == nil {
		return Null{}.Kind()
	}
	return v.Kind()
}

// WriteJSON appends the JSON encoding of v to sb. A nil Value is written
// as null.
func WriteJSON(sb *strings.Builder, v Value) {
	switch x := v.(type) {
	case nil, Null:
		sb.WriteString("null")
	case Int:
		sb.WriteString(strconv.FormatInt(int64(x), 10))
	case Float:
		sb.WriteString(FormatFloat(float64(x)))
	case Text:
		jsontext.WriteQuoted(sb, string(x))
	default:
		panic(fmt.Sprintf("variant: unhandled kind %T", v))
	}
}

// JSON returns the JSON encoding of v.
func JSON(v Value) string {
	var sb strings.Builder
	WriteJSON(&sb, v)
	return sb.String()
}

// FormatFloat renders f with the fewest digits that parse back to the same
// float64. Integral values keep a ".0" so receivers still read a float.
// JSON has no literal for NaN or infinities; those become null.
func FormatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "null"
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
