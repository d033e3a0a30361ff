// Package gettext holds lazily translated messages: a template and the named
// values substituted into it by the receiving service.
package gettext

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/programme-lv/reporter/internal/jsontext"
	"github.com/programme-lv/reporter/internal/variant"
)

// RawKey names the single substitution of a message built from plain text.
const RawKey = "RAW_MESSAGE"

// RawTemplate is the template of a message built from plain text.
const RawTemplate = "%(" + RawKey + ")s"

type Message struct {
	Text   string
	Kwargs map[string]variant.Value
}

// Lazy is the {text, kwargs} shape evaluation scripts use for translatable
// messages before conversion.
type Lazy struct {
	Text   any
	Kwargs map[string]any
}

// Raw wraps plain text so that it renders verbatim.
func Raw(s string) Message {
	return Message{
		Text:   RawTemplate,
		Kwargs: map[string]variant.Value{RawKey: variant.Text(s)},
	}
}

// New builds a message from a template and loosely typed kwargs.
func New(text string, kwargs map[string]any) (Message, error) {
	if err := jsontext.Validate(text); err != nil {
		return Message{}, fmt.Errorf("message template: %w", err)
	}
	msg := Message{Text: text, Kwargs: make(map[string]variant.Value, len(kwargs))}
	for k, x := range kwargs {
		if err := jsontext.Validate(k); err != nil {
			return Message{}, fmt.Errorf("message kwarg key: %w", err)
		}
		v, err := variant.FromAny(x)
		if err != nil {
			return Message{}, fmt.Errorf("message kwarg %q: %w", k, err)
		}
		msg.Kwargs[k] = v
	}
	return msg, nil
}

// From converts evaluator output into a Message. Accepted shapes are nil,
// string, []byte, Message, Lazy and *Lazy.
func From(x any) (Message, error) {
	switch v := x.(type) {
	case nil:
		return Message{}, nil
	case Message:
		if err := validate(v); err != nil {
			return Message{}, err
		}
		return v, nil
	case string:
		if err := jsontext.Validate(v); err != nil {
			return Message{}, err
		}
		return Raw(v), nil
	case []byte:
		s, err := jsontext.DecodeBytes(v)
		if err != nil {
			return Message{}, err
		}
		return Raw(s), nil
	case *Lazy:
		if v == nil {
			return Message{}, nil
		}
		return fromLazy(*v)
	case Lazy:
		return fromLazy(v)
	}
	return Message{}, &variant.UnsupportedKindError{Kind: fmt.Sprintf("%T", x)}
}

// validate checks a ready-made message the way New checks its inputs.
func validate(m Message) error {
	if err := jsontext.Validate(m.Text); err != nil {
		return fmt.Errorf("message template: %w", err)
	}
	for k, v := range m.Kwargs {
		if err := jsontext.Validate(k); err != nil {
			return fmt.Errorf("message kwarg key: %w", err)
		}
		if t, ok := v.(variant.Text); ok {
			if err := jsontext.Validate(string(t)); err != nil {
				return fmt.Errorf("message kwarg %q: %w", k, err)
			}
		}
	}
	return nil
}

func fromLazy(l Lazy) (Message, error) {
	var text string
	switch t := l.Text.(type) {
	case nil:
	case string:
		text = t
	case []byte:
		s, err := jsontext.DecodeBytes(t)
		if err != nil {
			return Message{}, fmt.Errorf("message template: %w", err)
		}
		text = s
	default:
		return Message{}, &variant.UnsupportedKindError{Kind: fmt.Sprintf("%T template", l.Text)}
	}
	return New(text, l.Kwargs)
}

// IsEmpty reports whether m has neither template nor kwargs.
func (m Message) IsEmpty() bool {
	return m.Text == "" && len(m.Kwargs) == 0
}

// Keys returns the kwargs keys in sorted order.
func (m Message) Keys() []string {
	keys := make([]string, 0, len(m.Kwargs))
	for k := range m.Kwargs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// WriteJSON appends {"text": ..., "kwargs": {...}} to sb. Keys are written
// in sorted order so equal messages always encode identically.
func WriteJSON(sb *strings.Builder, m Message) {
	sb.WriteString(`{"text": `)
	jsontext.WriteQuoted(sb, m.Text)
	sb.WriteString(`, "kwargs": {`)
	for i, k := range m.Keys() {
		if i > 0 {
			sb.WriteString(", ")
		}
		jsontext.WriteQuoted(sb, k)
		sb.WriteString(": ")
		variant.WriteJSON(sb, m.Kwargs[k])
	}
	sb.WriteString("}}")
}

func (m Message) JSON() string {
	var sb strings.Builder
	WriteJSON(&sb, m)
	return sb.String()
}

var placeholderRe = regexp.MustCompile(`%\(([^)]+)\)`)

// MissingKeys lists template placeholders that have no kwargs entry.
func MissingKeys(m Message) []string {
	referenced := mapset.NewSet[string]()
	for _, match := range placeholderRe.FindAllStringSubmatch(m.Text, -1) {
		referenced.Add(match[1])
	}
	provided := mapset.NewSetWithSize[string](len(m.Kwargs))
	for k := range m.Kwargs {
		provided.Add(k)
	}
	missing := referenced.Difference(provided).ToSlice()
	sort.Strings(missing)
	return missing
}
