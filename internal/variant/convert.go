package variant

import (
	"fmt"
	"math"

	"github.com/programme-lv/reporter/internal/jsontext"
)

// UnsupportedKindError reports an evaluator value that has no Value variant.
type UnsupportedKindError struct {
	Kind string
}

func (e *UnsupportedKindError) Error() string {
	return fmt.Sprintf("could not convert %s to a report value", e.Kind)
}

// FromAny maps the narrow set of Go shapes an evaluator may produce onto a
// Value. Text must be valid UTF-8, otherwise a *jsontext.DecodeError is
// returned. Every other shape yields *UnsupportedKindError.
func FromAny(x any) (Value, error) {
	switch v := x.(type) {
	case nil:
		return Null{}, nil
	case Text:
		if err := jsontext.Validate(string(v)); err != nil {
			return nil, err
		}
		return v, nil
	case Value:
		return v, nil
	case int:
		return Int(v), nil
	case int8:
		return Int(v), nil
	case int16:
		return Int(v), nil
	case int32:
		return Int(v), nil
	case int64:
		return Int(v), nil
	case uint8:
		return Int(v), nil
	case uint16:
		return Int(v), nil
	case uint32:
		return Int(v), nil
	case uint:
		if uint64(v) > math.MaxInt64 {
			return nil, &UnsupportedKindError{Kind: "uint out of int64 range"}
		}
		return Int(v), nil
	case uint64:
		if v > math.MaxInt64 {
			return nil, &UnsupportedKindError{Kind: "uint64 out of int64 range"}
		}
		return Int(v), nil
	case float32:
		return Float(v), nil
	case float64:
		return Float(v), nil
	case string:
		if err := jsontext.Validate(v); err != nil {
			return nil, err
		}
		return Text(v), nil
	case []byte:
		s, err := jsontext.DecodeBytes(v)
		if err != nil {
			return nil, err
		}
		return Text(s), nil
	}
	return nil, &UnsupportedKindError{Kind: fmt.Sprintf("%T", x)}
}
