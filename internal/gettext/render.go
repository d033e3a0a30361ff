package gettext

import (
	"fmt"
	"regexp"

	"github.com/programme-lv/reporter/internal/variant"
)

// %(name)[flags][width][.precision]conv, or a literal %%.
var directiveRe = regexp.MustCompile(`%%|%\(([^)]+)\)([-#0 +]*\d*(?:\.\d+)?)([sdifeEgGxXr])`)

// Render substitutes kwargs into the template without translating it.
// It is meant for logs and notifications; the website renders the
// translated form. Directives naming a missing key are left as they are.
func Render(m Message) string {
	return directiveRe.ReplaceAllStringFunc(m.Text, func(d string) string {
		if d == "%%" {
			return "%"
		}
		sub := directiveRe.FindStringSubmatch(d)
		v, ok := m.Kwargs[sub[1]]
		if !ok {
			return d
		}
		return formatDirective(v, sub[2], sub[3])
	})
}

func formatDirective(v variant.Value, flags, conv string) string {
	switch conv {
	case "d", "i":
		switch x := v.(type) {
		case variant.Int:
			return fmt.Sprintf("%"+flags+"d", int64(x))
		case variant.Float:
			return fmt.Sprintf("%"+flags+"d", int64(x))
		}
	case "f", "e", "E", "g", "G":
		switch x := v.(type) {
		case variant.Int:
			return fmt.Sprintf("%"+flags+conv, float64(x))
		case variant.Float:
			return fmt.Sprintf("%"+flags+conv, float64(x))
		}
	case "x", "X":
		if x, ok := v.(variant.Int); ok {
			return fmt.Sprintf("%"+flags+conv, int64(x))
		}
	}
	return fmt.Sprintf("%"+flags+"s", plain(v))
}

func plain(v variant.Value) string {
	switch x := v.(type) {
	case nil, variant.Null:
		return "None"
	case variant.Int, variant.Float:
		return variant.JSON(x)
	case variant.Text:
		return string(x)
	}
	return variant.JSON(v)
}

// String renders m for humans.
func (m Message) String() string {
	return Render(m)
}
