package templates

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"testsmith/internal/domain/valueobject"
)

// FormatValue renders a descriptor value as JavaScript source text. Map keys
// are emitted in sorted order so rendered code is stable across runs, and
// values JSON cannot express (undefined, NaN) render as their JavaScript
// literals.
func FormatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return "null"
	case valueobject.UndefinedValue:
		return "undefined"
	case bool:
		return strconv.FormatBool(v)
	case string:
		return strconv.Quote(v)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case float64:
		if math.IsNaN(v) {
			return "NaN"
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		parts := make([]string, 0, len(v))
		for _, item := range v {
			parts = append(parts, FormatValue(item))
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		keys := make([]string, 0, len(v))
		for key := range v {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		parts := make([]string, 0, len(keys))
		for _, key := range keys {
			parts = append(parts, key+": "+FormatValue(v[key]))
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return fmt.Sprintf("%v", v)
	}
}

// FormatArguments renders a function input map as a comma-separated argument
// list, one argument per key in sorted order.
func FormatArguments(inputs map[string]any) string {
	keys := make([]string, 0, len(inputs))
	for key := range inputs {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, key := range keys {
		parts = append(parts, FormatValue(inputs[key]))
	}
	return strings.Join(parts, ", ")
}
