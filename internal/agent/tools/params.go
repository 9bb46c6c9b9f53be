package tools

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Params is the loosely typed argument object of a tool call, usually
// decoded from JSON.
type Params map[string]any

// String returns the trimmed string value of key; numbers are formatted.
func (p Params) String(key string) string {
	switch v := p[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case fmt.Stringer:
		return strings.TrimSpace(v.String())
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Int returns the integer value of key and whether one was present and usable.
func (p Params) Int(key string) (int, bool) {
	switch v := p[key].(type) {
	case int:
		return v, true
	case int32:
		return int(v), true
	case int64:
		return int(v), true
	case float64:
		if v != math.Trunc(v) {
			return 0, false
		}
		return int(v), true
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// Map returns the object value of key, or nil.
func (p Params) Map(key string) map[string]any {
	switch v := p[key].(type) {
	case map[string]any:
		return v
	case Params:
		return v
	}
	return nil
}
