package tools

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
)

func asString(args map[string]any, key string) (string, bool) {
	v, ok := args[key]
	if !ok || v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func requiredString(args map[string]any, key string) (string, error) {
	s, ok := asString(args, key)
	if !ok || strings.TrimSpace(s) == "" {
		if v, present := args[key]; present && v != nil && !ok {
			return "", fmt.Errorf("argument %s must be a string", key)
		}
		return "", fmt.Errorf("missing required argument: %s", key)
	}
	return s, nil
}

func optionalString(args map[string]any, key, def string) (string, error) {
	v, present := args[key]
	if !present || v == nil {
		return def, nil
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("argument %s must be a string", key)
	}
	return s, nil
}

// asInt accepts JSON numbers with no fractional part and numeric strings.
func asInt(v any) (int, bool) {
	switch n := v.(type) {
	case int:
		return n, true
	case int64:
		return int(n), true
	case float64:
		if n != math.Trunc(n) || math.IsInf(n, 0) || n > math.MaxInt32 || n < math.MinInt32 {
			return 0, false
		}
		return int(n), true
	case json.Number:
		i, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(i), true
	case string:
		i, err := strconv.Atoi(strings.TrimSpace(n))
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

func requiredInt(args map[string]any, key string) (int, error) {
	v, present := args[key]
	if !present || v == nil {
		return 0, fmt.Errorf("missing required argument: %s", key)
	}
	i, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("argument %s must be an integer", key)
	}
	return i, nil
}

func optionalInt(args map[string]any, key string, def int) (int, error) {
	v, present := args[key]
	if !present || v == nil {
		return def, nil
	}
	i, ok := asInt(v)
	if !ok {
		return 0, fmt.Errorf("argument %s must be an integer", key)
	}
	return i, nil
}

func invalidArguments(err error) string {
	return "Invalid arguments: " + err.Error()
}
