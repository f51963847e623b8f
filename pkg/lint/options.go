package lint

import "strings"

func lookupOption(opts map[string]any, key string) (any, bool) {
	if opts == nil {
		return nil, false
	}
	v, ok := opts[key]
	return v, ok
}

// GetOption extracts a typed option with a default value.
func GetOption[T any](opts map[string]any, key string, defaultVal T) T {
	v, ok := lookupOption(opts, key)
	if !ok {
		return defaultVal
	}
	if typed, ok := v.(T); ok {
		return typed
	}
	return defaultVal
}

// GetIntOption extracts an int option, handling float64 from JSON and YAML.
func GetIntOption(opts map[string]any, key string, defaultVal int) int {
	v, _ := lookupOption(opts, key)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return defaultVal
	}
}

// GetStringOption extracts a string option.
func GetStringOption(opts map[string]any, key string, defaultVal string) string {
	return GetOption(opts, key, defaultVal)
}

// GetBoolOption extracts a bool option.
func GetBoolOption(opts map[string]any, key string, defaultVal bool) bool {
	return GetOption(opts, key, defaultVal)
}

// GetStringSliceOption extracts a string list option. A plain string is
// split on commas, which is how list options arrive from flags and the
// environment.
func GetStringSliceOption(opts map[string]any, key string, defaultVal []string) []string {
	v, ok := lookupOption(opts, key)
	if !ok {
		return defaultVal
	}
	switch s := v.(type) {
	case []string:
		return s
	case []any:
		result := make([]string, 0, len(s))
		for _, item := range s {
			if str, ok := item.(string); ok {
				result = append(result, str)
			}
		}
		return result
	case string:
		var result []string
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				result = append(result, part)
			}
		}
		return result
	default:
		return defaultVal
	}
}
