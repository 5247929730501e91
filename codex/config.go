package codex

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// flattenConfigOverrides converts a nested configuration object into the
// flat `dotted.path=literal` assignments the CLI's --config flag expects.
//
// Go maps are unordered, so keys are visited in sorted order to keep the
// override list reproducible for identical input.
func flattenConfigOverrides(config map[string]any) ([]string, error) {
	var overrides []string
	if err := flattenConfigValue(config, "", &overrides); err != nil {
		return nil, err
	}
	return overrides, nil
}

func flattenConfigValue(value any, prefix string, out *[]string) error {
	obj, ok := value.(map[string]any)
	if !ok {
		if prefix == "" {
			return &InvalidConfigError{Message: "config overrides must be a plain object"}
		}
		literal, err := tomlValue(value, prefix)
		if err != nil {
			return err
		}
		*out = append(*out, prefix+"="+literal)
		return nil
	}

	if len(obj) == 0 {
		if prefix != "" {
			*out = append(*out, prefix+"={}")
		}
		return nil
	}

	for _, key := range sortedKeys(obj) {
		if key == "" {
			return &InvalidConfigError{Path: prefix, Message: "keys must be non-empty strings"}
		}
		child := obj[key]
		if child == nil {
			continue
		}
		path := formatTOMLKey(key)
		if prefix != "" {
			path = prefix + "." + path
		}
		if _, isObj := child.(map[string]any); isObj {
			if err := flattenConfigValue(child, path, out); err != nil {
				return err
			}
			continue
		}
		literal, err := tomlValue(child, path)
		if err != nil {
			return err
		}
		*out = append(*out, path+"="+literal)
	}
	return nil
}

// tomlValue renders a configuration value as a TOML literal compatible
// with the CLI's --config parser.
func tomlValue(value any, path string) (string, error) {
	switch v := value.(type) {
	case string:
		return quoteString(v), nil
	case bool:
		if v {
			return "true", nil
		}
		return "false", nil
	case int:
		return strconv.FormatInt(int64(v), 10), nil
	case int8:
		return strconv.FormatInt(int64(v), 10), nil
	case int16:
		return strconv.FormatInt(int64(v), 10), nil
	case int32:
		return strconv.FormatInt(int64(v), 10), nil
	case int64:
		return strconv.FormatInt(v, 10), nil
	case uint:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint8:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint16:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint32:
		return strconv.FormatUint(uint64(v), 10), nil
	case uint64:
		return strconv.FormatUint(v, 10), nil
	case float32:
		return formatFloat(float64(v), path)
	case float64:
		return formatFloat(v, path)
	case []any:
		parts := make([]string, 0, len(v))
		for i, item := range v {
			if item == nil {
				return "", &InvalidConfigError{Path: fmt.Sprintf("%s[%d]", path, i), Message: "value cannot be null"}
			}
			literal, err := tomlValue(item, fmt.Sprintf("%s[%d]", path, i))
			if err != nil {
				return "", err
			}
			parts = append(parts, literal)
		}
		return "[" + strings.Join(parts, ", ") + "]", nil
	case map[string]any:
		var parts []string
		for _, key := range sortedKeys(v) {
			if key == "" {
				return "", &InvalidConfigError{Path: path, Message: "keys must be non-empty strings"}
			}
			child := v[key]
			if child == nil {
				continue
			}
			literal, err := tomlValue(child, path+"."+key)
			if err != nil {
				return "", err
			}
			parts = append(parts, formatTOMLKey(key)+" = "+literal)
		}
		return "{" + strings.Join(parts, ", ") + "}", nil
	case nil:
		return "", &InvalidConfigError{Path: path, Message: "value cannot be null"}
	default:
		return "", &InvalidConfigError{Path: path, Message: fmt.Sprintf("unsupported value type %T", value)}
	}
}

func formatFloat(f float64, path string) (string, error) {
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return "", &InvalidConfigError{Path: path, Message: "value must be a finite number"}
	}
	s := strconv.FormatFloat(f, 'g', -1, 64)
	// TOML floats need a fractional part or exponent to stay floats.
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s, nil
}

// formatTOMLKey emits a bare key when possible, and a quoted string
// otherwise. A dotted key like "a.b" stays one quoted key, not a path.
func formatTOMLKey(key string) string {
	if isBareKey(key) {
		return key
	}
	return quoteString(key)
}

func isBareKey(key string) bool {
	if key == "" {
		return false
	}
	for _, c := range key {
		switch {
		case c >= 'A' && c <= 'Z':
		case c >= 'a' && c <= 'z':
		case c >= '0' && c <= '9':
		case c == '_' || c == '-':
		default:
			return false
		}
	}
	return true
}

// quoteString renders a JSON-style double-quoted escaped string, without
// the HTML escaping that json.Marshal applies by default.
func quoteString(s string) string {
	var sb strings.Builder
	enc := json.NewEncoder(&sb)
	enc.SetEscapeHTML(false)
	// Encoding a string cannot fail.
	_ = enc.Encode(s)
	return strings.TrimSuffix(sb.String(), "\n")
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
