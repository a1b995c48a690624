package clip

import (
	"fmt"
	"path/filepath"
	"strconv"
	"strings"
)

const defaultDelim = ","

// coerce converts a raw string token into a typed value. It is a pure
// function: same inputs, same outputs, no I/O. Existence checks for
// file/directory kinds are a validator concern, not done here.
func coerce(raw string, kind Kind, delim string, elem Kind) (any, error) {
	switch kind {
	case KindAuto:
		return coerceAuto(raw), nil
	case KindInt:
		n, err := strconv.ParseInt(strings.TrimSpace(raw), 0, 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as int", raw)
		}
		return int(n), nil
	case KindFloat:
		f, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return nil, fmt.Errorf("cannot parse %q as float", raw)
		}
		return f, nil
	case KindBool:
		b, ok := parseBoolWord(raw)
		if !ok {
			return nil, fmt.Errorf("cannot parse %q as bool", raw)
		}
		return b, nil
	case KindString:
		return raw, nil
	case KindPath, KindFile, KindDirectory:
		if raw == "" {
			return "", nil
		}
		return filepath.Clean(raw), nil
	case KindList:
		return coerceList(raw, delim, elem)
	}
	return nil, fmt.Errorf("unsupported kind %v", kind)
}

// coerceAuto tries int, float, bool and falls back to the raw string.
func coerceAuto(raw string) any {
	trimmed := strings.TrimSpace(raw)
	if n, err := strconv.ParseInt(trimmed, 0, 64); err == nil {
		return int(n)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return f
	}
	switch strings.ToLower(trimmed) {
	case "true", "yes":
		return true
	case "false", "no":
		return false
	}
	return raw
}

// parseBoolWord accepts true/false/1/0/yes/no, case-insensitively.
func parseBoolWord(raw string) (value, ok bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "true", "1", "yes":
		return true, true
	case "false", "0", "no":
		return false, true
	}
	return false, false
}

// coerceList splits on delim. Elements stay strings unless elem asks for
// a coercion; an empty raw gives an empty slice, not a one-element slice
// holding "".
func coerceList(raw, delim string, elem Kind) (any, error) {
	if delim == "" {
		delim = defaultDelim
	}
	if raw == "" {
		if elem == KindAuto {
			return []string{}, nil
		}
		return []any{}, nil
	}
	parts := strings.Split(raw, delim)
	if elem == KindAuto {
		return parts, nil
	}
	out := make([]any, len(parts))
	for i, part := range parts {
		v, err := coerce(part, elem, defaultDelim, KindAuto)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out[i] = v
	}
	return out, nil
}

// inferKind guesses a kind from common argument-name patterns. It keeps
// KindAuto when no pattern matches.
func inferKind(name string) Kind {
	lower := strings.ToLower(name)
	contains := func(words ...string) bool {
		for _, w := range words {
			if strings.Contains(lower, w) {
				return true
			}
		}
		return false
	}
	switch {
	case contains("count", "number", "size", "port", "timeout"):
		return KindInt
	case contains("rate", "factor", "ratio"):
		return KindFloat
	case contains("enable", "disable", "verbose", "quiet", "debug"):
		return KindBool
	case contains("file", "path", "dir"):
		return KindPath
	}
	return KindAuto
}

// kindOfDefault fixes a KindAuto spec from its typed default value.
func kindOfDefault(def any) Kind {
	switch def.(type) {
	case int:
		return KindInt
	case float64:
		return KindFloat
	case bool:
		return KindBool
	case string:
		return KindString
	case []string, []any:
		return KindList
	}
	return KindAuto
}

// defaultMatchesKind checks a static default against the declared kind.
// Defaults skip coercion at resolve time, so a mismatch is a programmer
// error caught at declaration.
func defaultMatchesKind(def any, kind Kind) bool {
	switch kind {
	case KindAuto:
		return true
	case KindInt:
		_, ok := def.(int)
		return ok
	case KindFloat:
		_, ok := def.(float64)
		return ok
	case KindBool:
		_, ok := def.(bool)
		return ok
	case KindString, KindPath, KindFile, KindDirectory:
		_, ok := def.(string)
		return ok
	case KindList:
		switch def.(type) {
		case []string, []any:
			return true
		}
	}
	return false
}

// configRaw formats a pre-typed config value back into its canonical
// string form so the config tier runs through the same coerce and
// validate path as command-line and environment values.
func configRaw(v any, delim string) string {
	if delim == "" {
		delim = defaultDelim
	}
	switch ty := v.(type) {
	case string:
		return ty
	case bool:
		return strconv.FormatBool(ty)
	case int:
		return strconv.Itoa(ty)
	case int64:
		return strconv.FormatInt(ty, 10)
	case float64:
		return strconv.FormatFloat(ty, 'g', -1, 64)
	case []string:
		return strings.Join(ty, delim)
	case []any:
		parts := make([]string, len(ty))
		for i, e := range ty {
			parts[i] = configRaw(e, delim)
		}
		return strings.Join(parts, delim)
	}
	return fmt.Sprint(v)
}
