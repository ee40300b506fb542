package engine

import (
	"fmt"
	"strings"
)

// ParseOptions normalizes the heterogeneous option encodings accepted in
// object configs into one combined bitmask understood by the backend:
//
//   - an integer is returned unchanged (already a combined mask),
//   - a string is split on "|" into symbolic names,
//   - a list of symbolic names is resolved through ns and OR-ed,
//   - a list of integers is OR-ed.
//
// Mixed lists of names and integers are not a supported input and fail, as
// does any other shape, wrapping ErrInvalidOptions.
func ParseOptions(value any, ns FlagNamespace) (int, error) {
	switch v := value.(type) {
	case nil:
		return 0, nil
	case int:
		return v, nil
	case int64:
		return int(v), nil
	case string:
		return resolveNames(strings.Split(v, "|"), ns)
	case []string:
		return resolveNames(v, ns)
	case []int:
		return combine(v), nil
	case []any:
		return parseAnyList(v, ns)
	default:
		return 0, fmt.Errorf("%w: unsupported type %T", ErrInvalidOptions, value)
	}
}

func parseAnyList(list []any, ns FlagNamespace) (int, error) {
	names := make([]string, 0, len(list))
	values := make([]int, 0, len(list))
	for _, el := range list {
		switch e := el.(type) {
		case string:
			names = append(names, e)
		case int:
			values = append(values, e)
		case int64:
			values = append(values, int(e))
		default:
			return 0, fmt.Errorf("%w: unsupported element type %T", ErrInvalidOptions, el)
		}
	}
	switch {
	case len(names) > 0 && len(values) > 0:
		return 0, fmt.Errorf("%w: mixed list of names and integers", ErrInvalidOptions)
	case len(names) > 0:
		return resolveNames(names, ns)
	default:
		return combine(values), nil
	}
}

func resolveNames(names []string, ns FlagNamespace) (int, error) {
	values := make([]int, 0, len(names))
	for _, name := range names {
		name = strings.TrimSpace(name)
		if ns == nil {
			return 0, fmt.Errorf("%w: no flag namespace to resolve %q", ErrInvalidOptions, name)
		}
		v, ok := ns.FlagValue(name)
		if !ok {
			return 0, fmt.Errorf("%w: unknown flag %q", ErrInvalidOptions, name)
		}
		values = append(values, v)
	}
	return combine(values), nil
}

func combine(values []int) int {
	out := 0
	for _, v := range values {
		out |= v
	}
	return out
}
