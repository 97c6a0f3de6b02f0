// Package kvflag implements a repeatable key=value command-line flag.
package kvflag

import "strings"

// List collects every -set key=value occurrence. It satisfies flag.Value.
type List []string

func (l *List) String() string {
	if l == nil {
		return ""
	}
	return strings.Join(*l, ",")
}

// Set appends one raw occurrence.
func (l *List) Set(value string) error {
	*l = append(*l, value)
	return nil
}

// Parse splits each entry on its first '=' and trims both sides. Entries
// without '=' or with an empty key are returned in malformed, in order.
// Later entries override earlier ones.
func (l List) Parse() (values map[string]string, malformed []string) {
	values = make(map[string]string, len(l))
	for _, kv := range l {
		key, value, ok := strings.Cut(kv, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			malformed = append(malformed, kv)
			continue
		}
		values[key] = strings.TrimSpace(value)
	}
	return values, malformed
}
