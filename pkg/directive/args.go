package directive

import "strings"

// Arguments is the parsed argument set handed to a directive by the host
// pipeline after its grammar has run. Keys are argument names; values are
// the raw argument text.
type Arguments map[string]string

// Contains reports whether the argument was supplied.
func (a Arguments) Contains(name string) bool {
	_, ok := a[name]
	return ok
}

// Value returns the raw value of the argument, or "" when absent.
func (a Arguments) Value(name string) string {
	return a[name]
}

// List returns the argument split on commas, with surrounding whitespace
// trimmed and empty entries dropped. An absent argument yields nil.
func (a Arguments) List(name string) []string {
	raw, ok := a[name]
	if !ok {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		out = append(out, part)
	}
	return out
}
