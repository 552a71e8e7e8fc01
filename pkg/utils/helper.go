package utils

import (
	"strconv"
	"strings"
)

// DateLayout is the wire format for release dates and birthdays.
const DateLayout = "2006-01-02"

// ParseID parses a positive entity id from a path or query value.
func ParseID(value, name string) (int64, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil || id < 1 {
		return 0, BadRequest("invalid %s: %q", name, value)
	}
	return id, nil
}

// ParseOptionalInt returns nil for an empty value.
func ParseOptionalInt(value, name string) (*int64, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return nil, BadRequest("invalid %s: %q", name, value)
	}
	return &n, nil
}
