package config

import (
	"fmt"
	"strconv"
	"strings"
)

// AdminListSeparator splits multi-account admin variables, e.g. "a@x.com||b@x.com".
const AdminListSeparator = "||"

// ParsePort parses a TCP port, rejecting anything outside 1-65535.
func ParsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("invalid PORT %q: %w", value, err)
	}
	if port < 1 || port > 65535 {
		return 0, fmt.Errorf("invalid PORT %d: must be between 1-65535", port)
	}
	return port, nil
}

// SplitList splits value on sep, trimming entries and dropping empty ones.
func SplitList(value, sep string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, sep)
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
