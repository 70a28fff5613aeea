package utils

import (
	"strconv"
	"strings"
)

// ParseInt converts string to a positive int with default value
func ParseInt(value string, defaultValue int) int {
	value = strings.TrimSpace(value)
	if value == "" {
		return defaultValue
	}

	result, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	if result < 1 {
		return defaultValue
	}

	return result
}

// IntPtr returns a pointer to n, used for nullable JSON numbers.
func IntPtr(n int) *int {
	return &n
}
