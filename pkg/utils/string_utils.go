package utils

import "strings"

// NewNullString is a helper for string pointers, returning nil if string is empty.
// Optional order fields are stored as NULL rather than "".
func NewNullString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

// StringValue dereferences s, treating nil as "".
func StringValue(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// IsEmpty checks if a string is empty after trimming whitespace.
func IsEmpty(s string) bool {
	return strings.TrimSpace(s) == ""
}
