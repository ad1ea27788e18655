package utils

import (
	"os"
	"strings"
	"time"
)

// Getenv retrieves the value of the environment variable named by the key.
// If the variable is not present or its value is empty, Getenv returns the fallback string.
func Getenv(key, fallback string) string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	return value
}

// GetenvDuration parses the variable as a time.Duration ("5s", "250ms").
// Unparseable values fall back and are logged.
func GetenvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		LogWarn("Invalid duration in environment, using default", map[string]interface{}{"key": key, "value": value, "default": fallback.String()})
		return fallback
	}
	return d
}

// GetenvList splits a comma separated variable, dropping empty entries.
func GetenvList(key string, fallback []string) []string {
	value := os.Getenv(key)
	if len(value) == 0 {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
