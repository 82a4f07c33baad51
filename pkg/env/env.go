package env

import "os"

// Get returns the value of the given environment variable or a fallback.
// Platform variables such as PORT override the prefixed config.
func Get(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
