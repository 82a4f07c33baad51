package instance

import "os"

// ID identifies this API process in logs: the dyno name on Heroku, then the
// container hostname, then "local".
func ID() string {
	for _, key := range []string{"DYNO", "HOSTNAME"} {
		if id := os.Getenv(key); id != "" {
			return id
		}
	}
	return "local"
}
