package env

import (
	"os"
)

// PodName example: neonflick-api-6868d88fbd-bz8zv
// Falls back to the hostname outside kubernetes.
func PodName() string {
	if name := os.Getenv("PODNAME"); name != "" {
		return name
	}
	name, _ := os.Hostname()
	return name
}
