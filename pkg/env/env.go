package env

import (
	"os"
	"strings"
)

// Prefix namespaces every variable the service reads.
const Prefix = "PM_"

// Get returns PM_<name>, or fallback when it is unset or blank.
func Get(name, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(Prefix + name)); val != "" {
		return val
	}
	return fallback
}
