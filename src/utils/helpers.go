package utils

import (
	"crs/src/config"
	"fmt"
)

// WithSuffix namespaces a queue or topic name by deployment environment so
// staging and production never consume each other's messages.
func WithSuffix(name string) string {
	env := config.API_ENV
	if env == "" {
		return name
	}
	return fmt.Sprintf("%s-%s", name, env)
}
