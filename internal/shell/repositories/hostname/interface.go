// Package hostname stores the display hostname shown in the shell prompt.
package hostname

import "context"

type Repository interface {
	// Get returns the stored hostname, creating the file with the default
	// value when it is missing or blank.
	Get(ctx context.Context) string
}
