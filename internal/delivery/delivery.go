// Package delivery defines the entry-point contract shared by all transport
// adapters (HTTP today, more later).
package delivery

import "context"

// Delivery is a serving transport. Implementations block in Serve until the
// listener fails or the process shuts down.
type Delivery interface {
	Serve(ctx context.Context) error
}
