// Package delivery defines the interface every transport front-end
// implements. Concrete servers live in the subpackages and are collected
// into an Fx value group by main.
package delivery

import "context"

// Delivery is a transport serving the application until shutdown.
type Delivery interface {
	// Serve blocks until the transport stops or fails.
	Serve(ctx context.Context) error
}
