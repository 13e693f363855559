// Package delivery defines the contract every transport entry point
// (HTTP, workers) satisfies so main can start them uniformly.
package delivery

import "context"

// Delivery is a long-running transport entry point.
type Delivery interface {
	Serve(ctx context.Context) error
}
