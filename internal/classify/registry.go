// Package classify decides which hand a flight stick belongs to from its
// raw input report.
package classify

import (
	"log"

	"hosas/internal/hidraw"
	"hosas/internal/side"
)

var (
	// Debug enables debug logging within the classify package.
	Debug bool
)

// Handler classifies one report for the identified stick, mutating the
// store when the decoded side differs from the current assignment.
type Handler func(st *side.Store, id string, rep hidraw.Report)

// Registry routes a product name to its model-specific handler. The
// dispatcher is shared across all connected HID devices, so most product
// names are expected to miss.
type Registry struct {
	handlers map[string]Handler
}

// NewRegistry creates an empty registry. Each supported model registers
// itself explicitly at startup; there is no ambient discovery.
func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]Handler)}
}

// Register binds a handler to an exact, case-sensitive product name.
// A duplicate registration is rejected; the earlier one wins.
func (r *Registry) Register(product string, h Handler) {
	if _, exists := r.handlers[product]; exists {
		log.Default().Printf("classify: duplicate handler for %q ignored\n", product)
		return
	}
	r.handlers[product] = h
}

// Supported reports whether a handler is registered for the product name.
func (r *Registry) Supported(product string) bool {
	_, ok := r.handlers[product]
	return ok
}

// Dispatch routes one report to the product's handler. An unrecognized
// product is a no-op, not an error: the device is simply not a supported
// stick.
func (r *Registry) Dispatch(st *side.Store, product, id string, rep hidraw.Report) {
	h, ok := r.handlers[product]
	if !ok {
		return
	}
	h(st, id, rep)
}
