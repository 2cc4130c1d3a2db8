// Package kernel defines the interface boundary to the Jupyter kernel
// side of the application. nbterm itself only reads from these types; the
// transport implementation is supplied by the embedding environment.
package kernel

import "context"

// Comm is a live communication channel backing an interactive widget,
// identified by the opaque model id embedded in widget-view output JSON.
type Comm interface {
	ModelID() string
	// CreateView renders the widget's current state for the given cell.
	CreateView(cellID string) string
}

// Client is the operations surface a notebook tab may call on an attached
// kernel. Every method may block; callers pass a context.
type Client interface {
	Execute(ctx context.Context, source string) error
	Interrupt(ctx context.Context) error
	Restart(ctx context.Context) error
}

// Registry tracks live comms by model id.
type Registry struct {
	comms map[string]Comm
}

// NewRegistry returns an empty comm registry.
func NewRegistry() *Registry {
	return &Registry{comms: make(map[string]Comm)}
}

// Register adds or replaces a comm.
func (r *Registry) Register(c Comm) {
	r.comms[c.ModelID()] = c
}

// Unregister removes a comm by model id.
func (r *Registry) Unregister(modelID string) {
	delete(r.comms, modelID)
}

// Lookup returns the comm for a model id, if currently registered.
func (r *Registry) Lookup(modelID string) (Comm, bool) {
	c, ok := r.comms[modelID]
	return c, ok
}
