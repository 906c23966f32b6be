package plugin

import (
	"github.com/mgaudreault/deckhand/internal/config"
	"github.com/mgaudreault/deckhand/internal/remote"
	"github.com/mgaudreault/deckhand/internal/stdio"
)

// ReturnEnvelope is the structured result of one script invocation: a
// success flag (false until the script reports otherwise), a positional
// payload and a named payload. Payload semantics are a protocol between the
// script and its caller; the core treats them as opaque strings.
type ReturnEnvelope struct {
	success bool
	args    []string
	kwargs  map[string]string
}

// NewReturnEnvelope creates the default (failure) envelope.
func NewReturnEnvelope() *ReturnEnvelope {
	return &ReturnEnvelope{kwargs: make(map[string]string)}
}

// OK reports the authoritative success flag.
func (r *ReturnEnvelope) OK() bool {
	return r != nil && r.success
}

// Args returns the positional payload.
func (r *ReturnEnvelope) Args() []string {
	if r == nil {
		return nil
	}
	return r.args
}

// Kwargs returns the named payload.
func (r *ReturnEnvelope) Kwargs() map[string]string {
	if r == nil {
		return nil
	}
	return r.kwargs
}

// Get looks up one named payload value.
func (r *ReturnEnvelope) Get(key string) (string, bool) {
	if r == nil {
		return "", false
	}
	value, ok := r.kwargs[key]
	return value, ok
}

// ReturnTrue marks the invocation successful, replacing both payloads in the
// same call.
func (r *ReturnEnvelope) ReturnTrue(args []string, kwargs map[string]string) {
	r.set(true, args, kwargs)
}

// ReturnFalse marks the invocation failed, replacing both payloads in the
// same call.
func (r *ReturnEnvelope) ReturnFalse(args []string, kwargs map[string]string) {
	r.set(false, args, kwargs)
}

func (r *ReturnEnvelope) set(success bool, args []string, kwargs map[string]string) {
	r.success = success
	r.args = args
	if kwargs == nil {
		kwargs = make(map[string]string)
	}
	r.kwargs = kwargs
}

// ExecutionContext is the per-invocation bundle handed to a script's entry
// function: the component set, one scoped client per target host, the
// cluster configuration, the invoked command with its options, the scoped IO
// handle and the mutable return envelope. It belongs to exactly one
// invocation and is discarded when that invocation ends.
type ExecutionContext struct {
	Components []string
	Clients    map[string]*remote.ScopedClient
	Cluster    *config.ClusterConfig
	Command    string
	Options    map[string]string
	IO         *stdio.Scoped

	ret *ReturnEnvelope
}

// NewExecutionContext wraps the caller's collaborators for one invocation:
// the host IO handle becomes a scoped handle, and every client gets that
// handle bound into its calls.
func NewExecutionContext(components []string, clients map[string]remote.Client, cluster *config.ClusterConfig, command string, options map[string]string, hostIO any) *ExecutionContext {
	scopedIO := stdio.NewScoped(hostIO)

	scopedClients := make(map[string]*remote.ScopedClient, len(clients))
	for host, client := range clients {
		scopedClients[host] = remote.NewScopedClient(client, scopedIO)
	}

	return &ExecutionContext{
		Components: components,
		Clients:    scopedClients,
		Cluster:    cluster,
		Command:    command,
		Options:    options,
		IO:         scopedIO,
		ret:        NewReturnEnvelope(),
	}
}

// Envelope exposes the invocation's mutable return envelope.
func (c *ExecutionContext) Envelope() *ReturnEnvelope {
	return c.ret
}

// ReturnTrue marks the invocation successful with the given payloads.
func (c *ExecutionContext) ReturnTrue(args []string, kwargs map[string]string) {
	c.ret.ReturnTrue(args, kwargs)
}

// ReturnFalse marks the invocation failed with the given payloads.
func (c *ExecutionContext) ReturnFalse(args []string, kwargs map[string]string) {
	c.ret.ReturnFalse(args, kwargs)
}
