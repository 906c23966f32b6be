// Package remote defines the host-execution surface available to script
// plugins. The real SSH transport lives outside this subsystem; anything
// satisfying Client can be handed to an invocation.
package remote

import (
	"context"

	"github.com/mgaudreault/deckhand/internal/stdio"
)

// Client executes operations on one target host. Every call receives the
// IO handle of the invocation it runs under.
type Client interface {
	// ExecuteCommand runs a shell command on the target and returns its
	// combined output.
	ExecuteCommand(ctx context.Context, command string, io *stdio.Scoped) (string, error)
	// PutFile copies a local file to the target path.
	PutFile(ctx context.Context, localPath, targetPath string, io *stdio.Scoped) error
}

// ScopedClient binds a Client to the IO handle of a single script
// invocation, so scripts never pass IO explicitly. It enumerates the exact
// operations scripts may perform.
type ScopedClient struct {
	client Client
	io     *stdio.Scoped
}

// NewScopedClient wraps client with the invocation IO bound in.
func NewScopedClient(client Client, io *stdio.Scoped) *ScopedClient {
	return &ScopedClient{client: client, io: io}
}

// ExecuteCommand runs a shell command on the target host.
func (c *ScopedClient) ExecuteCommand(ctx context.Context, command string) (string, error) {
	return c.client.ExecuteCommand(ctx, command, c.io)
}

// PutFile copies a local file to the target host.
func (c *ScopedClient) PutFile(ctx context.Context, localPath, targetPath string) error {
	return c.client.PutFile(ctx, localPath, targetPath, c.io)
}
