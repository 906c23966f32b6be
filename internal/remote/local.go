package remote

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/mgaudreault/deckhand/internal/stdio"
)

// LocalClient runs commands on the deploying machine itself. It backs
// single-node setups and lets `deckhand run` work without any transport
// configured.
type LocalClient struct {
	// Dir is the working directory for executed commands; empty means the
	// process working directory.
	Dir string
}

var _ Client = (*LocalClient)(nil)

// ExecuteCommand runs command through the local shell and returns its
// combined output.
func (c *LocalClient) ExecuteCommand(ctx context.Context, command string, sio *stdio.Scoped) (string, error) {
	sio.Verbose(fmt.Sprintf("local exec: %s", command))

	cmd := exec.CommandContext(ctx, "/bin/sh", "-c", command)
	cmd.Dir = c.Dir
	out, err := cmd.CombinedOutput()
	if err != nil {
		return string(out), fmt.Errorf("local exec %q: %w", command, err)
	}
	return string(out), nil
}

// PutFile copies localPath to targetPath on the local filesystem.
func (c *LocalClient) PutFile(ctx context.Context, localPath, targetPath string, sio *stdio.Scoped) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sio.Verbose(fmt.Sprintf("local copy: %s -> %s", localPath, targetPath))

	src, err := os.Open(localPath)
	if err != nil {
		return fmt.Errorf("put file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(targetPath), 0o755); err != nil {
		return fmt.Errorf("put file: %w", err)
	}

	dst, err := os.Create(targetPath)
	if err != nil {
		return fmt.Errorf("put file: %w", err)
	}

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("put file: %w", err)
	}
	return dst.Close()
}
