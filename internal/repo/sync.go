// Package repo keeps the local plugin repository in sync with its upstream
// git remote. It backs the `deckhand update` command that resolver fallback
// warnings point operators at.
package repo

import (
	"context"
	"errors"
	"fmt"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/mgaudreault/deckhand/internal/logger"
)

// Options describes the upstream plugin repository.
type Options struct {
	URL    string
	Branch string
	Depth  int
}

// Sync clones the plugin repository into dest on first use and fast-forwards
// an existing checkout afterwards. An already up-to-date checkout is not an
// error.
func Sync(ctx context.Context, dest string, opts Options, log *logger.Logger) error {
	if opts.URL == "" {
		return fmt.Errorf("plugin repository URL is empty")
	}
	if log == nil {
		log = logger.Discard()
	}

	existing, err := git.PlainOpen(dest)
	if errors.Is(err, git.ErrRepositoryNotExists) {
		return clone(ctx, dest, opts, log)
	}
	if err != nil {
		return fmt.Errorf("open plugin repository: %w", err)
	}

	return pull(ctx, existing, opts, log)
}

func clone(ctx context.Context, dest string, opts Options, log *logger.Logger) error {
	log.WithFields(map[string]any{"url": opts.URL, "dest": dest}).Info("cloning plugin repository")

	cloneOpts := &git.CloneOptions{URL: opts.URL}
	if opts.Depth > 0 {
		cloneOpts.Depth = opts.Depth
	}
	if opts.Branch != "" {
		cloneOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		cloneOpts.SingleBranch = true
	}

	if _, err := git.PlainCloneContext(ctx, dest, false, cloneOpts); err != nil {
		return fmt.Errorf("clone plugin repository: %w", err)
	}
	return nil
}

func pull(ctx context.Context, repository *git.Repository, opts Options, log *logger.Logger) error {
	if remote, err := repository.Remote(git.DefaultRemoteName); err == nil {
		urls := remote.Config().URLs
		if len(urls) > 0 && urls[0] != opts.URL {
			log.Warnf("plugin repository tracks %s, not the configured %s", urls[0], opts.URL)
		}
	}

	worktree, err := repository.Worktree()
	if err != nil {
		return fmt.Errorf("open plugin repository worktree: %w", err)
	}

	pullOpts := &git.PullOptions{RemoteName: git.DefaultRemoteName}
	if opts.Branch != "" {
		pullOpts.ReferenceName = plumbing.NewBranchReferenceName(opts.Branch)
		pullOpts.SingleBranch = true
	}

	err = worktree.PullContext(ctx, pullOpts)
	if errors.Is(err, git.NoErrAlreadyUpToDate) {
		log.Debug("plugin repository already up to date")
		return nil
	}
	if err != nil {
		return fmt.Errorf("update plugin repository: %w", err)
	}

	log.Info("plugin repository updated")
	return nil
}
