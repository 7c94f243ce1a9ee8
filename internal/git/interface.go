package git

import (
	"context"
	"errors"

	"github.com/kilupskalvis/commity/internal/models"
)

// ErrNotRepository is returned when the working directory is not inside a git repository
var ErrNotRepository = errors.New("not a git repository")

// RepositoryInterface defines the git operations the commit workflow needs.
// This interface enables mocking for testing the core package.
type RepositoryInterface interface {
	// StagedDiff returns the unified diff of the index against HEAD.
	// An empty or whitespace-only result means nothing is staged.
	StagedDiff(ctx context.Context) (string, error)
	// HasStagedChanges reports whether the index differs from HEAD.
	HasStagedChanges(ctx context.Context) (bool, error)
	// Commit records the staged changes and returns the new commit hash.
	Commit(ctx context.Context, message string) (string, error)
	// Snapshot returns branch and file status information.
	Snapshot(ctx context.Context) (*models.RepoSnapshot, error)
}

// Verify that *Repository implements RepositoryInterface at compile time
var _ RepositoryInterface = (*Repository)(nil)
