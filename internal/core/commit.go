package core

import (
	"context"
	"fmt"
	"strings"

	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/models"
)

// Commit records the staged changes with message.
// The message must be non-empty after trimming, and the index is checked
// again right before committing since it may have changed since the diff was read.
func Commit(ctx context.Context, repo git.RepositoryInterface, message string) (*models.CommitResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, ErrEmptyMessage
	}

	staged, err := repo.HasStagedChanges(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommit, err)
	}
	if !staged {
		return nil, ErrNothingToCommit
	}

	hash, err := repo.Commit(ctx, message)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrCommit, err)
	}

	return &models.CommitResult{Hash: hash, Message: message}, nil
}
