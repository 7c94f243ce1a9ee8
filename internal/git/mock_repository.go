package git

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/kilupskalvis/commity/internal/models"
)

// MockRepository is a mock implementation of RepositoryInterface for testing.
type MockRepository struct {
	// Diff is returned by StagedDiff; a non-empty trimmed diff also counts as staged
	Diff string
	// Snap is returned by Snapshot
	Snap *models.RepoSnapshot
	// Err can be set to make every method return an error
	Err error
	// DiffErr, CommitErr and StatusErr override Err for a single operation
	DiffErr   error
	CommitErr error
	StatusErr error
	// UnstageAfterDiff empties the index right after StagedDiff is served,
	// simulating changes unstaged between reading and committing
	UnstageAfterDiff bool

	// Commits records every message passed to Commit
	Commits []string
	// DiffCalls counts StagedDiff invocations
	DiffCalls int

	staged *bool
}

// NewMockRepository creates a MockRepository serving diff
func NewMockRepository(diff string) *MockRepository {
	return &MockRepository{
		Diff: diff,
		Snap: &models.RepoSnapshot{CurrentBranch: "main"},
	}
}

// StagedDiff returns the configured diff.
func (m *MockRepository) StagedDiff(ctx context.Context) (string, error) {
	m.DiffCalls++
	if err := m.pick(m.DiffErr); err != nil {
		return "", err
	}
	if m.UnstageAfterDiff {
		unstaged := false
		m.staged = &unstaged
	}
	return m.Diff, nil
}

// HasStagedChanges reports whether the mock index has changes.
func (m *MockRepository) HasStagedChanges(ctx context.Context) (bool, error) {
	if err := m.pick(m.StatusErr); err != nil {
		return false, err
	}
	if m.staged != nil {
		return *m.staged, nil
	}
	return strings.TrimSpace(m.Diff) != "", nil
}

// Commit records the message and returns a hash derived from it.
func (m *MockRepository) Commit(ctx context.Context, message string) (string, error) {
	if err := m.pick(m.CommitErr); err != nil {
		return "", err
	}
	m.Commits = append(m.Commits, message)

	sum := sha1.Sum([]byte(fmt.Sprintf("%d|%s", len(m.Commits), message)))
	empty := false
	m.staged = &empty
	return hex.EncodeToString(sum[:]), nil
}

// Snapshot returns the configured snapshot.
func (m *MockRepository) Snapshot(ctx context.Context) (*models.RepoSnapshot, error) {
	if err := m.pick(m.StatusErr); err != nil {
		return nil, err
	}
	return m.Snap, nil
}

func (m *MockRepository) pick(specific error) error {
	if specific != nil {
		return specific
	}
	return m.Err
}
