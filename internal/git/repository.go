// Package git reads staged changes from a git repository and commits them.
// Repository discovery and status use go-git; the staged diff, the staged
// check and the commit itself shell out to the git binary so that the
// user's hooks, signing and identity configuration apply.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strconv"
	"strings"
	"sync"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"

	"github.com/kilupskalvis/commity/internal/models"
)

// Repository is a git working tree located from a starting directory
type Repository struct {
	dir string

	once sync.Once
	repo *gogit.Repository
	root string
	err  error
}

// NewRepository creates a repository handle for dir. The repository is
// located on first use, so a directory outside git only fails when read.
func NewRepository(dir string) *Repository {
	return &Repository{dir: dir}
}

// open locates the repository by walking up from dir
func (r *Repository) open() (*gogit.Repository, string, error) {
	r.once.Do(func() {
		repo, err := gogit.PlainOpenWithOptions(r.dir, &gogit.PlainOpenOptions{
			DetectDotGit:          true,
			EnableDotGitCommonDir: true,
		})
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			r.err = fmt.Errorf("%w (or any parent up to root): %s", ErrNotRepository, r.dir)
			return
		}
		if err != nil {
			r.err = fmt.Errorf("failed to open repository: %w", err)
			return
		}

		wt, err := repo.Worktree()
		if errors.Is(err, gogit.ErrIsBareRepository) {
			r.err = fmt.Errorf("%w: %s is a bare repository", ErrNotRepository, r.dir)
			return
		}
		if err != nil {
			r.err = fmt.Errorf("failed to open worktree: %w", err)
			return
		}

		r.repo = repo
		r.root = wt.Filesystem.Root()
	})
	return r.repo, r.root, r.err
}

// Root returns the top-level directory of the working tree
func (r *Repository) Root() (string, error) {
	_, root, err := r.open()
	return root, err
}

// StagedDiff returns the output of "git diff --cached"
func (r *Repository) StagedDiff(ctx context.Context) (string, error) {
	_, root, err := r.open()
	if err != nil {
		return "", err
	}

	out, err := r.run(ctx, root, "diff", "--cached", "--no-color", "--no-ext-diff")
	if err != nil {
		return "", fmt.Errorf("git diff --cached failed: %w", err)
	}
	return out, nil
}

// HasStagedChanges runs "git diff --cached --quiet"; exit code 1 means changes are staged
func (r *Repository) HasStagedChanges(ctx context.Context) (bool, error) {
	_, root, err := r.open()
	if err != nil {
		return false, err
	}

	cmd := exec.CommandContext(ctx, "git", "diff", "--cached", "--quiet")
	cmd.Dir = root
	err = cmd.Run()
	if err == nil {
		return false, nil
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return true, nil
	}
	return false, fmt.Errorf("failed to check staged changes: %w", err)
}

// Commit runs "git commit" with message and returns the new HEAD hash
func (r *Repository) Commit(ctx context.Context, message string) (string, error) {
	repo, root, err := r.open()
	if err != nil {
		return "", err
	}

	if _, err := r.run(ctx, root, "commit", "--quiet", "-m", message); err != nil {
		return "", fmt.Errorf("git commit failed: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		return "", fmt.Errorf("failed to read HEAD after commit: %w", err)
	}
	return head.Hash().String(), nil
}

// Snapshot returns the current branch, file status lists and upstream divergence
func (r *Repository) Snapshot(ctx context.Context) (*models.RepoSnapshot, error) {
	repo, root, err := r.open()
	if err != nil {
		return nil, err
	}

	snap := &models.RepoSnapshot{
		StagedFiles:    []string{},
		ModifiedFiles:  []string{},
		UntrackedFiles: []string{},
	}

	snap.CurrentBranch, snap.IsDetached, err = currentBranch(repo)
	if err != nil {
		return nil, err
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := wt.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to get status: %w", err)
	}

	for path, fs := range status {
		switch {
		case fs.Worktree == gogit.Untracked:
			snap.UntrackedFiles = append(snap.UntrackedFiles, path)
		default:
			if fs.Staging != gogit.Unmodified {
				snap.StagedFiles = append(snap.StagedFiles, path)
			}
			if fs.Worktree != gogit.Unmodified {
				snap.ModifiedFiles = append(snap.ModifiedFiles, path)
			}
		}
	}
	sort.Strings(snap.StagedFiles)
	sort.Strings(snap.ModifiedFiles)
	sort.Strings(snap.UntrackedFiles)

	snap.Ahead, snap.Behind = r.divergence(ctx, root)
	return snap, nil
}

// currentBranch returns the branch HEAD points to, including unborn branches
func currentBranch(repo *gogit.Repository) (string, bool, error) {
	ref, err := repo.Reference(plumbing.HEAD, false)
	if err != nil {
		return "", false, fmt.Errorf("failed to read HEAD: %w", err)
	}

	if ref.Type() == plumbing.SymbolicReference {
		return ref.Target().Short(), false, nil
	}
	return shortHash(ref.Hash().String()), true, nil
}

// divergence returns ahead/behind counts against the upstream branch.
// A branch without upstream reports 0/0.
func (r *Repository) divergence(ctx context.Context, root string) (int, int) {
	out, err := r.run(ctx, root, "rev-list", "--left-right", "--count", "HEAD...@{upstream}")
	if err != nil {
		return 0, 0
	}
	return parseDivergence(out)
}

func parseDivergence(out string) (int, int) {
	fields := strings.Fields(out)
	if len(fields) != 2 {
		return 0, 0
	}
	ahead, err1 := strconv.Atoi(fields[0])
	behind, err2 := strconv.Atoi(fields[1])
	if err1 != nil || err2 != nil {
		return 0, 0
	}
	return ahead, behind
}

// run executes git in dir and returns stdout. Stderr is folded into the error.
func (r *Repository) run(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = strings.TrimSpace(stdout.String())
		}
		if msg != "" {
			return "", fmt.Errorf("%w: %s", err, msg)
		}
		return "", err
	}
	return stdout.String(), nil
}

// shortHash returns first 8 characters of a hash
func shortHash(hash string) string {
	if len(hash) > 8 {
		return hash[:8]
	}
	return hash
}
