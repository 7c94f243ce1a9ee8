package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/models"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the repository status",
	Long:  `Show the current branch, staged files and other pending changes of the repository.`,
	Args:  cobra.NoArgs,
	Run:   runStatus,
}

func runStatus(cmd *cobra.Command, args []string) {
	cwd, err := os.Getwd()
	if err != nil {
		exitError("failed to get working directory: %v", err)
	}

	snap, err := git.NewRepository(cwd).Snapshot(context.Background())
	if errors.Is(err, git.ErrNotRepository) {
		exitError("not in a git repository")
	}
	if err != nil {
		exitError("failed to read repository status: %v", err)
	}

	printSnapshot(os.Stdout, snap)
}

// printSnapshot prints a repository snapshot with color coding
func printSnapshot(w io.Writer, snap *models.RepoSnapshot) {
	green := color.New(color.FgGreen)
	red := color.New(color.FgRed)
	cyan := color.New(color.FgCyan)

	if snap.IsDetached {
		fmt.Fprintf(w, "HEAD detached at %s\n", shortID(snap.CurrentBranch))
	} else {
		fmt.Fprintf(w, "On branch %s\n", snap.CurrentBranch)
	}

	switch {
	case snap.Ahead > 0 && snap.Behind > 0:
		fmt.Fprintf(w, "Your branch has diverged: %d ahead, %d behind\n", snap.Ahead, snap.Behind)
	case snap.Ahead > 0:
		fmt.Fprintf(w, "Your branch is ahead of upstream by %d commit(s)\n", snap.Ahead)
	case snap.Behind > 0:
		fmt.Fprintf(w, "Your branch is behind upstream by %d commit(s)\n", snap.Behind)
	}

	if snap.IsClean() {
		fmt.Fprintln(w, "\nNothing to commit, working tree clean")
		return
	}

	if snap.HasStaged() {
		fmt.Fprintln(w, "\nChanges to be committed:")
		cyan.Fprintln(w, "  (run \"commity\" to generate a commit message)")
		fmt.Fprintln(w)
		for _, f := range snap.StagedFiles {
			green.Fprintf(w, "        %s\n", f)
		}
	}

	if len(snap.ModifiedFiles) > 0 {
		fmt.Fprintln(w, "\nChanges not staged for commit:")
		cyan.Fprintln(w, "  (use \"git add <files>\" to stage)")
		fmt.Fprintln(w)
		for _, f := range snap.ModifiedFiles {
			red.Fprintf(w, "        %s\n", f)
		}
	}

	if len(snap.UntrackedFiles) > 0 {
		fmt.Fprintf(w, "\n%d untracked file(s)\n", len(snap.UntrackedFiles))
	}

	if !snap.HasStaged() {
		fmt.Fprintln(w, "\nUse \"git add <files>\" to stage changes first.")
	}
}
