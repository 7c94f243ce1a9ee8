package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/editor"
	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/llm"
	"github.com/kilupskalvis/commity/internal/models"
	"github.com/kilupskalvis/commity/internal/prompt"
	"github.com/spf13/cobra"
)

func runCommit(cmd *cobra.Command, args []string) {
	c := initContext()

	color.New(color.FgBlue).Print("🤖 Commity - AI Commit Tool\n\n")

	term := prompt.NewTerminal()
	runner := &core.Runner{
		Settings:  c.Resolver,
		Repo:      git.NewRepository(c.Dir),
		Generator: llm.NewGenerator(c.Config.Generation, c.Logger),
		Prompter:  term,
		Reporter:  term,
		Logger:    c.Logger,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	res, err := runner.Run(ctx)
	if err != nil {
		stop()
		printFailure(os.Stdout, os.Stderr, err)
		os.Exit(1)
	}
	printOutcome(os.Stdout, res)
}

// printOutcome prints the final line(s) of a successful run
func printOutcome(w io.Writer, res *models.RunResult) {
	green := color.New(color.FgGreen)
	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	switch res.Status {
	case models.RunCommitted:
		if res.Edited {
			green.Fprintln(w, "✅ Committed with your custom message!")
		} else {
			green.Fprintln(w, "✅ Committed successfully!")
		}
		gray.Fprintf(w, "📝 Commit hash: %s\n", shortID(res.Commit.Hash))

	case models.RunNothingStaged:
		yellow.Fprintln(w, "⚠️  No staged changes found.")
		gray.Fprintln(w, "Use \"git add <files>\" to stage changes first.")
		fmt.Fprintln(w)

	case models.RunCancelled:
		if res.Decision == models.DecisionEdit {
			yellow.Fprintln(w, "⚠️  Commit cancelled - no message provided.")
		} else {
			yellow.Fprintln(w, "⚠️  Commit cancelled.")
		}
	}
}

// printFailure prints a failed run. A missing API key gets setup instructions on out;
// everything else a single error line on errOut.
func printFailure(out, errOut io.Writer, err error) {
	red := color.New(color.FgRed)

	if !errors.Is(err, core.ErrConfigurationMissing) {
		red.Fprintf(errOut, "❌ Error: %v\n", err)
		return
	}

	yellow := color.New(color.FgYellow)
	gray := color.New(color.FgHiBlack)

	red.Fprintln(out, "❌ OpenAI API key not found.")
	yellow.Fprintln(out, "Please configure your API key in one of these ways:")
	gray.Fprintln(out, "")
	gray.Fprintln(out, "1. VS Code Extension (Recommended):")
	gray.Fprintln(out, "   - Install the Commity VS Code extension")
	gray.Fprintln(out, "   - Go to Settings → Commity → OpenAI API Key")
	gray.Fprintln(out, "   - Enter your API key")
	gray.Fprintln(out, "")
	gray.Fprintln(out, "2. Environment Variable:")
	gray.Fprintln(out, "   - Set OPENAI_API_KEY in your .env file")
	gray.Fprintln(out, "")
	gray.Fprintln(out, "3. System keyring:")
	gray.Fprintln(out, "   - Run \"commity auth set\"")
	gray.Fprintln(out, "")
	gray.Fprintf(out, "Get your API key from: %s\n\n", editor.APIKeysURL)
}
