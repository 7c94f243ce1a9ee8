package cli

import (
	"context"
	"os"
	"os/signal"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/core"
	"github.com/kilupskalvis/commity/internal/editor"
	"github.com/kilupskalvis/commity/internal/git"
	"github.com/kilupskalvis/commity/internal/llm"
	"github.com/spf13/cobra"
)

var editorDir string

var editorCmd = &cobra.Command{
	Use:   "editor",
	Short: "Run the workflow for an editor extension",
	Long: `Run the commit workflow on behalf of an editor extension.

The extension writes JSON lines to stdin, starting with an init message that
carries its commity settings, and reads progress, prompts and the final
result as JSON lines from stdout. Only the settings sent by the extension
are used; environment variables and the keyring are ignored.`,
	Args: cobra.NoArgs,
	Run:  runEditor,
}

func init() {
	editorCmd.Flags().StringVar(&editorDir, "dir", "", "Repository directory (default: current directory)")
}

func runEditor(cmd *cobra.Command, args []string) {
	c := initContext()
	dir := c.Dir
	if editorDir != "" {
		dir = editorDir
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	sess := editor.NewSession(os.Stdin, os.Stdout, c.Logger)
	settings, err := sess.ReadInit(ctx)
	if err != nil {
		stop()
		exitError("%v", err)
	}

	runner := &core.Runner{
		Settings:  config.NewResolver(&config.StaticSource{Label: config.SourceHostSettings, Settings: settings}),
		Repo:      git.NewRepository(dir),
		Generator: llm.NewGenerator(c.Config.Generation, c.Logger),
		Prompter:  sess,
		Reporter:  sess,
		Logger:    c.Logger,
	}

	res, runErr := runner.Run(ctx)
	if err := sess.Finish(res, runErr); err != nil {
		c.Logger.Error("failed to send result to editor", "error", err)
	}
	if runErr != nil {
		stop()
		os.Exit(1)
	}
}
