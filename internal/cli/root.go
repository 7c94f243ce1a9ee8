// Package cli implements the command-line interface for commity.
package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/kilupskalvis/commity/internal/config"
	"github.com/spf13/cobra"
)

// cmdContext holds common resources for CLI commands
type cmdContext struct {
	Config       *config.Config
	Logger       *slog.Logger
	HostSettings *config.HostSettingsSource
	Resolver     *config.Resolver
	Dir          string
}

// initContext loads .env and the tool config, then builds the logger and the
// settings resolver (environment, editor settings, keyring)
func initContext() *cmdContext {
	cwd, err := os.Getwd()
	if err != nil {
		exitError("failed to get working directory: %v", err)
	}

	if err := config.LoadDotEnv(cwd); err != nil {
		exitError("%v", err)
	}

	cfg := config.Default()
	if path, err := config.DefaultPath(); err == nil {
		cfg, err = config.Load(path)
		if err != nil {
			exitError("%v", err)
		}
	}

	logger := newLogger(
		config.EnvOrDefault(config.EnvLogLevel, cfg.Log.Level),
		config.EnvOrDefault(config.EnvLogFormat, cfg.Log.Format),
		os.Stderr,
	)

	host := config.NewHostSettingsSource(config.DefaultHostSettingsPath(), logger)
	resolver := config.NewResolver(
		config.NewEnvSource(nil),
		host,
		config.NewKeyringSource(logger),
	)

	return &cmdContext{
		Config:       cfg,
		Logger:       logger,
		HostSettings: host,
		Resolver:     resolver,
		Dir:          cwd,
	}
}

var rootCmd = &cobra.Command{
	Use:   "commity",
	Short: "AI-generated git commit messages",
	Long: `Commity reads your staged changes, asks an OpenAI model for a commit
message and lets you accept, edit or cancel it before committing.

The API key is taken from OPENAI_API_KEY (environment or .env), the
commity block of your VS Code settings, or the system keyring
(see "commity auth set"), in that order.`,
	Args: cobra.NoArgs,
	Run:  runCommit,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(editorCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(authCmd)
}

// exitError prints an error and exits
func exitError(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
	os.Exit(1)
}

// shortID returns first 8 characters of an ID
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
