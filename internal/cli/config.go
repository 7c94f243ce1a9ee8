package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/kilupskalvis/commity/internal/config"
	"github.com/kilupskalvis/commity/internal/prompt"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or manage configuration",
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings and where they come from",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		c := initContext()
		printSettings(os.Stdout, c.Resolver.Resolve(), c.Config, c.HostSettings.Path())
	},
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a default config file",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.DefaultPath()
		if err != nil {
			exitError("%v", err)
		}
		if _, err := config.Initialize(path); err != nil {
			exitError("%v", err)
		}
		color.New(color.FgGreen).Printf("Created %s\n", path)
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the config file location",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		path, err := config.DefaultPath()
		if err != nil {
			exitError("%v", err)
		}
		fmt.Println(path)
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathCmd)
}

// printSettings prints the resolved settings with the source of each value
func printSettings(w io.Writer, eff config.EffectiveConfig, cfg *config.Config, hostPath string) {
	gray := color.New(color.FgHiBlack)
	red := color.New(color.FgRed)

	fmt.Fprintln(w, "Settings:")
	if eff.HasCredential() {
		fmt.Fprintf(w, "  API key:  %s ", eff.MaskedCredential())
		gray.Fprintf(w, "(%s)\n", prompt.SourceDescription(eff.CredentialSource))
	} else {
		fmt.Fprint(w, "  API key:  ")
		red.Fprintln(w, "not configured")
	}
	fmt.Fprintf(w, "  Model:    %s ", eff.Model)
	gray.Fprintf(w, "(%s)\n", prompt.SourceDescription(eff.ModelSource))
	fmt.Fprintf(w, "  Emojis:   %t ", eff.EmojisEnabled)
	gray.Fprintf(w, "(%s)\n", prompt.SourceDescription(eff.EmojisSource))

	fmt.Fprintln(w, "\nGeneration:")
	baseURL := cfg.Generation.BaseURL
	if baseURL == "" {
		baseURL = "(OpenAI default)"
	}
	fmt.Fprintf(w, "  Base URL:       %s\n", baseURL)
	fmt.Fprintf(w, "  Temperature:    %.2f\n", cfg.Generation.Temperature)
	fmt.Fprintf(w, "  Max diff bytes: %d\n", cfg.Generation.MaxDiffBytes)
	fmt.Fprintf(w, "  Timeout:        %ds\n", cfg.Generation.TimeoutSeconds)
	fmt.Fprintf(w, "  Max retries:    %d\n", cfg.Generation.MaxRetries)

	fmt.Fprintln(w, "\nFiles:")
	configPath := cfg.Path()
	if configPath == "" {
		configPath = "(none)"
	}
	fmt.Fprintf(w, "  Config:          %s\n", configPath)
	if hostPath == "" {
		hostPath = "(unknown)"
	}
	fmt.Fprintf(w, "  VS Code settings: %s\n", hostPath)
}
