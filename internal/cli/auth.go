package cli

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
	"github.com/fatih/color"
	"github.com/kilupskalvis/commity/internal/config"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage the API key stored in the system keyring",
}

var authSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Store the OpenAI API key in the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		var key string
		q := &survey.Password{Message: "OpenAI API key:"}
		if err := survey.AskOne(q, &key, survey.WithValidator(survey.Required)); err != nil {
			exitError("%v", err)
		}
		if err := config.StoreCredential(key); err != nil {
			exitError("%v", err)
		}
		color.New(color.FgGreen).Println("API key stored in system keyring")
	},
}

var authClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove the OpenAI API key from the system keyring",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		removed, err := config.ClearCredential()
		if err != nil {
			exitError("%v", err)
		}
		if !removed {
			fmt.Println("No API key stored")
			return
		}
		color.New(color.FgGreen).Println("API key removed from system keyring")
	},
}

func init() {
	authCmd.AddCommand(authSetCmd)
	authCmd.AddCommand(authClearCmd)
}
