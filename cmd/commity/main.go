// Command commity suggests a commit message for the staged changes and commits it.
package main

import (
	"os"

	"github.com/kilupskalvis/commity/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
