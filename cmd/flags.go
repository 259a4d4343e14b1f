package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	app "github.com/Fr4nzz/ithomiini-maps/pkg/ithomaps"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", app.Version, app.Build)
		os.Exit(0)
	}
}
