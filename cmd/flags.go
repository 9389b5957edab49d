package cmd

import (
	"fmt"
	"os"

	ncbitax "github.com/gnames/ncbitax/pkg"
	"github.com/spf13/cobra"
)

func versionFlag(cmd *cobra.Command) {
	hasVersionFlag, _ := cmd.Flags().GetBool("version")
	if hasVersionFlag {
		fmt.Printf("\nversion: %s\nbuild: %s\n\n", ncbitax.Version, ncbitax.Build)
		os.Exit(0)
	}
}
