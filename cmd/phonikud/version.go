package main

import (
	"fmt"
	"strings"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of phonikud",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "phonikud version %s\n", strings.TrimSpace(phonikud.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
