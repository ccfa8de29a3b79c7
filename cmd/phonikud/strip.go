package main

import (
	"os"

	"github.com/ZanzyTHEbar/phonikud-go/internal/cli"

	"github.com/spf13/cobra"
)

var stripCmd = &cobra.Command{
	Use:   "strip [text...]",
	Short: "Remove nikud and prefix markers from text",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cli.Strip(args, os.Stdin, cmd.OutOrStdout())
	},
}

func init() {
	rootCmd.AddCommand(stripCmd)
}
