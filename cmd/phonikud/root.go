package main

import (
	"fmt"
	"os"

	"github.com/ZanzyTHEbar/phonikud-go/phonikud"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud/config"

	"github.com/spf13/cobra"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "phonikud",
	Short: "Add nikud to Hebrew text",
	Long:  `phonikud adds vowel points, shin/sin dots, stress, vocal shva and prefix marks to unpointed Hebrew text using a pretrained ONNX model.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		path, _ := cmd.Flags().GetString("config")
		loaded, err := config.LoadConfig(path)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("log-level") {
			loaded.Log.Level, _ = cmd.Flags().GetString("log-level")
		}
		phonikud.SetLogLevel(loaded.Log.Level)
		cfg = loaded
		return nil
	},
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Config file (default searches ./config.yaml and "+phonikud.DefaultConfigPath+")")
	rootCmd.PersistentFlags().String("log-level", "info", "Log level: debug, info, warn, error")
}
