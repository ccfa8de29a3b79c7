package main

import (
	"os"

	"github.com/ZanzyTHEbar/phonikud-go/internal/cli"
	"github.com/ZanzyTHEbar/phonikud-go/phonikud"

	"github.com/spf13/cobra"
)

var diacritizeCmd = &cobra.Command{
	Use:   "diacritize [text...]",
	Short: "Diacritize text from arguments or stdin",
	Long: `Each argument is diacritized and printed on its own line. With no arguments,
stdin is read line by line. Existing nikud in the input is removed first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		flags := cmd.Flags()
		if flags.Changed("model") {
			cfg.Model.Path, _ = flags.GetString("model")
		}
		if flags.Changed("tokenizer") {
			cfg.Model.TokenizerPath, _ = flags.GetString("tokenizer")
		}
		if flags.Changed("tokenizer-backend") {
			cfg.Tokenizer.Backend, _ = flags.GetString("tokenizer-backend")
		}
		if flags.Changed("matres") {
			cfg.Diacritics.MatresMark, _ = flags.GetString("matres")
		}
		if flags.Changed("jobs") {
			cfg.CLI.Jobs, _ = flags.GetInt("jobs")
		}

		return cli.Diacritize(cmd.Context(), cli.RunOptions{
			Config: cfg,
			Inputs: args,
			Stdin:  os.Stdin,
			Stdout: cmd.OutOrStdout(),
			Logger: phonikud.GetLogger(),
		})
	},
}

func init() {
	diacritizeCmd.Flags().String("model", phonikud.DefaultModelPath, "Path to the ONNX model")
	diacritizeCmd.Flags().String("tokenizer", phonikud.DefaultTokenizerPath, "Path to tokenizer.json or vocab.txt")
	diacritizeCmd.Flags().String("tokenizer-backend", "sugarme", "Tokenizer implementation: sugarme or hf")
	diacritizeCmd.Flags().String("matres", "", "Mark to emit on matres lectionis (e.g. U+05AF); empty drops them")
	diacritizeCmd.Flags().Int("jobs", 1, "Number of engines to run in parallel")
	rootCmd.AddCommand(diacritizeCmd)
}
