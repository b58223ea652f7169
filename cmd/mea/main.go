// Command mea is the Malaysian Employment Assistant: an interactive
// employment-law chatbot backed by a locally hosted language model,
// with an optional HTTP API for mobile clients.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// --model overrides the interactive model picker.
	modelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "mea",
	Short: "Malaysian Employment Assistant - local LLM employment-law chatbot",
	Long: `mea answers Malaysian employment-law questions by combining the
statutory tables of the Employment Act 1955 (working hours, EPF/SOCSO
rates, living expenses) with a locally hosted language model.

The model runs in a separate llama.cpp-style engine process; mea only
formats prompts for the model family in use and ships them over HTTP.

Run without arguments to start the interactive chat menu.`,
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runChat(cmd, args)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelFlag, "model", "", "model identifier for prompt formatting (skips the picker)")

	rootCmd.AddCommand(chatCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(keysCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
