package main

import (
	"github.com/spf13/cobra"
)

var transformCmd = &cobra.Command{
	Use:   "transform",
	Short: "Read a file, modify it and write the result",
	Long: `Prompts for a source file, a modification (UPPER, LOWER, CAPITALIZE,
REVERSE_LINES) and a destination. An existing destination is only
overwritten after confirmation.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.Transformer().Run(app.Context(cmd.Context()))
	},
}

var inspectCmd = &cobra.Command{
	Use:   "inspect",
	Short: "Validate a filename and report on the file",
	Long: `Prompts for a filename, validates it against ALLOWED_PATTERNS, checks
that it can be read, reads it with retry on transient errors and prints
a report with size, modification time and line, word and character
counts.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := newApp()
		if err != nil {
			return err
		}
		return app.Inspector().Run(app.Context(cmd.Context()))
	},
}

func init() {
	rootCmd.AddCommand(transformCmd)
	rootCmd.AddCommand(inspectCmd)
}
