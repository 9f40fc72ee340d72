package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"gitlab.com/tozd/go/errors"

	"github.com/zoro11031/filelab/internal/cli"
	"github.com/zoro11031/filelab/internal/logging"
	"github.com/zoro11031/filelab/internal/ui"
	"github.com/zoro11031/filelab/pkg/version"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:   "filelab",
	Short: "Interactive file transformer and inspector",
	Long: `filelab hosts two small file utilities:

- Transformer: read a text file, convert it (uppercase, lowercase,
  capitalize words, reverse lines) and write the result to a new file
  without silently overwriting anything.
- Inspector: validate a filename, check that it can be read, read it with
  retry on transient errors and report size, modification time and
  line, word and character counts.

Run without arguments to launch the interactive menu.`,
	SilenceUsage:  true, // We handle errors manually, but silence usage on error
	SilenceErrors: true, // We format errors ourselves for consistent output
	RunE:          runInteractiveMenu,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Info())
	},
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Launch interactive menu",
	Long:  `Launch the interactive menu interface.`,
	RunE:  runInteractiveMenu,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "configuration file (default $FILELAB_CONFIG or $XDG_CONFIG_HOME/filelab/filelab.conf)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(menuCmd)
}

// newApp builds the application context from the persistent flags
func newApp() (*cli.AppContext, error) {
	app, err := cli.NewAppContext(cli.Options{ConfigPath: configPath, Debug: debug})
	if err != nil {
		return nil, errors.Errorf("failed to initialize: %w", err)
	}
	if !logging.StdinIsTerminal() {
		app.UI.Warning("Standard input is not a terminal; interactive prompts may not work")
	}
	return app, nil
}

func runInteractiveMenu(cmd *cobra.Command, args []string) error {
	app, err := newApp()
	if err != nil {
		return err
	}

	menu := cli.NewMenu(app)
	return menu.Show(app.Context(cmd.Context()))
}

// isCancelled reports whether err means the user stopped the program
func isCancelled(err error) bool {
	return ui.IsInterrupt(err) || errors.Is(err, context.Canceled)
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	switch {
	case err == nil:
	case isCancelled(err):
		fmt.Fprintln(os.Stderr, "\nOperation cancelled by user.")
	default:
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		stop()
		os.Exit(1)
	}
}
