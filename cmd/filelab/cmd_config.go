package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/zoro11031/filelab/internal/cli"
	"github.com/zoro11031/filelab/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show or change configuration",
	Long: fmt.Sprintf(`Show or change filelab settings.

Known keys: %s

The file format follows the extension: .yaml/.yml, .toml, anything else
is key=value.`, strings.Join(config.Keys(), ", ")),
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.NewAppContext(cli.Options{ConfigPath: configPath, Debug: debug})
		if err != nil {
			return err
		}
		return cli.ShowConfig(app)
	},
}

var configSetCmd = &cobra.Command{
	Use:   "set KEY VALUE",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.NewAppContext(cli.Options{ConfigPath: configPath, Debug: debug})
		if err != nil {
			return err
		}
		return cli.SetConfig(app, strings.ToUpper(args[0]), args[1])
	},
}

var configGetCmd = &cobra.Command{
	Use:   "get KEY",
	Short: "Print the effective value of a setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.NewAppContext(cli.Options{ConfigPath: configPath, Debug: debug})
		if err != nil {
			return err
		}
		return cli.GetConfig(app, strings.ToUpper(args[0]))
	},
}

var configUnsetCmd = &cobra.Command{
	Use:   "unset KEY",
	Short: "Remove a setting so its default applies",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app, err := cli.NewAppContext(cli.Options{ConfigPath: configPath, Debug: debug})
		if err != nil {
			return err
		}
		return cli.UnsetConfig(app, strings.ToUpper(args[0]))
	},
}

var configPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the configuration file path",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), config.New(configPath).FilePath())
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configGetCmd)
	configCmd.AddCommand(configUnsetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}
