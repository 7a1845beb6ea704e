package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/term2048/internal/config"
)

var flagConfigDefaults bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration",
	Long: `Prints the configuration after the config file, T2048_* environment
variables and flags have been applied, and where the file came from.
Search order: --config, ~/.t2048/config.yaml, ./configs/t2048.yaml, built-in.

Examples:
  t2048 config
  t2048 config --defaults > ~/.t2048/config.yaml
  T2048_SIZE=5 t2048 config`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in default file instead")
}

func runConfig(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()

	if flagConfigDefaults {
		_, err := out.Write(config.DefaultYAML())
		return err
	}

	data, err := config.Marshal(appCfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "# source: %s\n", cfgSource)
	_, err = out.Write(data)
	return err
}
