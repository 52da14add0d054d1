package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-breakout/internal/config"
	"github.com/vovakirdan/tui-breakout/internal/games/breakout"
)

var (
	flagConfigClassic  bool
	flagConfigDefaults bool
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the effective configuration as YAML",
	Long: `Print the configuration a game would run with, after the config
file search, --difficulty and --classic are applied.

The output is a complete config file and can be saved and edited.

Search order:
  --config <path>
  ~/.arcade/configs/breakout.yaml
  ./configs/breakout.yaml
  built-in defaults

Examples:
  arcade config
  arcade config --difficulty hard --classic
  arcade config --defaults > ./configs/breakout.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagConfigClassic, "classic", false, "Apply the classic bounce")
	configCmd.Flags().BoolVar(&flagConfigDefaults, "defaults", false, "Print the built-in defaults file")
}

func runConfig(cmd *cobra.Command, _ []string) {
	out := cmd.OutOrStdout()

	if flagConfigDefaults {
		//nolint:errcheck // Writing to stdout
		out.Write(config.GetDefaultYAML("breakout"))
		return
	}

	cfg, err := breakout.EffectiveConfig(flagConfigClassic)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	data, err := config.MarshalBreakout(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	//nolint:errcheck // Writing to stdout
	out.Write(data)
}
