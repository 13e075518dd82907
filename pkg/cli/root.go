// Package cli defines the parsecbench command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/parsecbench/parsecbench/pkg/harnesscfg"
)

const defaultConfigPath = "config/harness.yaml"

var (
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "parsecbench",
		Short: "PARSEC benchmark harness for virtual machines",
		Long: `parsecbench boots virtual machines, runs the PARSEC benchmark suite inside
them across varying thread counts through an external benchmark manager, and
renders gnuplot comparison diagrams from the collected result files.`,
		SilenceUsage: true,
	}
)

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/harness.yaml)")
}

// loadConfig resolves the active configuration. An explicitly given file must
// load; the default path is optional and falls back to built-in defaults.
func loadConfig() (harnesscfg.Config, error) {
	if cfgFile != "" {
		return harnesscfg.Load(cfgFile)
	}
	if _, err := os.Stat(defaultConfigPath); err != nil {
		return harnesscfg.Default(), nil
	}
	return harnesscfg.Load(defaultConfigPath)
}
