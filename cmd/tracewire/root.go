package main

import (
	"github.com/spf13/cobra"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tracewire",
	Short: "W3C trace context propagation demo",
	Long: `Tracewire demo - runs a simulated producer→broker→consumer hop
with W3C trace context travelling in the message headers and prints
the recorded spans.`,
	Version: version,
}

// Execute adds all child commands to the root command and runs it.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (YAML)")
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(versionCmd)
}
