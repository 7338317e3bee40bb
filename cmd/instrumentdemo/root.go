package main

import (
	"fmt"

	"github.com/curtisnewbie/instrument/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "instrumentdemo",
	Short: "Run sample asynchronous tasks with timing instrumentation",
	Long: `instrumentdemo runs a few sample futures through instrument.Instrument and instrument.DbgInstrument,
then prints how long each of them took.

Configuration can be overridden with KEY=VALUE args, e.g., 'instrumentdemo run instrument.debug=false'.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintln(cmd.OutOrStdout(), version.Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (yaml, json or toml)")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(newRunCmd())
}
