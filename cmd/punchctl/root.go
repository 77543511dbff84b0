package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	timezone string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "punchctl",
	Short: "Offline tooling for punch analytics",
	Long: `punchctl computes attendance statistics from an exported punch file
without a running server, and issues upload tokens for the API.`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&timezone, "timezone", "UTC", "IANA timezone used to resolve relative periods")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
