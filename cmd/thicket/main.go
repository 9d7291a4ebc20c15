package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "thicket",
		Short: "thicket is a tool to grow binary classification trees",
		Long:  `A tool to grow binary classification trees and bagging ensembles from your data, test them, and use them to classify new rows`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), growCmd(config), bagCmd(config), predictCmd(config), testCmd(config))
	return rootCmd
}
