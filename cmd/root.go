package cmd

import "github.com/spf13/cobra"

var rootCmd = &cobra.Command{
	Use:   "algo-backtest",
	Short: "Backtesting and performance-analytics service",
}

func Execute() error {
	rootCmd.AddCommand(startCmd)
	rootCmd.AddCommand(migrateCmd)
	return rootCmd.Execute()
}
