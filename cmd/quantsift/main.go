package main

import (
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "quantsift",
	Short: "QuantSift - undervalued growth stock screener",
	Long: `QuantSift scans an index universe for undervalued growth stocks.
It pulls fundamentals for every constituent, applies valuation, growth
and quality screens, and ranks the survivors by a composite value score.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
