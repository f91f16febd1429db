package main

import (
	"context"
	"fmt"

	"github.com/quantsift/quantsift/internal/core"
	"github.com/quantsift/quantsift/internal/universe/wikipedia"
	"github.com/spf13/cobra"
)

var universeCmd = &cobra.Command{
	Use:   "universe",
	Short: "Print the resolved constituents of an index",
	RunE:  runUniverse,
}

func init() {
	universeCmd.Flags().String("index", string(core.IndexSP500), "index universe to resolve")
	rootCmd.AddCommand(universeCmd)
}

func runUniverse(cmd *cobra.Command, args []string) error {
	index, _ := cmd.Flags().GetString("index")

	symbols, err := wikipedia.New().Resolve(context.Background(), core.Index(index))
	if err != nil {
		return err
	}

	for _, s := range symbols {
		fmt.Println(s)
	}
	fmt.Printf("\n%d constituents\n", len(symbols))

	return nil
}
