package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "cfgkit",
	Short: "Classify a context-free grammar and recognize sentences with it",
	Long: `cfgkit compiles a context-free grammar into LL(1) and SLR(1) parsing tables,
reports which of the two classes the grammar belongs to, and recognizes
sentences with a table-driven parser.`,
	SilenceErrors: true,
	SilenceUsage:  true,
}

func Execute() error {
	return rootCmd.Execute()
}
