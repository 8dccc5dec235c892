package main

import (
	"fmt"
	"os"

	"github.com/cfgkit/cfgkit/driver"
	"github.com/cfgkit/cfgkit/tester"
	"github.com/spf13/cobra"
)

var testFlags = struct {
	method *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "test <grammar file path> <test case file path>",
		Short:   "Check sentences against expected verdicts",
		Example: `  cfgkit test expr.cfg cases.txt`,
		Args:    cobra.ExactArgs(2),
		RunE:    runTest,
	}
	testFlags.method = cmd.Flags().StringP("method", "m", "auto", "parsing method: auto, ll1, or slr1")
	rootCmd.AddCommand(cmd)
}

func runTest(cmd *cobra.Command, args []string) error {
	cgram, err := compileGrammar(args[0])
	if err != nil {
		return err
	}

	f, err := os.Open(args[1])
	if err != nil {
		return fmt.Errorf("Cannot open the test case file %s: %w", args[1], err)
	}
	defer f.Close()
	cases, err := tester.ParseTestCases(f)
	if err != nil {
		return err
	}

	t, err := tester.NewTester(cgram, driver.Method(*testFlags.method), cases)
	if err != nil {
		return err
	}

	allPassed := true
	for _, r := range t.Run() {
		fmt.Fprintln(os.Stdout, r)
		if !r.Passed() {
			allPassed = false
		}
	}
	if !allPassed {
		return fmt.Errorf("test failed")
	}
	return nil
}
