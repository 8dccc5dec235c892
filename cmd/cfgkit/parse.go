package main

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cfgkit/cfgkit/driver"
	"github.com/spf13/cobra"
)

var parseFlags = struct {
	method *string
	source *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "parse <grammar file path> [<sentence>...]",
		Short:   "Recognize sentences and print Yes or No for each",
		Example: `  cfgkit parse expr.cfg 'id + id * id $'
  cat sentences.txt | cfgkit parse expr.cfg`,
		Args: cobra.MinimumNArgs(1),
		RunE: runParse,
	}
	parseFlags.method = cmd.Flags().StringP("method", "m", "auto", "parsing method: auto, ll1, or slr1")
	parseFlags.source = cmd.Flags().StringP("source", "s", "", "sentence file path (default stdin)")
	rootCmd.AddCommand(cmd)
}

func runParse(cmd *cobra.Command, args []string) error {
	cgram, err := compileGrammar(args[0])
	if err != nil {
		return err
	}

	recog, err := driver.NewRecognizer(cgram, driver.Method(*parseFlags.method))
	if err != nil {
		return err
	}

	if len(args) > 1 {
		for _, sentence := range args[1:] {
			err := recognizeAndPrint(recog, sentence)
			if err != nil {
				return err
			}
		}
		return nil
	}

	src := os.Stdin
	if *parseFlags.source != "" {
		f, err := os.Open(*parseFlags.source)
		if err != nil {
			return fmt.Errorf("Cannot open the sentence file %s: %w", *parseFlags.source, err)
		}
		defer f.Close()
		src = f
	}
	s := bufio.NewScanner(src)
	for s.Scan() {
		err := recognizeAndPrint(recog, s.Text())
		if err != nil {
			return err
		}
	}
	return s.Err()
}

func recognizeAndPrint(recog *driver.Recognizer, sentence string) error {
	accepted, synErr, err := recog.Recognize(sentence)
	if err != nil {
		return err
	}
	if accepted {
		fmt.Fprintln(os.Stdout, "Yes")
		return nil
	}
	fmt.Fprintln(os.Stdout, "No")
	if synErr != nil {
		tok := synErr.Token
		var msg string
		switch {
		case tok == nil:
			msg = ""
		case tok.EOF:
			msg = " <eof>"
		case tok.Invalid:
			msg = fmt.Sprintf(" '%v' (<invalid>)", tok.Text)
		default:
			msg = fmt.Sprintf(" '%v'", tok.Text)
		}
		fmt.Fprintf(os.Stderr, "%v:%v\n", synErr.Message, msg)
		if len(synErr.ExpectedTerminals) > 0 {
			fmt.Fprintf(os.Stderr, "expected: %v\n", synErr.ExpectedTerminals)
		}
	}
	return nil
}
