package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	verr "github.com/cfgkit/cfgkit/error"
	"github.com/cfgkit/cfgkit/grammar"
	"github.com/cfgkit/cfgkit/spec"
	"github.com/spf13/cobra"
)

var compileFlags = struct {
	output *string
}{}

func init() {
	cmd := &cobra.Command{
		Use:     "compile [<grammar file path>]",
		Short:   "Compile a grammar into LL(1) and SLR(1) parsing tables",
		Example: `  cfgkit compile expr.cfg -o expr.json`,
		Args:    cobra.MaximumNArgs(1),
		RunE:    runCompile,
	}
	compileFlags.output = cmd.Flags().StringP("output", "o", "", "output file path (default stdout)")
	rootCmd.AddCommand(cmd)
}

func runCompile(cmd *cobra.Command, args []string) (retErr error) {
	var grmPath string
	if len(args) > 0 {
		grmPath = args[0]
	}
	defer func() {
		if retErr != nil {
			specErrs, ok := retErr.(verr.SpecErrors)
			if ok {
				for _, err := range specErrs {
					err.FilePath = grmPath
					if grmPath != "" {
						err.SourceName = grmPath
					} else {
						err.SourceName = "stdin"
					}
				}
			}
		}
	}()

	cgram, err := compileGrammar(grmPath)
	if err != nil {
		return err
	}

	w := io.Writer(os.Stdout)
	if *compileFlags.output != "" {
		f, err := os.OpenFile(*compileFlags.output, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0644)
		if err != nil {
			return fmt.Errorf("Cannot write an output file: %w", err)
		}
		defer f.Close()
		w = f
	}

	b, err := json.Marshal(cgram)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "%v\n", string(b))

	fmt.Fprintf(os.Stderr, "LL(1): %v\n", verdict(cgram.IsLL1()))
	fmt.Fprintf(os.Stderr, "SLR(1): %v\n", verdict(cgram.IsSLR1()))
	if n := len(cgram.Report.LL1Conflicts); n > 0 {
		fmt.Fprintf(os.Stderr, "%v LL(1) conflicts\n", n)
	}
	var srCount, rrCount int
	for _, s := range cgram.Report.States {
		srCount += len(s.SRConflict)
		rrCount += len(s.RRConflict)
	}
	if srCount > 0 {
		fmt.Fprintf(os.Stderr, "%v shift/reduce conflicts\n", srCount)
	}
	if rrCount > 0 {
		fmt.Fprintf(os.Stderr, "%v reduce/reduce conflicts\n", rrCount)
	}

	return nil
}

func verdict(ok bool) string {
	if ok {
		return "yes"
	}
	return "no"
}

// compileGrammar reads a grammar description from a file, or from stdin when
// the path is empty, and compiles it. The grammar is named after the file.
func compileGrammar(path string) (*spec.CompiledGrammar, error) {
	src := io.Reader(os.Stdin)
	name := "stdin"
	if path != "" {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("Cannot open the grammar file %s: %w", path, err)
		}
		defer f.Close()
		src = f
		base := filepath.Base(path)
		name = strings.TrimSuffix(base, filepath.Ext(base))
	}

	ast, err := spec.Parse(src)
	if err != nil {
		return nil, err
	}

	var b grammar.GrammarBuilder
	gram, err := b.Build(name, ast)
	if err != nil {
		return nil, err
	}

	return grammar.Compile(gram)
}
