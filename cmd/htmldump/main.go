// Command htmldump parses an HTML file and prints its structural dump.
// Argument handling is intentionally minimal (spec.md's Non-goals exclude
// a general CLI surface): a path and one --errors flag.
package main

import (
	"fmt"
	"os"

	"github.com/crestfall/htmlcore"
	"github.com/crestfall/htmlcore/parseerr"
	"github.com/spf13/cobra"
)

var showErrors bool

var rootCmd = &cobra.Command{
	Use:   "htmldump <file>",
	Short: "Parse an HTML file and print its structural dump",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(args[0])
	},
}

func init() {
	rootCmd.Flags().BoolVar(&showErrors, "errors", false, "report parse errors to stderr")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(path string) error {
	var opts []htmlcore.Option
	if showErrors {
		opts = append(opts, htmlcore.WithErrorSink(parseerr.NewWriterSink(os.Stderr)))
	}
	doc, err := htmlcore.ParseFile(path, opts...)
	if err != nil {
		return fmt.Errorf("parsing %s: %w", path, err)
	}
	htmlcore.Dump(os.Stdout, doc)
	return nil
}
