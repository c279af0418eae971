package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/stencil-xyz/go-stencil/parser"
)

func validateCmd(args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stencil validate <fragment.json>

Check the referential integrity of a normalized fragment.

Checks performed:
  - Instance id uniqueness
  - Child references resolve to instances
  - Props reference existing instances
  - Style source selections reference existing instances and sources
  - Style declarations reference existing sources and breakpoints

Examples:
  stencil validate fragment.json
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("fragment file required")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read fragment: %w", err)
	}

	frag, err := parser.FragmentFromJSON(data)
	if err != nil {
		return err
	}

	if err := frag.Validate(); err != nil {
		return fmt.Errorf("invalid fragment: %w", err)
	}

	fmt.Printf("OK: %d instances, %d props, %d style declarations\n",
		len(frag.Instances), len(frag.Props), len(frag.Styles))
	return nil
}
