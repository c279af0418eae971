package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/stencil-xyz/go-stencil/parser"
)

func summaryCmd(args []string) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stencil summary <fragment.json>

Display quick summary of a normalized fragment.

Examples:
  stencil summary fragment.json
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

	fmt.Printf("CID: %s\n", frag.CID())
	fmt.Printf("Instances: %d\n", len(frag.Instances))
	fmt.Printf("Props: %d\n", len(frag.Props))
	fmt.Printf("Style sources: %d\n", len(frag.StyleSources))
	fmt.Printf("Style declarations: %d\n", len(frag.Styles))
	fmt.Printf("Breakpoints: %d\n", len(frag.Breakpoints))

	if len(frag.Instances) > 0 {
		counts := make(map[string]int)
		for _, inst := range frag.Instances {
			counts[inst.Component]++
		}
		components := make([]string, 0, len(counts))
		for c := range counts {
			components = append(components, c)
		}
		sort.Strings(components)

		fmt.Println("\nComponents:")
		for _, c := range components {
			fmt.Printf("  %-20s %d\n", c, counts[c])
		}
	}

	return nil
}
