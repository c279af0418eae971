package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/stencil-xyz/go-stencil/normalize"
	"github.com/stencil-xyz/go-stencil/parser"
)

func normalizeCmd(args []string) error {
	fs := flag.NewFlagSet("normalize", flag.ExitOnError)
	outputFile := fs.String("output", "", "Write fragment JSON to file instead of stdout")
	maps := fs.Bool("maps", false, "Emit the id-keyed instances/props projection instead of the full fragment")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stencil normalize <template.json> [options]

Lower a template tree into the flat normalized fragment.

Options:
`)
		fs.PrintDefaults()
		fmt.Fprintf(os.Stderr, `
Examples:
  stencil normalize template.json
  stencil normalize template.json --output fragment.json
  stencil normalize template.json --maps
`)
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("template file required")
	}

	data, err := os.ReadFile(fs.Arg(0))
	if err != nil {
		return fmt.Errorf("read template: %w", err)
	}

	root, err := parser.FromJSON(data)
	if err != nil {
		return fmt.Errorf("parse template: %w", err)
	}

	frag, err := normalize.Normalize(root)
	if err != nil {
		return fmt.Errorf("normalize: %w", err)
	}

	var out []byte
	if *maps {
		m := frag.Maps()
		out, err = json.MarshalIndent(struct {
			Instances any `json:"instances"`
			Props     any `json:"props"`
		}{m.Instances, m.Props}, "", "  ")
	} else {
		out, err = parser.FragmentToJSON(frag)
	}
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	if *outputFile != "" {
		if err := os.WriteFile(*outputFile, out, 0o644); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
		fmt.Printf("Wrote %s (%d instances, %d props)\n", *outputFile, len(frag.Instances), len(frag.Props))
		return nil
	}

	fmt.Println(string(out))
	return nil
}
