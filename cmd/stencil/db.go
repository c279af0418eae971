package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/stencil-xyz/go-stencil/normalize"
	"github.com/stencil-xyz/go-stencil/parser"
	"github.com/stencil-xyz/go-stencil/store"
)

func saveCmd(args []string) error {
	fs := flag.NewFlagSet("save", flag.ExitOnError)
	dbPath := fs.String("db", "fragments.db", "Path to the fragment database")
	name := fs.String("name", "", "Name to store the fragment under (defaults to the template filename)")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stencil save <template.json> [options]

Normalize a template and persist the resulting fragment.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("template file required")
	}

	templateFile := fs.Arg(0)
	data, err := os.ReadFile(templateFile)
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

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	if *name == "" {
		*name = templateFile
	}
	id, err := s.Save(context.Background(), *name, frag)
	if err != nil {
		return err
	}

	fmt.Printf("Saved %s as %s\n", *name, id)
	return nil
}

func loadCmd(args []string) error {
	fs := flag.NewFlagSet("load", flag.ExitOnError)
	dbPath := fs.String("db", "fragments.db", "Path to the fragment database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stencil load <id> [options]

Print a persisted fragment by id.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	if fs.NArg() < 1 {
		fs.Usage()
		return fmt.Errorf("fragment id required")
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	frag, err := s.Load(context.Background(), fs.Arg(0))
	if err != nil {
		return err
	}

	out, err := parser.FragmentToJSON(frag)
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func listCmd(args []string) error {
	fs := flag.NewFlagSet("list", flag.ExitOnError)
	dbPath := fs.String("db", "fragments.db", "Path to the fragment database")

	fs.Usage = func() {
		fmt.Fprintf(os.Stderr, `Usage: stencil list [options]

List persisted fragments, newest first.

Options:
`)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}

	s, err := store.Open(*dbPath)
	if err != nil {
		return err
	}
	defer s.Close()

	records, err := s.List(context.Background())
	if err != nil {
		return err
	}

	if len(records) == 0 {
		fmt.Println("No fragments stored.")
		return nil
	}

	for _, r := range records {
		cid := r.CID
		if len(cid) > 24 {
			cid = cid[:24]
		}
		fmt.Printf("%s  %-24s %s  %s\n", r.ID, r.Name, cid, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	return nil
}
