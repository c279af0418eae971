package main

import (
	"fmt"
	"os"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	args := os.Args[2:]

	switch command {
	case "normalize":
		if err := normalizeCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "validate":
		if err := validateCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "summary":
		if err := summaryCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "save":
		if err := saveCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "load":
		if err := loadCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "list":
		if err := listCmd(args); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
	case "help", "-h", "--help":
		printUsage()
	case "version", "-v", "--version":
		fmt.Println("stencil version 1.0.0")
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Println(`stencil - template-to-graph normalization tool

Usage:
  stencil <command> [options]

Commands:
  normalize  Lower a template tree into a normalized fragment
  validate   Check referential integrity of a fragment
  summary    Display quick summary of a fragment
  save       Normalize a template and persist the fragment
  load       Print a persisted fragment by id
  list       List persisted fragments
  help       Show this help message
  version    Show version information

Examples:
  # Normalize a template
  stencil normalize template.json --output fragment.json

  # Validate a fragment
  stencil validate fragment.json

  # Persist and retrieve
  stencil save template.json --db fragments.db --name landing-page
  stencil list --db fragments.db
  stencil load <id> --db fragments.db

For command-specific help, run:
  stencil <command> --help`)
}
