package main

import (
	"fmt"
	"os"
	"strings"
)

const version = "0.0.1-dev"

func main() {
	os.Exit(run())
}

func run() int {
	if len(os.Args) < 2 {
		printUsage()
		return 1
	}

	switch os.Args[1] {
	case "resolve":
		return runResolve(os.Args[2:])
	case "--version", "-v":
		fmt.Println("tsforge", version)
		return 0
	case "--help", "-h":
		printUsage()
		return 0
	default:
		if strings.HasPrefix(os.Args[1], "-") {
			fmt.Fprintf(os.Stderr, "unknown flag: %s\n", os.Args[1])
		} else {
			fmt.Fprintf(os.Stderr, "unknown command: %s\n", os.Args[1])
		}
		printUsage()
		return 1
	}
}

func printUsage() {
	fmt.Println("tsforge - resolves TypeScript type snapshots into the canonical builder-generation type model")
	fmt.Println()
	fmt.Println("Usage:")
	fmt.Println("  tsforge resolve [flags]       Resolve snapshot types and print TypeInfo JSON")
	fmt.Println()
	fmt.Println("Global Flags:")
	fmt.Println("  --version, -v          Print version and exit")
	fmt.Println("  --help, -h             Print this help message")
	fmt.Println()
	fmt.Println("Resolve Flags:")
	fmt.Println("  --snapshot <path>      Path to a type snapshot JSON file (required)")
	fmt.Println("  --type <name>          Resolve only the named root type (default: all roots)")
	fmt.Println("  --config <path>        Path to tsforge.config.json")
	fmt.Println("  --pretty               Indent the JSON output")
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  tsforge resolve --snapshot types.snapshot.json")
	fmt.Println("  tsforge resolve --snapshot types.snapshot.json --type CreateUserDto --pretty")
	fmt.Println()
}
