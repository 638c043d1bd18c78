package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/anqinworks/automap/internal/codegen"
)

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	command := os.Args[1]
	switch command {
	case "generate":
		generateCommand(os.Args[2:])
	case "validate":
		validateCommand(os.Args[2:])
	case "init":
		initCommand(os.Args[2:])
	case "version":
		versionCommand()
	default:
		fmt.Fprintf(os.Stderr, "Unknown command: %s\n", command)
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	fmt.Fprintf(os.Stderr, "Usage: %s <command> [options]\n", os.Args[0])
	fmt.Fprintf(os.Stderr, "\nCommands:\n")
	fmt.Fprintf(os.Stderr, "  generate  Generate map converters for marked structs\n")
	fmt.Fprintf(os.Stderr, "  validate  Validate configuration and automap markers\n")
	fmt.Fprintf(os.Stderr, "  init      Initialize configuration file\n")
	fmt.Fprintf(os.Stderr, "  version   Show version information\n")
	fmt.Fprintf(os.Stderr, "\nRun '%s <command> -h' for help on a specific command.\n", os.Args[0])
}

func generateCommand(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	configPath := fs.String("config", "automap.yaml", "Path to configuration file")
	manifestPath := fs.String("manifest", "", "Override manifest output path")
	verbose := fs.Bool("v", false, "Verbose output")
	dryRun := fs.Bool("dry-run", false, "Show what would be generated without writing files")

	fs.Parse(args)

	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"."}
	}

	generator := NewGenerator(*configPath, *manifestPath, *verbose)
	if err := generator.Generate(packages, *dryRun); err != nil {
		fmt.Fprintf(os.Stderr, "Generation failed: %v\n", err)
		os.Exit(1)
	}
}

func validateCommand(args []string) {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	configPath := fs.String("config", "automap.yaml", "Path to configuration file")
	verbose := fs.Bool("v", false, "Verbose output")

	fs.Parse(args)

	packages := fs.Args()
	if len(packages) == 0 {
		packages = []string{"."}
	}

	fmt.Printf("Validating configuration at %s...\n", *configPath)

	config, err := LoadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Configuration validation failed: %v\n", err)
		os.Exit(1)
	}

	if *verbose {
		fmt.Println("✓ Configuration file is valid")
	}

	hasErrors := false
	for _, pkg := range packages {
		if *verbose {
			fmt.Printf("Validating package: %s\n", pkg)
		}

		types, err := codegen.DiscoverTypes(pkg, config.ImportPathFor(pkg))
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to scan %s: %v\n", pkg, err)
			hasErrors = true
			continue
		}

		if len(types) == 0 {
			if *verbose {
				fmt.Printf("  No marked structs found in %s\n", pkg)
			}
			continue
		}

		fmt.Printf("Found %d marked structs in %s:\n", len(types), pkg)

		for _, t := range types {
			fmt.Printf("  %s\n", codegen.Summarize(t))
			if err := codegen.ValidateType(t); err != nil {
				hasErrors = true
				fmt.Printf("    ✗ %v\n", err)
			} else {
				fmt.Printf("    ✓ All fields valid\n")
			}
		}
	}

	if hasErrors {
		fmt.Fprintf(os.Stderr, "\nValidation failed with errors.\n")
		os.Exit(1)
	}

	fmt.Println("\n✓ All validations passed!")
}

func initCommand(args []string) {
	fs := flag.NewFlagSet("init", flag.ExitOnError)
	force := fs.Bool("force", false, "Overwrite existing configuration file")

	fs.Parse(args)

	configPath := "automap.yaml"
	if !*force {
		if _, err := os.Stat(configPath); err == nil {
			fmt.Fprintf(os.Stderr, "Configuration file %s already exists. Use -force to overwrite.\n", configPath)
			os.Exit(1)
		}
	}

	fmt.Printf("Creating configuration file at %s...\n", configPath)

	config := DefaultConfig()
	if err := SaveConfig(config, configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create config file: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("Configuration file created!")
}

func versionCommand() {
	fmt.Println("automap-gen version 1.0.0")
	fmt.Println("Map converter generator for automap")
	fmt.Println("")
	fmt.Println("Features:")
	fmt.Println("  - AST-based struct discovery via //automap:convert directives")
	fmt.Println("  - Embedded-struct field flattening")
	fmt.Println("  - Per-field policy via automap struct tags")
	fmt.Println("  - JSON build manifest for registry loading")
	fmt.Println("")
	fmt.Println("Supported tag options: nomap, nobean, ignore, method, target")
}
