package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/anqinworks/automap/internal/codegen"
)

// Generator drives one build pass: scan, resolve, emit, then persist the
// manifest once at the end.
type Generator struct {
	config       *Config
	manifestPath string
	verbose      bool
}

// NewGenerator creates a new Generator instance. A broken or missing config
// falls back to defaults, matching the validate-then-degrade behavior of the
// CLI.
func NewGenerator(configPath, manifestPath string, verbose bool) *Generator {
	config, err := LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		config = DefaultConfig()
	}

	if err := config.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Config validation failed: %v\n", err)
		config = DefaultConfig()
	}

	return &Generator{
		config:       config,
		manifestPath: manifestPath,
		verbose:      verbose,
	}
}

// Generate performs code generation for the specified package directories.
// Marker validation runs first and aborts the whole pass on error; nothing is
// half-written.
func (g *Generator) Generate(packages []string, dryRun bool) error {
	if g.verbose {
		fmt.Printf("Starting code generation for packages: %v\n", packages)
		if dryRun {
			fmt.Println("Running in dry-run mode")
		}
	}

	manifest := codegen.NewManifestBuilder()
	manifestPath := g.manifestPath
	if manifestPath == "" {
		manifestPath = g.config.ManifestPath()
	}

	for _, packagePath := range packages {
		if pkgConfig, exists := g.config.Packages[packagePath]; exists && pkgConfig.Skip {
			if g.verbose {
				fmt.Printf("Skipping package %s (marked as skip)\n", packagePath)
			}
			continue
		}

		types, err := codegen.DiscoverTypes(packagePath, g.config.ImportPathFor(packagePath))
		if err != nil {
			return fmt.Errorf("failed to scan package %s: %w", packagePath, err)
		}

		if g.verbose {
			fmt.Printf("Found %d marked structs in %s\n", len(types), packagePath)
		}

		if len(types) == 0 {
			continue
		}

		if err := codegen.ValidateTypes(types); err != nil {
			return fmt.Errorf("validation failed in %s: %w", packagePath, err)
		}

		if err := g.generatePackage(packagePath, types, manifestPath, dryRun); err != nil {
			return err
		}

		for _, t := range types {
			manifest.AddType(t)
		}
	}

	if dryRun {
		fmt.Printf("Would write manifest with %d entries to %s\n", manifest.Len(), manifestPath)
	} else if err := manifest.Write(manifestPath); err != nil {
		return err
	}

	fmt.Println("Code generation complete!")
	return nil
}

func (g *Generator) generatePackage(packagePath string, types []codegen.TypeDecl, manifestPath string, dryRun bool) error {
	for _, file := range codegen.GroupBySourceFile(types) {
		code, err := codegen.RenderConverterFile(file)
		if err != nil {
			return fmt.Errorf("failed to generate converters for %s: %w", file.SourceFile, err)
		}

		outputName := strings.TrimSuffix(file.SourceFile, ".go") + g.config.Generation.OutputSuffix + ".go"
		outputPath := filepath.Join(packagePath, outputName)

		if err := g.writeFile(outputPath, code, dryRun); err != nil {
			return err
		}
	}

	converterNames := make([]string, 0, len(types))
	for _, t := range types {
		converterNames = append(converterNames, t.ConverterName())
	}

	code, err := codegen.RenderRegistryFile(types[0].PackageName, manifestPath, converterNames)
	if err != nil {
		return fmt.Errorf("failed to generate registry for %s: %w", packagePath, err)
	}

	return g.writeFile(filepath.Join(packagePath, g.config.Generation.RegistryFile), code, dryRun)
}

func (g *Generator) writeFile(path string, code []byte, dryRun bool) error {
	if dryRun {
		fmt.Printf("Would generate: %s\n", path)
		if g.verbose {
			fmt.Printf("Generated code:\n%s\n", string(code))
		}
		return nil
	}
	if err := os.WriteFile(path, code, 0644); err != nil {
		return fmt.Errorf("failed to write generated file %s: %w", path, err)
	}
	if g.verbose {
		fmt.Printf("Generated: %s\n", path)
	}
	return nil
}
