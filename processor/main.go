/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

var (
	manifestPath = flag.String("manifest", "bindings.yaml", "Path to the bindings manifest")
	outputPath   = flag.String("out", "dispatch_gen.go", "Output file for the generated code")
)

var exitFunc = os.Exit

// Main runs the generator end to end: load the manifest, render the
// registration file, write it out. It is the entry point used by the
// dispatchgen command.
func Main() {
	if !flag.Parsed() {
		flag.Parse()
	}

	manifest, err := LoadManifest(*manifestPath)
	if err != nil {
		exitErr(err)
		return
	}

	code, err := Generate(manifest)
	if err != nil {
		exitErr(err)
		return
	}

	if err := writeFile(*outputPath, code); err != nil {
		exitErr(err)
		return
	}

	fmt.Printf("generated %s from %s\n", *outputPath, *manifestPath)
}

func writeFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("output path must not be empty")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("create output dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o600); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	return nil
}

func exitErr(err error) {
	fmt.Fprintln(os.Stderr, err)
	exitFunc(1)
}
