/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// Manifest is the root structure for a bindings manifest.
type Manifest struct {
	Package  string       `yaml:"package"`  // package name for the generated file
	Bindings []BindingDef `yaml:"bindings"` // wire name declarations
}

// BindingDef declares one wire name and the Go type it decodes into.
type BindingDef struct {
	Name    string   `yaml:"name"`    // wire name, e.g. "PLAYER_REGISTERED"
	Type    string   `yaml:"type"`    // Go type in the target package, e.g. "PlayerRegistered"
	Formats []string `yaml:"formats"` // "json", "ddb"; empty means both
}

var identPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// knownFormats maps manifest format strings to codec format constants.
var knownFormats = map[string]string{
	"json": "codec.FormatJSON",
	"ddb":  "codec.FormatDDB",
}

// LoadManifest reads and validates a bindings manifest.
func LoadManifest(path string) (*Manifest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("invalid manifest %s: %w", path, err)
	}
	return &m, nil
}

// Validate checks the manifest for problems the generator cannot work
// around: missing package, empty or duplicate wire names, types that are
// not plain identifiers, and unknown formats.
func (m *Manifest) Validate() error {
	if !identPattern.MatchString(m.Package) {
		return fmt.Errorf("package %q is not a valid Go package name", m.Package)
	}
	if len(m.Bindings) == 0 {
		return fmt.Errorf("manifest declares no bindings")
	}

	seen := make(map[string]bool, len(m.Bindings))
	for i, b := range m.Bindings {
		if b.Name == "" {
			return fmt.Errorf("binding %d has no wire name", i)
		}
		if seen[b.Name] {
			return fmt.Errorf("wire name %q declared twice", b.Name)
		}
		seen[b.Name] = true

		if ex := exportName(b.Name); !identPattern.MatchString(ex) {
			return fmt.Errorf("binding %q: cannot derive a Go identifier from the wire name", b.Name)
		}

		if !identPattern.MatchString(b.Type) {
			return fmt.Errorf("binding %q: type %q is not a plain identifier; the generated file must live in the package that defines it", b.Name, b.Type)
		}

		for _, f := range b.Formats {
			if _, ok := knownFormats[f]; !ok {
				return fmt.Errorf("binding %q: unknown format %q (want json or ddb)", b.Name, f)
			}
		}
	}
	return nil
}
