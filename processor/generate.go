/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"fmt"
	"go/format"
	"sort"
	"strings"
)

// Generate renders the registration file for a manifest: one exported tag
// variable per binding plus an init function that binds every wire name on
// codec.Default. Output is deterministic; bindings are emitted sorted by
// wire name.
func Generate(m *Manifest) ([]byte, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}

	bindings := make([]BindingDef, len(m.Bindings))
	copy(bindings, m.Bindings)
	sort.Slice(bindings, func(i, j int) bool { return bindings[i].Name < bindings[j].Name })

	var body strings.Builder

	for _, b := range bindings {
		varName := exportName(b.Name) + "Tag"
		fmt.Fprintf(&body, "// %s identifies %s events carried on the wire as %q.\n", varName, b.Type, b.Name)
		fmt.Fprintf(&body, "var %s = tag.New[%s](%q)\n\n", varName, b.Type, b.Name)
	}

	body.WriteString("func init() {\n")
	for _, b := range bindings {
		varName := exportName(b.Name) + "Tag"
		args := []string{"codec.Default", fmt.Sprintf("%q", b.Name), varName}
		for _, f := range b.Formats {
			args = append(args, knownFormats[f])
		}
		fmt.Fprintf(&body, "\tcodec.MustBind(%s)\n", strings.Join(args, ", "))
	}
	body.WriteString("}\n")

	var file strings.Builder
	file.WriteString("// Code generated by dispatchgen. DO NOT EDIT.\n\n")
	fmt.Fprintf(&file, "package %s\n\n", m.Package)
	file.WriteString("import (\n")
	file.WriteString("\t\"github.com/suparena/dispatch/codec\"\n")
	file.WriteString("\t\"github.com/suparena/dispatch/tag\"\n")
	file.WriteString(")\n\n")
	file.WriteString(body.String())

	formatted, err := format.Source([]byte(file.String()))
	if err != nil {
		return nil, fmt.Errorf("format generated code: %w", err)
	}
	return formatted, nil
}

// exportName turns a wire name like "PLAYER_REGISTERED" into an exported
// identifier like "PlayerRegistered". Parts already in mixed case pass
// through with their first letter capitalized.
func exportName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return r == '_' || r == '-' || r == ' ' || r == '.'
	})
	for i, p := range parts {
		if p == strings.ToUpper(p) {
			p = strings.ToLower(p)
		}
		parts[i] = strings.ToUpper(p[:1]) + p[1:]
	}
	return strings.Join(parts, "")
}
