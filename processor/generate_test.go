/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package processor

import (
	"go/format"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateRegistrations(t *testing.T) {
	m := &Manifest{
		Package: "events",
		Bindings: []BindingDef{
			{Name: "RATING_ADJUSTED", Type: "RatingAdjusted", Formats: []string{"json"}},
			{Name: "PLAYER_REGISTERED", Type: "PlayerRegistered"},
		},
	}

	code, err := Generate(m)
	require.NoError(t, err)
	src := string(code)

	require.Contains(t, src, "// Code generated by dispatchgen. DO NOT EDIT.")
	require.Contains(t, src, "package events")
	require.Contains(t, src, `"github.com/suparena/dispatch/codec"`)
	require.Contains(t, src, `"github.com/suparena/dispatch/tag"`)

	require.Contains(t, src, `var PlayerRegisteredTag = tag.New[PlayerRegistered]("PLAYER_REGISTERED")`)
	require.Contains(t, src, `var RatingAdjustedTag = tag.New[RatingAdjusted]("RATING_ADJUSTED")`)

	require.Contains(t, src, `codec.MustBind(codec.Default, "PLAYER_REGISTERED", PlayerRegisteredTag)`)
	require.Contains(t, src, `codec.MustBind(codec.Default, "RATING_ADJUSTED", RatingAdjustedTag, codec.FormatJSON)`)

	// Bindings are emitted sorted by wire name regardless of manifest order.
	require.Less(t,
		strings.Index(src, "PLAYER_REGISTERED"),
		strings.Index(src, "RATING_ADJUSTED"),
	)

	formatted, err := format.Source(code)
	require.NoError(t, err)
	require.Equal(t, code, formatted, "generated code must be gofmt-clean")
}

func TestGenerateDeterministic(t *testing.T) {
	m := &Manifest{
		Package: "events",
		Bindings: []BindingDef{
			{Name: "C_EVENT", Type: "CEvent"},
			{Name: "A_EVENT", Type: "AEvent"},
			{Name: "B_EVENT", Type: "BEvent"},
		},
	}

	first, err := Generate(m)
	require.NoError(t, err)
	second, err := Generate(m)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGenerateRejectsInvalidManifest(t *testing.T) {
	_, err := Generate(&Manifest{})
	require.Error(t, err)
}

func TestExportName(t *testing.T) {
	cases := map[string]string{
		"PLAYER_REGISTERED": "PlayerRegistered",
		"RATING":            "Rating",
		"match-recorded":    "MatchRecorded",
		"PlayerRegistered":  "PlayerRegistered",
		"rating.adjusted":   "RatingAdjusted",
	}
	for in, want := range cases {
		require.Equal(t, want, exportName(in), "exportName(%q)", in)
	}
}

func TestMainWritesGeneratedFile(t *testing.T) {
	out := filepath.Join(t.TempDir(), "gen", "dispatch_gen.go")

	oldManifest, oldOut := *manifestPath, *outputPath
	*manifestPath, *outputPath = writeManifest(t, validManifest), out
	defer func() { *manifestPath, *outputPath = oldManifest, oldOut }()

	var exitCode int
	oldExit := exitFunc
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = oldExit }()

	Main()

	require.Zero(t, exitCode)
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	require.Contains(t, string(data), "Code generated by dispatchgen")
}

func TestMainReportsMissingManifest(t *testing.T) {
	oldManifest, oldOut := *manifestPath, *outputPath
	*manifestPath = filepath.Join(t.TempDir(), "absent.yaml")
	*outputPath = filepath.Join(t.TempDir(), "out.go")
	defer func() { *manifestPath, *outputPath = oldManifest, oldOut }()

	var exitCode int
	oldExit := exitFunc
	exitFunc = func(code int) { exitCode = code }
	defer func() { exitFunc = oldExit }()

	Main()

	require.Equal(t, 1, exitCode)
}
