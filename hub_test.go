/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package dispatch

import (
	"fmt"
	"strconv"
	"sync"
	"testing"

	"github.com/suparena/dispatch/errors"
	"github.com/suparena/dispatch/tag"
)

func TestRegistryForReturnsSameInstance(t *testing.T) {
	hub := NewHub()

	first := RegistryFor[string](hub)
	second := RegistryFor[string](hub)
	if first != second {
		t.Error("RegistryFor should return the same registry for the same result type")
	}

	other := RegistryFor[int](hub)
	if fmt.Sprintf("%p", other) == fmt.Sprintf("%p", first) {
		t.Error("registries for different result types should be distinct")
	}
}

func TestHubRoutesPerResultType(t *testing.T) {
	hub := NewHub()
	score := tag.New[int]("score")

	// The same tag can feed handlers toward different result types.
	if err := RegisterHandler(hub, score, func(n int) (string, error) {
		return strconv.Itoa(n), nil
	}); err != nil {
		t.Fatalf("RegisterHandler failed: %v", err)
	}
	if err := RegisterHandler(hub, score, func(n int) (int, error) {
		return n * 10, nil
	}); err != nil {
		t.Fatalf("RegisterHandler failed: %v", err)
	}

	v := score.Box(4)

	s, err := DispatchAs[string](hub, v)
	if err != nil {
		t.Fatalf("DispatchAs[string] failed: %v", err)
	}
	if s != "4" {
		t.Errorf("expected %q, got %q", "4", s)
	}

	n, err := DispatchAs[int](hub, v)
	if err != nil {
		t.Fatalf("DispatchAs[int] failed: %v", err)
	}
	if n != 40 {
		t.Errorf("expected 40, got %d", n)
	}

	// No handler was bound toward bool.
	if _, err := DispatchAs[bool](hub, v); !errors.IsNoHandler(err) {
		t.Errorf("expected no-handler toward an unwired result type, got %v", err)
	}
}

func TestHubInterfaceResultTypes(t *testing.T) {
	hub := NewHub()

	// Interface result types must occupy their own slots rather than
	// collapsing into one nil-keyed entry.
	a := RegistryFor[error](hub)
	b := RegistryFor[fmt.Stringer](hub)
	if fmt.Sprintf("%p", a) == fmt.Sprintf("%p", b) {
		t.Error("interface result types should map to distinct registries")
	}
}

func TestHubRemoveAndNames(t *testing.T) {
	hub := NewHub()
	a := tag.New[int]("alpha")
	b := tag.New[int]("beta")

	if err := RegisterHandler(hub, a, func(int) (string, error) { return "", nil }); err != nil {
		t.Fatalf("RegisterHandler failed: %v", err)
	}
	if err := RegisterHandler(hub, b, func(int) (string, error) { return "", nil }); err != nil {
		t.Fatalf("RegisterHandler failed: %v", err)
	}

	names := HandlerNames[string](hub)
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %v", names)
	}

	if err := RemoveHandler[string](hub, a.ID()); err != nil {
		t.Fatalf("RemoveHandler failed: %v", err)
	}
	if _, err := DispatchAs[string](hub, a.Box(1)); !errors.IsNoHandler(err) {
		t.Errorf("expected no-handler after removal, got %v", err)
	}
	if len(HandlerNames[string](hub)) != 1 {
		t.Errorf("expected 1 remaining name, got %v", HandlerNames[string](hub))
	}
}

func TestHubRecorderInheritance(t *testing.T) {
	rec := &captureRecorder{}
	hub := NewHub(WithHubRecorder(rec))
	a := tag.New[int]("watched")

	if err := RegisterHandler(hub, a, func(int) (string, error) { return "", nil }); err != nil {
		t.Fatalf("RegisterHandler failed: %v", err)
	}
	if _, err := DispatchAs[string](hub, a.Box(1)); err != nil {
		t.Fatalf("DispatchAs failed: %v", err)
	}

	if got := rec.count("watched", OutcomeHandled); got != 1 {
		t.Errorf("hub-created registry should report to the hub recorder, got %d observations", got)
	}
}

func TestHubConcurrentRegistryFor(t *testing.T) {
	hub := NewHub()

	var wg sync.WaitGroup
	results := make([]*Registry[string], 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = RegistryFor[string](hub)
		}(i)
	}
	wg.Wait()

	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("concurrent RegistryFor calls should converge on one registry")
		}
	}
}
