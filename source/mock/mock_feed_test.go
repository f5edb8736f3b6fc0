/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/suparena/dispatch/source"
	"github.com/suparena/dispatch/source/mock"
	"github.com/suparena/dispatch/tag"
)

type testEvent struct {
	ID string
}

func TestMockFeed(t *testing.T) {
	ctx := context.Background()
	et := tag.New[testEvent]("event")

	t.Run("EmitsValuesInOrder", func(t *testing.T) {
		feed := mock.New().WithValues(
			et.Box(testEvent{ID: "a"}),
			et.Box(testEvent{ID: "b"}),
			et.Box(testEvent{ID: "c"}),
		)

		events, err := feed.Events(ctx)
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}

		var ids []string
		var indexes []int64
		for res := range events {
			if res.Err != nil {
				t.Fatalf("unexpected event error: %v", res.Err)
			}
			ids = append(ids, et.Unbox(res.Value).ID)
			indexes = append(indexes, res.Meta.Index)
		}

		if len(ids) != 3 || ids[0] != "a" || ids[1] != "b" || ids[2] != "c" {
			t.Fatalf("unexpected emission order: %v", ids)
		}
		for i, idx := range indexes {
			if idx != int64(i) {
				t.Errorf("expected Meta.Index %d, got %d", i, idx)
			}
		}
	})

	t.Run("EventErrorsRideResults", func(t *testing.T) {
		bad := errors.New("corrupt event")
		feed := mock.New().
			WithValues(et.Box(testEvent{ID: "a"})).
			WithEventError(bad).
			WithValues(et.Box(testEvent{ID: "b"}))

		events, err := feed.Events(ctx)
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}

		var got []source.Result
		for res := range events {
			got = append(got, res)
		}
		if len(got) != 3 {
			t.Fatalf("expected 3 results, got %d", len(got))
		}
		if got[1].Err != bad {
			t.Errorf("expected the event error in slot 1, got %v", got[1].Err)
		}
		if got[2].Err != nil {
			t.Errorf("the feed should continue past event errors, got %v", got[2].Err)
		}
	})

	t.Run("SetupError", func(t *testing.T) {
		setupErr := errors.New("connection refused")
		feed := mock.New().WithSetupError(setupErr)

		_, err := feed.Events(ctx)
		if err != setupErr {
			t.Fatalf("expected setup error, got: %v", err)
		}
	})

	t.Run("CancellationStopsEmission", func(t *testing.T) {
		feed := mock.New().
			WithDelay(50 * time.Millisecond).
			WithValues(et.Box(testEvent{ID: "a"}), et.Box(testEvent{ID: "b"}))

		cctx, cancel := context.WithCancel(ctx)
		events, err := feed.Events(cctx, source.WithBufferSize(0))
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}

		cancel()

		count := 0
		for range events {
			count++
		}
		if count == 2 {
			t.Error("expected cancellation to cut the feed short")
		}
	})

	t.Run("EventsFuncOverride", func(t *testing.T) {
		called := false
		feed := mock.New().WithEventsFunc(func(ctx context.Context, opts ...source.Option) (<-chan source.Result, error) {
			called = true
			ch := make(chan source.Result)
			close(ch)
			return ch, nil
		})

		events, err := feed.Events(ctx)
		if err != nil {
			t.Fatalf("Events failed: %v", err)
		}
		for range events {
		}
		if !called {
			t.Error("WithEventsFunc should replace the Events implementation")
		}
	})
}
