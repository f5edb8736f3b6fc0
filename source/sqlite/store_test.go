/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/suparena/dispatch"
	"github.com/suparena/dispatch/codec"
	"github.com/suparena/dispatch/errors"
	"github.com/suparena/dispatch/source"
	"github.com/suparena/dispatch/tag"
)

type ratingEvent struct {
	PlayerID string `json:"playerId"`
	Delta    int    `json:"delta"`
}

type matchEvent struct {
	MatchID string `json:"matchId"`
	Winner  string `json:"winner"`
}

func openTestStore(t *testing.T) (*Store, tag.Tag[ratingEvent], tag.Tag[matchEvent]) {
	t.Helper()

	tbl := codec.NewTable()
	ratingTag := tag.New[ratingEvent]("RATING")
	matchTag := tag.New[matchEvent]("MATCH")
	require.NoError(t, codec.Bind(tbl, "RATING", ratingTag, codec.FormatJSON))
	require.NoError(t, codec.Bind(tbl, "MATCH", matchTag, codec.FormatJSON))

	store, err := Open(filepath.Join(t.TempDir(), "events.db"), tbl)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	return store, ratingTag, matchTag
}

func drain(t *testing.T, ch <-chan source.Result) []source.Result {
	t.Helper()

	var results []source.Result
	deadline := time.After(5 * time.Second)
	for {
		select {
		case r, ok := <-ch:
			if !ok {
				return results
			}
			results = append(results, r)
		case <-deadline:
			t.Fatal("timed out draining journal")
		}
	}
}

func TestStoreAppendAndReplay(t *testing.T) {
	store, ratingTag, matchTag := openTestStore(t)
	ctx := context.Background()

	seq1, err := Append(ctx, store, ratingTag, ratingEvent{PlayerID: "p-1", Delta: 7})
	require.NoError(t, err)
	seq2, err := Append(ctx, store, matchTag, matchEvent{MatchID: "m-1", Winner: "p-1"})
	require.NoError(t, err)
	seq3, err := Append(ctx, store, ratingTag, ratingEvent{PlayerID: "p-2", Delta: -3})
	require.NoError(t, err)

	require.Less(t, seq1, seq2)
	require.Less(t, seq2, seq3)

	ch, err := store.Events(ctx, 0)
	require.NoError(t, err)
	results := drain(t, ch)
	require.Len(t, results, 3)

	for i, r := range results {
		require.NoError(t, r.Err)
		require.Equal(t, int64(i), r.Meta.Index)
	}

	require.Equal(t, "RATING", results[0].WireName)
	require.Equal(t, ratingEvent{PlayerID: "p-1", Delta: 7}, ratingTag.Unbox(results[0].Value))
	require.True(t, matchTag.Matches(results[1].Value))
	require.Equal(t, ratingEvent{PlayerID: "p-2", Delta: -3}, ratingTag.Unbox(results[2].Value))
}

func TestStoreReplayEmpty(t *testing.T) {
	store, _, _ := openTestStore(t)

	ch, err := store.Events(context.Background(), 0)
	require.NoError(t, err)
	require.Empty(t, drain(t, ch))
}

func TestStoreResume(t *testing.T) {
	store, ratingTag, _ := openTestStore(t)
	ctx := context.Background()

	_, err := Append(ctx, store, ratingTag, ratingEvent{PlayerID: "p-1", Delta: 1})
	require.NoError(t, err)
	_, err = Append(ctx, store, ratingTag, ratingEvent{PlayerID: "p-2", Delta: 2})
	require.NoError(t, err)

	checkpoint, err := store.LastSeq(ctx)
	require.NoError(t, err)

	_, err = Append(ctx, store, ratingTag, ratingEvent{PlayerID: "p-3", Delta: 3})
	require.NoError(t, err)

	ch, err := store.Events(ctx, checkpoint)
	require.NoError(t, err)
	results := drain(t, ch)
	require.Len(t, results, 1)
	require.Equal(t, "p-3", ratingTag.Unbox(results[0].Value).PlayerID)
}

func TestStoreLastSeqEmpty(t *testing.T) {
	store, _, _ := openTestStore(t)

	seq, err := store.LastSeq(context.Background())
	require.NoError(t, err)
	require.Zero(t, seq)
}

func TestStoreAppendRequiresBinding(t *testing.T) {
	store, _, _ := openTestStore(t)
	unbound := tag.New[ratingEvent]("ORPHAN")

	_, err := Append(context.Background(), store, unbound, ratingEvent{})
	require.Error(t, err)
	require.Contains(t, err.Error(), "no codec binding")
}

func TestStoreUnknownTypeRidesResults(t *testing.T) {
	store, _, _ := openTestStore(t)
	ctx := context.Background()

	_, err := store.DB().ExecContext(ctx,
		`INSERT INTO events(event_type, payload, created_at) VALUES(?, ?, ?)`,
		"GHOST", []byte(`{}`), time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	ch, err := store.Events(ctx, 0)
	require.NoError(t, err)
	results := drain(t, ch)
	require.Len(t, results, 1)
	require.True(t, errors.IsNoDecoder(results[0].Err))
	require.Equal(t, "GHOST", results[0].WireName)
}

func TestStoreMalformedPayloadRidesResults(t *testing.T) {
	store, _, _ := openTestStore(t)
	ctx := context.Background()

	_, err := store.DB().ExecContext(ctx,
		`INSERT INTO events(event_type, payload, created_at) VALUES(?, ?, ?)`,
		"RATING", []byte(`{"playerId":`), time.Now().UTC().Format(time.RFC3339Nano))
	require.NoError(t, err)

	ch, err := store.Events(ctx, 0)
	require.NoError(t, err)
	results := drain(t, ch)
	require.Len(t, results, 1)
	require.True(t, errors.IsDecodeFailed(results[0].Err))
}

func TestStorePagination(t *testing.T) {
	store, ratingTag, _ := openTestStore(t)
	ctx := context.Background()

	for i := 0; i < 7; i++ {
		_, err := Append(ctx, store, ratingTag, ratingEvent{PlayerID: fmt.Sprintf("p-%d", i), Delta: i})
		require.NoError(t, err)
	}

	var reports []source.Progress
	ch, err := store.Events(ctx, 0,
		source.WithPageSize(2),
		source.WithProgressHandler(func(p source.Progress) {
			reports = append(reports, p)
		}),
	)
	require.NoError(t, err)

	results := drain(t, ch)
	require.Len(t, results, 7)
	require.Equal(t, 4, results[6].Meta.Page)

	// One report per page plus the final one.
	require.Len(t, reports, 5)
	final := reports[len(reports)-1]
	require.Equal(t, int64(7), final.ItemsProcessed)
	require.Equal(t, 4, final.PagesProcessed)
}

func TestStoreFromFeedsRun(t *testing.T) {
	store, ratingTag, matchTag := openTestStore(t)
	ctx := context.Background()

	_, err := Append(ctx, store, ratingTag, ratingEvent{PlayerID: "p-1", Delta: 7})
	require.NoError(t, err)
	_, err = Append(ctx, store, matchTag, matchEvent{MatchID: "m-1", Winner: "p-1"})
	require.NoError(t, err)

	reg := dispatch.NewRegistry[string]()
	require.NoError(t, dispatch.Register(reg, ratingTag, func(e ratingEvent) (string, error) {
		return fmt.Sprintf("rating:%s:%d", e.PlayerID, e.Delta), nil
	}))
	require.NoError(t, dispatch.Register(reg, matchTag, func(e matchEvent) (string, error) {
		return "match:" + e.MatchID, nil
	}))

	var outputs []string
	stats, err := source.Run(ctx, store.From(0), reg, func(s string) error {
		outputs = append(outputs, s)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), stats.Dispatched)
	require.Equal(t, []string{"rating:p-1:7", "match:m-1"}, outputs)
}

func TestStoreReadAfterClose(t *testing.T) {
	store, _, _ := openTestStore(t)
	require.NoError(t, store.Close())

	ch, err := store.Events(context.Background(), 0)
	require.NoError(t, err)

	results := drain(t, ch)
	require.Len(t, results, 1)
	require.Error(t, results[0].Err)
}
