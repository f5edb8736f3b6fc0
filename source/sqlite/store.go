/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	_ "modernc.org/sqlite" // pure go sqlite driver

	"github.com/suparena/dispatch/codec"
	"github.com/suparena/dispatch/source"
	"github.com/suparena/dispatch/tag"
)

const schema = `CREATE TABLE IF NOT EXISTS events (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	event_type TEXT NOT NULL,
	payload    BLOB NOT NULL,
	created_at TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS events_by_type ON events(event_type, seq);`

// Store is an append-only journal of tagged events in a SQLite file.
//
// Events are stored as JSON blobs keyed by their wire name, so a journal
// written by one process can be replayed by another as long as both share
// codec bindings. Sequence numbers grow monotonically and never recycle,
// which makes them usable as resume points.
type Store struct {
	db     *sql.DB
	codecs *codec.Table
}

// Open opens (or creates) a journal at path.
func Open(path string, codecs *codec.Table) (*Store, error) {
	if path == "" {
		path = "dispatch.db"
	}
	if codecs == nil {
		return nil, errors.New("sqlite store needs a codec table")
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create events table: %w", err)
	}

	return &Store{db: db, codecs: codecs}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB exposes the underlying sql.DB for integration testing hooks.
func (s *Store) DB() *sql.DB { return s.db }

// LastSeq returns the highest sequence number in the journal, or 0 when
// the journal is empty. Feeding its result back into Events or From
// resumes the journal where the previous read stopped.
func (s *Store) LastSeq(ctx context.Context) (int64, error) {
	var seq sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(seq) FROM events`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("select max seq: %w", err)
	}
	return seq.Int64, nil
}

// Append writes one event to the journal and returns its sequence number.
// The tag must have a binding in the store's codec table; its wire name is
// stored alongside the payload.
//
// Append is a package-level function because Go methods cannot introduce
// type parameters.
func Append[T any](ctx context.Context, s *Store, tg tag.Tag[T], event T) (int64, error) {
	name, ok := s.codecs.NameFor(tg.ID())
	if !ok {
		return 0, fmt.Errorf("no codec binding for %s", tg)
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return 0, fmt.Errorf("failed to marshal event: %w", err)
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO events(event_type, payload, created_at) VALUES(?, ?, ?)`,
		name, payload, time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return 0, fmt.Errorf("insert event: %w", err)
	}

	seq, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return seq, nil
}

// Events replays the journal after the given sequence number, emitting one
// Result per event in append order. The returned channel is closed when
// the journal is exhausted or ctx is cancelled. Per-event decode problems
// ride Result.Err.
func (s *Store) Events(ctx context.Context, afterSeq int64, opts ...source.Option) (<-chan source.Result, error) {
	if s.db == nil {
		return nil, errors.New("sqlite store is not open")
	}

	options := source.ApplyOptions(opts...)
	out := make(chan source.Result, options.BufferSize)

	go s.pump(ctx, afterSeq, options, out)

	return out, nil
}

// From returns a Feed fixed at the given resume point, for wiring the
// journal into source.Run.
func (s *Store) From(afterSeq int64) source.Feed {
	return feedAt{store: s, after: afterSeq}
}

type feedAt struct {
	store *Store
	after int64
}

func (f feedAt) Events(ctx context.Context, opts ...source.Option) (<-chan source.Result, error) {
	return f.store.Events(ctx, f.after, opts...)
}

// eventRow is one journal row before decoding.
type eventRow struct {
	seq       int64
	eventType string
	payload   []byte
}

// pump pages through the journal and emits decoded results.
func (s *Store) pump(ctx context.Context, afterSeq int64, options source.Options, out chan<- source.Result) {
	defer close(out)

	var index int64
	var page int
	startTime := time.Now()
	var pumpErrors []error

	reportProgress := func() {
		if options.ProgressHandler == nil {
			return
		}
		progress := source.Progress{
			ItemsProcessed: index,
			PagesProcessed: page,
			Errors:         pumpErrors,
			StartTime:      startTime,
		}
		if elapsed := time.Since(startTime).Seconds(); elapsed > 0 {
			progress.CurrentRate = float64(progress.ItemsProcessed) / elapsed
		}
		options.ProgressHandler(progress)
	}

	cursor := afterSeq

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		rows, err := s.readPage(ctx, cursor, options.PageSize)
		if err != nil {
			// The error handler may elect to keep reading.
			if options.ErrorHandler != nil && options.ErrorHandler(err) {
				pumpErrors = append(pumpErrors, err)
				continue
			}
			result := source.Result{
				Err:  fmt.Errorf("read events: %w", err),
				Meta: source.Meta{Index: index, Page: page, Timestamp: time.Now()},
			}
			select {
			case <-ctx.Done():
			case out <- result:
			}
			return
		}

		if len(rows) == 0 {
			break
		}
		page++

		for _, row := range rows {
			result := s.decodeRow(row, index, page)
			index++

			select {
			case <-ctx.Done():
				return
			case out <- result:
			}

			if result.Err != nil {
				pumpErrors = append(pumpErrors, result.Err)
			}
		}

		cursor = rows[len(rows)-1].seq
		reportProgress()

		if len(rows) < int(options.PageSize) {
			break
		}
	}

	reportProgress()
}

func (s *Store) readPage(ctx context.Context, afterSeq int64, limit int32) ([]eventRow, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, event_type, payload FROM events WHERE seq > ? ORDER BY seq LIMIT ?`,
		afterSeq, limit)
	if err != nil {
		return nil, fmt.Errorf("select events: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var pageRows []eventRow
	for rows.Next() {
		var r eventRow
		if err := rows.Scan(&r.seq, &r.eventType, &r.payload); err != nil {
			return nil, fmt.Errorf("scan event: %w", err)
		}
		pageRows = append(pageRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate events: %w", err)
	}
	return pageRows, nil
}

// decodeRow converts one journal row into a tagged Result.
func (s *Store) decodeRow(row eventRow, index int64, page int) source.Result {
	meta := source.Meta{
		Index:     index,
		Page:      page,
		Timestamp: time.Now(),
	}

	value, err := s.codecs.DecodeJSON(row.eventType, row.payload)
	if err != nil {
		return source.Result{WireName: row.eventType, Err: err, Meta: meta}
	}

	return source.Result{Value: value, WireName: row.eventType, Meta: meta}
}
