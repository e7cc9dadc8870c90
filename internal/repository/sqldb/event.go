package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

var _ repository.EventRepository = (*EventDB)(nil)

// EventDB is the events table.
type EventDB struct {
	db *DB
}

const eventColumns = `id, game_id, description, odds, result_id, timestamp`

// Create inserts event, stamping it with the current time, and sets its ID.
// A game_id with no matching game fails with apperror.ErrConflict.
func (e *EventDB) Create(ctx context.Context, event *model.Event) error {
	event.Timestamp = time.Now().UTC()

	err := e.db.queryRow(ctx, e.db.conn,
		`INSERT INTO events (game_id, description, odds, result_id, timestamp)
		 VALUES (?, ?, ?, ?, ?)
		 RETURNING id`,
		event.GameID,
		event.Description,
		event.Odds,
		nullInt64(event.ResultID),
		event.Timestamp,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting event for game %d: %w", event.GameID, translate(err, "event"))
	}
	return nil
}

// All returns the newest repository.MaxEvents events.
func (e *EventDB) All(ctx context.Context) ([]model.Event, error) {
	return e.list(ctx,
		`SELECT `+eventColumns+` FROM events
		 ORDER BY timestamp DESC, id DESC
		 LIMIT ?`,
		repository.MaxEvents)
}

// Find returns every event matching c, newest first. Unlike All it is not
// bounded: a filter is expected to narrow the set.
func (e *EventDB) Find(ctx context.Context, c repository.EventCriteria) ([]model.Event, error) {
	var w where
	eq(&w, "id", c.ID)
	eq(&w, "odds", c.Odds)
	eq(&w, "game_id", c.GameID)

	return e.list(ctx,
		`SELECT `+eventColumns+` FROM events`+w.String()+` ORDER BY timestamp DESC, id DESC`,
		w.args...)
}

// Delete removes the event with the given ID and returns the deleted row.
func (e *EventDB) Delete(ctx context.Context, id int64) (*model.Event, error) {
	var deleted *model.Event
	err := e.db.withTx(ctx, func(tx *sql.Tx) error {
		row := e.db.queryRow(ctx, tx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
		event, err := scanEvent(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.NotFound("event", strconv.FormatInt(id, 10))
			}
			return fmt.Errorf("sqldb: reading event %d: %w", id, translate(err, "event"))
		}

		if _, err := e.db.exec(ctx, tx, `DELETE FROM events WHERE id = ?`, id); err != nil {
			return fmt.Errorf("sqldb: deleting event %d: %w", id, translate(err, "event"))
		}
		deleted = event
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (e *EventDB) list(ctx context.Context, query string, args ...any) ([]model.Event, error) {
	rows, err := e.db.query(ctx, e.db.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing events: %w", translate(err, "event"))
	}
	defer rows.Close()

	events := make([]model.Event, 0)
	for rows.Next() {
		event, err := scanEvent(rows)
		if err != nil {
			return nil, fmt.Errorf("sqldb: scanning event row: %w", err)
		}
		events = append(events, *event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating events: %w", translate(err, "event"))
	}
	return events, nil
}

func scanEvent(s scanner) (*model.Event, error) {
	var (
		event    model.Event
		resultID sql.NullInt64
	)
	if err := s.Scan(
		&event.ID, &event.GameID, &event.Description, &event.Odds,
		&resultID, &event.Timestamp,
	); err != nil {
		return nil, err
	}
	if resultID.Valid {
		event.ResultID = &resultID.Int64
	}
	return &event, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}
