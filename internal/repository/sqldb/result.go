package sqldb

import (
	"context"
	"fmt"

	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

var _ repository.ResultRepository = (*ResultDB)(nil)

// ResultDB is the game_results table.
type ResultDB struct {
	db *DB
}

// Create inserts result and sets its ID. A second result for the same game
// violates the UNIQUE(game_id) constraint and fails with apperror.ErrConflict.
func (r *ResultDB) Create(ctx context.Context, result *model.GameResult) error {
	err := r.db.queryRow(ctx, r.db.conn,
		`INSERT INTO game_results (home, away, game_id)
		 VALUES (?, ?, ?)
		 RETURNING id`,
		result.Home,
		result.Away,
		result.GameID,
	).Scan(&result.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting result for game %d: %w", result.GameID, translate(err, "game_result"))
	}
	return nil
}

func (r *ResultDB) All(ctx context.Context) ([]model.GameResult, error) {
	return r.Find(ctx, repository.ResultCriteria{})
}

func (r *ResultDB) Find(ctx context.Context, c repository.ResultCriteria) ([]model.GameResult, error) {
	var w where
	eq(&w, "id", c.ID)
	eq(&w, "game_id", c.GameID)

	rows, err := r.db.query(ctx, r.db.conn,
		`SELECT id, home, away, game_id FROM game_results`+w.String()+` ORDER BY id`,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing results: %w", translate(err, "game_result"))
	}
	defer rows.Close()

	results := make([]model.GameResult, 0)
	for rows.Next() {
		var gr model.GameResult
		if err := rows.Scan(&gr.ID, &gr.Home, &gr.Away, &gr.GameID); err != nil {
			return nil, fmt.Errorf("sqldb: scanning result row: %w", err)
		}
		results = append(results, gr)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating results: %w", translate(err, "game_result"))
	}
	return results, nil
}
