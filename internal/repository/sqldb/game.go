package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

var _ repository.GameRepository = (*GameDB)(nil)

// GameDB is the games table.
type GameDB struct {
	db *DB
}

const gameColumns = `id, league, home, away, start`

// Create inserts game and sets its generated ID.
func (g *GameDB) Create(ctx context.Context, game *model.Game) error {
	err := g.db.queryRow(ctx, g.db.conn,
		`INSERT INTO games (league, home, away, start)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		string(game.League),
		game.Home,
		game.Away,
		game.Start,
	).Scan(&game.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting game %s vs %s: %w", game.Home, game.Away, translate(err, "game"))
	}
	return nil
}

// GetByID reads a game whether or not it has a result.
func (g *GameDB) GetByID(ctx context.Context, id int64) (*model.Game, error) {
	row := g.db.queryRow(ctx, g.db.conn,
		`SELECT `+gameColumns+` FROM games WHERE id = ?`, id)

	game, err := scanGame(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("game", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqldb: getting game %d: %w", id, translate(err, "game"))
	}
	return game, nil
}

// All returns every open game.
func (g *GameDB) All(ctx context.Context) ([]model.Game, error) {
	return g.Find(ctx, repository.GameCriteria{})
}

// Find returns open games matching c.
//
// OPEN GAMES:
// A game is open until a row in game_results references it. The semi-join
//
//	id NOT IN (SELECT game_id FROM game_results)
//
// is always present; the league and id predicates are optional. One query
// shape serves NBA, NFL and "any league".
func (g *GameDB) Find(ctx context.Context, c repository.GameCriteria) ([]model.Game, error) {
	var w where
	w.add("id NOT IN (SELECT game_id FROM game_results)")
	if c.League != nil {
		w.add("league = ?", string(*c.League))
	}
	eq(&w, "id", c.ID)

	rows, err := g.db.query(ctx, g.db.conn,
		`SELECT `+gameColumns+` FROM games`+w.String()+` ORDER BY start, id`,
		w.args...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing games: %w", translate(err, "game"))
	}
	defer rows.Close()

	games := make([]model.Game, 0)
	for rows.Next() {
		game, err := scanGame(rows)
		if err != nil {
			return nil, fmt.Errorf("sqldb: scanning game row: %w", err)
		}
		games = append(games, *game)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating games: %w", translate(err, "game"))
	}
	return games, nil
}

func scanGame(s scanner) (*model.Game, error) {
	var (
		game   model.Game
		league string
	)
	if err := s.Scan(&game.ID, &league, &game.Home, &game.Away, &game.Start); err != nil {
		return nil, err
	}
	game.League = model.League(league)
	return &game, nil
}
