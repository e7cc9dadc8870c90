package service

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

type GameService struct {
	games   repository.GameRepository
	results repository.ResultRepository
	logger  *zap.Logger
}

func NewGameService(games repository.GameRepository, results repository.ResultRepository, logger *zap.Logger) *GameService {
	return &GameService{games: games, results: results, logger: logger}
}

// Create schedules a game in league. Both teams must be on the league's
// roster and must differ.
func (s *GameService) Create(ctx context.Context, league model.League, f form.GameForm) (*model.Game, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if !model.HasTeam(league, f.Home) {
		return nil, apperror.ValidationFailed("home", fmt.Sprintf("%s is not an %s team", f.Home, league))
	}
	if !model.HasTeam(league, f.Away) {
		return nil, apperror.ValidationFailed("away", fmt.Sprintf("%s is not an %s team", f.Away, league))
	}
	start, err := f.ParseStart()
	if err != nil {
		return nil, err
	}

	game := &model.Game{League: league, Home: f.Home, Away: f.Away, Start: start}
	if err := s.games.Create(ctx, game); err != nil {
		return nil, wrap("game", "creating game", err)
	}

	s.logger.Info("game created",
		zap.Int64("gameID", game.ID),
		zap.String("league", string(league)),
		zap.String("matchup", game.Home+" vs "+game.Away),
	)
	return game, nil
}

// List returns open games matching c.
func (s *GameService) List(ctx context.Context, c repository.GameCriteria) ([]model.Game, error) {
	games, err := s.games.Find(ctx, c)
	if err != nil {
		return nil, wrap("game", "listing games", err)
	}
	return games, nil
}

// Get returns a game whether or not it has finished.
func (s *GameService) Get(ctx context.Context, id int64) (*model.Game, error) {
	game, err := s.games.GetByID(ctx, id)
	if err != nil {
		return nil, wrap("game", "getting game", err)
	}
	return game, nil
}

// RecordResult stores the final score, which closes the game. A game has at
// most one result.
func (s *GameService) RecordResult(ctx context.Context, f form.ResultForm) (*model.GameResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.games.GetByID(ctx, f.GameID); err != nil {
		return nil, wrap("game", "recording result", err)
	}

	gameID := f.GameID
	existing, err := s.results.Find(ctx, repository.ResultCriteria{GameID: &gameID})
	if err != nil {
		return nil, wrap("game", "recording result", err)
	}
	if len(existing) > 0 {
		return nil, apperror.Conflict("game_result", strconv.FormatInt(gameID, 10))
	}

	result := &model.GameResult{GameID: f.GameID, Home: f.Home, Away: f.Away}
	if err := s.results.Create(ctx, result); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.Conflict("game_result", strconv.FormatInt(gameID, 10))
		}
		return nil, wrap("game", "recording result", err)
	}

	s.logger.Info("game result recorded",
		zap.Int64("gameID", result.GameID),
		zap.Int("home", result.Home),
		zap.Int("away", result.Away),
	)
	return result, nil
}

// Teams returns the roster a game in league may be scheduled with.
func (s *GameService) Teams(league model.League) []model.Team {
	return model.TeamsFor(league)
}
