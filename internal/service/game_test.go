package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

func newGameFixture() (*GameService, *fakeGameRepo, *fakeResultRepo) {
	results := &fakeResultRepo{}
	games := &fakeGameRepo{results: results}
	return NewGameService(games, results, zap.NewNop()), games, results
}

func TestGameCreate(t *testing.T) {
	svc, games, _ := newGameFixture()

	g, err := svc.Create(context.Background(), model.LeagueNBA, form.GameForm{Home: "chi", Away: "DET", Start: "2026-11-01T19:30"})
	require.NoError(t, err)

	assert.Positive(t, g.ID)
	assert.Equal(t, model.LeagueNBA, g.League)
	assert.Equal(t, "CHI", g.Home)
	assert.Equal(t, time.Date(2026, 11, 1, 19, 30, 0, 0, time.UTC), g.Start)
	assert.Len(t, games.games, 1)
}

func TestGameCreate_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		league    model.League
		form      form.GameForm
		wantField string
	}{
		{"same team twice", model.LeagueNBA, form.GameForm{Home: "CHI", Away: "CHI", Start: "2026-11-01T19:30"}, "away"},
		{"home not in league", model.LeagueNBA, form.GameForm{Home: "GB", Away: "CHI", Start: "2026-11-01T19:30"}, "home"},
		{"away not in league", model.LeagueNFL, form.GameForm{Home: "GB", Away: "GSW", Start: "2026-11-01T19:30"}, "away"},
		{"bad start", model.LeagueNFL, form.GameForm{Home: "GB", Away: "CHI", Start: "next sunday"}, "start"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, games, _ := newGameFixture()

			_, err := svc.Create(context.Background(), tt.league, tt.form)
			require.True(t, errors.Is(err, apperror.ErrValidation), "got %v", err)

			var appErr *apperror.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, tt.wantField, appErr.Field)
			assert.Zero(t, games.calls)
		})
	}
}

func TestGameList_OnlyOpenGamesOfLeague(t *testing.T) {
	svc, _, _ := newGameFixture()
	ctx := context.Background()

	open, err := svc.Create(ctx, model.LeagueNBA, form.GameForm{Home: "BOS", Away: "MIA", Start: "2026-11-01T19:30"})
	require.NoError(t, err)
	finished, err := svc.Create(ctx, model.LeagueNBA, form.GameForm{Home: "LAL", Away: "GSW", Start: "2026-11-02T19:30"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, model.LeagueNFL, form.GameForm{Home: "CHI", Away: "GB", Start: "2026-11-03T19:30"})
	require.NoError(t, err)

	_, err = svc.RecordResult(ctx, form.ResultForm{GameID: finished.ID, Home: 101, Away: 99})
	require.NoError(t, err)

	nba := model.LeagueNBA
	got, err := svc.List(ctx, repository.GameCriteria{League: &nba})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, open.ID, got[0].ID)

	// A finished game can still be fetched directly.
	g, err := svc.Get(ctx, finished.ID)
	require.NoError(t, err)
	assert.Equal(t, "LAL", g.Home)
}

func TestRecordResult(t *testing.T) {
	svc, _, results := newGameFixture()
	ctx := context.Background()
	g, err := svc.Create(ctx, model.LeagueNFL, form.GameForm{Home: "NE", Away: "NYJ", Start: "2026-11-01T13:00"})
	require.NoError(t, err)

	r, err := svc.RecordResult(ctx, form.ResultForm{GameID: g.ID, Home: 24, Away: 17})
	require.NoError(t, err)
	assert.Equal(t, g.ID, r.GameID)

	_, err = svc.RecordResult(ctx, form.ResultForm{GameID: g.ID, Home: 0, Away: 0})
	assert.True(t, errors.Is(err, apperror.ErrConflict), "second result, got %v", err)
	assert.Len(t, results.results, 1)

	_, err = svc.RecordResult(ctx, form.ResultForm{GameID: 404, Home: 1, Away: 0})
	assert.True(t, errors.Is(err, apperror.ErrNotFound), "unknown game, got %v", err)

	_, err = svc.RecordResult(ctx, form.ResultForm{GameID: g.ID, Home: -3})
	assert.True(t, errors.Is(err, apperror.ErrValidation))
}

func TestTeams(t *testing.T) {
	svc, _, _ := newGameFixture()
	assert.Len(t, svc.Teams(model.LeagueNBA), 30)
	assert.Nil(t, svc.Teams(model.League("NHL")))
}
