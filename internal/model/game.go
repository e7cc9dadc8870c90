package model

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// League is the sport category a Game belongs to.
type League string

const (
	LeagueNBA League = "NBA"
	LeagueNFL League = "NFL"
)

// Leagues lists every supported league in display order.
var Leagues = []League{LeagueNBA, LeagueNFL}

// ParseLeague is case-insensitive so that both /games/nba/form and
// /games/NBA/form resolve.
func ParseLeague(s string) (League, error) {
	l := League(strings.ToUpper(s))
	if slices.Contains(Leagues, l) {
		return l, nil
	}
	return "", fmt.Errorf("model: unknown league %q", s)
}

type Game struct {
	ID     int64     `json:"id"     db:"id"`
	League League    `json:"league" db:"league"`
	Home   string    `json:"home"   db:"home"`
	Away   string    `json:"away"   db:"away"`
	Start  time.Time `json:"start"  db:"start"`
}

// GameResult is the final score of a game. Its presence closes the game:
// open listings exclude any game that has one.
type GameResult struct {
	ID     int64 `json:"id"     db:"id"`
	Home   int   `json:"home"   db:"home"`
	Away   int   `json:"away"   db:"away"`
	GameID int64 `json:"gameId" db:"game_id"`
}
