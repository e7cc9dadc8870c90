package model

import "time"

// Event is a wager line offered on a game, e.g. "CHI (+3) vs DET (-3)" at -110.
//
// Odds use the American convention: negative odds are the stake needed to
// win 100, positive odds are the winnings on a stake of 100.
//
// ResultID stays nil until the line is graded against a GameResult.
type Event struct {
	ID          int64     `json:"id"          db:"id"`
	GameID      int64     `json:"gameId"      db:"game_id"`
	Description string    `json:"description" db:"description"`
	Odds        int       `json:"odds"        db:"odds"`
	ResultID    *int64    `json:"resultId"    db:"result_id"`
	Timestamp   time.Time `json:"timestamp"   db:"timestamp"`
}
