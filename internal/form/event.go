package form

import (
	"net/url"
	"strings"
)

// EventForm offers a new wager line on an existing game.
type EventForm struct {
	GameID      int64  `form:"game_id"     json:"game_id"     validate:"required,gt=0"`
	Description string `form:"description" json:"description" validate:"required,max=200"`
	Odds        int    `form:"odds"        json:"odds"        validate:"required,american_odds"`
}

func (f *EventForm) Bind(v url.Values) error {
	var err error
	if f.GameID, err = parseInt64(v, "game_id"); err != nil {
		return err
	}
	f.Description = strings.TrimSpace(v.Get("description"))
	if f.Odds, err = parseInt(v, "odds"); err != nil {
		return err
	}
	return nil
}

func (f *EventForm) Validate() error {
	return check(f)
}
