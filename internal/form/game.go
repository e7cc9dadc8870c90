package form

import (
	"net/url"
	"strings"
	"time"

	"github.com/sakif/bookie/internal/apperror"
)

// StartLayouts are the accepted spellings of GameForm.Start, tried in order.
// Values without a zone are read as UTC.
var StartLayouts = []string{
	"2006-01-02T15:04:05",
	"2006-01-02T15:04", // <input type="datetime-local">
	time.RFC3339,
}

type GameForm struct {
	Home  string `form:"home"  json:"home"  validate:"required"`
	Away  string `form:"away"  json:"away"  validate:"required,nefield=Home"`
	Start string `form:"start" json:"start" validate:"required"`
}

func (f *GameForm) Bind(v url.Values) error {
	f.Home = v.Get("home")
	f.Away = v.Get("away")
	f.Start = v.Get("start")
	return nil
}

// Validate normalizes team abbreviations to upper case before checking them.
func (f *GameForm) Validate() error {
	f.Home = strings.ToUpper(strings.TrimSpace(f.Home))
	f.Away = strings.ToUpper(strings.TrimSpace(f.Away))
	f.Start = strings.TrimSpace(f.Start)
	if err := check(f); err != nil {
		return err
	}
	_, err := f.ParseStart()
	return err
}

// ParseStart returns Start as a UTC time.
func (f *GameForm) ParseStart() (time.Time, error) {
	for _, layout := range StartLayouts {
		if t, err := time.Parse(layout, f.Start); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, apperror.ValidationFailed("start", "start must look like 2006-01-02T15:04")
}

// ResultForm records the final score of a game.
type ResultForm struct {
	GameID int64 `form:"game_id" json:"game_id" validate:"required,gt=0"`
	Home   int   `form:"home"    json:"home"    validate:"min=0"`
	Away   int   `form:"away"    json:"away"    validate:"min=0"`
}

func (f *ResultForm) Bind(v url.Values) error {
	var err error
	if f.GameID, err = parseInt64(v, "game_id"); err != nil {
		return err
	}
	if f.Home, err = parseInt(v, "home"); err != nil {
		return err
	}
	if f.Away, err = parseInt(v, "away"); err != nil {
		return err
	}
	return nil
}

func (f *ResultForm) Validate() error {
	return check(f)
}
