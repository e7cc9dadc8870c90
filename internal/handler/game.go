package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
	"github.com/sakif/bookie/internal/service"
)

type GameHandler struct {
	games *service.GameService
}

func NewGameHandler(games *service.GameService) *GameHandler {
	return &GameHandler{games: games}
}

// HandleList returns open games, optionally narrowed by ?league=.
//
// HTTP: GET /games?league=NBA
func (h *GameHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	var c repository.GameCriteria
	if raw := r.URL.Query().Get("league"); raw != "" {
		league, err := parseLeague(raw)
		if err != nil {
			writeError(w, err)
			return
		}
		c.League = &league
	}

	games, err := h.games.List(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, games)
}

// GameFormResponse is what a client needs to render the new-game form.
type GameFormResponse struct {
	League model.League `json:"league"`
	Teams  []model.Team `json:"teams"`
}

// HandleForm returns the roster of the league in the path.
//
// HTTP: GET /games/{league}/form
func (h *GameHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	league, err := parseLeague(chi.URLParam(r, "league"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, GameFormResponse{League: league, Teams: h.games.Teams(league)})
}

// HandleCreate schedules a game in the league named by the path.
//
// HTTP: POST /games/{league}/form   (Bookie)
func (h *GameHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	league, err := parseLeague(chi.URLParam(r, "league"))
	if err != nil {
		writeError(w, err)
		return
	}

	var f form.GameForm
	if err := decode(w, r, &f); err != nil {
		writeError(w, err)
		return
	}

	game, err := h.games.Create(r.Context(), league, f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

// HandleRecordResult stores a final score and closes the game.
//
// HTTP: POST /results/form   (Bookie)
func (h *GameHandler) HandleRecordResult(w http.ResponseWriter, r *http.Request) {
	var f form.ResultForm
	if err := decode(w, r, &f); err != nil {
		writeError(w, err)
		return
	}

	result, err := h.games.RecordResult(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, result)
}

func parseLeague(raw string) (model.League, error) {
	league, err := model.ParseLeague(raw)
	if err != nil {
		return "", apperror.ValidationFailed("league", "league must be NBA or NFL")
	}
	return league, nil
}
