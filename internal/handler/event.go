package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/repository"
	"github.com/sakif/bookie/internal/service"
)

type EventHandler struct {
	events *service.EventService
	games  *service.GameService
}

func NewEventHandler(events *service.EventService, games *service.GameService) *EventHandler {
	return &EventHandler{events: events, games: games}
}

// HandleList filters events by any of ?id=, ?odds= and ?game_id=. With
// no parameter it returns the newest events.
//
// HTTP: GET /events?odds=-110
func (h *EventHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var c repository.EventCriteria
	var err error
	if c.ID, err = queryInt64(q, "id"); err != nil {
		writeError(w, err)
		return
	}
	if c.Odds, err = queryInt(q, "odds"); err != nil {
		writeError(w, err)
		return
	}
	if c.GameID, err = queryInt64(q, "game_id"); err != nil {
		writeError(w, err)
		return
	}

	events, err := h.events.Query(r.Context(), c)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, events)
}

// HandleForm lists the open games a new event can be offered on.
//
// HTTP: GET /events/form
func (h *EventHandler) HandleForm(w http.ResponseWriter, r *http.Request) {
	games, err := h.games.List(r.Context(), repository.GameCriteria{})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"games": games})
}

// HandleCreate offers a new line.
//
// HTTP: POST /events/form   (Bookie)
func (h *EventHandler) HandleCreate(w http.ResponseWriter, r *http.Request) {
	var f form.EventForm
	if err := decode(w, r, &f); err != nil {
		writeError(w, err)
		return
	}

	event, err := h.events.Create(r.Context(), f)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

// HandleDelete removes an event and returns it.
//
// HTTP: DELETE /events/{id}   (Bookie)
func (h *EventHandler) HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathInt64(chi.URLParam(r, "id"), "id")
	if err != nil {
		writeError(w, err)
		return
	}

	event, err := h.events.Delete(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, event)
}
