package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

type EventService struct {
	events repository.EventRepository
	games  repository.GameRepository
	logger *zap.Logger
}

func NewEventService(events repository.EventRepository, games repository.GameRepository, logger *zap.Logger) *EventService {
	return &EventService{events: events, games: games, logger: logger}
}

// Create offers a new line on an existing game. An unknown game is
// apperror.ErrNotFound.
func (s *EventService) Create(ctx context.Context, f form.EventForm) (*model.Event, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	if _, err := s.games.GetByID(ctx, f.GameID); err != nil {
		return nil, wrap("event", "creating event", err)
	}

	event := &model.Event{GameID: f.GameID, Description: f.Description, Odds: f.Odds}
	if err := s.events.Create(ctx, event); err != nil {
		return nil, wrap("event", "creating event", err)
	}

	s.logger.Info("event created",
		zap.Int64("eventID", event.ID),
		zap.Int64("gameID", event.GameID),
		zap.Int("odds", event.Odds),
	)
	return event, nil
}

// All returns the newest events, at most repository.MaxEvents.
func (s *EventService) All(ctx context.Context) ([]model.Event, error) {
	events, err := s.events.All(ctx)
	if err != nil {
		return nil, wrap("event", "listing events", err)
	}
	return events, nil
}

// Query filters events by c. With no criterion set it behaves like All,
// bounded and newest first.
func (s *EventService) Query(ctx context.Context, c repository.EventCriteria) ([]model.Event, error) {
	if c.Empty() {
		return s.All(ctx)
	}
	events, err := s.events.Find(ctx, c)
	if err != nil {
		return nil, wrap("event", "querying events", err)
	}
	return events, nil
}

func (s *EventService) Delete(ctx context.Context, id int64) (*model.Event, error) {
	event, err := s.events.Delete(ctx, id)
	if err != nil {
		return nil, wrap("event", "deleting event", err)
	}
	s.logger.Info("event deleted", zap.Int64("eventID", id))
	return event, nil
}
