// Package repository declares the storage contracts the services depend on.
//
// Every entity exposes the same verbs. Retrieval is described once by the
// generic Filterable interface: a criteria value C is a struct of pointer
// fields, where a nil field is a wildcard and each set field narrows the
// result with an equality predicate (all predicates are ANDed).
//
// Implementations live in subpackages (see repository/sqldb).
package repository

import (
	"context"

	"github.com/sakif/bookie/internal/model"
)

// MaxEvents bounds EventRepository.All.
const MaxEvents = 100

// Filterable is the retrieval half of every repository.
//
// Find with an empty criteria returns the same set as All, though All may
// apply its own ordering and limit. Zero matches is an empty slice, never
// an error.
type Filterable[T any, C any] interface {
	All(ctx context.Context) ([]T, error)
	Find(ctx context.Context, criteria C) ([]T, error)
}

type UserCriteria struct {
	ID       *int64
	Email    *string
	Username *string
}

type GameCriteria struct {
	ID     *int64
	League *model.League
}

type EventCriteria struct {
	ID     *int64
	Odds   *int
	GameID *int64
}

// Empty reports whether no criterion is set.
func (c EventCriteria) Empty() bool {
	return c.ID == nil && c.Odds == nil && c.GameID == nil
}

type ResultCriteria struct {
	ID     *int64
	GameID *int64
}

// UserRepository stores accounts. Create fails with apperror.ErrConflict
// when the email or username already exists.
type UserRepository interface {
	Filterable[model.User, UserCriteria]
	Create(ctx context.Context, user *model.User) error
	GetUserByID(ctx context.Context, id int64) (*model.User, error)
	// FindByEmailOrUsername returns every user matching either value.
	FindByEmailOrUsername(ctx context.Context, email, username string) ([]model.User, error)
	DeleteByEmail(ctx context.Context, email string) (*model.User, error)
}

// GameRepository stores games. All and Find only return open games, i.e.
// games without a GameResult. GetByID ignores that rule.
type GameRepository interface {
	Filterable[model.Game, GameCriteria]
	Create(ctx context.Context, game *model.Game) error
	GetByID(ctx context.Context, id int64) (*model.Game, error)
}

// EventRepository stores wager lines. All returns at most MaxEvents rows,
// newest first.
type EventRepository interface {
	Filterable[model.Event, EventCriteria]
	Create(ctx context.Context, event *model.Event) error
	Delete(ctx context.Context, id int64) (*model.Event, error)
}

// ResultRepository stores final scores, at most one per game.
type ResultRepository interface {
	Filterable[model.GameResult, ResultCriteria]
	Create(ctx context.Context, result *model.GameResult) error
}

// SessionRepository stores logins. Update only persists LogoutDate.
type SessionRepository interface {
	Create(ctx context.Context, session *model.Session) error
	GetByToken(ctx context.Context, token string) (*model.Session, error)
	Update(ctx context.Context, session *model.Session) error
}
