package service

import (
	"context"
	"sort"
	"strconv"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

// The fakes below are in-memory stand-ins for the repository interfaces.
// Each counts its calls so tests can assert that nothing touched the store.

type fakeUserRepo struct {
	users  []model.User
	nextID int64
	calls  int

	// hideOnLookup makes FindByEmailOrUsername miss existing rows, as a
	// concurrent signup would between the check and the insert.
	hideOnLookup bool
	err          error
}

func (f *fakeUserRepo) Create(_ context.Context, u *model.User) error {
	f.calls++
	if f.err != nil {
		return f.err
	}
	for _, existing := range f.users {
		if existing.Email == u.Email || existing.Username == u.Username {
			return apperror.ConstraintViolation("user", "duplicate value")
		}
	}
	f.nextID++
	u.ID = f.nextID
	f.users = append(f.users, *u)
	return nil
}

func (f *fakeUserRepo) GetUserByID(_ context.Context, id int64) (*model.User, error) {
	f.calls++
	for _, u := range f.users {
		if u.ID == id {
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
}

func (f *fakeUserRepo) All(ctx context.Context) ([]model.User, error) {
	return f.Find(ctx, repository.UserCriteria{})
}

func (f *fakeUserRepo) Find(_ context.Context, c repository.UserCriteria) ([]model.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []model.User{}
	for _, u := range f.users {
		if c.ID != nil && u.ID != *c.ID {
			continue
		}
		if c.Email != nil && u.Email != *c.Email {
			continue
		}
		if c.Username != nil && u.Username != *c.Username {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

func (f *fakeUserRepo) FindByEmailOrUsername(_ context.Context, email, username string) ([]model.User, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := []model.User{}
	if f.hideOnLookup {
		return out, nil
	}
	for _, u := range f.users {
		if u.Email == email || u.Username == username {
			out = append(out, u)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) DeleteByEmail(_ context.Context, email string) (*model.User, error) {
	f.calls++
	for i, u := range f.users {
		if u.Email == email {
			f.users = append(f.users[:i], f.users[i+1:]...)
			return &u, nil
		}
	}
	return nil, apperror.NotFound("user", email)
}

type fakeSessionRepo struct {
	byToken map[string]*model.Session
	nextID  int64
	calls   int
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{byToken: make(map[string]*model.Session)}
}

func (f *fakeSessionRepo) Create(_ context.Context, s *model.Session) error {
	f.calls++
	f.nextID++
	s.ID = f.nextID
	copied := *s
	f.byToken[s.Token] = &copied
	return nil
}

func (f *fakeSessionRepo) GetByToken(_ context.Context, token string) (*model.Session, error) {
	f.calls++
	s, ok := f.byToken[token]
	if !ok {
		return nil, apperror.NotFound("session", token)
	}
	copied := *s
	return &copied, nil
}

func (f *fakeSessionRepo) Update(_ context.Context, s *model.Session) error {
	f.calls++
	for _, stored := range f.byToken {
		if stored.ID == s.ID {
			stored.LogoutDate = s.LogoutDate
			return nil
		}
	}
	return apperror.NotFound("session", strconv.FormatInt(s.ID, 10))
}

type fakeResultRepo struct {
	results []model.GameResult
	calls   int
}

func (f *fakeResultRepo) Create(_ context.Context, r *model.GameResult) error {
	f.calls++
	for _, existing := range f.results {
		if existing.GameID == r.GameID {
			return apperror.ConstraintViolation("game_result", "duplicate value")
		}
	}
	r.ID = int64(len(f.results) + 1)
	f.results = append(f.results, *r)
	return nil
}

func (f *fakeResultRepo) All(ctx context.Context) ([]model.GameResult, error) {
	return f.Find(ctx, repository.ResultCriteria{})
}

func (f *fakeResultRepo) Find(_ context.Context, c repository.ResultCriteria) ([]model.GameResult, error) {
	f.calls++
	out := []model.GameResult{}
	for _, r := range f.results {
		if c.ID != nil && r.ID != *c.ID {
			continue
		}
		if c.GameID != nil && r.GameID != *c.GameID {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeResultRepo) finished(gameID int64) bool {
	for _, r := range f.results {
		if r.GameID == gameID {
			return true
		}
	}
	return false
}

type fakeGameRepo struct {
	games   []model.Game
	results *fakeResultRepo
	calls   int
}

func (f *fakeGameRepo) Create(_ context.Context, g *model.Game) error {
	f.calls++
	g.ID = int64(len(f.games) + 1)
	f.games = append(f.games, *g)
	return nil
}

func (f *fakeGameRepo) GetByID(_ context.Context, id int64) (*model.Game, error) {
	f.calls++
	for _, g := range f.games {
		if g.ID == id {
			return &g, nil
		}
	}
	return nil, apperror.NotFound("game", strconv.FormatInt(id, 10))
}

func (f *fakeGameRepo) All(ctx context.Context) ([]model.Game, error) {
	return f.Find(ctx, repository.GameCriteria{})
}

func (f *fakeGameRepo) Find(_ context.Context, c repository.GameCriteria) ([]model.Game, error) {
	f.calls++
	out := []model.Game{}
	for _, g := range f.games {
		if f.results != nil && f.results.finished(g.ID) {
			continue
		}
		if c.ID != nil && g.ID != *c.ID {
			continue
		}
		if c.League != nil && g.League != *c.League {
			continue
		}
		out = append(out, g)
	}
	return out, nil
}

type fakeEventRepo struct {
	events    []model.Event
	calls     int
	allCalls  int
	findCalls int
}

func (f *fakeEventRepo) Create(_ context.Context, e *model.Event) error {
	f.calls++
	e.ID = int64(len(f.events) + 1)
	f.events = append(f.events, *e)
	return nil
}

func (f *fakeEventRepo) All(_ context.Context) ([]model.Event, error) {
	f.calls++
	f.allCalls++
	out := append([]model.Event{}, f.events...)
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	if len(out) > repository.MaxEvents {
		out = out[:repository.MaxEvents]
	}
	return out, nil
}

func (f *fakeEventRepo) Find(_ context.Context, c repository.EventCriteria) ([]model.Event, error) {
	f.calls++
	f.findCalls++
	out := []model.Event{}
	for _, e := range f.events {
		if c.ID != nil && e.ID != *c.ID {
			continue
		}
		if c.Odds != nil && e.Odds != *c.Odds {
			continue
		}
		if c.GameID != nil && e.GameID != *c.GameID {
			continue
		}
		out = append(out, e)
	}
	return out, nil
}

func (f *fakeEventRepo) Delete(_ context.Context, id int64) (*model.Event, error) {
	f.calls++
	for i, e := range f.events {
		if e.ID == id {
			f.events = append(f.events[:i], f.events[i+1:]...)
			return &e, nil
		}
	}
	return nil, apperror.NotFound("event", strconv.FormatInt(id, 10))
}
