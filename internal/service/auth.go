package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/xid"
	"go.uber.org/zap"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/auth"
	"github.com/sakif/bookie/internal/form"
	"github.com/sakif/bookie/internal/metrics"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

// AuthService handles signup, login and the session lifecycle.
//
// DEPENDENCIES (injected via NewAuthService):
//   - users      repository.UserRepository    → account records
//   - sessions   repository.SessionRepository → one row per login
//   - tokens     *auth.TokenService           → JWTs naming a session
//   - passwords  *auth.PasswordService        → bcrypt
//   - metrics    *metrics.Metrics             → may be nil
type AuthService struct {
	users     repository.UserRepository
	sessions  repository.SessionRepository
	tokens    *auth.TokenService
	passwords *auth.PasswordService
	metrics   *metrics.Metrics
	logger    *zap.Logger
}

func NewAuthService(
	users repository.UserRepository,
	sessions repository.SessionRepository,
	tokens *auth.TokenService,
	passwords *auth.PasswordService,
	m *metrics.Metrics,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:     users,
		sessions:  sessions,
		tokens:    tokens,
		passwords: passwords,
		metrics:   m,
		logger:    logger,
	}
}

// AuthResult bundles what a successful signup or login produces, so the
// handler can set the cookie and respond in one step.
type AuthResult struct {
	User    *model.User
	Session *model.Session
	Token   string
}

// Signup registers a new account and logs it in.
//
// ORDER OF CHECKS:
//  1. Password confirmation, then field rules. Nothing touches the store
//     until the form is valid.
//  2. Email/username lookup. A row with the same email is EmailTaken, any
//     other match is UsernameTaken.
//  3. Insert. Two signups racing past step 2 both reach the UNIQUE
//     constraint; the loser gets EmailTaken too.
func (s *AuthService) Signup(ctx context.Context, f form.SignupForm) (*AuthResult, error) {
	res, err := s.signup(ctx, f)
	s.metrics.AuthAttempt("signup", outcome(err))
	return res, err
}

func (s *AuthService) signup(ctx context.Context, f form.SignupForm) (*AuthResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.users.FindByEmailOrUsername(ctx, f.Email, f.Username)
	if err != nil {
		return nil, wrap("auth", "signup", err)
	}
	if err := takenError(existing, f.Email, f.Username); err != nil {
		return nil, err
	}

	hash, err := s.passwords.Hash(f.Password2)
	if err != nil {
		return nil, wrap("auth", "signup", err)
	}

	user := &model.User{
		Email:        f.Email,
		Username:     f.Username,
		PasswordHash: hash,
		Role:         f.Role,
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, apperror.ErrConflict) {
			return nil, apperror.EmailTaken(f.Email)
		}
		return nil, wrap("auth", "signup", err)
	}

	s.logger.Info("user signed up",
		zap.Int64("userID", user.ID),
		zap.String("username", user.Username),
		zap.String("role", string(user.Role)),
	)

	return s.openSession(ctx, user)
}

func takenError(existing []model.User, email, username string) error {
	for _, u := range existing {
		if u.Email == email {
			return apperror.EmailTaken(email)
		}
	}
	if len(existing) > 0 {
		return apperror.UsernameTaken(username)
	}
	return nil
}

// Login checks credentials and opens a new session.
func (s *AuthService) Login(ctx context.Context, f form.LoginForm) (*AuthResult, error) {
	res, err := s.login(ctx, f)
	s.metrics.AuthAttempt("login", outcome(err))
	return res, err
}

func (s *AuthService) login(ctx context.Context, f form.LoginForm) (*AuthResult, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}

	users, err := s.users.Find(ctx, repository.UserCriteria{Email: &f.Email})
	if err != nil {
		return nil, wrap("auth", "login", err)
	}
	if len(users) == 0 {
		return nil, apperror.EmailNotFound(f.Email)
	}
	user := users[0]

	if err := s.passwords.Verify(user.PasswordHash, f.Password); err != nil {
		if errors.Is(err, auth.ErrInvalidPassword) {
			return nil, apperror.IncorrectPassword()
		}
		return nil, wrap("auth", "login", err)
	}

	s.logger.Info("user logged in", zap.Int64("userID", user.ID))
	return s.openSession(ctx, &user)
}

func (s *AuthService) openSession(ctx context.Context, user *model.User) (*AuthResult, error) {
	session := &model.Session{
		UserID: user.ID,
		Token:  xid.New().String(),
	}
	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, wrap("auth", "opening session", err)
	}

	token, err := s.tokens.Generate(user.ID, user.Role, session.Token)
	if err != nil {
		return nil, wrap("auth", "issuing token", err)
	}

	return &AuthResult{User: user, Session: session, Token: token}, nil
}

// Logout closes the session. Closing an already closed session is a no-op.
func (s *AuthService) Logout(ctx context.Context, sessionToken string) error {
	session, err := s.sessions.GetByToken(ctx, sessionToken)
	if err != nil {
		return wrap("auth", "logout", err)
	}
	if !session.Active() {
		return nil
	}

	now := time.Now().UTC()
	session.LogoutDate = &now
	if err := s.sessions.Update(ctx, session); err != nil {
		return wrap("auth", "logout", err)
	}

	s.logger.Info("user logged out", zap.Int64("userID", session.UserID))
	return nil
}

// Resolve implements auth.Resolver. The JWT must verify and the session it
// names must exist, belong to the token's subject and still be open.
func (s *AuthService) Resolve(ctx context.Context, token string) (*auth.Identity, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, apperror.Unauthorized(err.Error())
	}
	userID, err := claims.UserID()
	if err != nil {
		return nil, apperror.Unauthorized(err.Error())
	}

	session, err := s.sessions.GetByToken(ctx, claims.SessionToken())
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return nil, apperror.Unauthorized("session does not exist")
		}
		return nil, wrap("auth", "resolving token", err)
	}
	if !session.Active() || session.UserID != userID {
		return nil, apperror.Unauthorized("session has ended")
	}

	return &auth.Identity{
		UserID:       userID,
		SessionToken: session.Token,
		Role:         claims.Role,
	}, nil
}

func (s *AuthService) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	user, err := s.users.GetUserByID(ctx, id)
	if err != nil {
		return nil, wrap("auth", "fetching user", err)
	}
	return user, nil
}

// DeleteUser removes an account by email. Its sessions go with it.
func (s *AuthService) DeleteUser(ctx context.Context, email string) (*model.User, error) {
	user, err := s.users.DeleteByEmail(ctx, email)
	if err != nil {
		return nil, wrap("auth", "deleting user", err)
	}
	s.logger.Info("user deleted", zap.Int64("userID", user.ID))
	return user, nil
}

func outcome(err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeSuccess
	case errors.Is(err, apperror.ErrValidation),
		errors.Is(err, apperror.ErrConflict),
		errors.Is(err, apperror.ErrUnauthorized):
		return metrics.OutcomeRejected
	}
	return metrics.OutcomeError
}
