package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

var _ repository.SessionRepository = (*SessionDB)(nil)

// SessionDB is the sessions table.
type SessionDB struct {
	db *DB
}

const sessionColumns = `id, user_id, token, login_date, logout_date`

// Create inserts session and sets its ID. LoginDate defaults to now.
func (s *SessionDB) Create(ctx context.Context, session *model.Session) error {
	if session.LoginDate.IsZero() {
		session.LoginDate = time.Now().UTC()
	}

	err := s.db.queryRow(ctx, s.db.conn,
		`INSERT INTO sessions (user_id, token, login_date, logout_date)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		session.UserID,
		session.Token,
		session.LoginDate,
		nullTime(session.LogoutDate),
	).Scan(&session.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting session for user %d: %w", session.UserID, translate(err, "session"))
	}
	return nil
}

func (s *SessionDB) GetByToken(ctx context.Context, token string) (*model.Session, error) {
	row := s.db.queryRow(ctx, s.db.conn,
		`SELECT `+sessionColumns+` FROM sessions WHERE token = ?`, token)

	session, err := scanSession(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("session", token)
		}
		return nil, fmt.Errorf("sqldb: getting session: %w", translate(err, "session"))
	}
	return session, nil
}

// Update persists the session's logout date. No other field is written.
func (s *SessionDB) Update(ctx context.Context, session *model.Session) error {
	result, err := s.db.exec(ctx, s.db.conn,
		`UPDATE sessions SET logout_date = ? WHERE id = ?`,
		nullTime(session.LogoutDate),
		session.ID,
	)
	if err != nil {
		return fmt.Errorf("sqldb: updating session %d: %w", session.ID, translate(err, "session"))
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("sqldb: checking rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperror.NotFound("session", strconv.FormatInt(session.ID, 10))
	}
	return nil
}

func scanSession(s scanner) (*model.Session, error) {
	var (
		session model.Session
		logout  sql.NullTime
	)
	if err := s.Scan(&session.ID, &session.UserID, &session.Token, &session.LoginDate, &logout); err != nil {
		return nil, err
	}
	if logout.Valid {
		session.LogoutDate = &logout.Time
	}
	return &session, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
