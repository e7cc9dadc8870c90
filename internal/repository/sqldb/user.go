package sqldb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/sakif/bookie/internal/apperror"
	"github.com/sakif/bookie/internal/model"
	"github.com/sakif/bookie/internal/repository"
)

// compile-time check that *UserDB implements repository.UserRepository
var _ repository.UserRepository = (*UserDB)(nil)

// UserDB is the users table.
type UserDB struct {
	db *DB
}

const userColumns = `id, email, username, password, role`

// Create inserts user and sets its generated ID.
// A duplicate email or username fails with apperror.ErrConflict.
func (u *UserDB) Create(ctx context.Context, user *model.User) error {
	err := u.db.queryRow(ctx, u.db.conn,
		`INSERT INTO users (email, username, password, role)
		 VALUES (?, ?, ?, ?)
		 RETURNING id`,
		user.Email,
		user.Username,
		user.PasswordHash,
		string(user.Role),
	).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("sqldb: inserting user %s: %w", user.Email, translate(err, "user"))
	}
	return nil
}

// GetUserByID retrieves a user by primary key.
// Returns apperror.ErrNotFound if no user exists with that ID.
func (u *UserDB) GetUserByID(ctx context.Context, id int64) (*model.User, error) {
	row := u.db.queryRow(ctx, u.db.conn,
		`SELECT `+userColumns+` FROM users WHERE id = ?`, id)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperror.NotFound("user", strconv.FormatInt(id, 10))
		}
		return nil, fmt.Errorf("sqldb: getting user %d: %w", id, translate(err, "user"))
	}
	return user, nil
}

func (u *UserDB) All(ctx context.Context) ([]model.User, error) {
	return u.Find(ctx, repository.UserCriteria{})
}

func (u *UserDB) Find(ctx context.Context, c repository.UserCriteria) ([]model.User, error) {
	var w where
	eq(&w, "id", c.ID)
	eq(&w, "email", c.Email)
	eq(&w, "username", c.Username)

	return u.list(ctx, `SELECT `+userColumns+` FROM users`+w.String()+` ORDER BY id`, w.args...)
}

// FindByEmailOrUsername backs the signup uniqueness check. Unlike Find, the
// two predicates are OR-ed.
func (u *UserDB) FindByEmailOrUsername(ctx context.Context, email, username string) ([]model.User, error) {
	return u.list(ctx,
		`SELECT `+userColumns+` FROM users WHERE email = ? OR username = ? ORDER BY id`,
		email, username)
}

// DeleteByEmail removes the user with the given email and returns it.
func (u *UserDB) DeleteByEmail(ctx context.Context, email string) (*model.User, error) {
	var deleted *model.User
	err := u.db.withTx(ctx, func(tx *sql.Tx) error {
		row := u.db.queryRow(ctx, tx,
			`SELECT `+userColumns+` FROM users WHERE email = ?`, email)
		user, err := scanUser(row)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperror.NotFound("user", email)
			}
			return fmt.Errorf("sqldb: reading user %s: %w", email, translate(err, "user"))
		}

		if _, err := u.db.exec(ctx, tx, `DELETE FROM users WHERE id = ?`, user.ID); err != nil {
			return fmt.Errorf("sqldb: deleting user %s: %w", email, translate(err, "user"))
		}
		deleted = user
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (u *UserDB) list(ctx context.Context, query string, args ...any) ([]model.User, error) {
	rows, err := u.db.query(ctx, u.db.conn, query, args...)
	if err != nil {
		return nil, fmt.Errorf("sqldb: listing users: %w", translate(err, "user"))
	}
	defer rows.Close()

	users := make([]model.User, 0)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("sqldb: scanning user row: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sqldb: iterating users: %w", translate(err, "user"))
	}
	return users, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanUser(s scanner) (*model.User, error) {
	var (
		user model.User
		role string
	)
	if err := s.Scan(&user.ID, &user.Email, &user.Username, &user.PasswordHash, &role); err != nil {
		return nil, err
	}
	user.Role = model.Role(role)
	return &user, nil
}
