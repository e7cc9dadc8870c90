package sqldb

import "strings"

// dialect captures everything that differs between the two backends.
type dialect struct {
	name          string
	driver        string
	numberedBinds bool // $1, $2 instead of ?
	singleConn    bool
	pragmas       []string
	schema        []string
	dataSource    func(dsn string) string
}

func dialectFor(dsn string) dialect {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return postgresDialect
	}
	return sqliteDialect
}

var sqliteDialect = dialect{
	name:       "sqlite",
	driver:     "sqlite",
	singleConn: true,
	pragmas: []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
	},
	// _time_format=sqlite stores timestamps as "2006-01-02 15:04:05.999999999-07:00",
	// which sorts lexically in time order for UTC values.
	dataSource: func(dsn string) string {
		dsn = strings.TrimPrefix(dsn, "sqlite://")
		if strings.Contains(dsn, "?") {
			return dsn + "&_time_format=sqlite"
		}
		return dsn + "?_time_format=sqlite"
	},
	// Timestamp columns are declared TIMESTAMP so the driver scans them
	// back into time.Time.
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id       INTEGER PRIMARY KEY AUTOINCREMENT,
			email    TEXT NOT NULL UNIQUE,
			username TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role     TEXT NOT NULL CHECK (role IN ('Bookie', 'Punter'))
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id     INTEGER PRIMARY KEY AUTOINCREMENT,
			league TEXT NOT NULL CHECK (league IN ('NBA', 'NFL')),
			home   TEXT NOT NULL,
			away   TEXT NOT NULL,
			start  TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_league ON games(league)`,
		`CREATE TABLE IF NOT EXISTS game_results (
			id      INTEGER PRIMARY KEY AUTOINCREMENT,
			home    INTEGER NOT NULL,
			away    INTEGER NOT NULL,
			game_id INTEGER NOT NULL UNIQUE REFERENCES games(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			game_id     INTEGER NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			description TEXT NOT NULL,
			odds        INTEGER NOT NULL,
			result_id   INTEGER REFERENCES game_results(id) ON DELETE SET NULL,
			timestamp   TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_events_game_id ON events(game_id)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			user_id     INTEGER NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token       TEXT NOT NULL UNIQUE,
			login_date  TIMESTAMP NOT NULL,
			logout_date TIMESTAMP
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	},
}

var postgresDialect = dialect{
	name:          "postgres",
	driver:        "postgres",
	numberedBinds: true,
	dataSource:    func(dsn string) string { return dsn },
	schema: []string{
		`CREATE TABLE IF NOT EXISTS users (
			id       BIGSERIAL PRIMARY KEY,
			email    VARCHAR NOT NULL UNIQUE,
			username VARCHAR NOT NULL UNIQUE,
			password VARCHAR NOT NULL,
			role     VARCHAR NOT NULL CHECK (role IN ('Bookie', 'Punter'))
		)`,
		`CREATE TABLE IF NOT EXISTS games (
			id     BIGSERIAL PRIMARY KEY,
			league VARCHAR NOT NULL CHECK (league IN ('NBA', 'NFL')),
			home   VARCHAR NOT NULL,
			away   VARCHAR NOT NULL,
			start  TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_games_league ON games(league)`,
		`CREATE TABLE IF NOT EXISTS game_results (
			id      BIGSERIAL PRIMARY KEY,
			home    INTEGER NOT NULL,
			away    INTEGER NOT NULL,
			game_id BIGINT NOT NULL UNIQUE REFERENCES games(id) ON DELETE CASCADE
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id          BIGSERIAL PRIMARY KEY,
			game_id     BIGINT NOT NULL REFERENCES games(id) ON DELETE CASCADE,
			description VARCHAR NOT NULL,
			odds        INTEGER NOT NULL,
			result_id   BIGINT REFERENCES game_results(id) ON DELETE SET NULL,
			timestamp   TIMESTAMPTZ NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_events_timestamp ON events(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_events_game_id ON events(game_id)`,
		`CREATE TABLE IF NOT EXISTS sessions (
			id          BIGSERIAL PRIMARY KEY,
			user_id     BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
			token       VARCHAR NOT NULL UNIQUE,
			login_date  TIMESTAMPTZ NOT NULL,
			logout_date TIMESTAMPTZ
		)`,
		`CREATE INDEX IF NOT EXISTS idx_sessions_user_id ON sessions(user_id)`,
	},
}
