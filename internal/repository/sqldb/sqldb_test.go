package sqldb

import (
	"context"
	"testing"
	"time"

	"github.com/sakif/bookie/internal/model"
)

// newTestDB returns a fresh in-memory database that is closed when the test
// finishes. Every test gets its own schema, so tests never share rows.
func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := New(":memory:")
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func createTestGame(t *testing.T, db *DB, league model.League, home, away string) *model.Game {
	t.Helper()
	game := &model.Game{
		League: league,
		Home:   home,
		Away:   away,
		Start:  time.Date(2026, 11, 1, 19, 30, 0, 0, time.UTC),
	}
	if err := db.Games().Create(context.Background(), game); err != nil {
		t.Fatalf("failed to create test game: %v", err)
	}
	return game
}

func TestNew_MigrationsAreIdempotent(t *testing.T) {
	db := newTestDB(t)

	if err := db.migrate(); err != nil {
		t.Fatalf("second migrate() error = %v", err)
	}
	if got := db.Driver(); got != "sqlite" {
		t.Errorf("Driver() = %q, want %q", got, "sqlite")
	}
}

func TestPing(t *testing.T) {
	db := newTestDB(t)
	if err := db.Ping(context.Background()); err != nil {
		t.Fatalf("Ping() error = %v", err)
	}
}

func TestForeignKeysEnabled(t *testing.T) {
	db := newTestDB(t)

	var on int
	if err := db.conn.QueryRow(`PRAGMA foreign_keys`).Scan(&on); err != nil {
		t.Fatalf("reading foreign_keys pragma: %v", err)
	}
	if on != 1 {
		t.Errorf("foreign_keys = %d, want 1", on)
	}
}

func TestDialectFor(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{"postgres://u:p@localhost:5432/bookie?sslmode=disable", "postgres"},
		{"postgresql://localhost/bookie", "postgres"},
		{"data/bookie.db", "sqlite"},
		{":memory:", "sqlite"},
		{"sqlite://data/bookie.db", "sqlite"},
	}
	for _, tt := range tests {
		if got := dialectFor(tt.dsn).name; got != tt.want {
			t.Errorf("dialectFor(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestSQLiteDataSource(t *testing.T) {
	tests := []struct {
		dsn  string
		want string
	}{
		{":memory:", ":memory:?_time_format=sqlite"},
		{"sqlite://data/bookie.db", "data/bookie.db?_time_format=sqlite"},
		{"file:x.db?mode=rwc", "file:x.db?mode=rwc&_time_format=sqlite"},
	}
	for _, tt := range tests {
		if got := sqliteDialect.dataSource(tt.dsn); got != tt.want {
			t.Errorf("dataSource(%q) = %q, want %q", tt.dsn, got, tt.want)
		}
	}
}

func TestRebind(t *testing.T) {
	pg := &DB{dialect: postgresDialect}
	lite := &DB{dialect: sqliteDialect}

	q := `SELECT id FROM events WHERE odds = ? AND game_id = ? LIMIT ?`

	if got, want := pg.rebind(q), `SELECT id FROM events WHERE odds = $1 AND game_id = $2 LIMIT $3`; got != want {
		t.Errorf("postgres rebind = %q, want %q", got, want)
	}
	if got := lite.rebind(q); got != q {
		t.Errorf("sqlite rebind changed the query: %q", got)
	}
}

func TestWhere(t *testing.T) {
	var w where
	if got := w.String(); got != "" {
		t.Errorf("empty where = %q, want empty string", got)
	}

	odds := -110
	var unsetID *int64
	eq(&w, "id", unsetID)
	eq(&w, "odds", &odds)
	w.add("id NOT IN (SELECT game_id FROM game_results)")

	if got, want := w.String(), " WHERE odds = ? AND id NOT IN (SELECT game_id FROM game_results)"; got != want {
		t.Errorf("where = %q, want %q", got, want)
	}
	if len(w.args) != 1 || w.args[0] != -110 {
		t.Errorf("args = %v, want [-110]", w.args)
	}
}
