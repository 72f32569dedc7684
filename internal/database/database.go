package database

import (
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/ANIKETSHETTY47/socket-load-advisor/internal/config"
)

const schema = `
CREATE TABLE IF NOT EXISTS socket_groups (
	id   BIGSERIAL PRIMARY KEY,
	name TEXT NOT NULL UNIQUE
);
CREATE TABLE IF NOT EXISTS appliances (
	id         BIGSERIAL PRIMARY KEY,
	group_id   BIGINT NOT NULL REFERENCES socket_groups(id) ON DELETE CASCADE,
	name       TEXT NOT NULL,
	current    DOUBLE PRECISION NOT NULL DEFAULT 0,
	state      TEXT NOT NULL DEFAULT '',
	priority   TEXT NOT NULL DEFAULT '',
	position   INTEGER NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	UNIQUE (group_id, name),
	UNIQUE (group_id, position)
);`

func Connect() (*sqlx.DB, error) {
	return sqlx.Connect("pgx", config.DBDSN())
}

// Migrate creates the snapshot tables if they do not exist yet.
func Migrate(db *sqlx.DB) error {
	if _, err := db.Exec(schema); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	return nil
}
