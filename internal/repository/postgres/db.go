package postgres

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func New(dsn string) (*sqlx.DB, error) {
	return sqlx.Connect("pgx", dsn)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
