package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/iliyamo/fyyur/internal/model"
)

// withTx runs fn inside a transaction. The transaction is committed when
// fn returns nil and rolled back otherwise.
func withTx(ctx context.Context, db *sqlx.DB, fn func(tx *sqlx.Tx) error) (err error) {
	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	err = fn(tx)
	return err
}

// insertID executes an INSERT and returns the new row id. PostgreSQL has no
// LastInsertId so the id comes back through RETURNING there.
func insertID(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (uint64, error) {
	if tx.DriverName() == "postgres" {
		var id uint64
		if err := tx.QueryRowxContext(ctx, tx.Rebind(query+" RETURNING id"), args...).Scan(&id); err != nil {
			return 0, err
		}
		return id, nil
	}
	res, err := tx.ExecContext(ctx, tx.Rebind(query), args...)
	if err != nil {
		return 0, err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// count runs a SELECT COUNT(*) style query inside tx.
func count(ctx context.Context, tx *sqlx.Tx, query string, args ...any) (int, error) {
	var n int
	err := tx.GetContext(ctx, &n, tx.Rebind(query), args...)
	return n, err
}

// loadSummaries lists id/name/city/state of table ordered by id and
// attaches the start times of the shows referencing each row through fk.
// table and fk are package constants, never user input.
func loadSummaries(ctx context.Context, db *sqlx.DB, table, fk string) ([]model.Summary, error) {
	var out []model.Summary
	if err := db.SelectContext(ctx, &out, "SELECT id, name, city, state FROM "+table+" ORDER BY id"); err != nil {
		return nil, err
	}
	var rows []struct {
		OwnerID   uint64    `db:"owner_id"`
		StartTime time.Time `db:"start_time"`
	}
	if err := db.SelectContext(ctx, &rows, "SELECT "+fk+" AS owner_id, start_time FROM shows ORDER BY start_time"); err != nil {
		return nil, err
	}
	index := make(map[uint64]int, len(out))
	for i := range out {
		index[out[i].ID] = i
	}
	for _, r := range rows {
		if i, ok := index[r.OwnerID]; ok {
			out[i].ShowTimes = append(out[i].ShowTimes, r.StartTime)
		}
	}
	return out, nil
}
