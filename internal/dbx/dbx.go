// Package dbx carries the database plumbing shared by the repositories:
// DBTX, the narrow query surface satisfied by both *sql.DB and *sql.Tx, and
// WithTx, which runs a function inside a single transaction.
package dbx

import (
	"context"
	"database/sql"
)

// DBTX is the handle repositories execute queries through. Code taking a
// DBTX runs against the pool or joins an open transaction, whichever the
// caller passes in.
type DBTX interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// WithTx begins a transaction on db, runs fn with the transactional handle,
// and commits when fn returns nil. Any error rolls back; a panic rolls back
// and is rethrown. The refresh rotation runs through here so the conditional
// revoke and the replacement record land atomically:
//
//	err := dbx.WithTx(ctx, db, nil, func(ctx context.Context, tx dbx.DBTX) error {
//	    repo := repos.RefreshTokens(tx)
//	    revoked, err := repo.Revoke(ctx, record.ID)
//	    if err != nil {
//	        return err
//	    }
//	    if !revoked {
//	        return common.ErrInvalidToken
//	    }
//	    _, err = repo.Create(ctx, record.UserID, newHash, expiresAt)
//	    return err
//	})
func WithTx(ctx context.Context, db *sql.DB, opts *sql.TxOptions, fn func(ctx context.Context, tx DBTX) error) (err error) {
	tx, err := db.BeginTx(ctx, opts)
	if err != nil {
		return err
	}

	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback()
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback()
			return
		}
		err = tx.Commit()
	}()

	err = fn(ctx, tx)
	return err
}
