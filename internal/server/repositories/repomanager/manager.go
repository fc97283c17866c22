// Package repomanager hands out repositories bound to a DB handle, so
// services can run them against either the pool or an open transaction.
package repomanager

import (
	"context"
	"database/sql"

	"github.com/yshalenyk/ordertrack/internal/dbx"
	"github.com/yshalenyk/ordertrack/internal/server/repositories/refreshtokens"
	"github.com/yshalenyk/ordertrack/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	RefreshTokens(db dbx.DBTX) refreshtokens.Repository
}
