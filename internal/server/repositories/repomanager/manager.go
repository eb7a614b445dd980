package repomanager

import (
	"context"
	"database/sql"

	"github.com/rjrato/Write-it-V2-Backend/internal/dbx"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/repositories/notes"
	"github.com/rjrato/Write-it-V2-Backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	Users(db dbx.DBTX) users.Repository
	Notes(db dbx.DBTX) notes.Repository
}
