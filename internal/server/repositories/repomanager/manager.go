package repomanager

import (
	"context"
	"database/sql"

	"github.com/allbox-app/allbox/internal/dbx"
	"github.com/allbox-app/allbox/internal/server/repositories/devices"
	"github.com/allbox-app/allbox/internal/server/repositories/dialogs"
	"github.com/allbox-app/allbox/internal/server/repositories/files"
	"github.com/allbox-app/allbox/internal/server/repositories/messages"
)

// RepositoryManager vends repositories bound to a DBTX, so services can run
// several repositories inside one transaction via dbx.WithTx.
type RepositoryManager interface {
	Dialogs(db dbx.DBTX) dialogs.Repository
	Devices(db dbx.DBTX) devices.Repository
	Files(db dbx.DBTX) files.Repository
	Messages(db dbx.DBTX) messages.Repository
	RunMigrations(ctx context.Context, db *sql.DB) error
}
