package core

import (
	"database/sql"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/mingx/socialnet/internal/utils/databaseutils"
)

// Sentinel errors shared across the data layer. Handlers map these onto HTTP
// statuses with errors.Is switches.
var (
	NoRecordFound        = xerrors.Message("no record found")
	ErrForbidden         = xerrors.Message("operation not permitted on another user's resource")
	ErrSelfFollow        = xerrors.Message("users cannot follow themselves")
	ErrAlreadyLiked      = xerrors.Message("post is already liked by this user")
	ErrAlreadyReposted   = xerrors.Message("post is already reposted by this user")
	ErrDuplicateUsername = xerrors.Message("duplicate username")
	ErrDuplicateEmail    = xerrors.Message("duplicate email")
)

type Core struct {
	log         *slog.Logger
	db          *sql.DB
	sqlTemplate *databaseutils.SQLTemplate
}

func NewCore(dbConn *sql.DB, log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		db:          dbConn,
		sqlTemplate: sqlTemplate,
	}
}
