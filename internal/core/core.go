package core

import (
	"database/sql"
	"errors"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/apperror"
	"github.com/siahsang/news/internal/utils/databaseutils"
)

// Core holds the entity accessors. Every accessor issues exactly one statement.
type Core struct {
	log         *slog.Logger
	sqlTemplate *databaseutils.SQLTemplate
}

func NewCore(log *slog.Logger, sqlTemplate *databaseutils.SQLTemplate) *Core {
	return &Core{
		log:         log,
		sqlTemplate: sqlTemplate,
	}
}

// notFoundOr turns a missing row into a not found error and wraps everything else with a stack.
func notFoundOr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return xerrors.New(apperror.NotFound())
	}
	return xerrors.New(err)
}

// checkAffected reports not found when a write touched no rows.
func checkAffected(affected int64, err error) error {
	if err != nil {
		return xerrors.New(err)
	}
	if affected == 0 {
		return xerrors.New(apperror.NotFound())
	}
	return nil
}
