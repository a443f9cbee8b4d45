package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func scanUser(rows *sql.Rows) (*models.User, error) {
	var user models.User
	if err := rows.Scan(&user.Username, &user.Name, &user.AvatarURL); err != nil {
		return nil, xerrors.New(err)
	}
	return &user, nil
}

func (c *Core) ListUsers(ctx context.Context) ([]*models.User, error) {
	const query = `
		SELECT username, name, avatar_url
		FROM users
		ORDER BY username
	`

	users, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanUser)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return users, nil
}

func (c *Core) GetUser(ctx context.Context, username string) (*models.User, error) {
	const query = `
		SELECT username, name, avatar_url
		FROM users
		WHERE username = $1
	`

	user, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanUser, username)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return user, nil
}
