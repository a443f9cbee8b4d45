package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func scanTopic(rows *sql.Rows) (*models.Topic, error) {
	var topic models.Topic
	if err := rows.Scan(&topic.Slug, &topic.Description); err != nil {
		return nil, xerrors.New(err)
	}
	return &topic, nil
}

func (c *Core) ListTopics(ctx context.Context) ([]*models.Topic, error) {
	const query = `
		SELECT slug, description
		FROM topics
		ORDER BY slug
	`

	topics, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanTopic)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return topics, nil
}

func (c *Core) GetTopic(ctx context.Context, slug string) (*models.Topic, error) {
	const query = `
		SELECT slug, description
		FROM topics
		WHERE slug = $1
	`

	topic, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanTopic, slug)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return topic, nil
}

func (c *Core) CreateTopic(ctx context.Context, topic *models.Topic) (*models.Topic, error) {
	const insertSQL = `
		INSERT INTO topics (slug, description)
		VALUES ($1, $2)
		RETURNING slug, description
	`

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanTopic, topic.Slug, topic.Description)
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Topic created", "slug", created.Slug)
	return created, nil
}
