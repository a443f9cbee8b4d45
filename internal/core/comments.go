package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	var comment models.Comment
	if err := rows.Scan(
		&comment.ID,
		&comment.Votes,
		&comment.CreatedAt,
		&comment.Author,
		&comment.Body,
		&comment.ArticleID,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &comment, nil
}

func (c *Core) ListComments(ctx context.Context, q filter.CommentQuery) ([]*models.Comment, error) {
	query, args := q.SQL()

	comments, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanComment, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return comments, nil
}

func (c *Core) CreateComment(ctx context.Context, comment *models.Comment) (*models.Comment, error) {
	const insertSQL = `
		INSERT INTO comments (body, author, article_id)
		VALUES ($1, $2, $3)
		RETURNING comment_id, votes, created_at, author, body, article_id
	`

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, insertSQL, scanComment, comment.Body, comment.Author, comment.ArticleID)
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Comment created", "comment_id", created.ID, "article_id", created.ArticleID)
	return created, nil
}

func (c *Core) UpdateCommentVotes(ctx context.Context, commentID int64, delta int64) (*models.Comment, error) {
	const updateSQL = `
		UPDATE comments
		SET votes = votes + $1
		WHERE comment_id = $2
		RETURNING comment_id, votes, created_at, author, body, article_id
	`

	comment, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanComment, delta, commentID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return comment, nil
}

func (c *Core) DeleteComment(ctx context.Context, commentID int64) error {
	const deleteSQL = `
		DELETE FROM comments
		WHERE comment_id = $1
	`

	return checkAffected(databaseutils.Execute(c.sqlTemplate, ctx, deleteSQL, commentID))
}
