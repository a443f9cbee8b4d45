package core

import (
	"context"
	"database/sql"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

const articleColumns = `a.article_id, a.title, a.topic, a.author, a.body, a.created_at, a.votes, a.article_img_url`

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	var article models.Article
	if err := rows.Scan(
		&article.ID,
		&article.Title,
		&article.Topic,
		&article.Author,
		&article.Body,
		&article.CreatedAt,
		&article.Votes,
		&article.ArticleImgURL,
		&article.CommentCount,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &article, nil
}

func scanArticleSummary(rows *sql.Rows) (*models.ArticleSummary, error) {
	var article models.ArticleSummary
	if err := rows.Scan(
		&article.ID,
		&article.Author,
		&article.Title,
		&article.Topic,
		&article.CreatedAt,
		&article.Votes,
		&article.ArticleImgURL,
		&article.CommentCount,
		&article.TotalCount,
	); err != nil {
		return nil, xerrors.New(err)
	}
	return &article, nil
}

func (c *Core) ListArticles(ctx context.Context, q filter.ArticleQuery) ([]*models.ArticleSummary, error) {
	query, args := q.SQL()

	articles, err := databaseutils.ExecuteQuery(c.sqlTemplate, ctx, query, scanArticleSummary, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return articles, nil
}

func (c *Core) GetArticle(ctx context.Context, articleID int64) (*models.Article, error) {
	const query = `
		SELECT ` + articleColumns + `,
			COUNT(c.comment_id) AS comment_count
		FROM articles a
		LEFT JOIN comments c ON c.article_id = a.article_id
		WHERE a.article_id = $1
		GROUP BY a.article_id
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, articleID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return article, nil
}

// CreateArticle inserts a new article. An empty image url leaves the column default in place.
func (c *Core) CreateArticle(ctx context.Context, article *models.Article) (*models.Article, error) {
	const insertSQL = `
		INSERT INTO articles AS a (title, topic, author, body, article_img_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + articleColumns + `, 0 AS comment_count
	`
	const insertWithDefaultImageSQL = `
		INSERT INTO articles AS a (title, topic, author, body)
		VALUES ($1, $2, $3, $4)
		RETURNING ` + articleColumns + `, 0 AS comment_count
	`

	query := insertSQL
	args := []any{article.Title, article.Topic, article.Author, article.Body}
	if article.ArticleImgURL == "" {
		query = insertWithDefaultImageSQL
	} else {
		args = append(args, article.ArticleImgURL)
	}

	created, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, query, scanArticle, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	c.log.Info("Article created", "article_id", created.ID, "author", created.Author, "topic", created.Topic)
	return created, nil
}

// UpdateArticleVotes adds delta to the article's votes and returns the updated article.
func (c *Core) UpdateArticleVotes(ctx context.Context, articleID int64, delta int64) (*models.Article, error) {
	const updateSQL = `
		WITH a AS (
			UPDATE articles
			SET votes = votes + $1
			WHERE article_id = $2
			RETURNING *
		)
		SELECT ` + articleColumns + `,
			(SELECT COUNT(*) FROM comments c WHERE c.article_id = a.article_id) AS comment_count
		FROM a
	`

	article, err := databaseutils.ExecuteSingleQuery(c.sqlTemplate, ctx, updateSQL, scanArticle, delta, articleID)
	if err != nil {
		return nil, notFoundOr(err)
	}
	return article, nil
}

// DeleteArticle removes the article. Its comments go with it through the foreign key cascade.
func (c *Core) DeleteArticle(ctx context.Context, articleID int64) error {
	const deleteSQL = `
		DELETE FROM articles
		WHERE article_id = $1
	`

	if err := checkAffected(databaseutils.Execute(c.sqlTemplate, ctx, deleteSQL, articleID)); err != nil {
		return err
	}

	c.log.Info("Article deleted", "article_id", articleID)
	return nil
}
