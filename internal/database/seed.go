package database

import (
	"context"
	"database/sql"
	_ "embed"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/utils/collectionutils"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/siahsang/news/models"
)

//go:embed seeddata/development.json
var developmentSeed []byte

type SeedComment struct {
	Body         string    `json:"body"`
	ArticleTitle string    `json:"article_title"`
	Author       string    `json:"author"`
	Votes        int64     `json:"votes"`
	CreatedAt    time.Time `json:"created_at"`
}

// SeedData is a full dataset. Comments point at articles by title since
// article ids are assigned on insert.
type SeedData struct {
	Topics   []models.Topic   `json:"topics"`
	Users    []models.User    `json:"users"`
	Articles []models.Article `json:"articles"`
	Comments []SeedComment    `json:"comments"`
}

func DevelopmentSeed() (*SeedData, error) {
	var data SeedData
	if err := json.Unmarshal(developmentSeed, &data); err != nil {
		return nil, xerrors.Newf("decode development seed: %w", err)
	}
	return &data, nil
}

// Seed replaces the contents of every table with data inside one transaction.
func Seed(ctx context.Context, session databaseutils.Session, sqlTemplate *databaseutils.SQLTemplate, data *SeedData, log *slog.Logger) error {
	articleIDs, err := databaseutils.DoTransactionally(ctx, session, func(txCtx context.Context) (map[string]int64, error) {
		const truncateSQL = `TRUNCATE comments, articles, users, topics RESTART IDENTITY CASCADE`
		if _, err := databaseutils.Execute(sqlTemplate, txCtx, truncateSQL); err != nil {
			return nil, xerrors.New(err)
		}

		for _, topic := range data.Topics {
			const insertSQL = `INSERT INTO topics (slug, description) VALUES ($1, $2)`
			if _, err := databaseutils.Execute(sqlTemplate, txCtx, insertSQL, topic.Slug, topic.Description); err != nil {
				return nil, xerrors.New(err)
			}
		}

		for _, user := range data.Users {
			const insertSQL = `INSERT INTO users (username, name, avatar_url) VALUES ($1, $2, $3)`
			if _, err := databaseutils.Execute(sqlTemplate, txCtx, insertSQL, user.Username, user.Name, user.AvatarURL); err != nil {
				return nil, xerrors.New(err)
			}
		}

		inserted := make([]*models.Article, 0, len(data.Articles))
		for _, article := range data.Articles {
			const insertSQL = `
				INSERT INTO articles (title, topic, author, body, created_at, votes, article_img_url)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING article_id, title
			`
			row, err := databaseutils.ExecuteSingleQuery(sqlTemplate, txCtx, insertSQL, func(rows *sql.Rows) (*models.Article, error) {
				var a models.Article
				if err := rows.Scan(&a.ID, &a.Title); err != nil {
					return nil, xerrors.New(err)
				}
				return &a, nil
			}, article.Title, article.Topic, article.Author, article.Body, article.CreatedAt, article.Votes, article.ArticleImgURL)
			if err != nil {
				return nil, xerrors.New(err)
			}
			inserted = append(inserted, row)
		}

		ids := collectionutils.Associate(inserted, func(a *models.Article) (string, int64) {
			return a.Title, a.ID
		})

		for _, comment := range data.Comments {
			articleID, ok := ids[comment.ArticleTitle]
			if !ok {
				return nil, xerrors.Newf("seed comment references unknown article %q", comment.ArticleTitle)
			}
			const insertSQL = `INSERT INTO comments (body, article_id, author, votes, created_at) VALUES ($1, $2, $3, $4, $5)`
			if _, err := databaseutils.Execute(sqlTemplate, txCtx, insertSQL, comment.Body, articleID, comment.Author, comment.Votes, comment.CreatedAt); err != nil {
				return nil, xerrors.New(err)
			}
		}

		return ids, nil
	})
	if err != nil {
		return err
	}

	log.Info("Database seeded",
		"topics", len(data.Topics),
		"users", len(data.Users),
		"articles", len(articleIDs),
		"comments", len(data.Comments))
	return nil
}
