package main

import (
	"errors"
	"net/http"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/siahsang/news/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listArticlesSQL = `COUNT\(\*\) OVER \(\) AS total_count`

type articlesBody struct {
	Articles   []models.ArticleSummary `json:"articles"`
	TotalCount int64                   `json:"total_count"`
}

type articleBody struct {
	Article models.Article `json:"article"`
}

func TestListArticles(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery(listArticlesSQL).WillReturnRows(
		sqlmock.NewRows(summaryRowColumns).
			AddRow(3, "icellusedkars", "Eight pug gifs that remind me of mitch", "mitch", createdAt.AddDate(0, 1, 0), 0, "", 2, 2).
			AddRow(1, "butter_bridge", "Living in the shadow of a great man", "mitch", createdAt, 100, "", 11, 2),
	)

	rr := request(t, app, http.MethodGet, "/api/articles", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[articlesBody](t, rr)
	require.Len(t, body.Articles, 2)
	assert.Equal(t, int64(2), body.TotalCount)
	assert.Equal(t, int64(11), body.Articles[1].CommentCount)
	assert.True(t, body.Articles[0].CreatedAt.After(body.Articles[1].CreatedAt))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListArticlesByTopicWithoutArticles(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery(listArticlesSQL).WithArgs("paper").WillReturnRows(sqlmock.NewRows(summaryRowColumns))
	mock.ExpectQuery(getTopicSQL).WithArgs("paper").WillReturnRows(
		sqlmock.NewRows(topicRowColumns).AddRow("paper", "what books are made of"),
	)

	rr := request(t, app, http.MethodGet, "/api/articles?topic=paper", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[articlesBody](t, rr)
	assert.NotNil(t, body.Articles)
	assert.Empty(t, body.Articles)
	assert.Zero(t, body.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListArticlesUnknownTopic(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery(listArticlesSQL).WithArgs("dogs").WillReturnRows(sqlmock.NewRows(summaryRowColumns))
	mock.ExpectQuery(getTopicSQL).WithArgs("dogs").WillReturnRows(sqlmock.NewRows(topicRowColumns))

	rr := request(t, app, http.MethodGet, "/api/articles?topic=dogs", "")

	requireError(t, rr, http.StatusNotFound)
}

func TestListArticlesPaginated(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery(`ORDER BY a\.title ASC, a\.article_id ASC LIMIT \$1 OFFSET \$2`).WithArgs(int64(5), int64(5)).WillReturnRows(
		sqlmock.NewRows(summaryRowColumns).
			AddRow(6, "icellusedkars", "A", "mitch", createdAt, 0, "", 1, 6),
	)

	rr := request(t, app, http.MethodGet, "/api/articles?sort_by=title&order=asc&limit=5&p=2", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[articlesBody](t, rr)
	assert.Len(t, body.Articles, 1)
	assert.Equal(t, int64(6), body.TotalCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListArticlesRejectsInvalidQueries(t *testing.T) {
	tests := []struct {
		query string
		field string
	}{
		{"sort_by=bananas", "sort_by"},
		{"sort_by=votes%3BDROP%20TABLE%20articles", "sort_by"},
		{"order=sideways", "order"},
		{"topic=42", "topic"},
		{"limit=ten", "limit"},
		{"p=2", "p"},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			app, mock := newTestApplication(t)

			rr := request(t, app, http.MethodGet, "/api/articles?"+tt.query, "")

			body := requireError(t, rr, http.StatusBadRequest)
			assert.Contains(t, body.Details, tt.field)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestGetArticle(t *testing.T) {
	app, mock := newTestApplication(t)
	expectArticle(mock, 1)

	rr := request(t, app, http.MethodGet, "/api/articles/1", "")

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[articleBody](t, rr)
	assert.Equal(t, int64(1), body.Article.ID)
	assert.Equal(t, "I find this existence challenging", body.Article.Body)
	assert.Equal(t, int64(11), body.Article.CommentCount)
}

func TestGetArticleErrors(t *testing.T) {
	t.Run("not found", func(t *testing.T) {
		app, mock := newTestApplication(t)
		expectNoArticle(mock, 999)

		requireError(t, request(t, app, http.MethodGet, "/api/articles/999", ""), http.StatusNotFound)
	})

	for _, id := range []string{"banana", "0", "-1", "1.5", "2147483648", "9999999999"} {
		t.Run(id, func(t *testing.T) {
			app, mock := newTestApplication(t)

			body := requireError(t, request(t, app, http.MethodGet, "/api/articles/"+id, ""), http.StatusBadRequest)
			assert.Contains(t, body.Details, "article_id")
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateArticle(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("INSERT INTO articles AS a").
		WithArgs("Cats are great", "cats", "butter_bridge", "Purr", "https://images.example/cat.png").
		WillReturnRows(sqlmock.NewRows(articleRowColumns).
			AddRow(14, "Cats are great", "cats", "butter_bridge", "Purr", createdAt, 0, "https://images.example/cat.png", 0))

	rr := request(t, app, http.MethodPost, "/api/articles", `{
		"author": "butter_bridge",
		"title": "Cats are great",
		"body": "Purr",
		"topic": "cats",
		"article_img_url": "https://images.example/cat.png"
	}`)

	require.Equal(t, http.StatusCreated, rr.Code)
	body := decode[articleBody](t, rr)
	assert.Equal(t, int64(14), body.Article.ID)
	assert.Zero(t, body.Article.Votes)
	assert.Zero(t, body.Article.CommentCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateArticleRejectsInvalidBodies(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"missing title", `{"author": "butter_bridge", "body": "b", "topic": "cats"}`, "title"},
		{"numeric author", `{"author": "12", "title": "t", "body": "b", "topic": "cats"}`, "author"},
		{"numeric topic", `{"author": "butter_bridge", "title": "t", "body": "b", "topic": "7"}`, "topic"},
		{"bad image url", `{"author": "butter_bridge", "title": "t", "body": "b", "topic": "cats", "article_img_url": "picture"}`, "article_img_url"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mock := newTestApplication(t)

			body := requireError(t, request(t, app, http.MethodPost, "/api/articles", tt.body), http.StatusBadRequest)
			assert.Contains(t, body.Details, tt.field)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCreateArticleUnknownReference(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("INSERT INTO articles").WillReturnError(&pq.Error{Code: "23503"})

	rr := request(t, app, http.MethodPost, "/api/articles", `{"author": "nobody", "title": "t", "body": "b", "topic": "cats"}`)

	requireError(t, rr, http.StatusNotFound)
}

func TestUpdateArticleVotes(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("UPDATE articles").WithArgs(int64(-100), int64(1)).WillReturnRows(
		sqlmock.NewRows(articleRowColumns).
			AddRow(1, "Living in the shadow of a great man", "mitch", "butter_bridge", "body", createdAt, 0, "", 11),
	)

	rr := request(t, app, http.MethodPatch, "/api/articles/1", `{"inc_votes": -100}`)

	require.Equal(t, http.StatusOK, rr.Code)
	body := decode[articleBody](t, rr)
	assert.Zero(t, body.Article.Votes)
	assert.Equal(t, int64(11), body.Article.CommentCount)
}

func TestUpdateArticleVotesErrors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
	}{
		{"missing inc_votes", "/api/articles/1", `{}`, http.StatusBadRequest},
		{"inc_votes not a number", "/api/articles/1", `{"inc_votes": "cat"}`, http.StatusBadRequest},
		{"invalid id", "/api/articles/cat", `{"inc_votes": 1}`, http.StatusBadRequest},
		{"inc_votes above int32", "/api/articles/1", `{"inc_votes": 2147483648}`, http.StatusBadRequest},
		{"inc_votes below int32", "/api/articles/1", `{"inc_votes": -3000000000}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, mock := newTestApplication(t)

			requireError(t, request(t, app, http.MethodPatch, tt.target, tt.body), tt.status)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}

	t.Run("not found", func(t *testing.T) {
		app, mock := newTestApplication(t)
		mock.ExpectQuery("UPDATE articles").WithArgs(int64(1), int64(999)).WillReturnRows(sqlmock.NewRows(articleRowColumns))

		requireError(t, request(t, app, http.MethodPatch, "/api/articles/999", `{"inc_votes": 1}`), http.StatusNotFound)
	})
}

func TestDeleteArticle(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectExec("DELETE FROM articles").WithArgs(int64(1)).WillReturnResult(sqlmock.NewResult(0, 1))

	rr := request(t, app, http.MethodDelete, "/api/articles/1", "")

	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Empty(t, rr.Body.String())
}

func TestDeleteArticleNotFound(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectExec("DELETE FROM articles").WithArgs(int64(999)).WillReturnResult(sqlmock.NewResult(0, 0))

	requireError(t, request(t, app, http.MethodDelete, "/api/articles/999", ""), http.StatusNotFound)
}

func TestDatabaseFailuresDoNotLeakDetails(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery(getArticleSQL).WillReturnError(errors.New("connection reset by peer"))

	rr := request(t, app, http.MethodGet, "/api/articles/1", "")

	body := requireError(t, rr, http.StatusInternalServerError)
	assert.Equal(t, "Internal Server Error", body.Msg)
	assert.Empty(t, body.Details)
	assert.NotContains(t, rr.Body.String(), "connection reset")
}

func TestInvalidTextRepresentationIsBadRequest(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("UPDATE articles").WillReturnError(&pq.Error{Code: "22P02"})

	requireError(t, request(t, app, http.MethodPatch, "/api/articles/1", `{"inc_votes": 1}`), http.StatusBadRequest)
}

func TestOutOfRangeParameterIsBadRequest(t *testing.T) {
	app, mock := newTestApplication(t)
	mock.ExpectQuery("UPDATE articles").WillReturnError(&pq.Error{Code: "22003"})

	rr := request(t, app, http.MethodPatch, "/api/articles/1", `{"inc_votes": 2147483647}`)

	body := requireError(t, rr, http.StatusBadRequest)
	assert.Equal(t, "bad request", body.Msg)
}

func TestListArticlesTopicSpelledLikeSpecialFloat(t *testing.T) {
	for _, topic := range []string{"nan", "inf", "Infinity"} {
		t.Run(topic, func(t *testing.T) {
			app, mock := newTestApplication(t)
			mock.ExpectQuery(listArticlesSQL).WithArgs(topic).WillReturnRows(sqlmock.NewRows(summaryRowColumns))
			mock.ExpectQuery(getTopicSQL).WithArgs(topic).WillReturnRows(
				sqlmock.NewRows(topicRowColumns).AddRow(topic, "not a number"),
			)

			rr := request(t, app, http.MethodGet, "/api/articles?topic="+topic, "")

			require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
