package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/siahsang/news/internal/config"
	"github.com/siahsang/news/internal/core"
	"github.com/siahsang/news/internal/utils/databaseutils"
	"github.com/stretchr/testify/require"
)

var (
	articleRowColumns = []string{"article_id", "title", "topic", "author", "body", "created_at", "votes", "article_img_url", "comment_count"}
	summaryRowColumns = []string{"article_id", "author", "title", "topic", "created_at", "votes", "article_img_url", "comment_count", "total_count"}
	commentRowColumns = []string{"comment_id", "votes", "created_at", "author", "body", "article_id"}
	topicRowColumns   = []string{"slug", "description"}
	userRowColumns    = []string{"username", "name", "avatar_url"}

	createdAt = time.Date(2020, 7, 9, 20, 11, 0, 0, time.UTC)
)

const (
	getArticleSQL = `WHERE a\.article_id = \$1`
	getTopicSQL   = `FROM topics WHERE slug = \$1`
	getUserSQL    = `FROM users WHERE username = \$1`
)

type errorBody struct {
	Status  int               `json:"status"`
	Msg     string            `json:"msg"`
	Details map[string]string `json:"details"`
}

// newTestApplication returns an application whose core talks to a sqlmock database.
// Handlers query concurrently, so expectations match in any order.
func newTestApplication(t *testing.T) (*application, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	mock.MatchExpectationsInOrder(false)

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return &application{
		config:  &config.Config{Server: config.ServerConfig{Env: "test"}},
		core:    core.NewCore(logger, databaseutils.NewSQLTemplate(db, time.Second)),
		logger:  logger,
		metrics: newMetrics(nil),
	}, mock
}

func request(t *testing.T, app *application, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	r := httptest.NewRequest(method, target, reader)
	if body != "" {
		r.Header.Set("Content-Type", "application/json")
	}

	rr := httptest.NewRecorder()
	app.routes().ServeHTTP(rr, r)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()

	var v T
	require.Equal(t, "application/json; charset=utf-8", rr.Header().Get("Content-Type"))
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&v))
	return v
}

func requireError(t *testing.T, rr *httptest.ResponseRecorder, status int) errorBody {
	t.Helper()

	require.Equal(t, status, rr.Code, rr.Body.String())
	body := decode[errorBody](t, rr)
	require.Equal(t, status, body.Status)
	require.NotEmpty(t, body.Msg)
	return body
}

func expectArticle(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(getArticleSQL).WithArgs(id).WillReturnRows(
		sqlmock.NewRows(articleRowColumns).
			AddRow(id, "Living in the shadow of a great man", "mitch", "butter_bridge", "I find this existence challenging", createdAt, 100, "https://images.example/1.jpg", 11),
	)
}

func expectNoArticle(mock sqlmock.Sqlmock, id int64) {
	mock.ExpectQuery(getArticleSQL).WithArgs(id).WillReturnRows(sqlmock.NewRows(articleRowColumns))
}
