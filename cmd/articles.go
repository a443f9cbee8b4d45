package main

import (
	"math"
	"net/http"

	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/stringutils"
	"github.com/siahsang/news/internal/validator"
	"github.com/siahsang/news/models"
	"golang.org/x/sync/errgroup"
)

func (app *application) listArticles(w http.ResponseWriter, r *http.Request) {
	q, err := filter.ParseArticleQuery(r.URL.Query())
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	var articles []*models.ArticleSummary
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		articles, err = app.core.ListArticles(ctx, q)
		return err
	})
	if q.Topic != "" {
		// An empty page is only valid for a topic that exists.
		g.Go(func() error {
			_, err := app.core.GetTopic(ctx, q.Topic)
			return err
		})
	}
	if err := g.Wait(); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	var totalCount int64
	if len(articles) > 0 {
		totalCount = articles[0].TotalCount
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"articles": articles, "total_count": totalCount}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) getArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := readIDParam(r, "article_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	article, err := app.core.GetArticle(r.Context(), articleID)
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) createArticle(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Author        string `json:"author" validate:"required"`
		Title         string `json:"title" validate:"required"`
		Body          string `json:"body" validate:"required"`
		Topic         string `json:"topic" validate:"required"`
		ArticleImgURL string `json:"article_img_url" validate:"omitempty,url"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	v := validator.New()
	v.CheckStruct(input)
	v.CheckNotBlank(input.Title, "title", "must be provided")
	v.CheckNotBlank(input.Body, "body", "must be provided")
	v.Check(!stringutils.LooksNumeric(input.Author), "author", "must be a username")
	v.Check(!stringutils.LooksNumeric(input.Topic), "topic", "must be a topic slug")
	if err := v.Err(); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	article, err := app.core.CreateArticle(r.Context(), &models.Article{
		Author:        input.Author,
		Title:         input.Title,
		Body:          input.Body,
		Topic:         input.Topic,
		ArticleImgURL: input.ArticleImgURL,
	})
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"article": article}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) updateArticleVotes(w http.ResponseWriter, r *http.Request) {
	articleID, err := readIDParam(r, "article_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	delta, err := app.readVoteDelta(w, r)
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	article, err := app.core.UpdateArticleVotes(r.Context(), articleID, delta)
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"article": article}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) deleteArticle(w http.ResponseWriter, r *http.Request) {
	articleID, err := readIDParam(r, "article_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.core.DeleteArticle(r.Context(), articleID); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// readVoteDelta reads a body of the form {"inc_votes": n}. votes is a 32-bit column.
func (app *application) readVoteDelta(w http.ResponseWriter, r *http.Request) (int64, error) {
	var input struct {
		IncVotes *int64 `json:"inc_votes" validate:"required"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		return 0, err
	}

	v := validator.New()
	v.CheckStruct(input)
	if input.IncVotes != nil {
		v.Check(*input.IncVotes >= math.MinInt32 && *input.IncVotes <= math.MaxInt32, "inc_votes", "is out of range")
	}
	if err := v.Err(); err != nil {
		return 0, err
	}

	return *input.IncVotes, nil
}
