package main

import (
	"net/http"

	"github.com/siahsang/news/internal/filter"
	"github.com/siahsang/news/internal/utils/stringutils"
	"github.com/siahsang/news/internal/validator"
	"github.com/siahsang/news/models"
	"golang.org/x/sync/errgroup"
)

func (app *application) listComments(w http.ResponseWriter, r *http.Request) {
	articleID, err := readIDParam(r, "article_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	q, err := filter.ParseCommentQuery(articleID, r.URL.Query())
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	var comments []*models.Comment
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		var err error
		comments, err = app.core.ListComments(ctx, q)
		return err
	})
	g.Go(func() error {
		_, err := app.core.GetArticle(ctx, articleID)
		return err
	})
	if err := g.Wait(); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comments": comments}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) createComment(w http.ResponseWriter, r *http.Request) {
	articleID, err := readIDParam(r, "article_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	var input struct {
		Username string `json:"username" validate:"required"`
		Body     string `json:"body" validate:"required"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	v := validator.New()
	v.CheckStruct(input)
	v.CheckNotBlank(input.Body, "body", "must be provided")
	v.Check(!stringutils.LooksNumeric(input.Username), "username", "must be a username")
	if err := v.Err(); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	var comment *models.Comment
	g, ctx := errgroup.WithContext(r.Context())
	g.Go(func() error {
		_, err := app.core.GetArticle(ctx, articleID)
		return err
	})
	g.Go(func() error {
		_, err := app.core.GetUser(ctx, input.Username)
		return err
	})
	g.Go(func() error {
		var err error
		comment, err = app.core.CreateComment(ctx, &models.Comment{
			Body:      input.Body,
			Author:    input.Username,
			ArticleID: articleID,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"comment": comment}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) updateCommentVotes(w http.ResponseWriter, r *http.Request) {
	commentID, err := readIDParam(r, "comment_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	delta, err := app.readVoteDelta(w, r)
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	comment, err := app.core.UpdateCommentVotes(r.Context(), commentID, delta)
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"comment": comment}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) deleteComment(w http.ResponseWriter, r *http.Request) {
	commentID, err := readIDParam(r, "comment_id")
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.core.DeleteComment(r.Context(), commentID); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
