package main

import (
	"net/http"
	"strings"

	"github.com/siahsang/news/internal/validator"
	"github.com/siahsang/news/models"
)

func (app *application) listTopics(w http.ResponseWriter, r *http.Request) {
	topics, err := app.core.ListTopics(r.Context())
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"topics": topics}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) createTopic(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Slug        string `json:"slug" validate:"required"`
		Description string `json:"description" validate:"required"`
	}

	if err := app.readJSON(w, r, &input); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	v := validator.New()
	v.CheckStruct(input)
	v.CheckNotBlank(input.Slug, "slug", "must be provided")
	v.CheckNotBlank(input.Description, "description", "must be provided")
	if err := v.Err(); err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	topic, err := app.core.CreateTopic(r.Context(), &models.Topic{
		Slug:        strings.TrimSpace(input.Slug),
		Description: input.Description,
	})
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusCreated, envelope{"topic": topic}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}
