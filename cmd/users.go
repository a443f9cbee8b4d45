package main

import (
	"net/http"

	"github.com/siahsang/news/internal/apperror"
	"github.com/siahsang/news/internal/utils/stringutils"
)

func (app *application) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := app.core.ListUsers(r.Context())
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"users": users}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}

func (app *application) getUser(w http.ResponseWriter, r *http.Request) {
	username := readStringParam(r, "username")
	if stringutils.LooksNumeric(username) {
		app.errorResponseFor(w, r, apperror.BadRequestField("username", "must not be a number"))
		return
	}

	user, err := app.core.GetUser(r.Context(), username)
	if err != nil {
		app.errorResponseFor(w, r, err)
		return
	}

	if err := app.writeJSON(w, http.StatusOK, envelope{"user": user}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}
