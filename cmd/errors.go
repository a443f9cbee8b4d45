package main

import (
	"log/slog"
	"net/http"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/news/internal/apperror"
	"github.com/siahsang/news/internal/web"
)

// errorResponseFor classifies err and writes the matching {status, msg} body.
// Only internal errors are logged with their stack; their cause never reaches the client.
func (app *application) errorResponseFor(w http.ResponseWriter, r *http.Request, err error) {
	appErr := apperror.Classify(err)

	attrs := []slog.Attr{
		slog.String("request_id", web.RequestID(r)),
		slog.String("request_url", r.URL.String()),
		slog.String("request_method", r.Method),
		slog.String("kind", appErr.Kind.String()),
	}

	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindNotFound, apperror.KindConflict:
		for key, value := range appErr.Details {
			attrs = append(attrs, slog.String(key, value))
		}
		app.logger.LogAttrs(r.Context(), slog.LevelWarn, "Request rejected", attrs...)
	case apperror.KindInternal:
		attrs = append(attrs, slog.String("stack", xerrors.Sprint(err)))
		app.logger.LogAttrs(r.Context(), slog.LevelError, "Error handling request", attrs...)
	}

	app.errorResponse(w, appErr)
}

func (app *application) errorResponse(w http.ResponseWriter, appErr *apperror.Error) {
	body := envelope{
		"status": appErr.Status(),
		"msg":    appErr.Message,
	}
	if len(appErr.Details) > 0 {
		body["details"] = appErr.Details
	}

	if err := app.writeJSON(w, appErr.Status(), body, nil); err != nil {
		app.logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func (app *application) notFoundResponse(w http.ResponseWriter, r *http.Request) {
	app.errorResponseFor(w, r, apperror.NotFound())
}

func (app *application) methodNotAllowedResponse(w http.ResponseWriter, r *http.Request) {
	body := envelope{"status": http.StatusMethodNotAllowed, "msg": "method not allowed"}
	if err := app.writeJSON(w, http.StatusMethodNotAllowed, body, nil); err != nil {
		app.logger.Error(err.Error())
	}
}
