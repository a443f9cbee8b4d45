package main

import (
	_ "embed"
	"encoding/json"
	"net/http"
)

//go:embed endpoints.json
var endpointsJSON []byte

func (app *application) getEndpoints(w http.ResponseWriter, r *http.Request) {
	if err := app.writeJSON(w, http.StatusOK, envelope{"endpoints": json.RawMessage(endpointsJSON)}, nil); err != nil {
		app.errorResponseFor(w, r, err)
	}
}
