package main

import "net/http"
import "github.com/julienschmidt/httprouter"

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)
	router.MethodNotAllowed = http.HandlerFunc(app.methodNotAllowedResponse)

	handle := func(method, path string, handler http.HandlerFunc) {
		router.Handler(method, path, app.metrics.instrument(method+" "+path, handler))
	}

	handle(http.MethodGet, "/api", app.getEndpoints)

	handle(http.MethodGet, "/api/topics", app.listTopics)
	handle(http.MethodPost, "/api/topics", app.createTopic)

	handle(http.MethodGet, "/api/articles", app.listArticles)
	handle(http.MethodPost, "/api/articles", app.createArticle)
	handle(http.MethodGet, "/api/articles/:article_id", app.getArticle)
	handle(http.MethodPatch, "/api/articles/:article_id", app.updateArticleVotes)
	handle(http.MethodDelete, "/api/articles/:article_id", app.deleteArticle)
	handle(http.MethodGet, "/api/articles/:article_id/comments", app.listComments)
	handle(http.MethodPost, "/api/articles/:article_id/comments", app.createComment)

	handle(http.MethodPatch, "/api/comments/:comment_id", app.updateCommentVotes)
	handle(http.MethodDelete, "/api/comments/:comment_id", app.deleteComment)

	handle(http.MethodGet, "/api/users", app.listUsers)
	handle(http.MethodGet, "/api/users/:username", app.getUser)

	router.Handler(http.MethodGet, "/metrics", app.metrics.handler())

	return app.requestID(app.logRequest(app.recoverPanic(router)))
}
