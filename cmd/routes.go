package main

import (
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/mingx/socialnet/internal/monitoring"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (app *application) routes() http.Handler {
	router := httprouter.New()

	router.NotFound = http.HandlerFunc(app.notFoundResponse)

	// Not require authentication for these routes
	router.HandlerFunc(http.MethodPost, "/api/users", app.registerUser)
	router.HandlerFunc(http.MethodPost, "/api/users/login", app.login)

	// Require authentication for these routes
	router.HandlerFunc(http.MethodGet, "/api/user", app.requireAuthenticatedUser(app.getCurrentUser))
	router.Handler(http.MethodGet, "/api/users/:username", app.requireAuthenticatedUser(app.getUser))
	router.Handler(http.MethodPut, "/api/users/:username", app.requireAuthenticatedUser(app.updateUser))
	router.Handler(http.MethodDelete, "/api/users/:username", app.requireAuthenticatedUser(app.deleteUser))

	router.HandlerFunc(http.MethodGet, "/api/posts", app.requireAuthenticatedUser(app.getPosts))
	router.HandlerFunc(http.MethodPost, "/api/posts", app.requireAuthenticatedUser(app.createPost))
	router.Handler(http.MethodGet, "/api/posts/:id", app.requireAuthenticatedUser(app.getPost))
	router.Handler(http.MethodPut, "/api/posts/:id", app.requireAuthenticatedUser(app.updatePost))
	router.Handler(http.MethodDelete, "/api/posts/:id", app.requireAuthenticatedUser(app.deletePost))

	router.Handler(http.MethodGet, "/api/posts/:id/comments", app.requireAuthenticatedUser(app.getComments))
	router.Handler(http.MethodPost, "/api/posts/:id/comments", app.requireAuthenticatedUser(app.createComment))
	router.Handler(http.MethodDelete, "/api/comments/:id", app.requireAuthenticatedUser(app.deleteComment))

	router.Handler(http.MethodPost, "/api/posts/:id/like", app.requireAuthenticatedUser(app.likePost))
	router.Handler(http.MethodDelete, "/api/posts/:id/like", app.requireAuthenticatedUser(app.unlikePost))
	router.Handler(http.MethodPost, "/api/posts/:id/repost", app.requireAuthenticatedUser(app.repostPost))
	router.Handler(http.MethodDelete, "/api/posts/:id/repost", app.requireAuthenticatedUser(app.unrepostPost))

	router.HandlerFunc(http.MethodPost, "/api/follows", app.requireAuthenticatedUser(app.followUser))
	router.HandlerFunc(http.MethodGet, "/api/follows/followers", app.requireAuthenticatedUser(app.getFollowers))
	router.HandlerFunc(http.MethodGet, "/api/follows/following", app.requireAuthenticatedUser(app.getFollowing))
	router.Handler(http.MethodDelete, "/api/follows/:username", app.requireAuthenticatedUser(app.unfollowUser))

	router.HandlerFunc(http.MethodGet, "/api/feed", app.requireAuthenticatedUser(app.getFeed))
	router.HandlerFunc(http.MethodGet, "/api/trending", app.requireAuthenticatedUser(app.getTrending))

	router.HandlerFunc(http.MethodGet, "/api/notifications", app.requireAuthenticatedUser(app.getNotifications))
	router.Handler(http.MethodPut, "/api/notifications/:id/read", app.requireAuthenticatedUser(app.markNotificationRead))

	router.HandlerFunc(http.MethodGet, "/api/messages", app.requireAuthenticatedUser(app.getMessages))
	router.HandlerFunc(http.MethodPost, "/api/messages", app.requireAuthenticatedUser(app.sendMessage))

	router.HandlerFunc(http.MethodGet, "/api/hashtags", app.requireAuthenticatedUser(app.getHashtags))
	router.Handler(http.MethodGet, "/api/hashtags/:name", app.requireAuthenticatedUser(app.getHashtag))

	handler := app.recoverPanic(app.authenticate(router))
	if app.config.Metrics.Enabled {
		router.Handler(http.MethodGet, "/metrics", promhttp.Handler())
		handler = monitoring.InstrumentHandler(handler)
	}

	return handler
}
