package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"
)

// setupRoutes registers public reads and authenticated writes
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	r.Get("/healthz", handlers.healthHandler.getHealth())

	r.Group(func(r chi.Router) {
		r.Use(HTTPLoggingMiddleware(log.With().Str("component", "http").Logger()))

		r.Get("/categories", handlers.categoryHandler.getAllCategories())
		r.Get("/category/{categoryID}", handlers.categoryHandler.getCategory())
		r.Get("/tags", handlers.tagHandler.getAllTags())
		r.Get("/tag/{tagID}", handlers.tagHandler.getTag())
		r.Get("/posts", handlers.postHandler.getAllPosts())
		r.Get("/post/{postID}", handlers.postHandler.getPost())

		r.Group(func(r chi.Router) {
			r.Use(authMiddleware.authenticate)

			r.Post("/category", handlers.categoryHandler.createCategory())
			r.Put("/category/{categoryID}", handlers.categoryHandler.updateCategory())
			r.Delete("/category/{categoryID}", handlers.categoryHandler.deleteCategory())

			r.Post("/tag", handlers.tagHandler.createTag())
			r.Put("/tag/{tagID}", handlers.tagHandler.updateTag())
			r.Delete("/tag/{tagID}", handlers.tagHandler.deleteTag())

			r.Post("/post", handlers.postHandler.createPost())
			r.Put("/post/{postID}", handlers.postHandler.updatePost())
			r.Delete("/post/{postID}", handlers.postHandler.deletePost())

			r.Put("/user/{userID}", handlers.userHandler.syncUser())
			r.Delete("/user/{userID}", handlers.userHandler.deleteUser())
		})
	})
}
