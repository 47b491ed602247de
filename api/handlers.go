package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/errs"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, baseURL string, startupTime time.Time) *routeHandlers {
	return &routeHandlers{
		categoryHandler: newCategoryHandler(database.CategoryRepo()),
		tagHandler:      newTagHandler(database.TagRepo()),
		postHandler:     newPostHandler(database.PostRepo(), baseURL),
		userHandler:     newUserHandler(database.UserRepo()),
		healthHandler:   newHealthHandler(database, startupTime),
	}
}

// uuidParam reads a UUID path parameter.
func uuidParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return uuid.Nil, errs.NewBadRequestError("missing " + name)
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "not a valid UUID")
	}
	return id, nil
}

// uuidQuery reads an optional UUID query parameter. Absent means uuid.Nil.
func uuidQuery(r *http.Request, name string) (uuid.UUID, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return uuid.Nil, nil
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errs.NewInvalidFieldError(name, "not a valid UUID")
	}
	return id, nil
}

func deletedResponse(entity string) map[string]string {
	return map[string]string{
		"status":  "success",
		"message": entity + " deleted successfully",
	}
}
