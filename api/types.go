package api

import (
	"time"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	categoryHandler categoryHandler
	tagHandler      tagHandler
	postHandler     postHandler
	userHandler     userHandler
	healthHandler   healthHandler
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}

// nameRequest is the payload for creating or renaming a category or tag.
type nameRequest struct {
	Name string `json:"name" example:"Engineering"`
}

// userRequest is the payload the identity directory sends to sync a user.
type userRequest struct {
	Username string `json:"username" example:"editor"`
	Email    string `json:"email,omitempty" example:"editor@example.com"`
}

// postRequest is the payload for creating or replacing a post. Tags are
// referenced by id. ModifiedTime is never accepted from clients.
type postRequest struct {
	Title       string      `json:"title" example:"Hello"`
	Body        string      `json:"body" example:"# Hello\n\nThis is *body* text."`
	Excerpt     string      `json:"excerpt,omitempty"`
	CreatedTime *time.Time  `json:"createdTime,omitempty"`
	CategoryID  uuid.UUID   `json:"categoryId"`
	AuthorID    uuid.UUID   `json:"authorId,omitempty"`
	TagIDs      []uuid.UUID `json:"tagIds,omitempty"`
}

func (p postRequest) toModel(id uuid.UUID) *models.Post {
	post := &models.Post{
		ID:         id,
		Title:      p.Title,
		Body:       p.Body,
		Excerpt:    p.Excerpt,
		CategoryID: p.CategoryID,
		AuthorID:   p.AuthorID,
	}
	if p.CreatedTime != nil {
		post.CreatedTime = *p.CreatedTime
	}
	for _, tagID := range p.TagIDs {
		post.Tags = append(post.Tags, models.Tag{ID: tagID})
	}
	return post
}

// postResponse is a post with its detail URL.
type postResponse struct {
	*models.Post
	URL string `json:"url"`
}

// postCollection represents multiple posts
type postCollection struct {
	Posts []postResponse `json:"posts"`
	Total int            `json:"total"`
}
