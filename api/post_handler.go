package api

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rpupo63/blog-backend/services"
	"github.com/rs/zerolog"
	"github.com/samber/lo"
	"github.com/rs/zerolog/log"
)

type postHandler struct {
	responder Responder
	logger    zerolog.Logger
	postRepo  *database.PostRepo
	baseURL   string
}

func newPostHandler(postRepo *database.PostRepo, baseURL string) postHandler {
	logger := log.With().Str("handlerName", "postHandler").Logger()

	return postHandler{
		responder: NewResponder(logger),
		logger:    logger,
		postRepo:  postRepo,
		baseURL:   baseURL,
	}
}

func (h postHandler) toResponse(post *models.Post) postResponse {
	return postResponse{Post: post, URL: services.BuildPostURL(h.baseURL, post.ID)}
}

// getAllPosts retrieves posts, newest first
// @Summary Get all posts
// @Description Retrieves posts with category, author and tags, optionally filtered
// @Tags Posts
// @Produce json
// @Param category query string false "Category ID" format(uuid)
// @Param tag query string false "Tag ID" format(uuid)
// @Param author query string false "Author ID" format(uuid)
// @Success 200 {object} postCollection
// @Failure 400 {object} ErrorResponse
// @Router /posts [get]
func (h postHandler) getAllPosts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var (
			filter database.PostFilter
			err    error
		)
		if filter.CategoryID, err = uuidQuery(r, "category"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.TagID, err = uuidQuery(r, "tag"); err != nil {
			h.responder.WriteError(w, err)
			return
		}
		if filter.AuthorID, err = uuidQuery(r, "author"); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		posts, err := h.postRepo.FindAll(r.Context(), filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "posts", err))
			return
		}

		h.responder.WriteJSON(w, postCollection{
			Posts: lo.Map(posts, func(post *models.Post, _ int) postResponse { return h.toResponse(post) }),
			Total: len(posts),
		})
	}
}

// getPost retrieves a post by ID
// @Summary Get post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} postResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /post/{postID} [get]
func (h postHandler) getPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post, err := h.postRepo.FindByID(r.Context(), postID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "post", err))
			return
		}
		h.responder.WriteJSON(w, h.toResponse(post))
	}
}

// createPost creates a new post. The authenticated user becomes the author.
// @Summary Create post
// @Tags Posts
// @Accept json
// @Produce json
// @Param post body postRequest true "Post data"
// @Success 201 {object} postResponse
// @Failure 400 {object} ErrorResponse "Validation or referential integrity failure"
// @Router /post [post]
func (h postHandler) createPost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req postRequest
		if err := h.responder.decodeJSON(w, r, "post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post := req.toModel(uuid.Nil)
		if userID, err := ctxGetUserID(r.Context()); err == nil {
			post.AuthorID = userID
		}

		if err := h.postRepo.Add(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "post", err))
			return
		}

		h.logger.Info().Stringer("postID", post.ID).Str("title", post.Title).Msg("post created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, h.toResponse(post))
	}
}

// updatePost replaces every field of a post. An empty excerpt is derived
// again from the body.
// @Summary Update post
// @Tags Posts
// @Accept json
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Param post body postRequest true "Post data"
// @Success 200 {object} postResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /post/{postID} [put]
func (h postHandler) updatePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req postRequest
		if err := h.responder.decodeJSON(w, r, "post", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		post := req.toModel(postID)
		if post.AuthorID == uuid.Nil {
			if userID, err := ctxGetUserID(r.Context()); err == nil {
				post.AuthorID = userID
			}
		}

		if err := h.postRepo.Update(r.Context(), post); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "post", err))
			return
		}
		h.responder.WriteJSON(w, h.toResponse(post))
	}
}

// deletePost deletes a post by ID
// @Summary Delete post
// @Tags Posts
// @Produce json
// @Param postID path string true "Post ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /post/{postID} [delete]
func (h postHandler) deletePost() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		postID, err := uuidParam(r, "postID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.postRepo.Delete(r.Context(), postID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "post", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("post"))
	}
}
