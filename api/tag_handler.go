package api

import (
	"net/http"

	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type tagHandler struct {
	responder Responder
	logger    zerolog.Logger
	tagRepo   *database.TagRepo
}

func newTagHandler(tagRepo *database.TagRepo) tagHandler {
	logger := log.With().Str("handlerName", "tagHandler").Logger()

	return tagHandler{
		responder: NewResponder(logger),
		logger:    logger,
		tagRepo:   tagRepo,
	}
}

// getAllTags retrieves all tags
// @Summary Get all tags
// @Tags Tags
// @Produce json
// @Success 200 {array} models.Tag
// @Router /tags [get]
func (h tagHandler) getAllTags() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tags, err := h.tagRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tags", err))
			return
		}
		h.responder.WriteJSON(w, tags)
	}
}

// getTag retrieves a tag by ID
// @Summary Get tag
// @Tags Tags
// @Produce json
// @Param tagID path string true "Tag ID" format(uuid)
// @Success 200 {object} models.Tag
// @Failure 404 {object} ErrorResponse
// @Router /tag/{tagID} [get]
func (h tagHandler) getTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag, err := h.tagRepo.FindByID(r.Context(), tagID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "tag", err))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

func (h tagHandler) createTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := h.responder.decodeJSON(w, r, "tag", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag := &models.Tag{Name: req.Name}
		if err := h.tagRepo.Add(r.Context(), tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "tag", err))
			return
		}
		h.responder.WriteJSONStatus(w, http.StatusCreated, tag)
	}
}

func (h tagHandler) updateTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req nameRequest
		if err := h.responder.decodeJSON(w, r, "tag", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		tag := &models.Tag{ID: tagID, Name: req.Name}
		if err := h.tagRepo.Update(r.Context(), tag); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "tag", err))
			return
		}
		h.responder.WriteJSON(w, tag)
	}
}

// deleteTag removes a tag; posts carrying it are kept
func (h tagHandler) deleteTag() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		tagID, err := uuidParam(r, "tagID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.tagRepo.Delete(r.Context(), tagID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "tag", err))
			return
		}
		h.responder.WriteJSON(w, deletedResponse("tag"))
	}
}
