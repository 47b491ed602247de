package api

import (
	"net/http"

	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type categoryHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.CategoryRepo
}

func newCategoryHandler(categoryRepo *database.CategoryRepo) categoryHandler {
	logger := log.With().Str("handlerName", "categoryHandler").Logger()

	return categoryHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
	}
}

// getAllCategories retrieves all categories
// @Summary Get all categories
// @Tags Categories
// @Produce json
// @Success 200 {array} models.Category
// @Failure 500 {object} ErrorResponse
// @Router /categories [get]
func (h categoryHandler) getAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll(r.Context())
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "categories", err))
			return
		}
		h.responder.WriteJSON(w, categories)
	}
}

// getCategory retrieves a category by ID
// @Summary Get category
// @Tags Categories
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /category/{categoryID} [get]
func (h categoryHandler) getCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category, err := h.categoryRepo.FindByID(r.Context(), categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find", "category", err))
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// createCategory creates a new category
// @Summary Create category
// @Tags Categories
// @Accept json
// @Produce json
// @Param category body nameRequest true "Category data"
// @Success 201 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Router /category [post]
func (h categoryHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req nameRequest
		if err := h.responder.decodeJSON(w, r, "category", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category := &models.Category{Name: req.Name}
		if err := h.categoryRepo.Add(r.Context(), category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create", "category", err))
			return
		}

		h.logger.Info().Stringer("categoryID", category.ID).Msg("category created")
		h.responder.WriteJSONStatus(w, http.StatusCreated, category)
	}
}

// updateCategory renames a category
// @Summary Update category
// @Tags Categories
// @Accept json
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Param category body nameRequest true "Category data"
// @Success 200 {object} models.Category
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Router /category/{categoryID} [put]
func (h categoryHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req nameRequest
		if err := h.responder.decodeJSON(w, r, "category", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		category := &models.Category{ID: categoryID, Name: req.Name}
		if err := h.categoryRepo.Update(r.Context(), category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update", "category", err))
			return
		}
		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory deletes a category and every post filed under it
// @Summary Delete category
// @Tags Categories
// @Produce json
// @Param categoryID path string true "Category ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /category/{categoryID} [delete]
func (h categoryHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := uuidParam(r, "categoryID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.categoryRepo.Delete(r.Context(), categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "category", err))
			return
		}

		h.logger.Info().Stringer("categoryID", categoryID).Msg("category deleted with its posts")
		h.responder.WriteJSON(w, deletedResponse("category"))
	}
}
