package api

import (
	"net/http"

	"github.com/rpupo63/blog-backend/database"
	"github.com/rpupo63/blog-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// userHandler keeps the local mirror of the identity directory in sync.
type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// syncUser creates or refreshes a user under the directory's ID
// @Summary Sync user
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Param user body userRequest true "User data"
// @Success 200 {object} models.User
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Router /user/{userID} [put]
func (h userHandler) syncUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuidParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		var req userRequest
		if err := h.responder.decodeJSON(w, r, "user", &req); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		user := &models.User{ID: userID, Username: req.Username, Email: req.Email}
		if err := h.userRepo.Upsert(r.Context(), user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("sync", "user", err))
			return
		}
		h.responder.WriteJSON(w, user)
	}
}

// deleteUser removes a user and every post they authored
// @Summary Delete user
// @Tags Users
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {object} map[string]string
// @Failure 404 {object} ErrorResponse
// @Router /user/{userID} [delete]
func (h userHandler) deleteUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuidParam(r, "userID")
		if err != nil {
			h.responder.WriteError(w, err)
			return
		}

		if err := h.userRepo.Delete(r.Context(), userID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete", "user", err))
			return
		}

		h.logger.Info().Stringer("userID", userID).Msg("user deleted with their posts")
		h.responder.WriteJSON(w, deletedResponse("user"))
	}
}
