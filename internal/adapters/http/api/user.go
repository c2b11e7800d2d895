package api

import (
	"context"
	"net/http"

	"github.com/okian/hello/internal/domain/types"
)

// UserDependencies defines the narrow dependency set for the user handler.
type UserDependencies interface {
	User(ctx context.Context, rawID string) (types.UserView, error)
}

// UserHandler handles GET /user/{id} requests.
type UserHandler struct {
	deps UserDependencies
}

// NewUserHandler creates a new user handler.
func NewUserHandler(deps UserDependencies) *UserHandler {
	return &UserHandler{deps: deps}
}

// HandleGetUser returns the synthesized user for the id path segment.
func (h *UserHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	id, err := pathParam(r, "id")
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgUserIDNotNumber)
		return
	}
	view, err := h.deps.User(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgUserIDNotNumber)
		return
	}
	writeJSON(w, http.StatusOK, view)
}
