package api

import (
	"context"
	"net/http"

	"github.com/okian/hello/internal/domain/types"
)

// GreetDependencies defines the narrow dependency set for the greet handler.
type GreetDependencies interface {
	Greet(ctx context.Context, names []string) (types.MessageResponse, error)
}

// GreetHandler handles GET /greet requests.
type GreetHandler struct {
	deps GreetDependencies
}

// NewGreetHandler creates a new greet handler.
func NewGreetHandler(deps GreetDependencies) *GreetHandler {
	return &GreetHandler{deps: deps}
}

// HandleGreet greets the name query parameter.
func (h *GreetHandler) HandleGreet(w http.ResponseWriter, r *http.Request) {
	resp, err := h.deps.Greet(r.Context(), r.URL.Query()["name"])
	if err != nil {
		writeError(w, http.StatusBadRequest, MsgNameRequired)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}
