package api

import (
	"context"
	"net/http"
)

// RootDependencies defines the narrow dependency set for the root handler.
type RootDependencies interface {
	Greeting(ctx context.Context) string
}

// RootHandler handles GET / requests.
type RootHandler struct {
	deps RootDependencies
}

// NewRootHandler creates a new root handler.
func NewRootHandler(deps RootDependencies) *RootHandler {
	return &RootHandler{deps: deps}
}

// HandleRoot writes the static greeting as plain text.
func (h *RootHandler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeText(w, http.StatusOK, h.deps.Greeting(r.Context()))
}
