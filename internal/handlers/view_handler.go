package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shehryarhafeez/Nexus-Ecommerce-Store/internal/view"
)

// ViewHandler exposes the view state machine
type ViewHandler struct {
	views  *view.Controller
	logger *slog.Logger
}

// NewViewHandler creates a new view handler
func NewViewHandler(views *view.Controller, logger *slog.Logger) *ViewHandler {
	return &ViewHandler{
		views:  views,
		logger: logger,
	}
}

// viewResponse carries the active view and, when the view has an entry
// renderer, the data it rendered on entry.
type viewResponse struct {
	View view.State  `json:"view"`
	Data interface{} `json:"data,omitempty"`
}

// GetView handles GET /api/view
func (h *ViewHandler) GetView(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, viewResponse{View: h.views.Current()}, h.logger)
}

// ShowView handles POST /api/view/{name}
// Transitions to the named view and returns its freshly rendered entry
// data. An unknown view name leaves the current view unchanged.
func (h *ViewHandler) ShowView(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	data, err := h.views.Show(view.State(name))
	if err != nil {
		if errors.Is(err, view.ErrUnknownView) {
			writeError(w, http.StatusNotFound, "Unknown view", h.logger)
			return
		}
		h.logger.Error("failed to show view", "view", name, "error", err)
		writeError(w, http.StatusInternalServerError, "Internal server error", h.logger)
		return
	}

	writeJSON(w, http.StatusOK, viewResponse{View: h.views.Current(), Data: data}, h.logger)
}
