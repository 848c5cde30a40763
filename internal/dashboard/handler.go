package dashboard

import (
	"context"
	"net/http"

	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/transport"
)

type ServiceAPI interface {
	Stats(ctx context.Context, scope auth.Scope) (*Stats, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(baseHandler *transport.BaseHandler, service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: baseHandler,
		Service:     service,
	}
}

func (h *Handler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.Service.Stats(r.Context(), auth.ScopeFromContext(r.Context()))
	if err != nil {
		h.LogServiceError("GetStats", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, stats)
}
