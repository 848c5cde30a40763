package internship

import (
	"context"
	"net/http"
	"strconv"

	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]*Internship, error)
	Get(ctx context.Context, scope auth.Scope, id int64) (*Internship, error)
	Create(ctx context.Context, principal *auth.Principal, dto CreateInternshipDTO) (*Internship, error)
	UpdateStatus(ctx context.Context, principal *auth.Principal, id int64, dto UpdateStatusDTO) (*Internship, error)
	Delete(ctx context.Context, scope auth.Scope, id int64) error
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

func (h *Handler) ListInternships(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)
	query := r.URL.Query()

	filter := ListFilter{
		Status: Status(query.Get("status")),
		Limit:  limit,
		Offset: offset,
	}
	if v, err := strconv.ParseInt(query.Get("student_id"), 10, 64); err == nil && v > 0 {
		filter.StudentID = v
	}
	if v, err := strconv.ParseInt(query.Get("company_id"), 10, 64); err == nil && v > 0 {
		filter.CompanyID = v
	}

	internships, err := h.Service.List(r.Context(), auth.ScopeFromContext(r.Context()), filter)
	if err != nil {
		h.LogServiceError("ListInternships", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, InternshipsResponse{Internships: internships, Limit: limit, Offset: offset})
}

func (h *Handler) GetInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid internship ID")
		return
	}

	i, err := h.Service.Get(r.Context(), auth.ScopeFromContext(r.Context()), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) CreateInternship(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.Logger.Error("CreateInternship: principal not found in context")
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	var dto CreateInternshipDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	i, err := h.Service.Create(r.Context(), principal, dto)
	if err != nil {
		h.LogServiceError("CreateInternship", err, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, i)
}

func (h *Handler) UpdateInternshipStatus(w http.ResponseWriter, r *http.Request) {
	principal, ok := auth.PrincipalFromContext(r.Context())
	if !ok {
		h.Logger.Error("UpdateInternshipStatus: principal not found in context")
		h.WriteError(w, http.StatusUnauthorized, "authentication required")
		return
	}

	id, ok := h.PathID(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid internship ID")
		return
	}

	var dto UpdateStatusDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	i, err := h.Service.UpdateStatus(r.Context(), principal, id, dto)
	if err != nil {
		h.LogServiceError("UpdateInternshipStatus", err, "internship_id", id, "user_id", principal.ID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, i)
}

func (h *Handler) DeleteInternship(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid internship ID")
		return
	}

	if err := h.Service.Delete(r.Context(), auth.ScopeFromContext(r.Context()), id); err != nil {
		h.LogServiceError("DeleteInternship", err, "internship_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
