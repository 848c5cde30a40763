package student

import (
	"context"
	"net/http"

	"github.com/frahmantamala/internship-management/internal/auth"
	"github.com/frahmantamala/internship-management/internal/transport"
)

type ServiceAPI interface {
	List(ctx context.Context, scope auth.Scope, filter ListFilter) ([]*Student, error)
	Get(ctx context.Context, scope auth.Scope, id int64) (*Student, error)
	Create(ctx context.Context, scope auth.Scope, dto CreateStudentDTO) (*Student, error)
	Update(ctx context.Context, scope auth.Scope, id int64, dto UpdateStudentDTO) (*Student, error)
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

func (h *Handler) ListStudents(w http.ResponseWriter, r *http.Request) {
	limit, offset := h.Pagination(r)
	students, err := h.Service.List(r.Context(), auth.ScopeFromContext(r.Context()), ListFilter{
		Search: r.URL.Query().Get("q"),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		h.LogServiceError("ListStudents", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, StudentsResponse{Students: students, Limit: limit, Offset: offset})
}

func (h *Handler) GetStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	s, err := h.Service.Get(r.Context(), auth.ScopeFromContext(r.Context()), id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) CreateStudent(w http.ResponseWriter, r *http.Request) {
	var dto CreateStudentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.Service.Create(r.Context(), auth.ScopeFromContext(r.Context()), dto)
	if err != nil {
		h.LogServiceError("CreateStudent", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, s)
}

func (h *Handler) UpdateStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	var dto UpdateStudentDTO
	if err := h.DecodeJSON(r, &dto); err != nil {
		h.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	s, err := h.Service.Update(r.Context(), auth.ScopeFromContext(r.Context()), id, dto)
	if err != nil {
		h.LogServiceError("UpdateStudent", err, "student_id", id)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, s)
}

func (h *Handler) DeleteStudent(w http.ResponseWriter, r *http.Request) {
	id, ok := h.PathID(r, "id")
	if !ok {
		h.WriteError(w, http.StatusBadRequest, "invalid student ID")
		return
	}

	if err := h.Service.Delete(r.Context(), auth.ScopeFromContext(r.Context()), id); err != nil {
		h.LogServiceError("DeleteStudent", err, "student_id", id)
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
