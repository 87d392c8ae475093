package employee

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi"
	"github.com/wrkforce/employee-management/internal/core/common/query"
	"github.com/wrkforce/employee-management/internal/transport"
	"github.com/wrkforce/employee-management/pkg/logger"
)

type ServiceAPI interface {
	CreateEmployee(dto *CreateEmployeeDTO) (*Employee, error)
	GetEmployee(id int64) (*Employee, error)
	ListEmployees(filters Filters, params query.ListParams) (*ListEmployeesResult, error)
	UpdateEmployee(id int64, dto *UpdateEmployeeDTO) (*Employee, error)
	DeleteEmployee(id int64) error
	Subordinates(managerID int64) ([]*Employee, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	return &Handler{
		BaseHandler: transport.NewBaseHandler(logger.L()),
		Service:     service,
	}
}

func (h *Handler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var dto CreateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	created, err := h.Service.CreateEmployee(&dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.Logger.Info("CreateEmployee: employee created",
		"id", created.ID,
		"employee_id", created.EmployeeID,
		"user_id", created.UserID)

	h.WriteJSON(w, http.StatusCreated, created)
}

func (h *Handler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	params, appErr := transport.ParseListParams(r)
	if appErr != nil {
		h.HandleServiceError(w, appErr)
		return
	}

	q := r.URL.Query()
	filters := Filters{
		Department: q.Get("department"),
		Position:   q.Get("position"),
		Status:     q.Get("status"),
	}
	if raw := q.Get("manager_id"); raw != "" {
		if managerID, err := strconv.ParseInt(raw, 10, 64); err == nil {
			filters.ManagerID = &managerID
		}
	}

	result, err := h.Service.ListEmployees(filters, params)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, result)
}

func (h *Handler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	e, err := h.Service.GetEmployee(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, e)
}

func (h *Handler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	var dto UpdateEmployeeDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateEmployee: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	updated, err := h.Service.UpdateEmployee(id, &dto)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, updated)
}

func (h *Handler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteEmployee(id); err != nil {
		h.HandleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) Subordinates(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}

	subordinates, err := h.Service.Subordinates(id)
	if err != nil {
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, subordinates)
}

func (h *Handler) parseID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	idStr := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		h.Logger.Error("invalid employee ID", "id", idStr)
		h.WriteError(w, http.StatusBadRequest, "invalid employee ID")
		return 0, false
	}
	return id, true
}
