package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/staffdir/staffdir/internal/api/response"
	"github.com/staffdir/staffdir/internal/api/validation"
	"github.com/staffdir/staffdir/internal/employee"
)

// employeePayload is the create/update request body. The JSON field names keep
// the wire contract of the previous directory API (`nombre`, snake-case
// supervisor link) so existing clients keep working.
type employeePayload struct {
	ID           string  `json:"id"`
	Name         string  `json:"nombre"`
	Email        string  `json:"email"`
	SupervisorID *string `json:"supervisor_id"`
}

type employeeResponse struct {
	ID                 string  `json:"id"`
	Name               string  `json:"nombre"`
	Email              string  `json:"email"`
	SupervisorID       *string `json:"supervisor_id"`
	LastUpdated        string  `json:"lastUpdated"`
	DirectReportsCount *int    `json:"directReportsCount,omitempty"`
}

type employeeEnvelope struct {
	Message  string           `json:"message"`
	Employee employeeResponse `json:"employee"`
}

type employeeListEnvelope struct {
	Message   string             `json:"message"`
	Count     int                `json:"count"`
	Employees []employeeResponse `json:"employees"`
}

func toEmployeeResponse(e *employee.Employee) employeeResponse {
	return employeeResponse{
		ID:           e.ID,
		Name:         e.Name,
		Email:        e.Email,
		SupervisorID: e.SupervisorID,
		LastUpdated:  e.LastUpdated.UTC().Format(time.RFC3339),
	}
}

// EmployeeHandler handles the employee directory endpoints.
type EmployeeHandler struct {
	repo employee.Repository
}

// NewEmployeeHandler creates a new EmployeeHandler.
func NewEmployeeHandler(repo employee.Repository) *EmployeeHandler {
	return &EmployeeHandler{repo: repo}
}

// CreateOrUpdate handles POST /employees. A payload with a non-empty id updates
// an existing record (which must exist); otherwise a record is created under a
// fresh id. Either way the write is a full-record overwrite.
func (h *EmployeeHandler) CreateOrUpdate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	var req employeePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Message(w, http.StatusBadRequest, "request body must be valid JSON")
		return
	}

	fieldErrors := validation.ValidateEmployeeRequest(validation.EmployeeRequest{
		Name:  req.Name,
		Email: req.Email,
	})
	if len(fieldErrors) > 0 {
		response.MessageWithDetails(w, http.StatusBadRequest, "nombre and email are required", fieldErrors)
		return
	}

	isUpdate := strings.TrimSpace(req.ID) != ""
	id := req.ID
	if !isUpdate {
		id = uuid.NewString()
	}

	if isUpdate {
		if _, err := h.repo.GetByID(r.Context(), id); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				response.Message(w, http.StatusNotFound, "employee not found")
				return
			}
			slog.Error("failed to look up employee", "error", err, "id", id)
			response.InternalError(w)
			return
		}
	}

	// Advisory existence check only; nothing ties it to the write below.
	// Self-supervision and supervisor cycles pass it and are accepted.
	supervisorID := req.SupervisorID
	if supervisorID != nil && strings.TrimSpace(*supervisorID) == "" {
		supervisorID = nil
	}
	if supervisorID != nil {
		if _, err := h.repo.GetByID(r.Context(), *supervisorID); err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				response.Message(w, http.StatusBadRequest, "supervisor_id does not exist")
				return
			}
			slog.Error("failed to look up supervisor", "error", err, "id", *supervisorID)
			response.InternalError(w)
			return
		}
	}

	e := &employee.Employee{
		ID:           id,
		Name:         req.Name,
		Email:        req.Email,
		SupervisorID: supervisorID,
		LastUpdated:  time.Now().UTC(),
	}

	if err := h.repo.Upsert(r.Context(), e); err != nil {
		slog.Error("failed to upsert employee", "error", err, "id", id)
		response.InternalError(w)
		return
	}

	message := "employee created successfully"
	status := http.StatusCreated
	if isUpdate {
		message = "employee updated successfully"
		status = http.StatusOK
	}

	response.JSON(w, status, employeeEnvelope{
		Message:  message,
		Employee: toEmployeeResponse(e),
	})
}

// GetByID handles GET /employees/{id}. The record fetch and the direct-reports
// count are independent reads issued concurrently and joined before the
// response; a failure in one does not cancel the other.
func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if strings.TrimSpace(id) == "" {
		response.Message(w, http.StatusBadRequest, "employee id not provided")
		return
	}

	var (
		e     *employee.Employee
		count int
	)

	var g errgroup.Group
	g.Go(func() error {
		found, err := h.repo.GetByID(r.Context(), id)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return nil
			}
			return err
		}
		e = found
		return nil
	})
	g.Go(func() error {
		var err error
		count, err = h.repo.CountDirectReports(r.Context(), id)
		return err
	})

	if err := g.Wait(); err != nil {
		slog.Error("failed to fetch employee", "error", err, "id", id)
		response.InternalError(w)
		return
	}

	if e == nil {
		response.Message(w, http.StatusNotFound, "employee not found")
		return
	}

	resp := toEmployeeResponse(e)
	resp.DirectReportsCount = &count

	response.JSON(w, http.StatusOK, employeeEnvelope{
		Message:  "employee retrieved successfully",
		Employee: resp,
	})
}

// List handles GET /employees. Full scan, unpaginated.
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.repo.List(r.Context())
	if err != nil {
		slog.Error("failed to list employees", "error", err)
		response.InternalError(w)
		return
	}

	items := make([]employeeResponse, 0, len(employees))
	for i := range employees {
		items = append(items, toEmployeeResponse(&employees[i]))
	}

	response.JSON(w, http.StatusOK, employeeListEnvelope{
		Message:   "employees retrieved successfully",
		Count:     len(items),
		Employees: items,
	})
}
