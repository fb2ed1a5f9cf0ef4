package handlers

import (
	"net/http"

	"ems-project/backend/models"
	"ems-project/backend/services"
	"ems-project/backend/utils"

	"github.com/gorilla/mux"
)

type EmployeeHandler struct {
	Service *services.EmployeeService
}

func NewEmployeeHandler(service *services.EmployeeService) *EmployeeHandler {
	return &EmployeeHandler{Service: service}
}

type employeeResponse struct {
	Message  string           `json:"message"`
	Employee *models.Employee `json:"employee"`
}

func (h *EmployeeHandler) ListEmployees(w http.ResponseWriter, r *http.Request) {
	employees, err := h.Service.ListEmployees(r.Context())
	if err != nil {
		writeError(w, r, err, "Error fetching employees")
		return
	}
	if employees == nil {
		employees = []models.Employee{}
	}
	utils.RespondWithJSON(w, http.StatusOK, employees)
}

func (h *EmployeeHandler) GetEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := services.ParseEmployeeID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	employee, err := h.Service.GetEmployee(r.Context(), id)
	if err != nil {
		writeError(w, r, err, "Error fetching employee")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employee)
}

func (h *EmployeeHandler) CreateEmployee(w http.ResponseWriter, r *http.Request) {
	var in services.CreateEmployeeInput
	if !decodeJSON(w, r, &in) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	employee, err := h.Service.CreateEmployee(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Error adding employee")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, employeeResponse{Message: "Employee added successfully", Employee: employee})
}

func (h *EmployeeHandler) UpdateEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := services.ParseEmployeeID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	var changes map[string]interface{}
	if !decodeJSON(w, r, &changes) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	employee, err := h.Service.UpdateEmployee(r.Context(), id, changes)
	if err != nil {
		writeError(w, r, err, "Error updating employee")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, employeeResponse{Message: "Employee updated successfully", Employee: employee})
}

func (h *EmployeeHandler) DeleteEmployee(w http.ResponseWriter, r *http.Request) {
	id, err := services.ParseEmployeeID(mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "")
		return
	}
	if err := h.Service.DeleteEmployee(r.Context(), id); err != nil {
		writeError(w, r, err, "Error deleting employee")
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Employee deleted successfully")
}
