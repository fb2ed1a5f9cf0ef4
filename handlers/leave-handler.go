package handlers

import (
	"net/http"

	"ems-project/backend/middleware"
	"ems-project/backend/models"
	"ems-project/backend/services"
	"ems-project/backend/utils"

	"github.com/gorilla/mux"
)

type LeaveHandler struct {
	Service *services.LeaveService
}

func NewLeaveHandler(service *services.LeaveService) *LeaveHandler {
	return &LeaveHandler{Service: service}
}

func (h *LeaveHandler) CreateLeave(w http.ResponseWriter, r *http.Request) {
	var in services.CreateLeaveInput
	if !decodeJSON(w, r, &in) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	leave, err := h.Service.CreateLeave(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create leave request")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, leave)
}

func (h *LeaveHandler) ListLeaves(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	leaves, err := h.Service.ListLeaves(r.Context(), services.LeaveQuery{
		Status:     q.Get("status"),
		EmployeeID: q.Get("employeeId"),
		From:       q.Get("from"),
		To:         q.Get("to"),
	})
	if err != nil {
		writeError(w, r, err, "Failed to fetch leave requests")
		return
	}
	if leaves == nil {
		leaves = []models.Leave{}
	}
	utils.RespondWithJSON(w, http.StatusOK, leaves)
}

func (h *LeaveHandler) GetLeave(w http.ResponseWriter, r *http.Request) {
	leave, err := h.Service.GetLeave(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Failed to fetch leave request")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) UpdateLeave(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateLeaveInput
	if !decodeJSON(w, r, &in) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	role := ""
	if claims := middleware.ClaimsFromContext(r.Context()); claims != nil {
		role = claims.Role
	}
	leave, err := h.Service.UpdateLeave(r.Context(), mux.Vars(r)["id"], in, role)
	if err != nil {
		writeError(w, r, err, "Failed to update leave request")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, leave)
}

func (h *LeaveHandler) DeleteLeave(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteLeave(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err, "Failed to delete leave request")
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Leave request deleted")
}
