package handlers

import (
	"net/http"

	"ems-project/backend/models"
	"ems-project/backend/services"
	"ems-project/backend/utils"

	"github.com/gorilla/mux"
)

type AttendanceHandler struct {
	Service *services.AttendanceService
}

func NewAttendanceHandler(service *services.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{Service: service}
}

func (h *AttendanceHandler) CreateAttendance(w http.ResponseWriter, r *http.Request) {
	var in services.CreateAttendanceInput
	if !decodeJSON(w, r, &in) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	record, err := h.Service.CreateAttendance(r.Context(), in)
	if err != nil {
		writeError(w, r, err, "Failed to create attendance record")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, record)
}

func (h *AttendanceHandler) ListAttendance(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	records, err := h.Service.ListAttendance(r.Context(), services.AttendanceQuery{
		Status:     q.Get("status"),
		EmployeeID: q.Get("employeeId"),
		Date:       q.Get("date"),
	})
	if err != nil {
		writeError(w, r, err, "Failed to fetch attendance records")
		return
	}
	if records == nil {
		records = []models.Attendance{}
	}
	utils.RespondWithJSON(w, http.StatusOK, records)
}

func (h *AttendanceHandler) GetAttendance(w http.ResponseWriter, r *http.Request) {
	record, err := h.Service.GetAttendance(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, r, err, "Failed to fetch attendance record")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

func (h *AttendanceHandler) UpdateAttendance(w http.ResponseWriter, r *http.Request) {
	var in services.UpdateAttendanceInput
	if !decodeJSON(w, r, &in) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}
	record, err := h.Service.UpdateAttendance(r.Context(), mux.Vars(r)["id"], in)
	if err != nil {
		writeError(w, r, err, "Failed to update attendance record")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, record)
}

func (h *AttendanceHandler) DeleteAttendance(w http.ResponseWriter, r *http.Request) {
	if err := h.Service.DeleteAttendance(r.Context(), mux.Vars(r)["id"]); err != nil {
		writeError(w, r, err, "Failed to delete attendance record")
		return
	}
	utils.RespondWithMessage(w, http.StatusOK, "Attendance record deleted")
}
