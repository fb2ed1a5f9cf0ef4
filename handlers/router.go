package handlers

import (
	"net/http"

	"ems-project/backend/middleware"
	"ems-project/backend/models"
	"ems-project/backend/utils"

	"github.com/gorilla/mux"
)

type Handlers struct {
	Auth       *AuthHandler
	Employees  *EmployeeHandler
	Projects   *ProjectHandler
	Leaves     *LeaveHandler
	Attendance *AttendanceHandler
}

// NewRouter registers every route. Login, logout and uploaded files are
// public; the rest need a valid session token.
func NewRouter(h Handlers, tokens *utils.TokenIssuer, loginLimiter *middleware.RateLimiter, uploadDir string) *mux.Router {
	r := mux.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Handle("/login", loginLimiter.Limit(http.HandlerFunc(h.Auth.Login))).Methods(http.MethodPost)
	r.HandleFunc("/logout", h.Auth.Logout).Methods(http.MethodPost)
	if uploadDir != "" {
		r.PathPrefix("/uploads/").Handler(http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadDir))))
	}

	api := r.NewRoute().Subrouter()
	api.Use(middleware.JWTAuth(tokens))
	adminOnly := middleware.RequireRole(models.RoleAdmin)

	api.HandleFunc("/me", h.Auth.Me).Methods(http.MethodGet)

	api.HandleFunc("/employees", h.Employees.ListEmployees).Methods(http.MethodGet)
	api.HandleFunc("/employees/{id}", h.Employees.GetEmployee).Methods(http.MethodGet)
	api.Handle("/employees", adminOnly(http.HandlerFunc(h.Employees.CreateEmployee))).Methods(http.MethodPost)
	api.Handle("/employees/{id}", adminOnly(http.HandlerFunc(h.Employees.UpdateEmployee))).Methods(http.MethodPatch, http.MethodPut)
	api.Handle("/employees/{id}", adminOnly(http.HandlerFunc(h.Employees.DeleteEmployee))).Methods(http.MethodDelete)

	api.HandleFunc("/projects", h.Projects.ListProjects).Methods(http.MethodGet)
	api.HandleFunc("/projects", h.Projects.CreateProject).Methods(http.MethodPost)
	api.HandleFunc("/projects/{projectId}", h.Projects.GetProject).Methods(http.MethodGet)

	api.HandleFunc("/leaves", h.Leaves.ListLeaves).Methods(http.MethodGet)
	api.HandleFunc("/leaves", h.Leaves.CreateLeave).Methods(http.MethodPost)
	api.HandleFunc("/leaves/{id}", h.Leaves.GetLeave).Methods(http.MethodGet)
	api.HandleFunc("/leaves/{id}", h.Leaves.UpdateLeave).Methods(http.MethodPatch)
	api.HandleFunc("/leaves/{id}", h.Leaves.DeleteLeave).Methods(http.MethodDelete)

	api.HandleFunc("/attendance", h.Attendance.ListAttendance).Methods(http.MethodGet)
	api.HandleFunc("/attendance", h.Attendance.CreateAttendance).Methods(http.MethodPost)
	api.HandleFunc("/attendance/{id}", h.Attendance.GetAttendance).Methods(http.MethodGet)
	api.HandleFunc("/attendance/{id}", h.Attendance.UpdateAttendance).Methods(http.MethodPatch)
	api.HandleFunc("/attendance/{id}", h.Attendance.DeleteAttendance).Methods(http.MethodDelete)

	return r
}
