package handlers

import (
	"errors"
	"net/http"

	"ems-project/backend/logging"
	"ems-project/backend/models"
	"ems-project/backend/services"
	"ems-project/backend/utils"

	"github.com/gorilla/mux"
	"github.com/sony/gobreaker"
)

type ProjectHandler struct {
	Service *services.ProjectService
}

func NewProjectHandler(service *services.ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

type projectCreatedResponse struct {
	Message string          `json:"message"`
	Project *models.Project `json:"project"`
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	var in services.CreateProjectInput
	if !decodeJSON(w, r, &in) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	project, err := h.Service.CreateProject(r.Context(), in)
	if err != nil {
		// Creation answers every unexpected failure with 500, an open breaker included.
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			logging.Logger.Errorf("Event ID: PROJECT_CREATE_STORE_UNAVAILABLE, Description: Manager lookup rejected by circuit breaker: %v", err)
			utils.RespondWithMessage(w, http.StatusInternalServerError, "Error adding project")
			return
		}
		writeError(w, r, err, "Error adding project")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, projectCreatedResponse{
		Message: "Project created successfully",
		Project: project,
	})
}

func (h *ProjectHandler) ListProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.ListProjects(r.Context())
	if err != nil {
		writeError(w, r, err, "Error fetching projects")
		return
	}
	if projects == nil {
		projects = []models.Project{}
	}
	utils.RespondWithJSON(w, http.StatusOK, projects)
}

func (h *ProjectHandler) GetProject(w http.ResponseWriter, r *http.Request) {
	project, err := h.Service.GetProjectByID(r.Context(), mux.Vars(r)["projectId"])
	if err != nil {
		writeError(w, r, err, "Error fetching project")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, project)
}
