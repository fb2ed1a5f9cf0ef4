package handlers

import (
	"net/http"
	"time"

	"ems-project/backend/middleware"
	"ems-project/backend/services"
	"ems-project/backend/utils"
)

type AuthHandler struct {
	Service *services.AuthService
}

func NewAuthHandler(service *services.AuthService) *AuthHandler {
	return &AuthHandler{Service: service}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Message    string `json:"message"`
	Token      string `json:"token"`
	User       string `json:"user"`
	Role       string `json:"role"`
	EmployeeID int64  `json:"employeeId"`
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		utils.RespondWithMessage(w, http.StatusBadRequest, msgInvalidPayload)
		return
	}

	res, err := h.Service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}

	ttl := h.Service.Tokens().TTL()
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    res.Token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   int(ttl / time.Second),
		Expires:  time.Now().Add(ttl),
	})
	utils.RespondWithJSON(w, http.StatusOK, loginResponse{
		Message:    "Login success",
		Token:      res.Token,
		User:       res.Employee.FirstName,
		Role:       res.Role,
		EmployeeID: res.EmployeeID,
	})
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.TokenCookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
	})
	utils.RespondWithMessage(w, http.StatusOK, "Logged out successfully")
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil {
		utils.RespondWithMessage(w, http.StatusUnauthorized, "No token")
		return
	}
	profile, err := h.Service.Me(r.Context(), claims)
	if err != nil {
		writeError(w, r, err, "Server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, profile)
}
