package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"ems-project/backend/logging"
	"ems-project/backend/services"
	"ems-project/backend/utils"

	"github.com/sony/gobreaker"
)

// writeError maps service errors to status codes. Anything unrecognised is
// logged in full and answered with fallback as a 500.
func writeError(w http.ResponseWriter, r *http.Request, err error, fallback string) {
	var (
		ve *services.ValidationError
		nf *services.NotFoundError
		ce *services.ConflictError
		fe *services.ForbiddenError
		ae *services.AuthError
	)
	switch {
	case errors.As(err, &ve):
		utils.RespondWithMessage(w, http.StatusBadRequest, ve.Message)
	case errors.As(err, &nf):
		utils.RespondWithMessage(w, http.StatusNotFound, nf.Message)
	case errors.As(err, &ce):
		utils.RespondWithMessage(w, http.StatusConflict, ce.Message)
	case errors.As(err, &fe):
		utils.RespondWithMessage(w, http.StatusForbidden, fe.Message)
	case errors.As(err, &ae):
		utils.RespondWithMessage(w, http.StatusUnauthorized, ae.Message)
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		logging.Logger.Warnf("Event ID: STORE_UNAVAILABLE, Description: %s %s rejected by circuit breaker: %v", r.Method, r.URL.Path, err)
		utils.RespondWithMessage(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		logging.Logger.Errorf("Event ID: INTERNAL_ERROR, Description: %s %s failed: %v", r.Method, r.URL.Path, err)
		utils.RespondWithMessage(w, http.StatusInternalServerError, fallback)
	}
}

// maxBodyBytes caps every JSON request body.
const maxBodyBytes = 1 << 20

func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	return json.NewDecoder(r.Body).Decode(dst) == nil
}

const msgInvalidPayload = "Invalid request payload"
