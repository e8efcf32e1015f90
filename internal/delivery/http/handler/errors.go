package handler

import (
	"errors"
	"net/http"

	"github.com/Pesokrava/autospares/internal/delivery/http/response"
	"github.com/Pesokrava/autospares/internal/domain"
	"github.com/Pesokrava/autospares/internal/pkg/logger"
)

// retryAfterSeconds is advertised when a transaction gave up on a transient race
const retryAfterSeconds = "1"

// writeError maps service errors to HTTP responses. resource names the thing
// that was not found, e.g. "Order".
func writeError(w http.ResponseWriter, log *logger.Logger, resource string, err error) {
	var (
		verr *domain.ValidationError
		serr *domain.StockError
		uerr *domain.UnavailableError
		terr *domain.TransitionError
	)

	switch {
	case errors.As(err, &verr):
		response.ValidationError(w, verr.Fields)
	case errors.As(err, &serr):
		response.Error(w, http.StatusUnprocessableEntity, serr.Error())
	case errors.As(err, &uerr):
		response.Error(w, http.StatusUnprocessableEntity, uerr.Error())
	case errors.As(err, &terr):
		response.Error(w, http.StatusConflict, terr.Error())
	case errors.Is(err, domain.ErrNotFound):
		response.Error(w, http.StatusNotFound, resource+" not found")
	case errors.Is(err, domain.ErrInvalidSignature):
		response.Error(w, http.StatusUnauthorized, "Invalid signature")
	case errors.Is(err, domain.ErrInvalidInput):
		response.Error(w, http.StatusBadRequest, "Invalid input")
	case errors.Is(err, domain.ErrAlreadyExists):
		response.Error(w, http.StatusConflict, resource+" already exists")
	case errors.Is(err, domain.ErrConflict):
		response.Error(w, http.StatusConflict, "Conflict - "+resource+" was modified by another request")
	case errors.Is(err, domain.ErrTransient):
		w.Header().Set("Retry-After", retryAfterSeconds)
		response.Error(w, http.StatusServiceUnavailable, "Temporary failure, please retry")
	default:
		log.Error("Internal error handling "+resource, err)
		response.Error(w, http.StatusInternalServerError, "Internal server error")
	}
}
