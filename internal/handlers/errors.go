package handlers

import (
	"errors"
	"net/http"

	"taskmanager/internal/logger"
	"taskmanager/internal/service"

	"go.uber.org/zap"
)

// handleServiceError translates domain errors into HTTP responses.
// Anything unrecognized is logged in full and reported opaquely.
func handleServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var notFound *service.NotFoundError
	if errors.As(err, &notFound) {
		responseWithError(w, http.StatusNotFound, notFound.Error())
		return
	}

	var validation *service.ValidationError
	if errors.As(err, &validation) {
		logger.Warn("HTTP: validation failed",
			zap.String("path", r.URL.Path),
			zap.Any("fields", validation.Fields))
		responseWithFields(w, http.StatusBadRequest, validation.Fields)
		return
	}

	logger.Error("HTTP: unexpected service error", err,
		zap.String("path", r.URL.Path),
		zap.String("client_ip", r.RemoteAddr))
	responseWithError(w, http.StatusInternalServerError, "internal server error")
}
