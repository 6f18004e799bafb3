package handlers

import (
	"encoding/json"
	"net/http"

	apperrors "github.com/careloop/visitprep/pkg/errors"
)

func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func respondWithError(w http.ResponseWriter, statusCode int, message string) {
	respondWithJSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// respondWithAppError maps application error types onto HTTP statuses.
// Internal detail stays out of the response body.
func respondWithAppError(w http.ResponseWriter, err error) {
	switch apperrors.TypeOf(err) {
	case apperrors.ErrorTypeNotFound:
		respondWithError(w, http.StatusNotFound, appErrorMessage(err, "resource not found"))
	case apperrors.ErrorTypeValidation:
		respondWithError(w, http.StatusUnprocessableEntity, appErrorMessage(err, "invalid request"))
	case apperrors.ErrorTypeExternal:
		respondWithError(w, http.StatusBadGateway, appErrorMessage(err, "upstream provider failed"))
	case apperrors.ErrorTypeStorage, apperrors.ErrorTypeDecode:
		respondWithError(w, http.StatusInternalServerError, "storage error")
	default:
		respondWithError(w, http.StatusInternalServerError, "internal server error")
	}
}

func appErrorMessage(err error, fallback string) string {
	if appErr, ok := err.(*apperrors.AppError); ok && appErr.Message != "" {
		return appErr.Message
	}
	return fallback
}
