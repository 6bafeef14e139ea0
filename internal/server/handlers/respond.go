package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/iudanet/goawx/pkg/api"
)

// Тексты ошибок в формате AWX
const (
	DetailNotFound         = "Not found."
	DetailNotAuthenticated = "Authentication credentials were not provided."
	DetailInvalidAuth      = "Invalid username/password or token."
	DetailPermissionDenied = "You do not have permission to perform this action."
	DetailServerError      = "A server error occurred."
	DetailMethodNotAllowed = "Method not allowed."
	DetailThrottled        = "Request was throttled."
)

// sendJSON отправляет JSON ответ
func sendJSON(w http.ResponseWriter, logger *slog.Logger, data any, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", slog.Any("error", err))
	}
}

// SendDetail отправляет ошибку в формате {"detail": "..."}
func SendDetail(w http.ResponseWriter, logger *slog.Logger, detail string, statusCode int) {
	sendJSON(w, logger, api.ErrorResponse{Detail: detail}, statusCode)
}

// NotFound отвечает 404 в формате AWX
func NotFound(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		SendDetail(w, logger, DetailNotFound, http.StatusNotFound)
	}
}

// MethodNotAllowed отвечает 405 в формате AWX
func MethodNotAllowed(logger *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		SendDetail(w, logger, DetailMethodNotAllowed, http.StatusMethodNotAllowed)
	}
}
