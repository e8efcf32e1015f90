package response

import (
	"encoding/json"
	"net/http"

	"github.com/Pesokrava/autospares/internal/domain"
)

// JSON writes a JSON response
func JSON(w http.ResponseWriter, statusCode int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// Error writes an error response
func Error(w http.ResponseWriter, statusCode int, message string) {
	JSON(w, statusCode, map[string]string{
		"error": message,
	})
}

// ValidationError writes a 400 listing every invalid field
func ValidationError(w http.ResponseWriter, fields []domain.FieldError) {
	JSON(w, http.StatusBadRequest, map[string]any{
		"error":  "Validation failed",
		"errors": fields,
	})
}

// Success writes a success response with data
func Success(w http.ResponseWriter, data any) {
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
	})
}

// Created writes a created response
func Created(w http.ResponseWriter, data any) {
	JSON(w, http.StatusCreated, map[string]any{
		"success": true,
		"data":    data,
	})
}

// NoContent writes a no content response
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Paginated writes a paginated response
func Paginated(w http.ResponseWriter, data any, total, limit, offset int) {
	JSON(w, http.StatusOK, map[string]any{
		"success": true,
		"data":    data,
		"pagination": map[string]int{
			"total":  total,
			"limit":  limit,
			"offset": offset,
		},
	})
}
