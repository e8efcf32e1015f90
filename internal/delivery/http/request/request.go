package request

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const maxRequestBodySize = 1 << 20 // 1MB

// Identity headers supplied by the caller
const (
	HeaderUserID    = "X-User-ID"
	HeaderActorID   = "X-Actor-ID"
	HeaderSessionID = "X-Session-ID"
)

// DecodeJSON decodes JSON request body into the provided struct with size limit
func DecodeJSON(r *http.Request, v any) error {
	defer r.Body.Close()

	if err := json.NewDecoder(io.LimitReader(r.Body, maxRequestBodySize)).Decode(v); err != nil {
		return fmt.Errorf("failed to decode JSON: %w", err)
	}
	return nil
}

// ReadBody returns the raw request body, up to the size limit
func ReadBody(r *http.Request) ([]byte, error) {
	defer r.Body.Close()

	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodySize))
	if err != nil {
		return nil, fmt.Errorf("failed to read body: %w", err)
	}
	return body, nil
}

// GetUUIDParam extracts a UUID parameter from the URL
func GetUUIDParam(r *http.Request, key string) (uuid.UUID, error) {
	param := chi.URLParam(r, key)
	if param == "" {
		return uuid.Nil, fmt.Errorf("missing parameter: %s", key)
	}

	id, err := uuid.Parse(param)
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid UUID: %w", err)
	}

	return id, nil
}

// GetOptionalUUIDHeader parses a UUID header; an absent header yields nil
func GetOptionalUUIDHeader(r *http.Request, key string) (*uuid.UUID, error) {
	value := strings.TrimSpace(r.Header.Get(key))
	if value == "" {
		return nil, nil
	}

	id, err := uuid.Parse(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s header: %w", key, err)
	}
	return &id, nil
}

// SessionID returns the client session identifier
func SessionID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get(HeaderSessionID))
}

// GetIntQuery extracts an integer query parameter with a default value
func GetIntQuery(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

// GetBoolQuery extracts an optional boolean query parameter
func GetBoolQuery(r *http.Request, key string) *bool {
	value, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &value
}

// GetPaginationParams extracts and validates pagination parameters
func GetPaginationParams(r *http.Request) (limit, offset int) {
	limit = GetIntQuery(r, "limit", 20)
	offset = GetIntQuery(r, "offset", 0)

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	return limit, offset
}
