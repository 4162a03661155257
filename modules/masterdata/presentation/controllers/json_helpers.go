package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/ensuredit/masterdata/pkg/configuration"
	"github.com/ensuredit/masterdata/pkg/serrors"
)

// APIError standardizes JSON error responses.
type APIError struct {
	Message string            `json:"message"`
	Code    string            `json:"code"`
	Meta    map[string]string `json:"meta,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		panic(err)
	}
}

func ensureRequestID(w http.ResponseWriter, r *http.Request) string {
	if r == nil {
		return ""
	}
	header := strings.TrimSpace(configuration.Use().RequestIDHeader)
	if header == "" {
		header = "X-Request-ID"
	}

	requestID := strings.TrimSpace(r.Header.Get(header))
	if requestID == "" {
		requestID = strings.TrimSpace(r.Header.Get("X-Request-Id"))
	}
	if requestID == "" {
		requestID = uuid.NewString()
		w.Header().Set(header, requestID)
	}
	return requestID
}

func writeAPIError(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	meta := map[string]string{
		"request_id": ensureRequestID(w, r),
	}
	writeJSON(w, status, APIError{
		Code:    code,
		Message: message,
		Meta:    meta,
	})
}

func writeValidationError(w http.ResponseWriter, r *http.Request, code string, errs serrors.ValidationErrors) {
	message := "validation failed"
	for _, v := range errs {
		if strings.TrimSpace(v) != "" {
			message = v
			break
		}
	}
	writeAPIError(w, r, http.StatusUnprocessableEntity, code, message)
}

func parseLimitOffset(r *http.Request) (int, int) {
	conf := configuration.Use()
	limit := conf.PageSize
	if limit <= 0 {
		limit = 20
	}
	maxLimit := conf.MaxPageSize
	if maxLimit <= 0 {
		maxLimit = 100
	}
	if v := strings.TrimSpace(r.URL.Query().Get("limit")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 && parsed <= maxLimit {
			limit = parsed
		}
	}
	offset := 0
	if v := strings.TrimSpace(r.URL.Query().Get("offset")); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			offset = parsed
		}
	}
	return limit, offset
}
