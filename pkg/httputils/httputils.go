package httputils

import (
	"encoding/json"
	"net/http"

	"github.com/AndrewN04/url-shortner/internal/constants"
	"github.com/AndrewN04/url-shortner/internal/infrastructure/logger"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const CorrelationIDHeader = "X-Correlation-Id"

// ErrorResponse is the body of every non-2xx JSON response.
type ErrorResponse struct {
	Error string `json:"error" example:"Invalid API key"`
	Code  string `json:"code" example:"UNAUTHORIZED"`
}

// GetCorrelationID extracts the correlation ID from the request header
// If not present, generates a new UUID v4
func GetCorrelationID(r *http.Request) string {
	correlationID := r.Header.Get(CorrelationIDHeader)
	if correlationID == "" {
		correlationID = uuid.New().String()
	}
	return correlationID
}

// WriteAPIError writes a predefined APIError as {"error", "code"}.
func WriteAPIError(w http.ResponseWriter, r *http.Request, apiErr constants.APIError) {
	w.Header().Set(CorrelationIDHeader, GetCorrelationID(r))
	RespondJSON(w, apiErr.Status, ErrorResponse{
		Error: apiErr.Message,
		Code:  apiErr.Code,
	})
}

// WriteAPISuccess writes data as the response body with the correlation header.
func WriteAPISuccess(w http.ResponseWriter, r *http.Request, status int, data any) {
	w.Header().Set(CorrelationIDHeader, GetCorrelationID(r))
	RespondJSON(w, status, data)
}

func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode json response", zap.Error(err))
	}
}
