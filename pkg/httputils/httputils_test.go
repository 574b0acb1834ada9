package httputils

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/AndrewN04/url-shortner/internal/constants"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteAPIError(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/shorten", nil)
	req.Header.Set(CorrelationIDHeader, "corr-1")
	rec := httptest.NewRecorder()

	WriteAPIError(rec, req, constants.ErrInvalidAPIKey)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, "corr-1", rec.Header().Get(CorrelationIDHeader))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, map[string]string{"error": "Invalid API key", "code": "UNAUTHORIZED"}, body)
}

func TestGetCorrelationID_Generates(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	id := GetCorrelationID(req)
	assert.Len(t, id, 36)
	assert.NotEqual(t, id, GetCorrelationID(req))
}

func TestWriteAPISuccess(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()

	WriteAPISuccess(rec, req, http.StatusCreated, map[string]string{"code": "abc"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.NotEmpty(t, rec.Header().Get(CorrelationIDHeader))
	assert.JSONEq(t, `{"code":"abc"}`, rec.Body.String())
}
