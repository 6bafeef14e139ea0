package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iudanet/goawx/pkg/api"
)

func TestHealthHandler_Ping(t *testing.T) {
	h := NewHealthHandler(discardLogger(), "1.2.3")

	rr := httptest.NewRecorder()
	h.Ping(rr, httptest.NewRequest(http.MethodGet, "/api/v2/ping/", nil))

	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp api.PingResponse
	require.NoError(t, json.NewDecoder(rr.Body).Decode(&resp))
	assert.Equal(t, "1.2.3", resp.Version)
	assert.Equal(t, "awxstub", resp.Active)
	assert.False(t, resp.HA)
}

func TestNotFoundAndMethodNotAllowed(t *testing.T) {
	rr := httptest.NewRecorder()
	NotFound(discardLogger())(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, DetailNotFound, decodeDetail(t, rr))

	rr = httptest.NewRecorder()
	MethodNotAllowed(discardLogger())(rr, httptest.NewRequest(http.MethodPost, "/api/v2/ping/", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, DetailMethodNotAllowed, decodeDetail(t, rr))
}
