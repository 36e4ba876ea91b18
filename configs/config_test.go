package config

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofrs/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "")
	assert.Equal(t, []string{"http://localhost:5173"}, CORSOrigins())

	t.Setenv("CORS_ORIGINS", " https://hub.example.com , ,http://localhost:3000")
	assert.Equal(t, []string{"https://hub.example.com", "http://localhost:3000"}, CORSOrigins())
}

func TestCORSAllowsConfiguredOrigin(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://hub.example.com")

	h := CORS().Handler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/v1/dashboard", nil)
	req.Header.Set("Origin", "https://hub.example.com")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, "https://hub.example.com", rec.Header().Get("Access-Control-Allow-Origin"))

	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestCreateUniqueInstance(t *testing.T) {
	id := CreateUniqueInstance("test")
	_, err := uuid.FromString(id)
	require.NoError(t, err)
	assert.Equal(t, id, InstanceId)
}

func TestCustomLoggerMiddleware(t *testing.T) {
	var buf bytes.Buffer
	prev := log.StandardLogger().Out
	log.SetOutput(&buf)
	defer log.SetOutput(prev)

	h := CustomLoggerMiddleware()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/v1/standings", nil))

	assert.Contains(t, buf.String(), "GET /v1/standings")
	assert.Contains(t, buf.String(), "418")
}
