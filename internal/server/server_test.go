package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"barangaylink-backend/internal/bootstrap"
	"barangaylink-backend/internal/config"
)

func newTestServer(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	require.NoError(t, bootstrap.SeedAdminUser(db))

	cfg := &config.Config{
		AppEnv:          "test",
		JWTSecret:       "test-secret",
		JWTTTL:          time.Hour,
		LoginLockWindow: 0,
		AuthRatePerSec:  1000,
		AuthRateBurst:   1000,
	}
	return New(db, nil, cfg).Engine()
}

func doJSON(t *testing.T, engine *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func loginAs(t *testing.T, engine *gin.Engine, username, password string) string {
	t.Helper()

	rec := doJSON(t, engine, http.MethodPost, "/api/users/login", "", gin.H{
		"username": username,
		"password": password,
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token, _ := decode(t, rec)["token"].(string)
	require.NotEmpty(t, token)
	return token
}

func TestHealth(t *testing.T) {
	engine := newTestServer(t)

	rec := doJSON(t, engine, http.MethodGet, "/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decode(t, rec)["status"])
}

func TestAuthGating(t *testing.T) {
	engine := newTestServer(t)

	// Reads are public.
	rec := doJSON(t, engine, http.MethodGet, "/api/residents", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Writes are not.
	rec = doJSON(t, engine, http.MethodPost, "/api/residents", "", gin.H{"residentId": "R-1"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/reports/requests.csv", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// A staff account may create but not delete.
	admin := loginAs(t, engine, "admin", "admin123")

	rec = doJSON(t, engine, http.MethodPost, "/api/staff", admin, gin.H{"name": "Dina Flores", "role": "Clerk"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	staffID, _ := decode(t, rec)["id"].(string)

	rec = doJSON(t, engine, http.MethodPost, "/api/users/register", admin, gin.H{
		"username": "dina",
		"password": "sekret1",
		"role":     "staff",
		"staffId":  staffID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	staffToken := loginAs(t, engine, "dina", "sekret1")

	rec = doJSON(t, engine, http.MethodPost, "/api/residents", staffToken, gin.H{
		"residentId":    "R-9000",
		"name":          "Ramon Cruz",
		"address":       "5 Mabini St",
		"birthDate":     "1991-02-03T00:00:00Z",
		"contactNumber": "09301234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	residentID, _ := decode(t, rec)["id"].(string)

	rec = doJSON(t, engine, http.MethodDelete, "/api/residents/"+residentID, staffToken, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Staff cannot register accounts either.
	rec = doJSON(t, engine, http.MethodPost, "/api/users/register", staffToken, gin.H{
		"username": "sneaky",
		"password": "sekret1",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = doJSON(t, engine, http.MethodDelete, "/api/residents/"+residentID, admin, nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)
}

// Walks a request through its whole life: resident registered, multi-service
// request filed, moved to in_progress, staff assigned, and finally the
// resident deleted with everything they own going with them.
func TestRequestLifecycle(t *testing.T) {
	engine := newTestServer(t)
	admin := loginAs(t, engine, "admin", "admin123")

	rec := doJSON(t, engine, http.MethodPost, "/api/residents", admin, gin.H{
		"residentId":    "R-8000",
		"name":          "Josefa Lim",
		"address":       "14 Quezon Ave",
		"birthDate":     "1980-09-09T00:00:00Z",
		"contactNumber": "09401234567",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	residentID, _ := decode(t, rec)["id"].(string)

	var serviceIDs []string
	for _, serviceType := range []string{"Medical Assistance", "Burial Assistance"} {
		rec = doJSON(t, engine, http.MethodPost, "/api/services", admin, gin.H{
			"serviceType": serviceType,
			"description": "Assistance program",
		})
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		id, _ := decode(t, rec)["id"].(string)
		serviceIDs = append(serviceIDs, id)
	}

	rec = doJSON(t, engine, http.MethodPost, "/api/requests", admin, gin.H{
		"residentId": residentID,
		"serviceIds": serviceIDs,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	created := decode(t, rec)
	requestID, _ := created["id"].(string)
	assert.Equal(t, "pending", created["status"])
	assert.Nil(t, created["service"], "plural requests carry no singular reference")
	assert.Len(t, created["services"], 2)

	resident, ok := created["resident"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Josefa Lim", resident["name"])

	rec = doJSON(t, engine, http.MethodPut, "/api/requests/"+requestID, admin, gin.H{"status": "in_progress"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, "in_progress", decode(t, rec)["status"])

	rec = doJSON(t, engine, http.MethodPut, "/api/requests/"+requestID, admin, gin.H{"status": "approved"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodPost, "/api/staff", admin, gin.H{"name": "Gloria Santos", "role": "Social Worker"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	staffID, _ := decode(t, rec)["id"].(string)

	rec = doJSON(t, engine, http.MethodPost, "/api/assignments", admin, gin.H{
		"requestId": requestID,
		"staffId":   staffID,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assignment := decode(t, rec)
	assignmentID, _ := assignment["id"].(string)

	nested, ok := assignment["request"].(map[string]any)
	require.True(t, ok, "assignment resolves its request")
	assert.Equal(t, requestID, nested["id"])

	// The report sees the in-flight request.
	rec = doJSON(t, engine, http.MethodGet, "/api/reports/requests.csv", admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "text/csv")
	assert.Contains(t, rec.Body.String(), "Josefa Lim")
	assert.Contains(t, rec.Body.String(), "in_progress")

	// Deleting the resident takes the request and the assignment with it.
	rec = doJSON(t, engine, http.MethodDelete, "/api/residents/"+residentID, admin, nil)
	require.Equal(t, http.StatusNoContent, rec.Code, rec.Body.String())

	rec = doJSON(t, engine, http.MethodGet, "/api/requests/"+requestID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/assignments/"+assignmentID, "", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The catalog survives the cascade untouched.
	rec = doJSON(t, engine, http.MethodGet, "/api/services", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var services []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &services))
	assert.Len(t, services, 2)
}

func TestRequestValidation(t *testing.T) {
	engine := newTestServer(t)
	admin := loginAs(t, engine, "admin", "admin123")

	rec := doJSON(t, engine, http.MethodPost, "/api/requests", admin, gin.H{
		"residentId": "b3b7f9a0-0000-0000-0000-000000000001",
		"serviceId":  "b3b7f9a0-0000-0000-0000-000000000002",
	})
	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "Resident not found", decode(t, rec)["error"])

	rec = doJSON(t, engine, http.MethodPost, "/api/requests", admin, gin.H{"residentId": "not-a-uuid"})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = doJSON(t, engine, http.MethodGet, "/api/requests/not-a-uuid", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "invalid id format", decode(t, rec)["error"])
}
