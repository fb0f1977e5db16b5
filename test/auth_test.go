package test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/db"
	"github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api"
	authapi "github.com/GATkassTACA/trudigital-2.0-sub000/internal/http/api/auth/endpoints"
)

const testJWTSecret = "supersecret"

func setupAuthRouter(store db.Store) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	api.MountGroup(r, api.GroupConfig{Prefix: "/api/admin"},
		authapi.AuthPublicModule(testJWTSecret, store),
	)
	api.MountGroup(r, api.GroupConfig{
		Prefix:    "/api/admin",
		Auth:      true,
		SecretKey: testJWTSecret,
	},
		authapi.AuthSessionModule(testJWTSecret, store),
	)
	return r
}

// TestSignupLoginAndProfile runs the full account flow against a real
// database. Set TEST_DATABASE_URL to run it.
func TestSignupLoginAndProfile(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}
	require.NoError(t, db.InitTestDB("../migrations"))

	router := setupAuthRouter(db.TestStore)

	signupJSON, _ := json.Marshal(map[string]any{
		"email":    "flow@example.com",
		"password": "12345678",
	})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/admin/auth/signup", bytes.NewReader(signupJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var signupResp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &signupResp))
	token := signupResp["token"]
	require.NotEmpty(t, token)

	// profile without a token is rejected
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/admin/auth/current_profile", nil)
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// with the token it resolves the signed-up user
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/api/admin/auth/current_profile", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var profile map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "flow@example.com", profile["email"])

	// login issues a fresh token
	loginJSON, _ := json.Marshal(map[string]any{
		"email":    "flow@example.com",
		"password": "12345678",
	})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/admin/auth/login", bytes.NewReader(loginJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// wrong password is rejected
	badJSON, _ := json.Marshal(map[string]any{
		"email":    "flow@example.com",
		"password": "wrongpass",
	})
	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodPost, "/api/admin/auth/login", bytes.NewReader(badJSON))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
