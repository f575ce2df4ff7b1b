package auth

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenRouter(oauthService *OAuthService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/oauth/token", oauthService.HandleToken)
	return router
}

func postTokenRequest(router *gin.Engine, form string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("POST", "/oauth/token", bytes.NewBufferString(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestClientCredentialsFlow(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)
	require.NotNil(t, oauthService)

	user := createTestUser(t, db, models.RoleUser)
	createTestClient(t, db, user.ID.String(), "test_secret")

	router := newTokenRouter(oauthService)

	// the plain text secret is verified against the stored bcrypt hash
	w := postTokenRequest(router, "grant_type=client_credentials&client_id=test_client&client_secret=test_secret")
	assert.Equal(t, http.StatusOK, w.Code)

	var response map[string]interface{}
	err := json.Unmarshal(w.Body.Bytes(), &response)
	assert.NoError(t, err)

	assert.Contains(t, response, "access_token")
	assert.Equal(t, "Bearer", response["token_type"])

	// the token is a JWT
	accessToken := response["access_token"].(string)
	assert.Contains(t, accessToken, ".")
}

func TestClientCredentialsInvalidSecret(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	user := createTestUser(t, db, models.RoleUser)
	createTestClient(t, db, user.ID.String(), "correct_secret")

	router := newTokenRouter(oauthService)

	w := postTokenRequest(router, "grant_type=client_credentials&client_id=test_client&client_secret=wrong_secret")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientCredentialsUnknownClient(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	router := newTokenRouter(oauthService)

	w := postTokenRequest(router, "grant_type=client_credentials&client_id=ghost&client_secret=whatever")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestClientCredentialsUnsupportedGrant(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	router := newTokenRouter(oauthService)

	w := postTokenRequest(router, "grant_type=authorization_code&code=abc&client_id=test_client")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
