package auth

import (
	"context"
	"testing"

	"github.com/go-oauth2/oauth2/v4"
	"github.com/golang-jwt/jwt/v5"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testJWTSecret = "test-jwt-secret-key-32-characters"

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.OAuthClient{}, &models.OAuthToken{})
	require.NoError(t, err)

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, role string) *models.User {
	user := &models.User{
		Email:    role + "@example.com",
		Password: "irrelevant",
		Role:     role,
	}
	require.NoError(t, user.HashPassword())
	require.NoError(t, db.Create(user).Error)
	return user
}

func createTestClient(t *testing.T, db *gorm.DB, userID, plainSecret string) *models.OAuthClient {
	hashed, err := bcrypt.GenerateFromPassword([]byte(plainSecret), bcrypt.DefaultCost)
	require.NoError(t, err)

	client := &models.OAuthClient{
		ID:     "test_client",
		Secret: string(hashed),
		Name:   "Test Client",
		Domain: "http://localhost",
		UserID: userID,
		Scopes: "read write",
	}
	require.NoError(t, db.Create(client).Error)
	return client
}

func TestOAuthServerInitialization(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, testJWTSecret)
	assert.NotNil(t, oauthService)
	assert.NotNil(t, oauthService.GetServer())
}

func TestJWTTokenGeneration(t *testing.T) {
	db := setupTestDB(t)

	oauthService := NewOAuthService(db, testJWTSecret)
	require.NotNil(t, oauthService)

	user := createTestUser(t, db, models.RoleAdmin)
	createTestClient(t, db, user.ID.String(), "test_secret")

	ti, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
		Scope:        "read",
	})
	require.NoError(t, err)
	require.NotEmpty(t, ti.GetAccess())

	// the access token is a JWT carrying the bound user's uuid and role
	token, err := jwt.Parse(ti.GetAccess(), func(token *jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	require.True(t, token.Valid)

	claims, ok := token.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, user.ID.String(), claims["uid"])
	assert.Equal(t, models.RoleAdmin, claims["role"])
	assert.Equal(t, "test_client", claims["aud"])
}

func TestTokenGenerationUnknownUser(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	// client bound to a user that does not exist
	createTestClient(t, db, "2f5a0e6f-1a9e-4d46-9a6b-0f6a0f8a9c11", "test_secret")

	_, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
	})
	assert.Error(t, err, "token generation must fail when the bound user is missing")
}

func TestManagerVerifiesSecretAgainstHash(t *testing.T) {
	db := setupTestDB(t)
	oauthService := NewOAuthService(db, testJWTSecret)

	user := createTestUser(t, db, models.RoleUser)
	createTestClient(t, db, user.ID.String(), "test_secret")

	// the stored secret is a bcrypt hash; the manager must verify the plain
	// secret through it rather than by string equality
	_, err := oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "test_secret",
	})
	assert.NoError(t, err)

	_, err = oauthService.GetServer().Manager.GenerateAccessToken(context.Background(), oauth2.ClientCredentials, &oauth2.TokenGenerateRequest{
		ClientID:     "test_client",
		ClientSecret: "wrong_secret",
	})
	assert.Error(t, err)
}
