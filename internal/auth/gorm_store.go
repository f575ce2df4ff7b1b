package auth

import (
	"context"
	"time"

	"github.com/go-oauth2/oauth2/v4"
	oauthmodels "github.com/go-oauth2/oauth2/v4/models"
	internalmodels "github.com/mealshare/gin-meal-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// clientInfo adapts a stored client row for the OAuth2 manager. Secret holds
// a bcrypt hash, so plain equality against the request secret would always
// fail; implementing oauth2.ClientPasswordVerifier makes the manager verify
// through bcrypt instead.
type clientInfo struct {
	id     string
	secret string
	domain string
	userID string
}

func (c *clientInfo) GetID() string     { return c.id }
func (c *clientInfo) GetSecret() string { return c.secret }
func (c *clientInfo) GetDomain() string { return c.domain }
func (c *clientInfo) IsPublic() bool    { return false }
func (c *clientInfo) GetUserID() string { return c.userID }

// VerifyPassword compares the presented secret against the stored bcrypt hash
func (c *clientInfo) VerifyPassword(secret string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.secret), []byte(secret)) == nil
}

type GormClientStore struct {
	db *gorm.DB
}

func NewGormClientStore(db *gorm.DB) *GormClientStore {
	return &GormClientStore{db: db}
}

func (s *GormClientStore) GetByID(ctx context.Context, id string) (oauth2.ClientInfo, error) {
	var client internalmodels.OAuthClient
	if err := s.db.Where("id = ?", id).First(&client).Error; err != nil {
		return nil, err
	}

	return &clientInfo{
		id:     client.ID,
		secret: client.Secret,
		domain: client.Domain,
		userID: client.UserID,
	}, nil
}

type GormTokenStore struct {
	db *gorm.DB
}

func NewGormTokenStore(db *gorm.DB) *GormTokenStore {
	return &GormTokenStore{db: db}
}

func (s *GormTokenStore) Create(ctx context.Context, info oauth2.TokenInfo) error {
	userID := info.GetUserID()
	refreshToken := info.GetRefresh()
	expiresIn := info.GetAccessExpiresIn()

	token := &internalmodels.OAuthToken{
		ClientID:     info.GetClientID(),
		UserID:       &userID,
		AccessToken:  info.GetAccess(),
		RefreshToken: &refreshToken,
		Scopes:       info.GetScope(),
		ExpiresAt:    time.Now().Add(expiresIn),
	}

	return s.db.Create(token).Error
}

func (s *GormTokenStore) RemoveByAccess(ctx context.Context, access string) error {
	return s.db.Where("access_token = ?", access).Delete(&internalmodels.OAuthToken{}).Error
}

func (s *GormTokenStore) RemoveByRefresh(ctx context.Context, refresh string) error {
	return s.db.Where("refresh_token = ?", refresh).Delete(&internalmodels.OAuthToken{}).Error
}

// RemoveByCode is a no-op: the authorization-code grant is not offered
func (s *GormTokenStore) RemoveByCode(ctx context.Context, code string) error {
	return nil
}

func (s *GormTokenStore) GetByAccess(ctx context.Context, access string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.Where("access_token = ?", access).First(&token).Error; err != nil {
		return nil, err
	}
	return tokenInfo(&token), nil
}

func (s *GormTokenStore) GetByRefresh(ctx context.Context, refresh string) (oauth2.TokenInfo, error) {
	var token internalmodels.OAuthToken
	if err := s.db.Where("refresh_token = ?", refresh).First(&token).Error; err != nil {
		return nil, err
	}
	return tokenInfo(&token), nil
}

// GetByCode always misses: the authorization-code grant is not offered
func (s *GormTokenStore) GetByCode(ctx context.Context, code string) (oauth2.TokenInfo, error) {
	return nil, gorm.ErrRecordNotFound
}

func tokenInfo(token *internalmodels.OAuthToken) oauth2.TokenInfo {
	info := &oauthmodels.Token{
		ClientID:        token.ClientID,
		Access:          token.AccessToken,
		AccessExpiresIn: time.Until(token.ExpiresAt),
		Scope:           token.Scopes,
	}
	if token.UserID != nil {
		info.UserID = *token.UserID
	}
	if token.RefreshToken != nil {
		info.Refresh = *token.RefreshToken
	}
	return info
}
