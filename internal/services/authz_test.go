package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/stretchr/testify/assert"
)

func TestAllow(t *testing.T) {
	owner := uuid.New()
	stranger := uuid.New()

	assert.True(t, Allow(models.RoleUser, owner, owner), "owners act on their own content")
	assert.False(t, Allow(models.RoleUser, stranger, owner), "non-owners are denied")
	assert.True(t, Allow(models.RoleAdmin, stranger, owner), "admins act on anything")
	assert.False(t, Allow("", stranger, owner), "unknown role gets no special treatment")
	assert.False(t, Allow("admin", stranger, owner), "role comparison is exact")
}
