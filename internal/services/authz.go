package services

import (
	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
)

// Allow is the single capability check for mutations on owned resources:
// the owner may act on their own content, admins may act on anything.
// Every service-level ownership decision goes through here so the rule
// cannot drift between endpoints.
func Allow(actorRole string, actorID, ownerID uuid.UUID) bool {
	if actorRole == models.RoleAdmin {
		return true
	}
	return actorID == ownerID
}
