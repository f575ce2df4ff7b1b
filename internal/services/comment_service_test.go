package services

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateComment(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingService(db)
	svc := NewCommentService(db, ratings)
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()

	dto, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "tasty"}, commenter)
	require.NoError(t, err)
	assert.Equal(t, "tasty", dto.Content)
	assert.Equal(t, commenter, dto.Author)
	assert.Nil(t, dto.Rating)
}

func TestCreateCommentWithRating(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingService(db)
	svc := NewCommentService(db, ratings)
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()

	value := 4
	dto, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "good", Rating: &value}, commenter)
	require.NoError(t, err)
	require.NotNil(t, dto.Rating)
	assert.Equal(t, 4, dto.Rating.Value)

	// the comment rating went through the shared upsert path
	stored, err := ratings.GetByRecipe(recipe.ID)
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, commenter, stored[0].Author)
}

func TestCreateCommentReusesExistingRating(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingService(db)
	svc := NewCommentService(db, ratings)
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()

	_, err := ratings.Upsert(recipe.ID, 2, commenter)
	require.NoError(t, err)

	value := 5
	dto, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "changed my mind", Rating: &value}, commenter)
	require.NoError(t, err)
	require.NotNil(t, dto.Rating)
	assert.Equal(t, 5, dto.Rating.Value)

	// still one rating per (author, recipe)
	stored, err := ratings.GetByRecipe(recipe.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestCreateCommentValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db, NewRatingService(db))
	recipe := createTestRecipe(t, db, uuid.New())

	_, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "  "}, uuid.New())
	assert.True(t, models.IsValidationError(err))

	_, err = svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: strings.Repeat("x", 501)}, uuid.New())
	assert.True(t, models.IsValidationError(err))

	bad := 7
	_, err = svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "ok", Rating: &bad}, uuid.New())
	assert.True(t, models.IsValidationError(err))

	_, err = svc.Create(models.CommentCreate{RecipeID: 999, Content: "ok"}, uuid.New())
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateCommentAuthorization(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db, NewRatingService(db))
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()

	created, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "original"}, commenter)
	require.NoError(t, err)

	_, err = svc.Update(created.ID, models.CommentIn{Content: "hijacked"}, uuid.New(), models.RoleUser)
	assert.ErrorIs(t, err, models.ErrForbidden)

	updated, err := svc.Update(created.ID, models.CommentIn{Content: "edited"}, commenter, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestUpdateCommentRatingKeepsAuthor(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingService(db)
	svc := NewCommentService(db, ratings)
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()
	admin := uuid.New()

	created, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "fine"}, commenter)
	require.NoError(t, err)

	// an admin edit adding a rating records it for the comment's author
	value := 3
	updated, err := svc.Update(created.ID, models.CommentIn{Content: "fine", Rating: &value}, admin, models.RoleAdmin)
	require.NoError(t, err)
	require.NotNil(t, updated.Rating)
	assert.Equal(t, commenter, updated.Rating.Author)
}

func TestDeleteCommentRemovesLinkedRating(t *testing.T) {
	db := setupTestDB(t)
	ratings := NewRatingService(db)
	svc := NewCommentService(db, ratings)
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()

	value := 4
	created, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "good", Rating: &value}, commenter)
	require.NoError(t, err)

	err = svc.Delete(created.ID, uuid.New(), models.RoleUser)
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = svc.Delete(created.ID, commenter, models.RoleUser)
	require.NoError(t, err)

	_, err = svc.GetByID(created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)

	stored, err := ratings.GetByRecipe(recipe.ID)
	require.NoError(t, err)
	assert.Empty(t, stored, "deleting a comment removes its linked rating")
}

func TestGetCommentsByUser(t *testing.T) {
	db := setupTestDB(t)
	svc := NewCommentService(db, NewRatingService(db))
	recipe := createTestRecipe(t, db, uuid.New())
	commenter := uuid.New()

	_, err := svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "one"}, commenter)
	require.NoError(t, err)
	_, err = svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "two"}, commenter)
	require.NoError(t, err)
	_, err = svc.Create(models.CommentCreate{RecipeID: recipe.ID, Content: "other"}, uuid.New())
	require.NoError(t, err)

	mine, err := svc.GetByUser(commenter)
	require.NoError(t, err)
	assert.Len(t, mine, 2)
}
