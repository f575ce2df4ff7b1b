package services

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/mealshare/gin-meal-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Recipe{}, &models.Rating{}, &models.Comment{}, &models.Report{})
	require.NoError(t, err)

	return db
}

// stubDetector returns a fixed score or error without any network calls
type stubDetector struct {
	score float64
	err   error
}

func (d stubDetector) Detect(ctx context.Context, text string) (float64, error) {
	return d.score, d.err
}

func newTestRecipeService(t *testing.T, detector AiTextDetector) (RecipeService, *gorm.DB) {
	db := setupTestDB(t)
	return NewRecipeService(db, detector), db
}

func validRecipeIn() models.RecipeIn {
	return models.RecipeIn{
		Name:            "Spaghetti Carbonara",
		Description:     "A roman classic",
		Instructions:    "Boil pasta, fry pancetta, mix with egg and cheese",
		Category:        "Dinner",
		Ingredients:     []string{"200g:pasta", "100g:pancetta", "2:eggs"},
		PreparationTime: 30,
	}
}

func TestMatchFraction(t *testing.T) {
	tests := []struct {
		name        string
		ingredients []string
		available   []string
		want        float64
		wantOK      bool
	}{
		{
			name:        "half covered",
			ingredients: []string{"200g:flour", "2:eggs"},
			available:   []string{"egg"},
			want:        0.5,
			wantOK:      true,
		},
		{
			name:        "all covered",
			ingredients: []string{"200g:flour", "2:eggs"},
			available:   []string{"flour", "egg"},
			want:        1.0,
			wantOK:      true,
		},
		{
			name:        "substring matches recipe ingredient, not the reverse",
			ingredients: []string{"2:egg"},
			available:   []string{"egg yolk"},
			want:        0.0,
			wantOK:      true,
		},
		{
			name:        "diacritics are stripped before comparing",
			ingredients: []string{"100g:Żółta Cebula"},
			available:   []string{"zolta cebula"},
			want:        1.0,
			wantOK:      true,
		},
		{
			name:        "entry without a colon is matched whole",
			ingredients: []string{"flour"},
			available:   []string{"flour"},
			want:        1.0,
			wantOK:      true,
		},
		{
			name:        "no normalizable ingredients",
			ingredients: []string{"200g:", "  "},
			available:   []string{"flour"},
			wantOK:      false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := matchFraction(tt.ingredients, tt.available)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.InDelta(t, tt.want, got, 1e-9)
			}
		})
	}
}

func TestAverageRating(t *testing.T) {
	author := uuid.New()

	assert.Nil(t, AverageRating(nil), "no ratings must yield nil, never zero")
	assert.Nil(t, AverageRating([]models.Rating{}))

	avg := AverageRating([]models.Rating{
		{Value: 5, Author: author},
		{Value: 4, Author: author},
		{Value: 3, Author: author},
	})
	require.NotNil(t, avg)
	assert.Equal(t, 4.0, *avg)

	avg = AverageRating([]models.Rating{
		{Value: 5, Author: author},
		{Value: 4, Author: author},
		{Value: 4, Author: author},
	})
	require.NotNil(t, avg)
	assert.Equal(t, 4.33, *avg, "average is rounded to two decimal places")
}

func TestCreateRecipe(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{score: 0.42})
	author := uuid.New()

	dto, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	assert.Equal(t, "spaghetti carbonara", dto.Name, "names are stored lowercased")
	assert.Equal(t, "dinner", dto.Category)
	assert.Equal(t, author, dto.Author)
	require.NotNil(t, dto.AIDetected)
	assert.Equal(t, 0.42, *dto.AIDetected)
	assert.Nil(t, dto.AverageRating)
	assert.Empty(t, dto.Comments)
	assert.Empty(t, dto.Ratings)
}

func TestCreateRecipeDetectorDegraded(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{err: errors.New("service unavailable")})

	dto, err := svc.CreateRecipe(context.Background(), validRecipeIn(), uuid.New())
	require.NoError(t, err, "detector failure must not block recipe creation")
	require.NotNil(t, dto.AIDetected)
	assert.Equal(t, DefaultAIScore, *dto.AIDetected)
}

func TestCreateRecipeValidation(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()

	tests := []struct {
		name   string
		mutate func(*models.RecipeIn)
	}{
		{"empty name", func(in *models.RecipeIn) { in.Name = "  " }},
		{"preparation time too long", func(in *models.RecipeIn) { in.PreparationTime = 1441 }},
		{"preparation time zero", func(in *models.RecipeIn) { in.PreparationTime = 0 }},
		{"ingredient without amount", func(in *models.RecipeIn) { in.Ingredients = []string{":flour"} }},
		{"ingredient without name", func(in *models.RecipeIn) { in.Ingredients = []string{"200g:"} }},
		{"ingredient without colon", func(in *models.RecipeIn) { in.Ingredients = []string{"flour"} }},
		{"no ingredients", func(in *models.RecipeIn) { in.Ingredients = nil }},
		{"unknown difficulty", func(in *models.RecipeIn) { d := "impossible"; in.Difficulty = &d }},
		{"too many servings", func(in *models.RecipeIn) { s := 101; in.Servings = &s }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRecipeIn()
			tt.mutate(&in)
			_, err := svc.CreateRecipe(context.Background(), in, author)
			assert.True(t, models.IsValidationError(err), "expected a validation error, got %v", err)
		})
	}
}

func TestCreateRecipeAcceptsPolishDifficulty(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})

	in := validRecipeIn()
	d := "średni"
	in.Difficulty = &d

	_, err := svc.CreateRecipe(context.Background(), in, uuid.New())
	assert.NoError(t, err)
}

func TestGetByIngredients(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()

	carbonara := validRecipeIn()
	_, err := svc.CreateRecipe(context.Background(), carbonara, author)
	require.NoError(t, err)

	pancakes := validRecipeIn()
	pancakes.Name = "Pancakes"
	pancakes.Ingredients = []string{"200g:flour", "2:eggs", "300ml:milk"}
	_, err = svc.CreateRecipe(context.Background(), pancakes, author)
	require.NoError(t, err)

	// pasta covers 1 of 3 carbonara ingredients, nothing in pancakes
	results, err := svc.GetByIngredients([]string{"pasta", "egg"}, 0.5)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "spaghetti carbonara", results[0].Name)
	require.NotNil(t, results[0].MatchPercentage)
	assert.InDelta(t, 2.0/3.0, *results[0].MatchPercentage, 1e-9)

	// threshold is inclusive
	results, err = svc.GetByIngredients([]string{"egg"}, 1.0/3.0)
	require.NoError(t, err)
	assert.Len(t, results, 2)

	// just above the fraction excludes both
	results, err = svc.GetByIngredients([]string{"egg"}, 0.34)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetByIngredientsOrdering(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()

	weak := validRecipeIn()
	weak.Name = "Weak Match"
	weak.Ingredients = []string{"200g:flour", "2:eggs", "100g:butter", "50g:sugar"}
	_, err := svc.CreateRecipe(context.Background(), weak, author)
	require.NoError(t, err)

	strong := validRecipeIn()
	strong.Name = "Strong Match"
	strong.Ingredients = []string{"200g:flour", "2:eggs"}
	_, err = svc.CreateRecipe(context.Background(), strong, author)
	require.NoError(t, err)

	results, err := svc.GetByIngredients([]string{"flour", "egg"}, 0.1)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "strong match", results[0].Name, "best match comes first")
	assert.Equal(t, "weak match", results[1].Name)
}

func TestGetByIngredientsInvalidArguments(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})

	_, err := svc.GetByIngredients(nil, 0.5)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.GetByIngredients([]string{"egg"}, -0.1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.GetByIngredients([]string{"egg"}, 1.1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.GetByIngredients([]string{"   "}, 0.5)
	assert.ErrorIs(t, err, models.ErrInvalidArgument, "whitespace-only ingredients normalize to nothing")
}

func TestGetByTag(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})

	in := validRecipeIn()
	in.Tags = []string{"Łatwe", "dinner"}
	_, err := svc.CreateRecipe(context.Background(), in, uuid.New())
	require.NoError(t, err)

	// the stored tag was normalized, so both spellings find it
	results, err := svc.GetByTag("łatwe")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = svc.GetByTag("latwe")
	require.NoError(t, err)
	assert.Len(t, results, 1)

	results, err = svc.GetByTag("breakfast")
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.GetByTag("  ")
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGetByName(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()

	_, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	pancakes := validRecipeIn()
	pancakes.Name = "Pancakes"
	_, err = svc.CreateRecipe(context.Background(), pancakes, author)
	require.NoError(t, err)

	tests := []struct {
		name      string
		query     string
		wantNames []string
	}{
		{"case-insensitive fragment", "CARBONARA", []string{"spaghetti carbonara"}},
		{"partial match", "pan", []string{"pancakes"}},
		{"fragment in both", "a", []string{"spaghetti carbonara", "pancakes"}},
		{"no match", "pizza", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := svc.GetByName(tt.query)
			require.NoError(t, err)
			names := make([]string, 0, len(results))
			for _, r := range results {
				names = append(names, r.Name)
			}
			assert.ElementsMatch(t, tt.wantNames, names)
		})
	}
}

func TestGetByCategory(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()

	_, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	breakfast := validRecipeIn()
	breakfast.Name = "Pancakes"
	breakfast.Category = "Breakfast"
	_, err = svc.CreateRecipe(context.Background(), breakfast, author)
	require.NoError(t, err)

	results, err := svc.GetByCategory("DINNER")
	require.NoError(t, err)
	require.Len(t, results, 1, "category lookup is case-insensitive")
	assert.Equal(t, "spaghetti carbonara", results[0].Name)

	results, err = svc.GetByCategory("break")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "pancakes", results[0].Name)

	results, err = svc.GetByCategory("dessert")
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestGetByPreparationTime(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()

	quick := validRecipeIn()
	quick.Name = "Quick Omelette"
	quick.PreparationTime = 10
	_, err := svc.CreateRecipe(context.Background(), quick, author)
	require.NoError(t, err)

	_, err = svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	// exact minutes only, not a range
	results, err := svc.GetByPreparationTime(10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "quick omelette", results[0].Name)

	results, err = svc.GetByPreparationTime(15)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.GetByPreparationTime(0)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)

	_, err = svc.GetByPreparationTime(-5)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGetByAuthor(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()
	other := uuid.New()

	_, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	second := validRecipeIn()
	second.Name = "Pancakes"
	_, err = svc.CreateRecipe(context.Background(), second, author)
	require.NoError(t, err)

	third := validRecipeIn()
	third.Name = "Someone Else's Soup"
	_, err = svc.CreateRecipe(context.Background(), third, other)
	require.NoError(t, err)

	mine, err := svc.GetByAuthor(author)
	require.NoError(t, err)
	require.Len(t, mine, 2)
	for _, r := range mine {
		assert.Equal(t, author, r.Author)
	}

	none, err := svc.GetByAuthor(uuid.New())
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestGetByMinimumRating(t *testing.T) {
	svc, db := newTestRecipeService(t, stubDetector{})
	ratings := NewRatingService(db)
	author := uuid.New()

	rated, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	unrated := validRecipeIn()
	unrated.Name = "Unrated Dish"
	_, err = svc.CreateRecipe(context.Background(), unrated, author)
	require.NoError(t, err)

	_, err = ratings.Upsert(rated.ID, 4, uuid.New())
	require.NoError(t, err)
	_, err = ratings.Upsert(rated.ID, 5, uuid.New())
	require.NoError(t, err)

	results, err := svc.GetByMinimumRating(4.5)
	require.NoError(t, err)
	require.Len(t, results, 1, "unrated recipes never satisfy a minimum rating")
	assert.Equal(t, "spaghetti carbonara", results[0].Name)
	require.NotNil(t, results[0].AverageRating)
	assert.Equal(t, 4.5, *results[0].AverageRating)

	results, err = svc.GetByMinimumRating(4.6)
	require.NoError(t, err)
	assert.Empty(t, results)

	_, err = svc.GetByMinimumRating(5.1)
	assert.ErrorIs(t, err, models.ErrInvalidArgument)
}

func TestGetRecipeByIDNotFound(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})

	_, err := svc.GetRecipeByID(12345)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestUpdateRecipeAuthorization(t *testing.T) {
	svc, _ := newTestRecipeService(t, stubDetector{})
	author := uuid.New()
	stranger := uuid.New()

	created, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	in := validRecipeIn()
	in.Description = "updated"

	_, err = svc.UpdateRecipe(context.Background(), created.ID, in, stranger, models.RoleUser)
	assert.ErrorIs(t, err, models.ErrForbidden)

	updated, err := svc.UpdateRecipe(context.Background(), created.ID, in, author, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Description)

	// an admin may update someone else's recipe
	in.Description = "moderated"
	updated, err = svc.UpdateRecipe(context.Background(), created.ID, in, stranger, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, "moderated", updated.Description)
	assert.Equal(t, author, updated.Author, "authorship never changes on update")
}

func TestDeleteRecipeCascades(t *testing.T) {
	svc, db := newTestRecipeService(t, stubDetector{})
	ratings := NewRatingService(db)
	comments := NewCommentService(db, ratings)
	author := uuid.New()

	created, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	rater := uuid.New()
	_, err = ratings.Upsert(created.ID, 5, rater)
	require.NoError(t, err)
	_, err = comments.Create(models.CommentCreate{RecipeID: created.ID, Content: "great"}, rater)
	require.NoError(t, err)

	err = svc.DeleteRecipe(created.ID, uuid.New(), models.RoleUser)
	assert.ErrorIs(t, err, models.ErrForbidden)

	err = svc.DeleteRecipe(created.ID, author, models.RoleUser)
	require.NoError(t, err)

	var ratingCount, commentCount int64
	db.Model(&models.Rating{}).Where("recipe_id = ?", created.ID).Count(&ratingCount)
	db.Model(&models.Comment{}).Where("recipe_id = ?", created.ID).Count(&commentCount)
	assert.Zero(t, ratingCount)
	assert.Zero(t, commentCount)

	_, err = svc.GetRecipeByID(created.ID)
	assert.ErrorIs(t, err, models.ErrNotFound)
}

func TestRecipeAttachesCommentsAndRatings(t *testing.T) {
	svc, db := newTestRecipeService(t, stubDetector{})
	ratings := NewRatingService(db)
	comments := NewCommentService(db, ratings)
	author := uuid.New()

	created, err := svc.CreateRecipe(context.Background(), validRecipeIn(), author)
	require.NoError(t, err)

	commenter := uuid.New()
	value := 5
	_, err = comments.Create(models.CommentCreate{RecipeID: created.ID, Content: "delicious", Rating: &value}, commenter)
	require.NoError(t, err)

	dto, err := svc.GetRecipeByID(created.ID)
	require.NoError(t, err)
	require.Len(t, dto.Comments, 1)
	require.Len(t, dto.Ratings, 1)
	require.NotNil(t, dto.Comments[0].Rating)
	assert.Equal(t, 5, dto.Comments[0].Rating.Value)
	require.NotNil(t, dto.AverageRating)
	assert.Equal(t, 5.0, *dto.AverageRating)
}
