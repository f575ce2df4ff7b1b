package services

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/mealshare/gin-meal-api/internal/models"
)

const (
	maxNameLength         = 200
	maxInstructionsLength = 2000
	maxCategoryLength     = 100
	maxIngredientLength   = 200
	maxPreparationMinutes = 1440
	maxServings           = 100
	maxSteps              = 50
	maxStepLength         = 500
	maxTags               = 20
	maxTagLength          = 50
	maxCommentLength      = 500
)

var (
	namePattern = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ0-9\s\-']+$`)
	tagPattern  = regexp.MustCompile(`^[a-zA-ZąćęłńóśźżĄĆĘŁŃÓŚŹŻ0-9\-]+$`)
)

// ValidateRecipe checks all client-supplied recipe attributes before any of
// them touch the database. Returns a ValidationError on the first bad field.
func ValidateRecipe(in models.RecipeIn) error {
	if strings.TrimSpace(in.Name) == "" {
		return models.NewValidationError("name", "recipe name cannot be empty")
	}
	if len(in.Name) > maxNameLength {
		return models.NewValidationError("name", fmt.Sprintf("recipe name cannot exceed %d characters", maxNameLength))
	}
	if !namePattern.MatchString(in.Name) {
		return models.NewValidationError("name", "recipe name contains invalid characters")
	}

	if strings.TrimSpace(in.Instructions) == "" {
		return models.NewValidationError("instructions", "instructions cannot be empty")
	}
	if len(in.Instructions) > maxInstructionsLength {
		return models.NewValidationError("instructions", fmt.Sprintf("instructions cannot exceed %d characters", maxInstructionsLength))
	}

	if strings.TrimSpace(in.Category) == "" {
		return models.NewValidationError("category", "category cannot be empty")
	}
	if len(in.Category) > maxCategoryLength {
		return models.NewValidationError("category", fmt.Sprintf("category cannot exceed %d characters", maxCategoryLength))
	}

	if err := validateIngredients(in.Ingredients); err != nil {
		return err
	}

	if in.PreparationTime < 1 || in.PreparationTime > maxPreparationMinutes {
		return models.NewValidationError("preparation_time", "preparation time must be between 1 and 1440 minutes")
	}

	if in.Servings != nil && (*in.Servings < 1 || *in.Servings > maxServings) {
		return models.NewValidationError("servings", "servings must be between 1 and 100")
	}

	if in.Difficulty != nil {
		if !models.AllowedDifficulties[strings.ToLower(*in.Difficulty)] {
			return models.NewValidationError("difficulty", "difficulty must be one of: easy, medium, hard, łatwy, średni, trudny")
		}
	}

	if len(in.Steps) > maxSteps {
		return models.NewValidationError("steps", fmt.Sprintf("a recipe cannot have more than %d steps", maxSteps))
	}
	for _, step := range in.Steps {
		if strings.TrimSpace(step) == "" {
			return models.NewValidationError("steps", "step cannot be an empty string")
		}
		if len(step) > maxStepLength {
			return models.NewValidationError("steps", fmt.Sprintf("step cannot exceed %d characters", maxStepLength))
		}
	}

	if len(in.Tags) > maxTags {
		return models.NewValidationError("tags", fmt.Sprintf("a recipe cannot have more than %d tags", maxTags))
	}
	for _, tag := range in.Tags {
		if strings.TrimSpace(tag) == "" {
			return models.NewValidationError("tags", "tag cannot be an empty string")
		}
		if len(tag) > maxTagLength {
			return models.NewValidationError("tags", fmt.Sprintf("tag cannot exceed %d characters", maxTagLength))
		}
		if !tagPattern.MatchString(tag) {
			return models.NewValidationError("tags", fmt.Sprintf("invalid tag format: %s", tag))
		}
	}

	return nil
}

// validateIngredients enforces the "amount:name" entry format with both
// parts non-empty. Entries are matched against this shape before storage;
// the search-side extractor still tolerates malformed legacy rows.
func validateIngredients(ingredients []string) error {
	if len(ingredients) == 0 {
		return models.NewValidationError("ingredients", "at least one ingredient is required")
	}
	for _, ingredient := range ingredients {
		if strings.TrimSpace(ingredient) == "" {
			return models.NewValidationError("ingredients", "ingredient cannot be an empty string")
		}
		if len(ingredient) > maxIngredientLength {
			return models.NewValidationError("ingredients", fmt.Sprintf("ingredient cannot exceed %d characters", maxIngredientLength))
		}
		amount, name, found := strings.Cut(ingredient, ":")
		if !found || strings.TrimSpace(amount) == "" || strings.TrimSpace(name) == "" {
			return models.NewValidationError("ingredients", fmt.Sprintf("invalid ingredient format: %q (expected \"amount:name\")", ingredient))
		}
	}
	return nil
}

// ValidateRatingValue rejects rating values outside [1,5]. Values are never
// clamped; a bad value is an error.
func ValidateRatingValue(value int) error {
	if value < 1 || value > 5 {
		return models.NewValidationError("value", "rating value must be between 1 and 5")
	}
	return nil
}

// ValidateCommentContent rejects empty or oversized comment content
func ValidateCommentContent(content string) error {
	if strings.TrimSpace(content) == "" {
		return models.NewValidationError("content", "comment content cannot be empty")
	}
	if len(content) > maxCommentLength {
		return models.NewValidationError("content", fmt.Sprintf("comment content cannot exceed %d characters", maxCommentLength))
	}
	return nil
}
