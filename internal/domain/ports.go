package domain

import (
	"context"
	"time"
)

// RecipeStore persists recipes and their usage statistics. The session
// core only touches it at session boundaries, never mid-step.
type RecipeStore interface {
	SaveRecipe(ctx context.Context, r *Recipe) (int64, error)
	LoadRecipe(ctx context.Context, id int64) (*Recipe, error)
	SearchByName(ctx context.Context, query string) ([]RecipeSummary, error)
	ListCooked(ctx context.Context) ([]RecipeSummary, error)
	ListLiked(ctx context.Context) ([]RecipeSummary, error)
	RecordOutcome(ctx context.Context, sessionID string, recipeID int64, completed bool) error
	RecordRating(ctx context.Context, id int64, liked bool, rating int) error
	Usage(ctx context.Context, recipeID int64) (UsageStat, error)
	Stats(ctx context.Context) (Stats, error)
}

// RecipeGenerator produces a new recipe from user-supplied constraints.
type RecipeGenerator interface {
	Generate(ctx context.Context, c Constraints) (*Recipe, error)
}

// Constraints narrow what the generator may propose.
type Constraints struct {
	MealType   string
	MaxMinutes int
	SkillLevel string
	Dietary    string   // "vegetarian", "kosher", a named allergy, "" for none
	OnHand     []string // ingredients the user wants used
	Regenerate bool     // ask for a different suggestion than before
}

// Assistant answers cooking questions and offers tips with session
// context. It also serves as the classifier's language-model fallback.
type Assistant interface {
	Answer(ctx context.Context, question string, r *Recipe, step int) (string, error)
	StepTip(ctx context.Context, r *Recipe, step int) (string, error)
	Classify(ctx context.Context, utterance string, r *Recipe, step int) (Intent, error)
}

// Channel is one user-facing I/O surface for a cooking session: voice
// or console. The session loop is agnostic to which one it is given.
type Channel interface {
	// Listen blocks until the user produces one utterance, or the
	// timeout elapses. Returns ErrNoSpeechDetected when nothing usable
	// was heard and ErrDeviceUnavailable when the surface is broken.
	Listen(ctx context.Context, timeout time.Duration) (string, error)
	// Speak delivers one narration line to the user. Returns
	// ErrDeviceUnavailable when the surface is broken.
	Speak(ctx context.Context, text string) error
}
