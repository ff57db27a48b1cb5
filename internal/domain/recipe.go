// Package domain defines the core types and interfaces for Su-Chef.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"fmt"
	"strings"
	"time"
)

// Recipe represents a complete cooking recipe. Once a cooking session
// holds a recipe it is treated as read-only.
type Recipe struct {
	ID          int64
	Name        string
	MealType    string // "breakfast", "lunch", "dinner", "snack"
	CookingTime int    // maximum preparation time in minutes
	SkillLevel  string // "beginner", "intermediate", "advanced"
	DietaryTags []string
	Ingredients []Ingredient
	Steps       []string
}

// RecipeSummary is a lightweight view of a recipe for listing.
type RecipeSummary struct {
	ID          int64
	Name        string
	MealType    string
	CookingTime int
	StepCount   int
}

// Ingredient is a single ingredient entry. Quantity may be zero when the
// ingredient was captured as free text ("a pinch of salt").
type Ingredient struct {
	Name     string
	Quantity float64
	Unit     string // "pieces", "cups", "tablespoons", "grams", ""
}

// String renders the ingredient the way it is displayed and spoken.
func (i Ingredient) String() string {
	if i.Quantity <= 0 {
		return i.Name
	}
	qty := strings.TrimRight(strings.TrimRight(fmt.Sprintf("%.2f", i.Quantity), "0"), ".")
	if i.Unit == "" {
		return fmt.Sprintf("%s %s", qty, i.Name)
	}
	return fmt.Sprintf("%s %s %s", qty, i.Unit, i.Name)
}

// UsageStat holds the per-recipe counters the store persists.
type UsageStat struct {
	RecipeID    int64
	TimesCooked int
	Liked       bool
	Rating      int // 0 when the user declined to rate
	LastCooked  time.Time
}

// Stats is the aggregate view shown by the statistics menu entry.
type Stats struct {
	TotalRecipes int
	CookedCount  int
	LikedCount   int
}

// CompletionRate returns the share of saved recipes that were cooked at
// least once, in percent.
func (s Stats) CompletionRate() float64 {
	if s.TotalRecipes == 0 {
		return 0
	}
	return float64(s.CookedCount) / float64(s.TotalRecipes) * 100
}

// LikeRate returns the share of cooked recipes the user liked, in percent.
func (s Stats) LikeRate() float64 {
	if s.CookedCount == 0 {
		return 0
	}
	return float64(s.LikedCount) / float64(s.CookedCount) * 100
}
