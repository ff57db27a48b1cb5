package store

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"testing"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

func openTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"), logger.New(logger.LevelOff, io.Discard))
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRecipe() *domain.Recipe {
	return &domain.Recipe{
		Name:        "Mushroom Risotto",
		MealType:    "dinner",
		CookingTime: 45,
		SkillLevel:  "intermediate",
		DietaryTags: []string{"vegetarian"},
		Ingredients: []domain.Ingredient{
			{Name: "arborio rice", Quantity: 300, Unit: "g"},
			{Name: "mushrooms", Quantity: 250, Unit: "g"},
			{Name: "white wine", Quantity: 1, Unit: "cups"},
		},
		Steps: []string{
			"Sweat the shallots in butter.",
			"Toast the rice until translucent.",
			"Add wine and let it absorb.",
			"Ladle in stock until creamy.",
		},
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	r := sampleRecipe()
	id, err := s.SaveRecipe(ctx, r)
	if err != nil {
		t.Fatalf("SaveRecipe: %v", err)
	}
	if id == 0 || r.ID != id {
		t.Fatalf("id = %d, recipe.ID = %d", id, r.ID)
	}

	got, err := s.LoadRecipe(ctx, id)
	if err != nil {
		t.Fatalf("LoadRecipe: %v", err)
	}
	if got.Name != r.Name || got.MealType != r.MealType || got.CookingTime != r.CookingTime {
		t.Errorf("loaded header = %+v", got)
	}
	if len(got.Steps) != len(r.Steps) {
		t.Fatalf("steps = %d, want %d", len(got.Steps), len(r.Steps))
	}
	// Order must survive the round trip exactly.
	for i := range r.Steps {
		if got.Steps[i] != r.Steps[i] {
			t.Errorf("step %d = %q, want %q", i, got.Steps[i], r.Steps[i])
		}
	}
	if len(got.Ingredients) != 3 || got.Ingredients[0].Name != "arborio rice" {
		t.Errorf("ingredients = %+v", got.Ingredients)
	}
	if len(got.DietaryTags) != 1 || got.DietaryTags[0] != "vegetarian" {
		t.Errorf("tags = %v", got.DietaryTags)
	}
}

func TestLoadUnknownRecipe(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.LoadRecipe(context.Background(), 99); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("err = %v, want ErrNotFound", err)
	}
}

func TestSearchByName(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	for _, name := range []string{"Mushroom Risotto", "Mushroom Soup", "Pancakes"} {
		r := sampleRecipe()
		r.Name = name
		if _, err := s.SaveRecipe(ctx, r); err != nil {
			t.Fatalf("SaveRecipe(%s): %v", name, err)
		}
	}

	got, err := s.SearchByName(ctx, "mushroom")
	if err != nil {
		t.Fatalf("SearchByName: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("matches = %d (%+v), want 2", len(got), got)
	}
	if got[0].StepCount != 4 {
		t.Errorf("step count = %d, want 4", got[0].StepCount)
	}

	all, err := s.SearchByName(ctx, "")
	if err != nil {
		t.Fatalf("SearchByName(empty): %v", err)
	}
	if len(all) != 3 {
		t.Errorf("empty query matches = %d, want 3", len(all))
	}
}

func TestOutcomeAndUsage(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRecipe(ctx, sampleRecipe())
	if err != nil {
		t.Fatalf("SaveRecipe: %v", err)
	}

	if err := s.RecordOutcome(ctx, "session-1", id, false); err != nil {
		t.Fatalf("RecordOutcome(aborted): %v", err)
	}
	u, err := s.Usage(ctx, id)
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if u.TimesCooked != 0 {
		t.Errorf("aborted session bumped times_cooked to %d", u.TimesCooked)
	}

	if err := s.RecordOutcome(ctx, "session-2", id, true); err != nil {
		t.Fatalf("RecordOutcome(completed): %v", err)
	}
	u, err = s.Usage(ctx, id)
	if err != nil {
		t.Fatalf("Usage: %v", err)
	}
	if u.TimesCooked != 1 {
		t.Errorf("times_cooked = %d, want 1", u.TimesCooked)
	}
	if u.LastCooked.IsZero() {
		t.Error("last_cooked not set after completion")
	}

	cooked, err := s.ListCooked(ctx)
	if err != nil {
		t.Fatalf("ListCooked: %v", err)
	}
	if len(cooked) != 1 || cooked[0].ID != id {
		t.Errorf("cooked = %+v", cooked)
	}
}

func TestRatingAndStats(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	id, err := s.SaveRecipe(ctx, sampleRecipe())
	if err != nil {
		t.Fatalf("SaveRecipe: %v", err)
	}
	other := sampleRecipe()
	other.Name = "Pancakes"
	if _, err := s.SaveRecipe(ctx, other); err != nil {
		t.Fatalf("SaveRecipe: %v", err)
	}

	if err := s.RecordOutcome(ctx, "session-1", id, true); err != nil {
		t.Fatalf("RecordOutcome: %v", err)
	}
	if err := s.RecordRating(ctx, id, true, 5); err != nil {
		t.Fatalf("RecordRating: %v", err)
	}

	liked, err := s.ListLiked(ctx)
	if err != nil {
		t.Fatalf("ListLiked: %v", err)
	}
	if len(liked) != 1 || liked[0].ID != id {
		t.Errorf("liked = %+v", liked)
	}

	st, err := s.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats: %v", err)
	}
	if st.TotalRecipes != 2 || st.CookedCount != 1 || st.LikedCount != 1 {
		t.Errorf("stats = %+v", st)
	}
	if st.CompletionRate() != 50 {
		t.Errorf("completion rate = %.1f, want 50", st.CompletionRate())
	}

	if err := s.RecordRating(ctx, 404, true, 5); !errors.Is(err, domain.ErrNotFound) {
		t.Errorf("rating unknown recipe: err = %v, want ErrNotFound", err)
	}
}
