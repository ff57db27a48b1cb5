package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/YardenLiberman/Su-Chef/internal/classify"
	"github.com/YardenLiberman/Su-Chef/internal/config"
	"github.com/YardenLiberman/Su-Chef/internal/display"
	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
	"github.com/YardenLiberman/Su-Chef/internal/recipefile"
	"github.com/YardenLiberman/Su-Chef/internal/session"
	"github.com/YardenLiberman/Su-Chef/internal/speech"
	"github.com/YardenLiberman/Su-Chef/internal/store"
)

// maxGenerateAttempts bounds the regenerate loop so an unhappy user
// isn't stuck burning API calls forever.
const maxGenerateAttempts = 3

type app struct {
	cfg       *config.Config
	log       *logger.Logger
	store     *store.SQLiteStore
	generator domain.RecipeGenerator // nil when AI is disabled
	assistant domain.Assistant       // nil when AI is disabled
	voice     *speech.Voice          // nil when voice is unavailable
	console   *speech.Console
	out       io.Writer
}

// run drives the main menu until the user exits or input ends.
func (a *app) run(ctx context.Context) {
	for {
		a.println(display.Menu("Su-Chef", []string{
			"Create a new recipe",
			"Cook a saved recipe",
			"Load a recipe from file",
			"View statistics",
			"Exit",
		}))

		choice, err := a.askInt(ctx, "Choose an option (1-5):", 1, 5)
		if err != nil {
			return
		}

		switch choice {
		case 1:
			err = a.createRecipe(ctx)
		case 2:
			err = a.savedRecipe(ctx)
		case 3:
			err = a.fileRecipe(ctx)
		case 4:
			err = a.statistics(ctx)
		case 5:
			return
		}
		if err != nil {
			if errors.Is(err, io.EOF) || ctx.Err() != nil {
				return
			}
			a.println(display.Error(err.Error()))
		}
	}
}

// ── Workflows ────────────────────────────────────────────────────

// createRecipe gathers constraints, generates until the user accepts
// or gives up, then hands off to the action menu.
func (a *app) createRecipe(ctx context.Context) error {
	if a.generator == nil {
		a.println(display.Error("Recipe generation needs OPENAI_API_KEY."))
		return nil
	}

	constraints, err := a.gatherConstraints(ctx)
	if err != nil {
		return err
	}

	for attempt := 1; attempt <= maxGenerateAttempts; attempt++ {
		a.println(display.Info("Cooking up a recipe..."))
		r, err := a.generator.Generate(ctx, constraints)
		if err != nil {
			if errors.Is(err, domain.ErrGenerationFailed) {
				a.println(display.Error("Recipe generation failed. Check your connection and try again."))
				a.log.Error("generation: %v", err)
				return nil
			}
			return err
		}

		a.println("")
		a.println(display.RecipePreview(r))

		choice, err := a.askChoice(ctx, "Accept this recipe, try another, or cancel?", []string{"accept", "regenerate", "cancel"})
		if err != nil {
			return err
		}
		switch choice {
		case "accept":
			if ok, err := a.askYesNo(ctx, "Save it to your collection?", true); err != nil {
				return err
			} else if ok {
				if _, err := a.store.SaveRecipe(ctx, r); err != nil {
					a.println(display.Error("Could not save the recipe."))
					a.log.Error("save: %v", err)
				} else {
					a.println(display.Success(fmt.Sprintf("Saved %q.", r.Name)))
				}
			}
			return a.recipeActions(ctx, r)
		case "regenerate":
			if attempt == maxGenerateAttempts {
				a.println(display.Info("That was the last suggestion. Back to the menu."))
				return nil
			}
			constraints.Regenerate = true
		case "cancel":
			return nil
		}
	}
	return nil
}

// gatherConstraints walks the user through the generation questions.
func (a *app) gatherConstraints(ctx context.Context) (domain.Constraints, error) {
	var c domain.Constraints

	meal, err := a.askChoice(ctx, "What meal is this for?", []string{"breakfast", "lunch", "dinner", "snack"})
	if err != nil {
		return c, err
	}
	c.MealType = meal

	minutes, err := a.askInt(ctx, "How many minutes do you have? (15-180):", 15, 180)
	if err != nil {
		return c, err
	}
	c.MaxMinutes = minutes

	skill, err := a.askChoice(ctx, "How would you rate your cooking?", []string{"beginner", "intermediate", "advanced"})
	if err != nil {
		return c, err
	}
	c.SkillLevel = skill

	dietary, err := a.ask(ctx, "Any dietary needs? (vegetarian, kosher, an allergy... Enter for none)")
	if err != nil {
		return c, err
	}
	c.Dietary = strings.TrimSpace(dietary)

	onHand, err := a.ask(ctx, "Ingredients you want used, comma separated (Enter for none)")
	if err != nil {
		return c, err
	}
	for _, ing := range strings.Split(onHand, ",") {
		if ing = strings.TrimSpace(ing); ing != "" {
			c.OnHand = append(c.OnHand, ing)
		}
	}
	return c, nil
}

// savedRecipe browses the database and hands the pick to the action
// menu.
func (a *app) savedRecipe(ctx context.Context) error {
	a.println(display.Menu("Find a recipe", []string{
		"Search by name",
		"Recently cooked",
		"Liked recipes",
		"Back",
	}))

	choice, err := a.askInt(ctx, "Choose an option (1-4):", 1, 4)
	if err != nil {
		return err
	}

	var list []domain.RecipeSummary
	switch choice {
	case 1:
		query, err := a.ask(ctx, "Search for (Enter lists everything):")
		if err != nil {
			return err
		}
		list, err = a.store.SearchByName(ctx, strings.TrimSpace(query))
		if err != nil {
			return err
		}
	case 2:
		if list, err = a.store.ListCooked(ctx); err != nil {
			return err
		}
	case 3:
		if list, err = a.store.ListLiked(ctx); err != nil {
			return err
		}
	case 4:
		return nil
	}

	if len(list) == 0 {
		a.println(display.Info("Nothing there yet."))
		return nil
	}
	a.println(display.Summaries(list))

	pick, err := a.askInt(ctx, fmt.Sprintf("Which one? (1-%d):", len(list)), 1, len(list))
	if err != nil {
		return err
	}

	r, err := a.store.LoadRecipe(ctx, list[pick-1].ID)
	if err != nil {
		return err
	}

	a.println("")
	a.println(display.RecipePreview(r))
	if usage, err := a.store.Usage(ctx, r.ID); err == nil && usage.TimesCooked > 0 {
		a.println(display.UsageLine(usage))
	}
	return a.recipeActions(ctx, r)
}

// fileRecipe loads a shared recipe from disk.
func (a *app) fileRecipe(ctx context.Context) error {
	path, err := a.ask(ctx, "Recipe file path (Enter for steps.json):")
	if err != nil {
		return err
	}
	if path = strings.TrimSpace(path); path == "" {
		path = "steps.json"
	}
	// Bare filenames may also live in the recipes directory.
	if _, statErr := os.Stat(path); statErr != nil && !strings.ContainsRune(path, os.PathSeparator) {
		if alt := filepath.Join(a.cfg.RecipesDir, path); fileExists(alt) {
			path = alt
		}
	}

	r, err := recipefile.Load(path)
	if err != nil {
		a.println(display.Error(err.Error()))
		return nil
	}

	a.println("")
	a.println(display.RecipePreview(r))

	if ok, err := a.askYesNo(ctx, "Save it to your collection?", false); err != nil {
		return err
	} else if ok {
		if _, err := a.store.SaveRecipe(ctx, r); err != nil {
			a.println(display.Error("Could not save the recipe."))
			a.log.Error("save: %v", err)
		} else {
			a.println(display.Success(fmt.Sprintf("Saved %q.", r.Name)))
		}
	}
	return a.recipeActions(ctx, r)
}

// statistics shows the aggregate view.
func (a *app) statistics(ctx context.Context) error {
	st, err := a.store.Stats(ctx)
	if err != nil {
		return err
	}
	a.println(display.StatsView(st))
	return nil
}

// recipeActions is the per-recipe menu: cook it, read it, export it.
func (a *app) recipeActions(ctx context.Context, r *domain.Recipe) error {
	for {
		a.println(display.Menu(r.Name, []string{
			"Start guided cooking",
			"Show full recipe",
			"Export to file",
			"Back",
		}))

		choice, err := a.askInt(ctx, "Choose an option (1-4):", 1, 4)
		if err != nil {
			return err
		}

		switch choice {
		case 1:
			return a.cook(ctx, r)
		case 2:
			a.println(display.RecipeDetails(r))
		case 3:
			if err := os.MkdirAll(a.cfg.RecipesDir, 0o755); err != nil {
				a.println(display.Error(err.Error()))
				continue
			}
			path := filepath.Join(a.cfg.RecipesDir, sanitizeFilename(r.Name)+".json")
			if err := recipefile.Save(path, r); err != nil {
				a.println(display.Error(err.Error()))
			} else {
				a.println(display.Success("Wrote " + path))
			}
		case 4:
			return nil
		}
	}
}

// cook runs the guided session and the post-session rating prompt.
func (a *app) cook(ctx context.Context, r *domain.Recipe) error {
	sess := session.New(r, a.store, a.assistant, a.log)
	classifier := classify.New(a.log, session.NewResolver(a.assistant, sess))

	var voice domain.Channel
	if a.voice != nil {
		voice = a.voice
	}
	runner := session.NewRunner(sess, classifier, voice, a.console, a.log)

	a.println("")
	if err := runner.Run(ctx); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return err
	}

	if sess.State().Status == domain.SessionCompleted && r.ID != 0 {
		return a.askRating(ctx, r)
	}
	return nil
}

// askRating records the post-cook verdict for a saved recipe.
func (a *app) askRating(ctx context.Context, r *domain.Recipe) error {
	liked, err := a.askYesNo(ctx, "Did you like this recipe?", true)
	if err != nil {
		return err
	}

	rating := 0
	raw, err := a.ask(ctx, "Rate it 1-5 (Enter to skip):")
	if err != nil {
		return err
	}
	if n, convErr := strconv.Atoi(strings.TrimSpace(raw)); convErr == nil && n >= 1 && n <= 5 {
		rating = n
	}

	if err := a.store.RecordRating(ctx, r.ID, liked, rating); err != nil {
		a.log.Error("rating: %v", err)
		a.println(display.Error("Could not record your rating."))
	}
	return nil
}

// ── Input helpers ────────────────────────────────────────────────

// ask prints a question and reads one line from the console. Menus
// always read typed input; voice belongs to cooking sessions.
func (a *app) ask(ctx context.Context, question string) (string, error) {
	a.println(question)
	return a.console.Listen(ctx, 0)
}

// askInt asks until it gets a number in [min, max].
func (a *app) askInt(ctx context.Context, question string, min, max int) (int, error) {
	for {
		raw, err := a.ask(ctx, question)
		if err != nil {
			return 0, err
		}
		n, err := strconv.Atoi(strings.TrimSpace(raw))
		if err == nil && n >= min && n <= max {
			return n, nil
		}
		a.println(display.Error(fmt.Sprintf("Please enter a number between %d and %d.", min, max)))
	}
}

// askChoice renders options as a numbered menu and returns the picked
// option text.
func (a *app) askChoice(ctx context.Context, question string, options []string) (string, error) {
	a.println(display.Menu(question, options))
	n, err := a.askInt(ctx, fmt.Sprintf("Choose an option (1-%d):", len(options)), 1, len(options))
	if err != nil {
		return "", err
	}
	return options[n-1], nil
}

// askYesNo asks a y/n question with a default for a bare Enter.
func (a *app) askYesNo(ctx context.Context, question string, def bool) (bool, error) {
	suffix := " (y/N)"
	if def {
		suffix = " (Y/n)"
	}
	raw, err := a.ask(ctx, question+suffix)
	if err != nil {
		return false, err
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "":
		return def, nil
	case "y", "yes":
		return true, nil
	default:
		return false, nil
	}
}

func (a *app) println(s string) {
	fmt.Fprintln(a.out, s)
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// sanitizeFilename turns a recipe name into a safe file stem.
func sanitizeFilename(name string) string {
	clean := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == ' ', r == '-', r == '_':
			return '_'
		default:
			return -1
		}
	}, strings.TrimSpace(name))
	if clean == "" {
		clean = "recipe"
	}
	return filepath.Clean(strings.ToLower(clean))
}
