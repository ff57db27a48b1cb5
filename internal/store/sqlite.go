// Package store persists recipes and cooking history in SQLite.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"github.com/YardenLiberman/Su-Chef/internal/domain"
	"github.com/YardenLiberman/Su-Chef/internal/logger"
)

// SQLiteStore implements domain.RecipeStore on a local SQLite file.
type SQLiteStore struct {
	db  *sql.DB
	mu  sync.RWMutex
	log *logger.Logger
}

var _ domain.RecipeStore = (*SQLiteStore)(nil)

// Open opens (or creates) the recipe database at path and ensures the
// schema exists.
func Open(path string, log *logger.Logger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: creating database directory: %v", domain.ErrStoreUnavailable, err)
		}
	}

	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_synchronous=NORMAL")
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", domain.ErrStoreUnavailable, err)
	}

	s := &SQLiteStore{db: db, log: log}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: initializing schema: %v", domain.ErrStoreUnavailable, err)
	}

	log.Debug("store: opened %s", path)
	return s, nil
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS recipes (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL,
		meal_type TEXT NOT NULL DEFAULT '',
		cooking_time INTEGER NOT NULL DEFAULT 0,
		skill_level TEXT NOT NULL DEFAULT '',
		dietary_tags TEXT NOT NULL DEFAULT '[]',
		ingredients TEXT NOT NULL DEFAULT '[]',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE TABLE IF NOT EXISTS steps (
		recipe_id INTEGER NOT NULL,
		step_order INTEGER NOT NULL,
		instruction TEXT NOT NULL,
		PRIMARY KEY (recipe_id, step_order),
		FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS usage_stats (
		recipe_id INTEGER PRIMARY KEY,
		times_cooked INTEGER NOT NULL DEFAULT 0,
		liked INTEGER NOT NULL DEFAULT 0,
		rating INTEGER NOT NULL DEFAULT 0,
		last_cooked DATETIME,
		FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS sessions (
		id TEXT PRIMARY KEY,
		recipe_id INTEGER NOT NULL,
		completed INTEGER NOT NULL,
		ended_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (recipe_id) REFERENCES recipes(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_recipes_name ON recipes(name);
	CREATE INDEX IF NOT EXISTS idx_sessions_recipe ON sessions(recipe_id);
	`
	_, err := s.db.Exec(schema)
	return err
}

// SaveRecipe stores a recipe with its steps and returns the new id.
// Steps are written in order so they come back in order.
func (s *SQLiteStore) SaveRecipe(ctx context.Context, r *domain.Recipe) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tags, err := json.Marshal(r.DietaryTags)
	if err != nil {
		return 0, fmt.Errorf("encoding dietary tags: %w", err)
	}
	ingredients, err := json.Marshal(r.Ingredients)
	if err != nil {
		return 0, fmt.Errorf("encoding ingredients: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO recipes (name, meal_type, cooking_time, skill_level, dietary_tags, ingredients)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		r.Name, r.MealType, r.CookingTime, r.SkillLevel, string(tags), string(ingredients),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting recipe: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading recipe id: %w", err)
	}

	for i, instruction := range r.Steps {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO steps (recipe_id, step_order, instruction) VALUES (?, ?, ?)`,
			id, i, instruction,
		); err != nil {
			return 0, fmt.Errorf("inserting step %d: %w", i+1, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO usage_stats (recipe_id) VALUES (?)`, id,
	); err != nil {
		return 0, fmt.Errorf("inserting usage row: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing recipe: %w", err)
	}

	r.ID = id
	s.log.Info("store: saved recipe %q as #%d (%d steps)", r.Name, id, len(r.Steps))
	return id, nil
}

// LoadRecipe fetches a full recipe by id. Returns domain.ErrNotFound
// for unknown ids.
func (s *SQLiteStore) LoadRecipe(ctx context.Context, id int64) (*domain.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	r := &domain.Recipe{ID: id}
	var tags, ingredients string

	err := s.db.QueryRowContext(ctx,
		`SELECT name, meal_type, cooking_time, skill_level, dietary_tags, ingredients
		 FROM recipes WHERE id = ?`, id,
	).Scan(&r.Name, &r.MealType, &r.CookingTime, &r.SkillLevel, &tags, &ingredients)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("loading recipe %d: %w", id, err)
	}

	if err := json.Unmarshal([]byte(tags), &r.DietaryTags); err != nil {
		return nil, fmt.Errorf("decoding dietary tags: %w", err)
	}
	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return nil, fmt.Errorf("decoding ingredients: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT instruction FROM steps WHERE recipe_id = ? ORDER BY step_order`, id,
	)
	if err != nil {
		return nil, fmt.Errorf("loading steps: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var instruction string
		if err := rows.Scan(&instruction); err != nil {
			return nil, fmt.Errorf("scanning step: %w", err)
		}
		r.Steps = append(r.Steps, instruction)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating steps: %w", err)
	}

	return r, nil
}

// SearchByName lists recipes whose name contains the query,
// case-insensitively. An empty query lists everything.
func (s *SQLiteStore) SearchByName(ctx context.Context, query string) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listSummaries(ctx,
		`SELECT r.id, r.name, r.meal_type, r.cooking_time, COUNT(st.recipe_id)
		 FROM recipes r
		 LEFT JOIN steps st ON st.recipe_id = r.id
		 WHERE r.name LIKE ? COLLATE NOCASE
		 GROUP BY r.id
		 ORDER BY r.created_at DESC`,
		"%"+query+"%",
	)
}

// ListCooked lists recipes cooked at least once, most recent first.
func (s *SQLiteStore) ListCooked(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listSummaries(ctx,
		`SELECT r.id, r.name, r.meal_type, r.cooking_time, COUNT(st.recipe_id)
		 FROM recipes r
		 JOIN usage_stats u ON u.recipe_id = r.id AND u.times_cooked > 0
		 LEFT JOIN steps st ON st.recipe_id = r.id
		 GROUP BY r.id
		 ORDER BY u.last_cooked DESC`,
	)
}

// ListLiked lists recipes the user marked as liked.
func (s *SQLiteStore) ListLiked(ctx context.Context) ([]domain.RecipeSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.listSummaries(ctx,
		`SELECT r.id, r.name, r.meal_type, r.cooking_time, COUNT(st.recipe_id)
		 FROM recipes r
		 JOIN usage_stats u ON u.recipe_id = r.id AND u.liked = 1
		 LEFT JOIN steps st ON st.recipe_id = r.id
		 GROUP BY r.id
		 ORDER BY r.name`,
	)
}

func (s *SQLiteStore) listSummaries(ctx context.Context, query string, args ...any) ([]domain.RecipeSummary, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("listing recipes: %w", err)
	}
	defer rows.Close()

	var out []domain.RecipeSummary
	for rows.Next() {
		var sum domain.RecipeSummary
		if err := rows.Scan(&sum.ID, &sum.Name, &sum.MealType, &sum.CookingTime, &sum.StepCount); err != nil {
			return nil, fmt.Errorf("scanning summary: %w", err)
		}
		out = append(out, sum)
	}
	return out, rows.Err()
}

// RecordOutcome logs a finished session. Completed sessions bump the
// cooked counter; aborted ones only leave a history row.
func (s *SQLiteStore) RecordOutcome(ctx context.Context, sessionID string, recipeID int64, completed bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO sessions (id, recipe_id, completed) VALUES (?, ?, ?)`,
		sessionID, recipeID, completed,
	); err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	if completed {
		if _, err := tx.ExecContext(ctx,
			`UPDATE usage_stats
			 SET times_cooked = times_cooked + 1, last_cooked = CURRENT_TIMESTAMP
			 WHERE recipe_id = ?`, recipeID,
		); err != nil {
			return fmt.Errorf("updating usage: %w", err)
		}
	}

	return tx.Commit()
}

// RecordRating stores the user's verdict on a recipe.
func (s *SQLiteStore) RecordRating(ctx context.Context, id int64, liked bool, rating int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.ExecContext(ctx,
		`UPDATE usage_stats SET liked = ?, rating = ? WHERE recipe_id = ?`,
		liked, rating, id,
	)
	if err != nil {
		return fmt.Errorf("recording rating: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("recipe %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Usage fetches the per-recipe counters.
func (s *SQLiteStore) Usage(ctx context.Context, recipeID int64) (domain.UsageStat, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u := domain.UsageStat{RecipeID: recipeID}
	var lastCooked sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT times_cooked, liked, rating, last_cooked
		 FROM usage_stats WHERE recipe_id = ?`, recipeID,
	).Scan(&u.TimesCooked, &u.Liked, &u.Rating, &lastCooked)
	if errors.Is(err, sql.ErrNoRows) {
		return u, fmt.Errorf("recipe %d: %w", recipeID, domain.ErrNotFound)
	}
	if err != nil {
		return u, fmt.Errorf("loading usage: %w", err)
	}
	if lastCooked.Valid {
		u.LastCooked = lastCooked.Time
	}
	return u, nil
}

// Stats aggregates the numbers for the statistics view.
func (s *SQLiteStore) Stats(ctx context.Context) (domain.Stats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var st domain.Stats
	err := s.db.QueryRowContext(ctx,
		`SELECT
			(SELECT COUNT(*) FROM recipes),
			(SELECT COUNT(*) FROM usage_stats WHERE times_cooked > 0),
			(SELECT COUNT(*) FROM usage_stats WHERE liked = 1)`,
	).Scan(&st.TotalRecipes, &st.CookedCount, &st.LikedCount)
	if err != nil {
		return st, fmt.Errorf("loading stats: %w", err)
	}
	return st, nil
}
