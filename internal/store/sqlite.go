package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/sqlite" // Pure Go sqlite driver
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/sirupsen/logrus"
	_ "modernc.org/sqlite"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

//go:embed migrations/*.sql
var migrationsFS embed.FS

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore keeps recipes and reviews in a SQLite database.
type SQLiteStore struct {
	db  *sql.DB
	log logrus.FieldLogger
}

// OpenSQLite opens (creating if needed) the database at path and applies
// migrations.
func OpenSQLite(path string, log logrus.FieldLogger) (*SQLiteStore, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	if err := RunMigrations(path); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One writer at a time avoids SQLITE_BUSY under concurrent /rate calls.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	log.WithField("path", path).Info("opened sqlite recipe store")
	return &SQLiteStore{db: db, log: log}, nil
}

// RunMigrations applies the embedded migrations to the database at path.
func RunMigrations(path string) error {
	src, err := iofs.New(migrationsFS, "migrations")
	if err != nil {
		return fmt.Errorf("create iofs driver: %w", err)
	}

	m, err := migrate.NewWithSourceInstance("iofs", src, "sqlite://"+path)
	if err != nil {
		return fmt.Errorf("create migrate instance: %w", err)
	}
	defer m.Close()

	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

// Seed imports recipes into an empty database, keeping their ids. It is a
// no-op when recipes already exist and returns how many were inserted.
func (s *SQLiteStore) Seed(ctx context.Context, recipes []recipe.Recipe) (int, error) {
	var count int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM recipes`).Scan(&count); err != nil {
		return 0, fmt.Errorf("count recipes: %w", err)
	}
	if count > 0 {
		return 0, nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin seed: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, r := range recipes {
		ingredients, err := json.Marshal(r.Ingredients)
		if err != nil {
			return 0, fmt.Errorf("encode ingredients of %q: %w", r.Name, err)
		}
		procedure, err := json.Marshal(r.Procedure)
		if err != nil {
			return 0, fmt.Errorf("encode procedure of %q: %w", r.Name, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO recipes (id, name, cooking_time, difficulty, ingredients, procedure, rating)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			r.ID, r.Name, r.CookingTime, r.Difficulty, string(ingredients), string(procedure), r.Rating)
		if err != nil {
			return 0, fmt.Errorf("insert recipe %q: %w", r.Name, err)
		}

		for _, rv := range r.Reviews {
			_, err = tx.ExecContext(ctx,
				`INSERT INTO reviews (recipe_id, rating, feedback, date) VALUES (?, ?, ?, ?)`,
				r.ID, rv.Rating, rv.Feedback, rv.Date)
			if err != nil {
				return 0, fmt.Errorf("insert review of %q: %w", r.Name, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit seed: %w", err)
	}
	return len(recipes), nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]recipe.Recipe, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, cooking_time, difficulty, ingredients, procedure, rating FROM recipes ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query recipes: %w", err)
	}
	defer rows.Close()

	var recipes []recipe.Recipe
	index := make(map[int]int)
	for rows.Next() {
		r, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		index[r.ID] = len(recipes)
		recipes = append(recipes, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate recipes: %w", err)
	}

	reviews, err := s.db.QueryContext(ctx,
		`SELECT recipe_id, rating, feedback, date FROM reviews ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer reviews.Close()

	for reviews.Next() {
		var id int
		var rv recipe.Review
		if err := reviews.Scan(&id, &rv.Rating, &rv.Feedback, &rv.Date); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		if i, ok := index[id]; ok {
			recipes[i].Reviews = append(recipes[i].Reviews, rv)
		}
	}
	if err := reviews.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return recipes, nil
}

func (s *SQLiteStore) Get(ctx context.Context, id int) (*recipe.Recipe, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, cooking_time, difficulty, ingredients, procedure, rating FROM recipes WHERE id = ?`, id)
	r, err := scanRecipe(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT rating, feedback, date FROM reviews WHERE recipe_id = ? ORDER BY id`, id)
	if err != nil {
		return nil, fmt.Errorf("query reviews: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var rv recipe.Review
		if err := rows.Scan(&rv.Rating, &rv.Feedback, &rv.Date); err != nil {
			return nil, fmt.Errorf("scan review: %w", err)
		}
		r.Reviews = append(r.Reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate reviews: %w", err)
	}
	return &r, nil
}

func (s *SQLiteStore) AddReview(ctx context.Context, id int, review recipe.Review) (*recipe.Recipe, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin review: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	var exists int
	err = tx.QueryRowContext(ctx, `SELECT 1 FROM recipes WHERE id = ?`, id).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("look up recipe: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO reviews (recipe_id, rating, feedback, date) VALUES (?, ?, ?, ?)`,
		id, review.Rating, review.Feedback, review.Date)
	if err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE recipes SET rating = (SELECT AVG(rating) FROM reviews WHERE recipe_id = ?) WHERE id = ?`, id, id)
	if err != nil {
		return nil, fmt.Errorf("update rating: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit review: %w", err)
	}

	s.log.WithField("recipe_id", id).Debug("review added")
	return s.Get(ctx, id)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecipe(row scanner) (recipe.Recipe, error) {
	var r recipe.Recipe
	var ingredients, procedure string
	if err := row.Scan(&r.ID, &r.Name, &r.CookingTime, &r.Difficulty, &ingredients, &procedure, &r.Rating); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return r, err
		}
		return r, fmt.Errorf("scan recipe: %w", err)
	}
	if err := json.Unmarshal([]byte(ingredients), &r.Ingredients); err != nil {
		return r, fmt.Errorf("decode ingredients of %q: %w", r.Name, err)
	}
	if err := json.Unmarshal([]byte(procedure), &r.Procedure); err != nil {
		return r, fmt.Errorf("decode procedure of %q: %w", r.Name, err)
	}
	r.Reviews = []recipe.Review{}
	return r, nil
}
