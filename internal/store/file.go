package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mwhite7112/woodpantry-finder/internal/recipe"
)

var _ Store = (*FileStore)(nil)

// FileStore keeps the dataset in memory and rewrites the JSON file after
// every review. Safe for concurrent use; writes are last-write-wins.
type FileStore struct {
	mu      sync.RWMutex
	path    string
	recipes []recipe.Recipe
	log     logrus.FieldLogger
}

// OpenFile loads the dataset at path. A missing file yields an empty store,
// created on the first write.
func OpenFile(path string, log logrus.FieldLogger) (*FileStore, error) {
	s := &FileStore{path: path, log: log}

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.WithField("path", path).Warn("recipe dataset not found, starting empty")
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	recipes, err := DecodeDataset(f)
	if err != nil {
		return nil, err
	}
	s.recipes = recipes
	log.WithField("path", path).WithField("count", len(recipes)).Info("loaded recipes")
	return s, nil
}

func (s *FileStore) List(ctx context.Context) ([]recipe.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]recipe.Recipe, len(s.recipes))
	for i, r := range s.recipes {
		out[i] = cloneRecipe(r)
	}
	return out, nil
}

func (s *FileStore) Get(ctx context.Context, id int) (*recipe.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}
	r := cloneRecipe(s.recipes[i])
	return &r, nil
}

// AddReview only commits the review in memory once the file write
// succeeded.
func (s *FileStore) AddReview(ctx context.Context, id int, review recipe.Review) (*recipe.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return nil, ErrNotFound
	}

	updated := cloneRecipe(s.recipes[i])
	updated.Reviews = append(updated.Reviews, review)
	updated.Rating = recipe.AverageRating(updated.Reviews)

	next := make([]recipe.Recipe, len(s.recipes))
	copy(next, s.recipes)
	next[i] = updated
	if err := s.write(next); err != nil {
		return nil, err
	}
	s.recipes = next

	s.log.WithField("recipe_id", id).WithField("rating", updated.Rating).Debug("review added")
	out := cloneRecipe(updated)
	return &out, nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) indexOf(id int) int {
	for i, r := range s.recipes {
		if r.ID == id {
			return i
		}
	}
	return -1
}

// write replaces the dataset file through a temp file and rename.
func (s *FileStore) write(recipes []recipe.Recipe) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create dataset directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".recipes-*.json")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := EncodeDataset(tmp, recipes); err != nil {
		tmp.Close()
		return fmt.Errorf("write dataset: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace dataset: %w", err)
	}
	return nil
}
