package session

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/example/recipe-assistant/internal/models"
)

// RecipeStore holds a session's recipes in insertion order. Recipes are
// immutable once added.
type RecipeStore struct {
	mu     sync.RWMutex
	byID   map[int64]models.Recipe
	order  []int64
	lastID int64
	now    func() time.Time
}

func NewRecipeStore() *RecipeStore {
	return &RecipeStore{byID: map[int64]models.Recipe{}, now: time.Now}
}

// Add validates the form input and stores a new recipe. The id is the
// creation time in Unix milliseconds, bumped when two recipes land in the
// same millisecond.
func (s *RecipeStore) Add(in models.RecipeInput) (models.Recipe, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return models.Recipe{}, fmt.Errorf("title is required: %w", ErrInvalidRecipe)
	}
	if strings.TrimSpace(in.Ingredients) == "" {
		return models.Recipe{}, fmt.Errorf("ingredients are required: %w", ErrInvalidRecipe)
	}
	difficulty, ok := models.ParseDifficulty(in.Difficulty)
	if !ok {
		return models.Recipe{}, fmt.Errorf("difficulty %q must be easy, medium or hard: %w", in.Difficulty, ErrInvalidRecipe)
	}
	var cooking *int
	if in.CookingTime != nil {
		if *in.CookingTime < 0 {
			return models.Recipe{}, fmt.Errorf("cooking time must not be negative: %w", ErrInvalidRecipe)
		}
		v := *in.CookingTime
		cooking = &v
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	created := s.now()
	id := created.UnixMilli()
	if id <= s.lastID {
		id = s.lastID + 1
	}
	s.lastID = id
	r := models.Recipe{
		ID:              id,
		Title:           title,
		IngredientsText: in.Ingredients,
		Instructions:    in.Instructions,
		CookingTime:     cooking,
		Difficulty:      difficulty,
		CreatedAt:       created,
	}
	s.byID[id] = r
	s.order = append(s.order, id)
	return r, nil
}

func (s *RecipeStore) Get(id int64) (models.Recipe, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.byID[id]
	return r, ok
}

func (s *RecipeStore) List() []models.Recipe {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]models.Recipe, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.byID[id])
	}
	return out
}

func (s *RecipeStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
