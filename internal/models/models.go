package models

import (
	"strings"
	"time"
)

type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty accepts the three levels case-insensitively. Empty means easy.
func ParseDifficulty(s string) (Difficulty, bool) {
	switch Difficulty(strings.ToLower(strings.TrimSpace(s))) {
	case "", DifficultyEasy:
		return DifficultyEasy, true
	case DifficultyMedium:
		return DifficultyMedium, true
	case DifficultyHard:
		return DifficultyHard, true
	}
	return "", false
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// SourceMock marks replies produced locally instead of by a provider.
const SourceMock = "mock"

type Recipe struct {
	ID              int64      `json:"id"`
	Title           string     `json:"title"`
	IngredientsText string     `json:"ingredients_text"`
	Instructions    string     `json:"instructions,omitempty"`
	CookingTime     *int       `json:"cooking_time,omitempty"`
	Difficulty      Difficulty `json:"difficulty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// Ingredients splits the ingredient text into one trimmed entry per line.
// Blank lines are dropped.
func (r Recipe) Ingredients() []string {
	out := []string{}
	for _, ln := range strings.Split(r.IngredientsText, "\n") {
		if s := strings.TrimSpace(ln); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// RecipeInput is what the recipe form submits.
type RecipeInput struct {
	Title        string `json:"title"`
	Ingredients  string `json:"ingredients"`
	Instructions string `json:"instructions"`
	CookingTime  *int   `json:"cooking_time,omitempty"`
	Difficulty   string `json:"difficulty"`
}

type UploadedFile struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Size         int64     `json:"size"`
	LastModified time.Time `json:"last_modified"`
	Excerpt      string    `json:"excerpt,omitempty"`
	HasThumbnail bool      `json:"has_thumbnail"`

	Data      []byte `json:"-"`
	Thumbnail []byte `json:"-"`
}

type Message struct {
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	Source    string    `json:"source,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContextBundle is the slice of session state summarized into remote prompts.
type ContextBundle struct {
	Recipes []Recipe
	Files   []UploadedFile
}

type ProbeStatus string

const (
	ProbeNotConfigured ProbeStatus = "not-configured"
	ProbeConnected     ProbeStatus = "connected"
	ProbeUnavailable   ProbeStatus = "unavailable"
)
