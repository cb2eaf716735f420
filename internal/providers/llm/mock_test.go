package llm

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/recipe-assistant/internal/models"
)

func TestMockBucketPriority(t *testing.T) {
	m := NewMockGenerator()
	tests := []struct {
		prompt string
		want   string
	}{
		{"Healthy vegetarian dinner?", "healthy"},
		{"I'm on a DIET", "healthy"},
		{"What's a quick vegan snack?", "quick"},
		{"something fast please", "quick"},
		{"an easy ingredient swap", "quick"},
		{"Vegetarian substitutions?", "vegetarian"},
		{"what can I substitute for eggs", "substitute"},
		{"missing an ingredient", "substitute"},
	}
	for _, tt := range tests {
		t.Run(tt.prompt, func(t *testing.T) {
			b, ok := m.Match(tt.prompt)
			require.True(t, ok)
			assert.Equal(t, tt.want, b.Name)
		})
	}

	_, ok := m.Match("Basic cooking techniques")
	assert.False(t, ok)
}

func TestMockHealthyClosingDependsOnRecipes(t *testing.T) {
	m := NewMockGenerator()
	empty := m.Generate("healthy please", models.ContextBundle{})
	assert.True(t, strings.HasPrefix(empty, "For healthier recipes"))
	assert.True(t, strings.HasSuffix(empty, "Would you like specific healthy recipe ideas?"))

	withRecipes := m.Generate("healthy please", models.ContextBundle{Recipes: []models.Recipe{{Title: "Soup"}}})
	assert.True(t, strings.HasSuffix(withRecipes, "I can help modify any of your recipes to be healthier!"))
}

func TestMockDefaultUsesInjectedRandom(t *testing.T) {
	var gotN int
	m := NewMockGenerator()
	m.Intn = func(n int) int { gotN = n; return 2 }

	out := m.Generate("Basic cooking techniques", models.ContextBundle{})
	assert.Equal(t, len(DefaultReplies()), gotN)
	assert.Equal(t, "I notice you haven't added any recipes yet. I can help you create new recipes or suggest ideas based on ingredients you have!", out)
	assert.NotContains(t, out, "undefined")

	out = m.Generate("hello", models.ContextBundle{Recipes: make([]models.Recipe, 4)})
	assert.Contains(t, out, "have 4 recipes")
}

func TestMockDefaultsAlwaysNonEmpty(t *testing.T) {
	for i := range DefaultReplies() {
		m := NewMockGenerator()
		m.Intn = func(int) int { return i }
		assert.NotEmpty(t, strings.TrimSpace(m.Generate("hi", models.ContextBundle{})))
	}

	m := &MockGenerator{Intn: func(int) int { return 99 }}
	assert.Equal(t, genericReply, m.Generate("hi", models.ContextBundle{}))

	m = &MockGenerator{Defaults: []Reply{func(models.ContextBundle) string { return "  " }}, Intn: func(int) int { return 7 }}
	assert.Equal(t, genericReply, m.Generate("hi", models.ContextBundle{}))
}
