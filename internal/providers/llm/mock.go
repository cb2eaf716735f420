package llm

import (
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/example/recipe-assistant/internal/models"
)

// Reply renders one canned answer.
type Reply func(bundle models.ContextBundle) string

// Bucket is one keyword topic of the mock generator.
type Bucket struct {
	Name     string
	Keywords []string
	Reply    Reply
}

// MockGenerator answers locally without any network access. Buckets are
// checked in order and the first keyword hit wins; otherwise one of Defaults
// is picked with Intn.
type MockGenerator struct {
	Buckets  []Bucket
	Defaults []Reply
	// Intn returns a value in [0, n). Defaults to math/rand/v2.
	Intn func(n int) int
}

// NewMockGenerator returns the generator with the standard buckets and replies.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{Buckets: DefaultBuckets(), Defaults: DefaultReplies(), Intn: rand.IntN}
}

// Generate never fails and never returns an empty string.
func (m *MockGenerator) Generate(prompt string, bundle models.ContextBundle) string {
	if b, ok := m.Match(prompt); ok {
		return b.Reply(bundle)
	}
	if len(m.Defaults) == 0 {
		return genericReply
	}
	intn := m.Intn
	if intn == nil {
		intn = rand.IntN
	}
	i := intn(len(m.Defaults))
	if i < 0 || i >= len(m.Defaults) {
		i = 0
	}
	if out := m.Defaults[i](bundle); strings.TrimSpace(out) != "" {
		return out
	}
	return genericReply
}

// Match returns the first bucket whose keywords occur in prompt.
func (m *MockGenerator) Match(prompt string) (Bucket, bool) {
	p := strings.ToLower(prompt)
	for _, b := range m.Buckets {
		for _, kw := range b.Keywords {
			if strings.Contains(p, kw) {
				return b, true
			}
		}
	}
	return Bucket{}, false
}

const genericReply = "I'd be happy to help with your cooking questions! What would you like to know?"

// DefaultBuckets in priority order: healthy/diet, quick/fast/easy,
// vegetarian/vegan, ingredient/substitute.
func DefaultBuckets() []Bucket {
	return []Bucket{
		{Name: "healthy", Keywords: []string{"healthy", "diet"}, Reply: healthyReply},
		{Name: "quick", Keywords: []string{"quick", "fast", "easy"}, Reply: fixed(quickReply)},
		{Name: "vegetarian", Keywords: []string{"vegetarian", "vegan"}, Reply: fixed(vegetarianReply)},
		{Name: "substitute", Keywords: []string{"ingredient", "substitut"}, Reply: fixed(substituteReply)},
	}
}

// DefaultReplies is the list the default branch picks from.
func DefaultReplies() []Reply {
	return []Reply{
		fixed("I'd be happy to help with your cooking questions! I can assist with recipes, techniques, substitutions, and more. What would you like to know?"),
		fixed("As your recipe assistant, I can help you plan meals, adjust recipes, or solve cooking challenges. What do you need help with today?"),
		recipeCountReply,
		fixed("Let me know what you'd like to cook, and I'll help you with recipes, techniques, and tips to make it successful!"),
		fixed("Whether you're making a simple weeknight dinner or an elaborate celebration meal, I'm here to help. What's cooking?"),
	}
}

func fixed(s string) Reply {
	return func(models.ContextBundle) string { return s }
}

func recipeCountReply(bundle models.ContextBundle) string {
	have := "haven't added any recipes yet"
	switch n := len(bundle.Recipes); n {
	case 0:
	case 1:
		have = "have 1 recipe"
	default:
		have = fmt.Sprintf("have %d recipes", n)
	}
	return fmt.Sprintf("I notice you %s. I can help you create new recipes or suggest ideas based on ingredients you have!", have)
}

func healthyReply(bundle models.ContextBundle) string {
	closing := "Would you like specific healthy recipe ideas?"
	if len(bundle.Recipes) > 0 {
		closing = "I can help modify any of your recipes to be healthier!"
	}
	return `For healthier recipes, I recommend:

• Use olive oil instead of butter
• Replace white flour with whole wheat or almond flour
• Add more vegetables to increase fiber and nutrients
• Reduce sugar by 25-50% and enhance with spices like cinnamon or vanilla
• Bake, grill, or steam instead of frying
• Use Greek yogurt instead of sour cream

` + closing
}

const quickReply = `Quick recipe ideas:

• 15-minute pasta with garlic, olive oil, and red pepper flakes
• 10-minute omelette with leftover vegetables and cheese
• 5-minute avocado toast with cherry tomatoes and everything seasoning
• 20-minute stir-fry with pre-cut vegetables and protein
• No-cook options: salads, sandwiches, yogurt parfaits

I can help you adapt recipes to be quicker or suggest time-saving techniques!`

const vegetarianReply = `Vegetarian/vegan substitutions:

• Meat: mushrooms, lentils, tofu, tempeh, or beans
• Dairy milk: almond, soy, oat, or coconut milk
• Eggs: flax eggs (1 tbsp ground flax + 3 tbsp water), applesauce, or commercial egg replacers
• Cheese: nutritional yeast, vegan cheese, or blended cashews
• Honey: maple syrup, agave, or date syrup

I'd be happy to help convert any recipe to vegetarian or vegan!`

const substituteReply = `Common ingredient substitutions:

• Buttermilk: 1 cup milk + 1 tbsp lemon juice or vinegar (let sit 5 minutes)
• Baking powder: 1/4 tsp baking soda + 1/2 tsp cream of tartar
• Brown sugar: 1 cup white sugar + 1-2 tbsp molasses
• Tomato paste: ketchup (use 2x amount) or tomato sauce (reduce other liquids)
• Fresh herbs: use 1/3 amount of dried herbs
• Wine: broth with a splash of vinegar

What specific ingredient do you need to substitute?`
