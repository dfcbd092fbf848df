package models

// RecipeSuggestion is one search suggestion, produced either by the
// generative API or by the local fuzzy fallback.
type RecipeSuggestion struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Type        string   `json:"type"`
	Difficulty  string   `json:"difficulty"`
	CookTime    string   `json:"cook_time"`
	Rating      float64  `json:"rating"`
	Image       string   `json:"image"`
	Ingredients []string `json:"ingredients"`
	Tags        []string `json:"tags"`
	Description string   `json:"description"`
	Score       float64  `json:"score,omitempty"`
}

type RecipeCategory struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	Icon  string `json:"icon"`
}

// ChatMessage is one turn of the chatbot conversation history.
type ChatMessage struct {
	Role    string `json:"role" binding:"required"`
	Content string `json:"content" binding:"required"`
}

type ChatRequest struct {
	Messages []ChatMessage `json:"messages" binding:"required,min=1,dive"`
}
