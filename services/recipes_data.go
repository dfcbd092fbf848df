package services

import (
	"sort"

	"github.com/cookiepedia/cookiepedia/models"
)

// recipeDatabase backs the local search path when the generative API is
// unavailable or unconfigured.
var recipeDatabase = []models.RecipeSuggestion{
	{
		ID: 1, Name: "Classic Chocolate Chip Cookies", Type: "cookie", Difficulty: "easy",
		CookTime: "25 minutes", Rating: 4.8, Image: "/images/Recipe1.avif",
		Ingredients: []string{"flour", "butter", "sugar", "chocolate chips", "eggs", "vanilla"},
		Tags:        []string{"classic", "popular", "family-friendly", "sweet"},
	},
	{
		ID: 2, Name: "Spicy Chocolate Chip Cookies", Type: "cookie", Difficulty: "medium",
		CookTime: "30 minutes", Rating: 4.6, Image: "/images/Recipe2.avif",
		Ingredients: []string{"flour", "butter", "brown sugar", "chocolate chips", "cayenne", "cinnamon"},
		Tags:        []string{"spicy", "unique", "chocolate", "bold"},
	},
	{
		ID: 3, Name: "Lemon & Lavender Shortbread", Type: "shortbread", Difficulty: "medium",
		CookTime: "35 minutes", Rating: 4.7, Image: "/images/Recipe3.avif",
		Ingredients: []string{"flour", "butter", "lemon zest", "lavender", "powdered sugar"},
		Tags:        []string{"floral", "citrus", "elegant", "tea-time"},
	},
	{
		ID: 4, Name: "Rosemary-Infused Snickerdoodles", Type: "cookie", Difficulty: "medium",
		CookTime: "28 minutes", Rating: 4.5, Image: "/images/Recipe4.jpg",
		Ingredients: []string{"flour", "butter", "sugar", "cinnamon", "rosemary", "cream of tartar"},
		Tags:        []string{"herb", "unique", "soft", "aromatic"},
	},
	{
		ID: 5, Name: "Matcha White Chocolate Macarons", Type: "macaron", Difficulty: "hard",
		CookTime: "45 minutes", Rating: 4.9, Image: "/images/Recipe5.avif",
		Ingredients: []string{"almond flour", "powdered sugar", "egg whites", "matcha powder", "white chocolate"},
		Tags:        []string{"japanese", "green tea", "delicate", "sophisticated"},
	},
	{
		ID: 6, Name: "Cardamom & Pistachio Biscotti", Type: "biscotti", Difficulty: "medium",
		CookTime: "50 minutes", Rating: 4.4, Image: "/images/Recipe6.jpg",
		Ingredients: []string{"flour", "sugar", "eggs", "cardamom", "pistachios", "baking powder"},
		Tags:        []string{"italian", "crunchy", "coffee-pairing", "nuts"},
	},
	{
		ID: 7, Name: "Gingerbread People", Type: "cookie", Difficulty: "easy",
		CookTime: "40 minutes", Rating: 4.6, Image: "/images/Recipe7.avif",
		Ingredients: []string{"flour", "molasses", "ginger", "cinnamon", "cloves", "butter"},
		Tags:        []string{"holiday", "spiced", "decorative", "traditional"},
	},
	{
		ID: 8, Name: "Classic Oatmeal Raisin", Type: "cookie", Difficulty: "easy",
		CookTime: "22 minutes", Rating: 4.3, Image: "/images/Recipe8.avif",
		Ingredients: []string{"oats", "flour", "raisins", "butter", "brown sugar", "cinnamon"},
		Tags:        []string{"healthy", "chewy", "breakfast", "fiber"},
	},
	{
		ID: 9, Name: "Peanut Butter Blossoms", Type: "cookie", Difficulty: "easy",
		CookTime: "25 minutes", Rating: 4.7, Image: "/images/Recipe1.webp",
		Ingredients: []string{"peanut butter", "flour", "sugar", "eggs", "chocolate kisses"},
		Tags:        []string{"peanut butter", "chocolate", "classic", "kids-favorite"},
	},
	{
		ID: 10, Name: "Salted Caramel Cookies", Type: "cookie", Difficulty: "medium",
		CookTime: "32 minutes", Rating: 4.8, Image: "/images/Recipe2.webp",
		Ingredients: []string{"flour", "butter", "caramel", "sea salt", "brown sugar", "vanilla"},
		Tags:        []string{"salted", "caramel", "gourmet", "sweet-salty"},
	},
	{
		ID: 11, Name: "Double Chocolate Brownies", Type: "brownie", Difficulty: "easy",
		CookTime: "35 minutes", Rating: 4.9, Image: "/images/Recipe3.webp",
		Ingredients: []string{"dark chocolate", "butter", "sugar", "eggs", "flour", "cocoa powder"},
		Tags:        []string{"chocolate", "fudgy", "rich", "decadent"},
	},
	{
		ID: 12, Name: "Vanilla Bean Macaroons", Type: "macaroon", Difficulty: "medium",
		CookTime: "30 minutes", Rating: 4.5, Image: "/images/Recipe4.jpg",
		Ingredients: []string{"coconut", "egg whites", "sugar", "vanilla bean", "almond extract"},
		Tags:        []string{"coconut", "vanilla", "gluten-free", "chewy"},
	},
	{
		ID: 13, Name: "Lemon Bars", Type: "bar", Difficulty: "medium",
		CookTime: "40 minutes", Rating: 4.7, Image: "/images/Recipe5.jpg",
		Ingredients: []string{"flour", "butter", "lemon juice", "lemon zest", "powdered sugar", "eggs"},
		Tags:        []string{"citrus", "tangy", "bars", "summer"},
	},
	{
		ID: 14, Name: "Snickerdoodles", Type: "cookie", Difficulty: "easy",
		CookTime: "25 minutes", Rating: 4.5, Image: "/images/Recipe6.jpg",
		Ingredients: []string{"flour", "butter", "sugar", "cinnamon", "cream of tartar", "baking soda"},
		Tags:        []string{"cinnamon", "soft", "classic", "comfort"},
	},
	{
		ID: 15, Name: "Sugar Cookies", Type: "cookie", Difficulty: "easy",
		CookTime: "30 minutes", Rating: 4.4, Image: "/images/Recipe2.avif",
		Ingredients: []string{"flour", "butter", "sugar", "eggs", "vanilla", "baking powder"},
		Tags:        []string{"classic", "decorative", "vanilla", "versatile"},
	},
	{
		ID: 16, Name: "Chocolate Crinkles", Type: "cookie", Difficulty: "easy",
		CookTime: "28 minutes", Rating: 4.6, Image: "/images/Recipe1.avif",
		Ingredients: []string{"cocoa powder", "flour", "sugar", "eggs", "powdered sugar", "oil"},
		Tags:        []string{"chocolate", "crackled", "festive", "soft"},
	},
}

// popularRecipeNames returns the highest-rated local recipes, used when the
// generative API cannot supply popular search terms.
func popularRecipeNames(limit int) []string {
	recipes := make([]models.RecipeSuggestion, len(recipeDatabase))
	copy(recipes, recipeDatabase)
	sort.SliceStable(recipes, func(i, j int) bool {
		return recipes[i].Rating > recipes[j].Rating
	})
	if limit > len(recipes) {
		limit = len(recipes)
	}
	names := make([]string, 0, limit)
	for _, r := range recipes[:limit] {
		names = append(names, r.Name)
	}
	return names
}

// recipeCategories is the static category listing for the browse surface.
var recipeCategories = []models.RecipeCategory{
	{Name: "Cookies", Count: 45, Icon: "🍪"},
	{Name: "Brownies", Count: 12, Icon: "🍫"},
	{Name: "Macarons", Count: 8, Icon: "🧁"},
	{Name: "Biscotti", Count: 6, Icon: "🥖"},
	{Name: "Holiday Treats", Count: 15, Icon: "🎄"},
	{Name: "Gluten-Free", Count: 18, Icon: "🌾"},
	{Name: "Vegan", Count: 22, Icon: "🌱"},
	{Name: "Quick & Easy", Count: 35, Icon: "⚡"},
}
