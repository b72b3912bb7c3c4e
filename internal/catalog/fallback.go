package catalog

import "github.com/mkale/dishpoll/internal/models"

// fallbackDishes is the fixed catalog served when the feed is unusable.
var fallbackDishes = []models.Dish{
	{
		ID:          1,
		Name:        "Lasagne",
		Description: "Breaded fried chicken with waffles, and a side of maple syrup.",
		Image:       "https://loremflickr.com/300/300/food",
	},
	{
		ID:          2,
		Name:        "Pho",
		Description: "Three eggs with cilantro, tomatoes, onions, avocados and melted Emmental cheese. With a side of roasted potatoes, and your choice of toast or croissant.",
		Image:       "https://loremflickr.com/300/300/food",
	},
	{
		ID:          3,
		Name:        "Stinky Tofu",
		Description: "Two buttermilk waffles, topped with whipped cream and maple syrup, a side of two eggs served any style, and your choice of smoked bacon or smoked ham.",
		Image:       "https://loremflickr.com/300/300/food",
	},
	{
		ID:          4,
		Name:        "Scotch Eggs",
		Description: "Thick slices of French toast bread, brown sugar, half-and-half and vanilla, topped with powdered sugar. With two eggs served any style, and your choice of smoked bacon or smoked ham.",
		Image:       "https://loremflickr.com/300/300/food",
	},
	{
		ID:          5,
		Name:        "Sushi",
		Description: "Fresh Norwegian salmon, lightly brushed with our herbed Dijon mustard sauce, with choice of two sides.",
		Image:       "https://loremflickr.com/300/300/food",
	},
}

// Fallback returns a copy of the built-in dish catalog.
func Fallback() []models.Dish {
	dishes := make([]models.Dish, len(fallbackDishes))
	copy(dishes, fallbackDishes)
	return dishes
}
