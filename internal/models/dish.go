package models

// Dish represents one votable entry in the poll catalog.
// A dish is immutable once fetched; its identity is the ID.
type Dish struct {
	// ID is the catalog identifier for the dish.
	ID int `json:"id"`

	// Name is the display name of the dish.
	Name string `json:"name"`

	// Description is the menu-style description shown to voters.
	Description string `json:"description"`

	// Image is a URL reference to the dish picture.
	Image string `json:"image"`
}
