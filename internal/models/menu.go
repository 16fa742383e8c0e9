package models

// MenuItem is the slice of the catalog the assistant reads and mutates:
// identity, name, category, price, availability.
type MenuItem struct {
	ID           string  `json:"id"`
	RestaurantID string  `json:"restaurantId"`
	CategoryID   string  `json:"categoryId"`
	Name         string  `json:"name"`
	CategoryName string  `json:"categoryName,omitempty"`
	BasePrice    float64 `json:"basePrice"`
	IsAvailable  bool    `json:"isAvailable"`
}

// Category is a named grouping of menu items within a restaurant.
type Category struct {
	ID           string `json:"id"`
	RestaurantID string `json:"restaurantId"`
	Name         string `json:"name"`
	IsActive     bool   `json:"isActive"`
}

// Table is a dining table; the assistant only lists them.
type Table struct {
	ID       string `json:"id"`
	Number   string `json:"number"`
	Capacity int    `json:"capacity"`
	Status   string `json:"status"`
}
