package model

import "time"

// MealMenu holds the cafeteria menu for one calendar day. Rows are
// upserted by admins (usually from the NEIS feed) and served to
// everyone through the cached read endpoint.
type MealMenu struct {
	MenuDate  string    // meal_menus.menu_date (YYYY-MM-DD)
	Breakfast *string   // meal_menus.breakfast (nullable)
	Lunch     *string   // meal_menus.lunch (nullable)
	Dinner    *string   // meal_menus.dinner (nullable)
	UpdatedAt time.Time // meal_menus.updated_at
}
