package entities

// FlavorCount pairs a flavor tag with how often it appears
type FlavorCount struct {
	Flavor string `json:"flavor"`
	Count  int    `json:"count"`
}

// ProcessCount pairs a process with how many records used it
type ProcessCount struct {
	Process Process `json:"process"`
	Count   int     `json:"count"`
}

// UserStats summarizes a user's accumulated activity
type UserStats struct {
	TotalRecords         int            `json:"total_records"`
	UniqueCoffees        int            `json:"unique_coffees"`
	UniqueOrigins        int            `json:"unique_origins"`
	UniqueVarieties      int            `json:"unique_varieties"`
	AchievementsUnlocked int            `json:"achievements_unlocked"`
	FavoriteOrigin       string         `json:"favorite_origin,omitempty"`
	TopFlavors           []FlavorCount  `json:"top_flavors"`
	ProcessBreakdown     []ProcessCount `json:"process_breakdown"`
}

// YearlySummary scopes the same aggregates to one calendar year
type YearlySummary struct {
	Year                 int           `json:"year"`
	TotalRecords         int           `json:"total_records"`
	UniqueCoffees        int           `json:"unique_coffees"`
	UniqueOrigins        int           `json:"unique_origins"`
	AchievementsUnlocked int           `json:"achievements_unlocked"`
	FavoriteOrigin       string        `json:"favorite_origin,omitempty"`
	FlavorPreferences    []FlavorCount `json:"flavor_preferences"`
	RecommendedCoffees   []*CoffeeBean `json:"recommended_coffees"`
}
