package hunt

// DefaultCuisines is the static fallback category list. It doubles as the
// whitelist the live nearby-business titles are intersected against, so the
// selection screen only ever offers recognizable cuisines.
var DefaultCuisines = []string{
	"American",
	"Barbeque",
	"Breakfast & Brunch",
	"Burgers",
	"Caribbean",
	"Chinese",
	"Delis",
	"Diners",
	"Fast Food",
	"French",
	"Greek",
	"Halal",
	"Indian",
	"Italian",
	"Japanese",
	"Korean",
	"Latin American",
	"Mediterranean",
	"Mexican",
	"Middle Eastern",
	"Pizza",
	"Ramen",
	"Salad",
	"Sandwiches",
	"Seafood",
	"Soul Food",
	"Southern",
	"Steakhouses",
	"Sushi Bars",
	"Tacos",
	"Thai",
	"Vegan",
	"Vegetarian",
	"Vietnamese",
}

// NearbyCuisines intersects the category titles seen in a live nearby search
// with DefaultCuisines, preserving the static list's order and uniqueness.
// When nothing intersects (or the live set is empty) the full static list is
// returned, which is also the EmptyCategoryPool recovery path.
func NearbyCuisines(liveTitles []string) []string {
	if len(liveTitles) == 0 {
		return DefaultCuisines
	}

	seen := make(map[string]struct{}, len(liveTitles))
	for _, title := range liveTitles {
		seen[title] = struct{}{}
	}

	var nearby []string
	for _, cuisine := range DefaultCuisines {
		if _, ok := seen[cuisine]; ok {
			nearby = append(nearby, cuisine)
		}
	}
	if len(nearby) == 0 {
		return DefaultCuisines
	}
	return nearby
}
