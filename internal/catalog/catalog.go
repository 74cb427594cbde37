// Package catalog holds the fixed set of cookie archetypes a player can deploy.
// Records are immutable; callers get pointers into the package table and must
// not modify them.
package catalog

// DefaultID is the archetype selected when a game first loads.
const DefaultID = "fire-cookie"

type Archetype struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	SecondaryColor string  `json:"secondaryColor"`
	Element        string  `json:"magicalElement"`
	Ability        string  `json:"ability"`
	Health         int     `json:"health"`
	Damage         int     `json:"damage"`
	Speed          float64 `json:"speed"`
	Size           float64 `json:"size"`
	Icon           string  `json:"emoji"`
	Description    string  `json:"description"`
}

var archetypes = []Archetype{
	{
		ID:             "fire-cookie",
		Name:           "Fire Cookie",
		Color:          "#D2691E",
		SecondaryColor: "#FF4500",
		Element:        "Fire",
		Ability:        "Flame Burst",
		Health:         100,
		Damage:         25,
		Speed:          2,
		Size:           40,
		Icon:           "🔥",
		Description:    "Scorches nearby cake monsters with a burst of cinnamon fire.",
	},
	{
		ID:             "ice-cookie",
		Name:           "Ice Cookie",
		Color:          "#F5DEB3",
		SecondaryColor: "#87CEEB",
		Element:        "Ice",
		Ability:        "Frost Nova",
		Health:         120,
		Damage:         18,
		Speed:          1.5,
		Size:           42,
		Icon:           "❄️",
		Description:    "Frosted sugar shell that slows anything that comes close.",
	},
	{
		ID:             "lightning-cookie",
		Name:           "Lightning Cookie",
		Color:          "#DEB887",
		SecondaryColor: "#FFD700",
		Element:        "Lightning",
		Ability:        "Chain Spark",
		Health:         80,
		Damage:         30,
		Speed:          3,
		Size:           38,
		Icon:           "⚡",
		Description:    "Crackles with ginger static and strikes first.",
	},
	{
		ID:             "earth-cookie",
		Name:           "Earth Cookie",
		Color:          "#8B4513",
		SecondaryColor: "#6B8E23",
		Element:        "Earth",
		Ability:        "Oat Wall",
		Health:         160,
		Damage:         12,
		Speed:          1,
		Size:           48,
		Icon:           "🌿",
		Description:    "Dense oatmeal warrior that holds the line.",
	},
	{
		ID:             "shadow-cookie",
		Name:           "Shadow Cookie",
		Color:          "#3B2F2F",
		SecondaryColor: "#6A0DAD",
		Element:        "Shadow",
		Ability:        "Cocoa Cloak",
		Health:         90,
		Damage:         28,
		Speed:          2.5,
		Size:           36,
		Icon:           "🌑",
		Description:    "Double chocolate rogue that slips between monsters.",
	},
	{
		ID:             "rainbow-cookie",
		Name:           "Rainbow Cookie",
		Color:          "#FFB6C1",
		SecondaryColor: "#9370DB",
		Element:        "Light",
		Ability:        "Sprinkle Shield",
		Health:         110,
		Damage:         20,
		Speed:          2,
		Size:           40,
		Icon:           "🌈",
		Description:    "Sprinkle-covered healer of the enchanted forest.",
	},
}

var byID = func() map[string]*Archetype {
	m := make(map[string]*Archetype, len(archetypes))
	for i := range archetypes {
		m[archetypes[i].ID] = &archetypes[i]
	}
	return m
}()

// Lookup returns the archetype with the given id.
func Lookup(id string) (*Archetype, bool) {
	a, ok := byID[id]
	return a, ok
}

// All returns a copy of the catalog in display order.
func All() []Archetype {
	out := make([]Archetype, len(archetypes))
	copy(out, archetypes)
	return out
}
