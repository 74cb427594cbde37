// Package types holds the JSON messages exchanged with browser views.
package types

import "github.com/Scrimzay/cookiewarriors/internal/catalog"

// Client actions, carried in the "action" field.
const (
	ActionStartGame    = "start_game"
	ActionReturnToMenu = "return_to_menu"
	ActionDeploy       = "deploy"
	ActionSelect       = "select"
	ActionSetArchetype = "set_archetype"
	ActionSetSpeed     = "set_speed"
)

// Server message kinds, carried in the "type" field.
const (
	MessageState   = "state"
	MessageCatalog = "catalog"
	MessageError   = "error"
)

type BaseAction struct {
	Action string `json:"action"`
}

type DeployAction struct {
	Action string  `json:"action"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
}

type SelectAction struct {
	Action   string `json:"action"`
	CookieID string `json:"cookieId"`
}

type ArchetypeAction struct {
	Action      string `json:"action"`
	ArchetypeID string `json:"archetypeId"`
}

type SpeedAction struct {
	Action     string  `json:"action"`
	Multiplier float64 `json:"multiplier"`
}

type CookieView struct {
	ID             string  `json:"id"`
	Type           string  `json:"type"`
	Name           string  `json:"name"`
	Color          string  `json:"color"`
	SecondaryColor string  `json:"secondaryColor"`
	Icon           string  `json:"emoji"`
	Size           float64 `json:"size"`
	X              float64 `json:"x"`
	Y              float64 `json:"y"`
	Health         int     `json:"health"`
	MaxHealth      int     `json:"maxHealth"`
	Selected       bool    `json:"isSelected"`
	Direction      float64 `json:"direction"`
}

type MonsterView struct {
	ID        string  `json:"id"`
	Type      string  `json:"type"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	Health    int     `json:"health"`
	MaxHealth int     `json:"maxHealth"`
	Size      float64 `json:"size"`
	Speed     float64 `json:"speed"`
	Damage    int     `json:"damage"`
}

type StateMessage struct {
	Type              string        `json:"type"`
	Session           string        `json:"session,omitempty"`
	Version           uint64        `json:"version"`
	Status            string        `json:"gameStatus"`
	Score             int           `json:"score"`
	Wave              int           `json:"wave"`
	SelectedArchetype string        `json:"selectedCookieType"`
	Speed             float64       `json:"speed"`
	Cookies           []CookieView  `json:"cookies"`
	Monsters          []MonsterView `json:"monsters"`
}

type CatalogMessage struct {
	Type       string              `json:"type"`
	Archetypes []catalog.Archetype `json:"archetypes"`
}

type ErrorMessage struct {
	Type   string `json:"type"`
	Action string `json:"action"`
	Error  string `json:"error"`
}
