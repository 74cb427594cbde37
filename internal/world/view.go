package world

import (
	"github.com/Scrimzay/cookiewarriors/internal/catalog"
	"github.com/Scrimzay/cookiewarriors/internal/types"
)

// StateView projects a snapshot into the message views render from.
func StateView(s GameState, speed float64) types.StateMessage {
	msg := types.StateMessage{
		Type:              types.MessageState,
		Session:           s.Session,
		Version:           s.Version,
		Status:            string(s.Status),
		Score:             s.Score,
		Wave:              s.Wave,
		SelectedArchetype: s.SelectedArchetype,
		Speed:             speed,
		Cookies:           make([]types.CookieView, 0, len(s.Cookies)),
		Monsters:          make([]types.MonsterView, 0, len(s.Monsters)),
	}

	for _, c := range s.Cookies {
		msg.Cookies = append(msg.Cookies, types.CookieView{
			ID:             c.ID,
			Type:           c.Archetype.ID,
			Name:           c.Archetype.Name,
			Color:          c.Archetype.Color,
			SecondaryColor: c.Archetype.SecondaryColor,
			Icon:           c.Archetype.Icon,
			Size:           c.Archetype.Size,
			X:              c.X,
			Y:              c.Y,
			Health:         c.Health,
			MaxHealth:      c.MaxHealth,
			Selected:       c.Selected,
			Direction:      c.Direction,
		})
	}

	for _, m := range s.Monsters {
		msg.Monsters = append(msg.Monsters, types.MonsterView{
			ID:        m.ID,
			Type:      m.Variant.String(),
			X:         m.X,
			Y:         m.Y,
			Health:    m.Health,
			MaxHealth: m.MaxHealth,
			Size:      m.Size,
			Speed:     m.Speed,
			Damage:    m.Damage,
		})
	}

	return msg
}

func CatalogView() types.CatalogMessage {
	return types.CatalogMessage{
		Type:       types.MessageCatalog,
		Archetypes: catalog.All(),
	}
}
