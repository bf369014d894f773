package web

import (
	"github.com/mergington/activities-web/internal/catalog"
	"github.com/mergington/activities-web/internal/web/templates"
)

// activityCards maps the catalog into display cards in server order.
func activityCards(cat catalog.Catalog) []templates.ActivityCard {
	names := cat.Names()
	cards := make([]templates.ActivityCard, 0, len(names))
	for _, name := range names {
		activity, ok := cat.Get(name)
		if !ok {
			continue
		}
		cards = append(cards, templates.ActivityCard{
			Name:         name,
			Description:  activity.Description,
			Schedule:     activity.Schedule,
			SpotsLeft:    activity.SpotsLeft(),
			Participants: append([]string(nil), activity.Participants...),
		})
	}
	return cards
}
