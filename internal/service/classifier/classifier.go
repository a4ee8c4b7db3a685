package classifier

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

// PrimaryTier marks the featured items of a station.
const PrimaryTier = 1

var noticeByIcon = map[domain.IconCode]domain.Notice{
	domain.IconVegetarian: domain.NoticeVegetarian,
	domain.IconVegan:      domain.NoticeVegan,
	domain.IconGlutenFree: domain.NoticeGlutenFree,
}

type Classifier struct{}

func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify reports whether item is a primary item and, if so, its notices in
// icon order. Unknown icon codes are ignored.
func (c *Classifier) Classify(item domain.Item) (domain.ClassifiedItem, bool) {
	if item.Tier == nil || *item.Tier != PrimaryTier {
		return domain.ClassifiedItem{}, false
	}

	var notices []domain.Notice
	for _, code := range item.Icons {
		if notice, ok := noticeByIcon[code]; ok {
			notices = append(notices, notice)
		}
	}

	return domain.ClassifiedItem{
		Label:       item.Label,
		Description: item.Description,
		Notices:     notices,
	}, true
}

// ClassifyStation classifies every item the station references, in station
// order. Keys absent from items are skipped.
func (c *Classifier) ClassifyStation(ctx context.Context, station domain.Station, items map[string]domain.Item) []domain.ClassifiedItem {
	classified := make([]domain.ClassifiedItem, 0, len(station.ItemKeys))
	for _, key := range station.ItemKeys {
		item, ok := items[key]
		if !ok {
			slog.DebugContext(ctx, "station references unknown item",
				slog.String("station", station.Label),
				slog.String("item_key", key),
			)
			continue
		}

		if ci, ok := c.Classify(item); ok {
			classified = append(classified, ci)
		}
	}
	return classified
}
