package testutil

import (
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

// CommonsCafeID is the cafe id used by the shared menu fixture.
const CommonsCafeID = "224"

func tier(n int) *int {
	return &n
}

func clock(h, m int) domain.TimeOfDay {
	return domain.TimeOfDay(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

// LunchMenuFixture returns a day with breakfast, lunch and dinner. Lunch
// starts at 11:30 and has two stations: "grill" with one tier 1 vegan item
// and "condiments" with only tier 2 items.
func LunchMenuFixture() *domain.MenuResponse {
	return &domain.MenuResponse{
		Days: []domain.MenuDay{
			{
				Date: "2026-10-19",
				Cafes: map[string]domain.Cafe{
					CommonsCafeID: {
						ID:   CommonsCafeID,
						Name: "Commons",
						DayParts: [][]domain.MealSlot{
							{
								{
									Label: "Breakfast",
									Start: clock(7, 0),
									End:   clock(10, 0),
									Stations: []domain.Station{
										{Label: "breakfast", ItemKeys: []string{"101"}},
									},
								},
								{
									Label: "Lunch",
									Start: clock(11, 30),
									End:   clock(14, 0),
									Stations: []domain.Station{
										{Label: "grill", ItemKeys: []string{"201"}},
										{Label: "condiments", ItemKeys: []string{"202", "203"}},
									},
								},
								{
									Label: "Dinner",
									Start: clock(17, 0),
									End:   clock(20, 0),
									Stations: []domain.Station{
										{Label: "fry station", ItemKeys: []string{"301"}},
									},
								},
							},
						},
					},
				},
			},
		},
		Items: map[string]domain.Item{
			"101": {Label: "Scrambled Eggs", Tier: tier(1), Icons: domain.IconSet{domain.IconVegetarian}},
			"201": {Label: "Black Bean Burger", Tier: tier(1), Icons: domain.IconSet{domain.IconVegan, 2}},
			"202": {Label: "Ketchup", Tier: tier(2), Icons: domain.IconSet{domain.IconVegan}},
			"203": {Label: "Mustard", Tier: tier(2)},
			"301": {Label: "Chicken Tenders", Tier: tier(1)},
		},
	}
}
