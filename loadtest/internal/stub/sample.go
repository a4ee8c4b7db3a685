package stub

import (
	"encoding/json"
	"time"
)

type samplePart struct {
	Label     string          `json:"label"`
	StartTime string          `json:"starttime"`
	EndTime   string          `json:"endtime"`
	Stations  []sampleStation `json:"stations"`
}

type sampleStation struct {
	Label string   `json:"label"`
	Items []string `json:"items"`
}

type sampleItem struct {
	Label       string `json:"label"`
	Description string `json:"description"`
	Tier        any    `json:"tier"`
	CorIcon     any    `json:"cor_icon"`
}

// SampleMenu builds a Bon Appetit style payload for cafeID on date with
// breakfast, lunch and dinner. Lunch has one station with a tier 1 vegan
// item and one with only tier 2 items.
func SampleMenu(cafeID, name string, date time.Time) []byte {
	parts := []samplePart{
		{
			Label:     "Breakfast",
			StartTime: "07:00",
			EndTime:   "10:00",
			Stations: []sampleStation{
				{Label: "breakfast", Items: []string{"1001", "1002"}},
			},
		},
		{
			Label:     "Lunch",
			StartTime: "11:30",
			EndTime:   "14:00",
			Stations: []sampleStation{
				{Label: "grill", Items: []string{"2001"}},
				{Label: "condiments", Items: []string{"2002"}},
			},
		},
		{
			Label:     "Dinner",
			StartTime: "17:00",
			EndTime:   "20:00",
			Stations: []sampleStation{
				{Label: "fry station", Items: []string{"3001"}},
				{Label: "salad bar", Items: []string{"3002", "3003"}},
			},
		},
	}

	items := map[string]sampleItem{
		"1001": {Label: "Scrambled Eggs", Tier: 1, CorIcon: map[string]string{"1": "Vegetarian", "9": "Made without Gluten-Containing Ingredients"}},
		"1002": {Label: "Hash Browns", Tier: "2", CorIcon: []any{}},
		"2001": {Label: "Black Bean Burger", Tier: 1, CorIcon: map[string]string{"4": "Vegan"}},
		"2002": {Label: "Ketchup", Tier: 2, CorIcon: []any{}},
		"3001": {Label: "Chicken Tenders", Tier: 1, CorIcon: []any{}},
		"3002": {Label: "Kale Caesar", Tier: 1, CorIcon: map[string]string{"1": "Vegetarian"}},
		"3003": {Label: "Croutons", Tier: 3, CorIcon: map[string]string{"1": "Vegetarian"}},
	}

	payload := map[string]any{
		"days": []any{
			map[string]any{
				"date": date.Format("2006-01-02"),
				"cafes": map[string]any{
					cafeID: map[string]any{
						"name":     name,
						"dayparts": [][]samplePart{parts},
					},
				},
			},
		},
		"items": items,
	}

	b, err := json.Marshal(payload)
	if err != nil {
		panic(err)
	}
	return b
}
