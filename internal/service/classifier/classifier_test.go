package classifier

import (
	"context"
	"reflect"
	"testing"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

func tier(n int) *int {
	return &n
}

func TestClassifier_Classify(t *testing.T) {
	classifier := NewClassifier()

	tests := []struct {
		name        string
		item        domain.Item
		wantOK      bool
		wantNotices []domain.Notice
	}{
		{
			name:   "tier 2 vegetarian item is excluded",
			item:   domain.Item{Label: "Side Salad", Tier: tier(2), Icons: domain.IconSet{1}},
			wantOK: false,
		},
		{
			name:   "missing tier is excluded",
			item:   domain.Item{Label: "Water", Icons: domain.IconSet{4}},
			wantOK: false,
		},
		{
			name:        "notices follow icon order and skip unknown codes",
			item:        domain.Item{Label: "Tofu Bowl", Tier: tier(1), Icons: domain.IconSet{4, 9, 2}},
			wantOK:      true,
			wantNotices: []domain.Notice{domain.NoticeVegan, domain.NoticeGlutenFree},
		},
		{
			name:        "payload order wins over code order",
			item:        domain.Item{Label: "Eggs", Tier: tier(1), Icons: domain.IconSet{9, 1}},
			wantOK:      true,
			wantNotices: []domain.Notice{domain.NoticeGlutenFree, domain.NoticeVegetarian},
		},
		{
			name:        "no icons yields no notices",
			item:        domain.Item{Label: "Chicken Tenders", Tier: tier(1)},
			wantOK:      true,
			wantNotices: nil,
		},
		{
			name:        "only unknown icons yields no notices",
			item:        domain.Item{Label: "Salmon", Tier: tier(1), Icons: domain.IconSet{2, 18}},
			wantOK:      true,
			wantNotices: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := classifier.Classify(tt.item)
			if ok != tt.wantOK {
				t.Fatalf("Classify() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if got.Label != tt.item.Label {
				t.Errorf("Label = %q, want %q", got.Label, tt.item.Label)
			}
			if !reflect.DeepEqual(got.Notices, tt.wantNotices) {
				t.Errorf("Notices = %v, want %v", got.Notices, tt.wantNotices)
			}
		})
	}
}

func TestClassifier_ClassifyStation(t *testing.T) {
	classifier := NewClassifier()

	items := map[string]domain.Item{
		"1": {Label: "Burger", Tier: tier(1)},
		"2": {Label: "Fries", Tier: tier(2)},
		"3": {Label: "Veggie Burger", Tier: tier(1), Icons: domain.IconSet{1}},
	}

	tests := []struct {
		name       string
		station    domain.Station
		wantLabels []string
	}{
		{
			name:       "keeps station order and filters tiers",
			station:    domain.Station{Label: "grill", ItemKeys: []string{"3", "2", "1"}},
			wantLabels: []string{"Veggie Burger", "Burger"},
		},
		{
			name:       "unknown keys are skipped",
			station:    domain.Station{Label: "grill", ItemKeys: []string{"404", "1"}},
			wantLabels: []string{"Burger"},
		},
		{
			name:       "station without primary items is empty",
			station:    domain.Station{Label: "sides", ItemKeys: []string{"2"}},
			wantLabels: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := classifier.ClassifyStation(context.Background(), tt.station, items)

			labels := make([]string, 0, len(got))
			for _, ci := range got {
				labels = append(labels, ci.Label)
			}
			if !reflect.DeepEqual(labels, tt.wantLabels) {
				t.Errorf("labels = %v, want %v", labels, tt.wantLabels)
			}
		})
	}
}
