package domain

// IconCode is a key of the menu API's cor_icon object.
type IconCode int

const (
	IconVegetarian IconCode = 1
	IconVegan      IconCode = 4
	IconGlutenFree IconCode = 9
)

// IconSet holds icon codes in the order the payload listed them.
type IconSet []IconCode

func (s IconSet) Has(code IconCode) bool {
	for _, c := range s {
		if c == code {
			return true
		}
	}
	return false
}

// Notice is a dietary label derived from an icon code.
type Notice string

const (
	NoticeVegetarian Notice = "vegetarian"
	NoticeVegan      Notice = "vegan"
	NoticeGlutenFree Notice = "gluten-free"
)

func (n Notice) String() string {
	return string(n)
}

// ClassifiedItem is a tier 1 item ready for formatting.
type ClassifiedItem struct {
	Label       string
	Description string
	Notices     []Notice
}
