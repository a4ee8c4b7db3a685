package menuapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

// menuPayload keeps days, cafes and items raw so one malformed entry only
// costs that entry. Only the requested cafe on the first day is decoded
// strictly.
type menuPayload struct {
	Days  []json.RawMessage          `json:"days"`
	Items map[string]json.RawMessage `json:"items"`
}

type dayPayload struct {
	Date  string                     `json:"date"`
	Cafes map[string]json.RawMessage `json:"cafes"`
}

type cafePayload struct {
	Name     string            `json:"name"`
	Dayparts []json.RawMessage `json:"dayparts"`
}

type daypartPayload struct {
	Label     string           `json:"label"`
	StartTime string           `json:"starttime"`
	EndTime   string           `json:"endtime"`
	Stations  []stationPayload `json:"stations"`
}

type stationPayload struct {
	Label string   `json:"label"`
	Items itemKeys `json:"items"`
}

type itemPayload struct {
	Label       string    `json:"label"`
	Description string    `json:"description"`
	Tier        tierField `json:"tier"`
	CorIcon     iconField `json:"cor_icon"`
}

// itemKeys accepts item references as strings or numbers.
type itemKeys []string

func (k *itemKeys) UnmarshalJSON(b []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}

	keys := make([]string, 0, len(raw))
	for _, r := range raw {
		key := strings.Trim(strings.TrimSpace(string(r)), `"`)
		if key == "" || key == "null" {
			continue
		}
		keys = append(keys, key)
	}

	*k = keys
	return nil
}

// tierField records whether the payload carried a usable tier. A tier that
// is neither a number nor a numeric string is treated as absent.
type tierField struct {
	value   int
	present bool
}

func (t *tierField) UnmarshalJSON(b []byte) error {
	s := strings.Trim(strings.TrimSpace(string(b)), `"`)
	if s == "" || s == "null" {
		return nil
	}

	n, err := strconv.Atoi(s)
	if err != nil {
		return nil
	}

	t.value = n
	t.present = true
	return nil
}

func (t tierField) ptr() *int {
	if !t.present {
		return nil
	}
	v := t.value
	return &v
}

// iconField keeps cor_icon codes in document order. The API sends [] instead
// of {} for items without icons; entries whose value is false or null count
// as absent. Anything unexpected yields an empty set rather than an error.
type iconField struct {
	codes domain.IconSet
}

func (f *iconField) UnmarshalJSON(b []byte) error {
	f.codes = nil

	dec := json.NewDecoder(bytes.NewReader(b))
	tok, err := dec.Token()
	if err != nil {
		return nil
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil
	}

	codes := make(domain.IconSet, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil
		}

		key, _ := keyTok.(string)
		code, err := strconv.Atoi(strings.TrimSpace(key))
		if err != nil {
			continue
		}

		switch strings.TrimSpace(string(value)) {
		case "false", "null", `""`:
			continue
		}

		codes = append(codes, domain.IconCode(code))
	}

	f.codes = codes
	return nil
}

func decodeMenu(ctx context.Context, body []byte, cafeID string) (*domain.MenuResponse, error) {
	var payload menuPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrParse, err)
	}

	days := make([]domain.MenuDay, 0, len(payload.Days))
	for i, raw := range payload.Days {
		day, err := decodeDay(ctx, raw, i == 0, cafeID)
		if err != nil {
			if i == 0 {
				return nil, err
			}
			slog.DebugContext(ctx, "skipping malformed menu day",
				slog.Int("day_index", i),
				slog.String("error", err.Error()),
			)
			continue
		}
		days = append(days, day)
	}

	return &domain.MenuResponse{
		Days:  days,
		Items: decodeItems(ctx, payload.Items),
	}, nil
}

// decodeDay converts one day. When strict is set, a malformed entry for
// cafeID is an error; every other malformed cafe is skipped.
func decodeDay(ctx context.Context, raw json.RawMessage, strict bool, cafeID string) (domain.MenuDay, error) {
	var d dayPayload
	if err := json.Unmarshal(raw, &d); err != nil {
		return domain.MenuDay{}, fmt.Errorf("%w: day: %w", domain.ErrParse, err)
	}

	cafes := make(map[string]domain.Cafe, len(d.Cafes))
	for id, rawCafe := range d.Cafes {
		cafe, err := decodeCafe(ctx, id, rawCafe)
		if err != nil {
			if strict && id == cafeID {
				return domain.MenuDay{}, err
			}
			slog.DebugContext(ctx, "skipping malformed cafe",
				slog.String("date", d.Date),
				slog.String("cafe_id", id),
				slog.String("error", err.Error()),
			)
			continue
		}
		cafes[id] = cafe
	}

	return domain.MenuDay{
		Date:  d.Date,
		Cafes: cafes,
	}, nil
}

// decodeCafe converts only the first daypart group; later groups are never
// read by the cycle and are not decoded.
func decodeCafe(ctx context.Context, id string, raw json.RawMessage) (domain.Cafe, error) {
	var c cafePayload
	if err := json.Unmarshal(raw, &c); err != nil {
		return domain.Cafe{}, fmt.Errorf("%w: cafe %s: %w", domain.ErrParse, id, err)
	}

	cafe := domain.Cafe{
		ID:   id,
		Name: strings.TrimSpace(c.Name),
	}
	if len(c.Dayparts) == 0 {
		return cafe, nil
	}
	if len(c.Dayparts) > 1 {
		slog.DebugContext(ctx, "ignoring extra daypart groups",
			slog.String("cafe_id", id),
			slog.Int("group_count", len(c.Dayparts)),
		)
	}

	var group []daypartPayload
	if err := json.Unmarshal(c.Dayparts[0], &group); err != nil {
		return domain.Cafe{}, fmt.Errorf("%w: cafe %s dayparts: %w", domain.ErrParse, id, err)
	}

	slots := make([]domain.MealSlot, 0, len(group))
	for _, dp := range group {
		slot, err := dp.toDomain()
		if err != nil {
			return domain.Cafe{}, err
		}
		slots = append(slots, slot)
	}
	cafe.DayParts = [][]domain.MealSlot{slots}

	return cafe, nil
}

func (dp *daypartPayload) toDomain() (domain.MealSlot, error) {
	start, err := domain.ParseTimeOfDay(dp.StartTime)
	if err != nil {
		return domain.MealSlot{}, fmt.Errorf("%w: daypart %q start: %w", domain.ErrParse, dp.Label, err)
	}
	end, err := domain.ParseTimeOfDay(dp.EndTime)
	if err != nil {
		return domain.MealSlot{}, fmt.Errorf("%w: daypart %q end: %w", domain.ErrParse, dp.Label, err)
	}

	stations := make([]domain.Station, 0, len(dp.Stations))
	for _, st := range dp.Stations {
		stations = append(stations, domain.Station{
			Label:    strings.TrimSpace(st.Label),
			ItemKeys: []string(st.Items),
		})
	}

	return domain.MealSlot{
		Label:    strings.TrimSpace(dp.Label),
		Start:    start,
		End:      end,
		Stations: stations,
	}, nil
}

// decodeItems drops items that fail to decode. Stations referencing them
// then see a missing key, which the classifier already skips.
func decodeItems(ctx context.Context, raw map[string]json.RawMessage) map[string]domain.Item {
	items := make(map[string]domain.Item, len(raw))
	for key, r := range raw {
		var it itemPayload
		if err := json.Unmarshal(r, &it); err != nil {
			slog.DebugContext(ctx, "skipping malformed item",
				slog.String("item_key", key),
				slog.String("error", err.Error()),
			)
			continue
		}
		items[key] = domain.Item{
			Label:       strings.TrimSpace(it.Label),
			Description: strings.TrimSpace(it.Description),
			Tier:        it.Tier.ptr(),
			Icons:       it.CorIcon.codes,
		}
	}
	return items
}
