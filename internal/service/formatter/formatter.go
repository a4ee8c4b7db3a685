package formatter

import (
	"strings"
	"time"

	"github.com/KasumiMercury/cafe-menu-thread/internal/domain"
)

const (
	headerDateLayout = "Monday, January 2"
	truncationMarker = "…"
)

type Options struct {
	TriggerPhrase     string
	CelebrationSuffix string
	StationEmoji      map[string]string
	// MaxRunes caps each post. Zero disables the cap.
	MaxRunes int
}

type StationItems struct {
	Label string
	Items []domain.ClassifiedItem
}

type Input struct {
	LocationName string
	MealLabel    string
	Date         time.Time
	Stations     []StationItems
}

type Formatter struct {
	triggerPhrase     string
	celebrationSuffix string
	emoji             map[string]string
	maxRunes          int
}

func NewFormatter(opts Options) *Formatter {
	return &Formatter{
		triggerPhrase:     opts.TriggerPhrase,
		celebrationSuffix: opts.CelebrationSuffix,
		emoji:             emojiTable(opts.StationEmoji),
		maxRunes:          opts.MaxRunes,
	}
}

// Format renders the thread: a header followed by one post per station that
// kept at least one item.
func (f *Formatter) Format(in Input) domain.Thread {
	blocks := make([]string, 0, len(in.Stations))
	celebrate := false

	for _, station := range in.Stations {
		if len(station.Items) == 0 {
			continue
		}

		block := f.stationBlock(station)
		if f.triggerPhrase != "" && strings.Contains(block, f.triggerPhrase) {
			celebrate = true
		}
		blocks = append(blocks, clamp(block, f.maxRunes))
	}

	header := strings.Join([]string{in.LocationName, in.MealLabel, in.Date.Format(headerDateLayout)}, " ")
	if celebrate && f.celebrationSuffix != "" {
		header += " " + f.celebrationSuffix
	}

	thread := make(domain.Thread, 0, len(blocks)+1)
	thread = append(thread, clamp(header, f.maxRunes))
	thread = append(thread, blocks...)
	return thread
}

// Celebrates reports whether a formatted thread carries the celebration suffix.
func (f *Formatter) Celebrates(thread domain.Thread) bool {
	return f.celebrationSuffix != "" && strings.HasSuffix(thread.Header(), " "+f.celebrationSuffix)
}

func (f *Formatter) stationBlock(station StationItems) string {
	var b strings.Builder

	if emoji, ok := f.emoji[stationKey(station.Label)]; ok {
		b.WriteString(emoji)
		b.WriteString(" ")
	}
	b.WriteString(station.Label)

	for _, item := range station.Items {
		b.WriteString("\n")
		b.WriteString(itemLine(item))
	}

	return b.String()
}

func itemLine(item domain.ClassifiedItem) string {
	if len(item.Notices) == 0 {
		return item.Label
	}

	notices := make([]string, 0, len(item.Notices))
	for _, n := range item.Notices {
		notices = append(notices, n.String())
	}
	return item.Label + " (" + strings.Join(notices, " ") + ")"
}

// clamp cuts text at the last whole line that fits in maxRunes together with
// a trailing marker line. A first line that alone is too long is cut mid-line.
func clamp(text string, maxRunes int) string {
	if maxRunes <= 0 || runeLen(text) <= maxRunes {
		return text
	}

	lines := strings.Split(text, "\n")
	markerLen := runeLen("\n" + truncationMarker)

	kept := 0
	used := 0
	for i, line := range lines {
		n := runeLen(line)
		if i > 0 {
			n++
		}
		if used+n+markerLen > maxRunes {
			break
		}
		used += n
		kept++
	}

	if kept == 0 {
		r := []rune(text)
		return string(r[:maxRunes-1]) + truncationMarker
	}

	return strings.Join(lines[:kept], "\n") + "\n" + truncationMarker
}

func runeLen(s string) int {
	return len([]rune(s))
}
