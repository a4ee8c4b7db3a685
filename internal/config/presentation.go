package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Presentation holds the wording knobs of the formatted thread.
//
// A YAML file may override them:
//
//	locationName: Commons
//	triggerPhrase: Chicken Tenders
//	celebrationSuffix: "🎉 TENDIES DAY 🎉"
//	stationEmoji:
//	  grill: "🍔"
//	  noodle bar: "🍜"
type Presentation struct {
	LocationName      string            `yaml:"locationName"`
	TriggerPhrase     string            `yaml:"triggerPhrase"`
	CelebrationSuffix string            `yaml:"celebrationSuffix"`
	StationEmoji      map[string]string `yaml:"stationEmoji"`
}

// MergeFile applies the non-empty fields of the YAML file at path.
func (p *Presentation) MergeFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read presentation file: %w", err)
	}

	var file Presentation
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("failed to parse presentation file %s: %w", path, err)
	}

	if file.LocationName != "" {
		p.LocationName = file.LocationName
	}
	if file.TriggerPhrase != "" {
		p.TriggerPhrase = file.TriggerPhrase
	}
	if file.CelebrationSuffix != "" {
		p.CelebrationSuffix = file.CelebrationSuffix
	}
	if len(file.StationEmoji) > 0 {
		if p.StationEmoji == nil {
			p.StationEmoji = make(map[string]string, len(file.StationEmoji))
		}
		for station, emoji := range file.StationEmoji {
			p.StationEmoji[station] = emoji
		}
	}

	return nil
}
