package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	menuAPIURLEnv            = "MENU_API_URL"
	menuCafeIDEnv            = "MENU_CAFE_ID"
	menuLocationNameEnv      = "MENU_LOCATION_NAME"
	menuTimezoneEnv          = "MENU_TIMEZONE"
	mealLookaheadMinutesEnv  = "MEAL_LOOKAHEAD_MINUTES"
	menuTriggerPhraseEnv     = "MENU_TRIGGER_PHRASE"
	menuCelebrationSuffixEnv = "MENU_CELEBRATION_SUFFIX"
	menuPresentationFileEnv  = "MENU_PRESENTATION_FILE"

	defaultMenuAPIURL            = "https://legacy.cafebonappetit.com"
	defaultMenuCafeID            = 224
	defaultMenuLocationName      = "Commons"
	defaultMealLookaheadMinutes  = 60
	defaultMenuTriggerPhrase     = "Chicken Tenders"
	defaultMenuCelebrationSuffix = "🎉 TENDIES DAY 🎉"
)

type MenuConfig struct {
	APIURL       string
	CafeID       int
	LocationName string
	Location     *time.Location
	Lookahead    time.Duration
	Presentation *Presentation
}

func LoadMenuConfig() (*MenuConfig, error) {
	cafeID := defaultMenuCafeID
	if v := os.Getenv(menuCafeIDEnv); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed <= 0 {
			return nil, ErrInvalidCafeID
		}
		cafeID = parsed
	}

	loc := time.Local
	if v := os.Getenv(menuTimezoneEnv); v != "" {
		parsed, err := time.LoadLocation(v)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, v)
		}
		loc = parsed
	}

	lookahead := defaultMealLookaheadMinutes
	if v := os.Getenv(mealLookaheadMinutesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			lookahead = parsed
		}
	}

	presentation := &Presentation{
		TriggerPhrase:     getEnvOrDefault(menuTriggerPhraseEnv, defaultMenuTriggerPhrase),
		CelebrationSuffix: getEnvOrDefault(menuCelebrationSuffixEnv, defaultMenuCelebrationSuffix),
	}
	if path := os.Getenv(menuPresentationFileEnv); path != "" {
		if err := presentation.MergeFile(path); err != nil {
			return nil, err
		}
	}

	locationName := getEnvOrDefault(menuLocationNameEnv, defaultMenuLocationName)
	if presentation.LocationName != "" {
		locationName = presentation.LocationName
	}

	return &MenuConfig{
		APIURL:       getEnvOrDefault(menuAPIURLEnv, defaultMenuAPIURL),
		CafeID:       cafeID,
		LocationName: locationName,
		Location:     loc,
		Lookahead:    time.Duration(lookahead) * time.Minute,
		Presentation: presentation,
	}, nil
}

func (c *MenuConfig) CafeKey() string {
	return strconv.Itoa(c.CafeID)
}
