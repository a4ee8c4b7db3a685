package config

import (
	"os"
	"strconv"
)

const (
	postAPIURLEnv          = "POST_API_URL"
	postAccessTokenEnv     = "POST_ACCESS_TOKEN"
	postMaxRunesEnv        = "POST_MAX_RUNES"
	threadFailurePolicyEnv = "THREAD_FAILURE_POLICY"

	defaultPostAPIURL          = "https://api.twitter.com"
	defaultPostMaxRunes        = 280
	defaultThreadFailurePolicy = "continue"
)

type ThreadFailurePolicy string

const (
	// ThreadFailureContinue keeps publishing after a failed post, replying to
	// the last post that did succeed.
	ThreadFailureContinue ThreadFailurePolicy = "continue"
	ThreadFailureAbort    ThreadFailurePolicy = "abort"
)

type PosterConfig struct {
	APIURL        string
	AccessToken   string
	MaxRunes      int
	FailurePolicy ThreadFailurePolicy
}

func LoadPosterConfig() *PosterConfig {
	maxRunes := defaultPostMaxRunes
	if v := os.Getenv(postMaxRunesEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRunes = parsed
		}
	}

	policy := ThreadFailurePolicy(os.Getenv(threadFailurePolicyEnv))
	if policy != ThreadFailureContinue && policy != ThreadFailureAbort {
		policy = defaultThreadFailurePolicy
	}

	return &PosterConfig{
		APIURL:        getEnvOrDefault(postAPIURLEnv, defaultPostAPIURL),
		AccessToken:   os.Getenv(postAccessTokenEnv),
		MaxRunes:      maxRunes,
		FailurePolicy: policy,
	}
}

// DryRun reports whether posts should only be logged.
func (c *PosterConfig) DryRun() bool {
	return c.AccessToken == ""
}
