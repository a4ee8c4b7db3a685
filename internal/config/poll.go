package config

import (
	"os"
	"strconv"
	"time"
)

const (
	pollIntervalSecondsEnv = "POLL_INTERVAL_SECONDS"
	cycleTimeoutSecondsEnv = "CYCLE_TIMEOUT_SECONDS"

	defaultPollIntervalSeconds = 60
	defaultCycleTimeoutSeconds = 45
)

type PollConfig struct {
	Interval     time.Duration
	CycleTimeout time.Duration
}

func LoadPollConfig() *PollConfig {
	interval := defaultPollIntervalSeconds
	if v := os.Getenv(pollIntervalSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			interval = parsed
		}
	}

	timeout := defaultCycleTimeoutSeconds
	if v := os.Getenv(cycleTimeoutSecondsEnv); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			timeout = parsed
		}
	}

	return &PollConfig{
		Interval:     time.Duration(interval) * time.Second,
		CycleTimeout: time.Duration(timeout) * time.Second,
	}
}
