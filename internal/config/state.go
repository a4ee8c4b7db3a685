package config

import "os"

const (
	stateBackendEnv = "STATE_BACKEND"
	stateFileEnv    = "STATE_FILE"

	defaultStateFile = "state.json"
)

type StateBackend string

const (
	StateBackendFile  StateBackend = "file"
	StateBackendRedis StateBackend = "redis"
)

type StateConfig struct {
	Backend  StateBackend
	FilePath string
}

func LoadStateConfig() (*StateConfig, error) {
	backend := StateBackend(os.Getenv(stateBackendEnv))
	if backend == "" {
		backend = StateBackendFile
	}
	if backend != StateBackendFile && backend != StateBackendRedis {
		return nil, ErrInvalidStateBackend
	}

	return &StateConfig{
		Backend:  backend,
		FilePath: getEnvOrDefault(stateFileEnv, defaultStateFile),
	}, nil
}

func (c *StateConfig) UsesRedis() bool {
	return c != nil && c.Backend == StateBackendRedis
}
