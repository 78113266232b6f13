package logging

import (
	"os"
	"sync"
)

var (
	instance  *Logger
	once      sync.Once
	mu        sync.RWMutex
	logConfig *Config
)

// Configure sets the logging configuration.
// This should be called before any logger usage.
func Configure(config *Config) error {
	if err := config.Validate(); err != nil {
		return WrapError(err, "logging")
	}
	mu.Lock()
	defer mu.Unlock()
	logConfig = config
	return nil
}

// GetLogger returns the singleton logger instance.
// Without a prior Configure call it falls back to a stdout logger at info level.
func GetLogger() *Logger {
	once.Do(func() {
		mu.RLock()
		cfg := logConfig
		mu.RUnlock()

		if cfg == nil {
			instance = NewWriterLogger(os.Stdout, LevelInfo)
			return
		}

		var err error
		instance, err = NewLogger(cfg)
		if err != nil {
			panic("failed to initialize logger: " + err.Error())
		}
	})

	return instance
}
