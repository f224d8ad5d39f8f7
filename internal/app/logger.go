package app

import (
	"strings"

	"github.com/dvcruz/progtrack/pkg/logger"
)

// ConfigureLogging initialises the global logger from the server's configured
// level. An empty or whitespace level falls back to info.
func ConfigureLogging(level string) error {
	level = strings.ToLower(strings.TrimSpace(level))
	if level == "" {
		level = "info"
	}
	return logger.Init(level)
}
