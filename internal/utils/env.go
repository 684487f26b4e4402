package utils

import (
	"os"
	"strconv"
	"time"

	"github.com/vidyarthi-app/vidyarthi-backend/internal/logger"
)

// GetEnv returns the value of key, or defaultVal when the variable is unset.
// An empty value counts as set so operators can deliberately blank a setting.
func GetEnv(key, defaultVal string, log *logger.Logger) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		debugEnv(log, key, "env var unset, using default", "default", defaultVal)
		return defaultVal
	}
	return val
}

func GetEnvAsInt(key string, defaultVal int, log *logger.Logger) int {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		debugEnv(log, key, "env var unset, using default", "default", defaultVal)
		return defaultVal
	}
	i, err := strconv.Atoi(valStr)
	if err != nil {
		debugEnv(log, key, "env var is not an integer, using default", "provided", valStr, "default", defaultVal, "error", err)
		return defaultVal
	}
	return i
}

// GetEnvAsDuration parses key with time.ParseDuration ("24h", "30m"). A bare
// integer is treated as seconds so existing deployments keep working.
func GetEnvAsDuration(key string, defaultVal time.Duration, log *logger.Logger) time.Duration {
	valStr, ok := os.LookupEnv(key)
	if !ok {
		debugEnv(log, key, "env var unset, using default", "default", defaultVal)
		return defaultVal
	}
	if secs, err := strconv.Atoi(valStr); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(valStr)
	if err != nil {
		debugEnv(log, key, "env var is not a duration, using default", "provided", valStr, "default", defaultVal, "error", err)
		return defaultVal
	}
	return d
}

func debugEnv(log *logger.Logger, key, msg string, kv ...any) {
	if log == nil {
		return
	}
	log.With("env_var", key).Debug(msg, kv...)
}
