package config

import (
	"os"
	"strconv"
	"strings"
)

// applyEnv layers TODO_* environment overrides on top of the file values.
// Unset or malformed variables leave the existing value alone.
func (c *Config) applyEnv() {
	if v := os.Getenv("TODO_HOST"); v != "" {
		c.Server.Host = v
	}
	if v := getEnvInt("TODO_PORT"); v > 0 {
		c.Server.Port = v
	}
	if v := os.Getenv("TODO_API_PREFIX"); v != "" {
		c.API.Prefix = v
	}
	if v := os.Getenv("TODO_DATA_DIR"); v != "" {
		c.Storage.DataDir = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		c.Log.Level = v
	}
	if v := os.Getenv("TODO_CORS_ORIGINS"); v != "" {
		origins := []string{}
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		if len(origins) > 0 {
			c.CORS.Origins = origins
		}
	}
}

func getEnvInt(key string) int {
	val := os.Getenv(key)
	if val == "" {
		return 0
	}
	num, err := strconv.Atoi(val)
	if err != nil {
		return 0
	}
	return num
}
