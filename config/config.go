// Package config provides configuration management for appkit applications.
//
// Values live in a nested map addressed with dot notation ("storage.s3.bucket").
// A .env file in the working directory is loaded automatically, and Defaults
// builds the application's baseline configuration from the environment.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	_ "github.com/joho/godotenv/autoload"
)

// M is a map of string to any with typed accessors that fall back to a default.
type M map[string]any

func (m M) String(key string, defaultVal ...string) string {
	if val, ok := m[key].(string); ok {
		return val
	}
	if len(defaultVal) > 0 {
		return defaultVal[0]
	}
	return ""
}

func (m M) Bool(key string, defaultVal ...bool) bool {
	if val, ok := m[key].(bool); ok {
		return val
	}
	if len(defaultVal) > 0 {
		return defaultVal[0]
	}
	return false
}

// config represents a nested configuration map with thread-safe operations
type config struct {
	mu sync.RWMutex
	m  M
}

// newConfig initializes and returns a new config instance (private)
func newConfig() *config {
	return &config{m: make(M)}
}

var (
	instance *config
	once     sync.Once
)

func init() {
	_ = GetInstance()
}

// GetInstance returns the singleton instance of config
func GetInstance() Configuration {
	once.Do(func() {
		instance = newConfig()
		instance.SetConfigMap(Defaults())
	})
	return instance
}

// SetConfigMap sets or replaces the entire configuration map
func (c *config) SetConfigMap(cm M) Configuration {
	c.mu.Lock()
	defer c.mu.Unlock()
	if cm == nil {
		cm = make(M)
	}
	c.m = cm
	return c
}

// Set sets a configuration value, supporting nested keys
func (c *config) Set(key string, value any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	setRecursive(c.m, strings.Split(key, "."), value)
}

func setRecursive(current M, keys []string, value any) {
	if len(keys) == 1 {
		current[keys[0]] = value
		return
	}

	var next M
	switch v := current[keys[0]].(type) {
	case M:
		next = v
	case map[string]any:
		next = M(v)
	default:
		next = make(M)
		current[keys[0]] = next
	}
	setRecursive(next, keys[1:], value)
}

// Get retrieves a configuration value with optional fallback
func (c *config) Get(key string, fallback ...any) any {
	c.mu.RLock()
	defer c.mu.RUnlock()

	value, _ := getRecursive(strings.Split(key, "."), c.m)
	if value == nil && len(fallback) > 0 {
		return fallback[0]
	}
	return value
}

func getRecursive(keys []string, current map[string]any) (any, bool) {
	if len(keys) == 1 {
		v, ok := current[keys[0]]
		return v, ok
	}
	switch next := current[keys[0]].(type) {
	case map[string]any:
		return getRecursive(keys[1:], next)
	case M:
		return getRecursive(keys[1:], map[string]any(next))
	}
	return nil, false
}

// GetAll returns a deep copy of all configurations
func (c *config) GetAll() M {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return deepCopy(c.m)
}

// deepCopy creates a deep copy of the configuration map
func deepCopy(in M) M {
	out := make(M)
	for k, v := range in {
		switch v := v.(type) {
		case map[string]any:
			out[k] = deepCopy(v)
		case M:
			out[k] = deepCopy(v)
		default:
			out[k] = v
		}
	}
	return out
}

// MustEnv retrieves an environment variable and converts it to the specified type or panics on failure
func MustEnv[T any](key string, fallback T) T {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}

	var result T
	var err error

	switch any(fallback).(type) {
	case int:
		var i int
		i, err = strconv.Atoi(value)
		result = any(i).(T)
	case bool:
		var b bool
		b, err = strconv.ParseBool(value)
		result = any(b).(T)
	case string:
		result = any(value).(T)
	default:
		panic(fmt.Sprintf("unsupported type for environment variable %s", key))
	}

	if err != nil {
		panic(err)
	}

	return result
}

// Defaults returns the baseline configuration read from the environment
func Defaults() M {
	return M{
		"app": M{
			"name":    MustEnv("APP_NAME", ""),
			"version": MustEnv("APP_VERSION", "X.X"),
			"debug":   MustEnv("APP_DEBUG", false),
		},
		"storage": M{
			"disk": MustEnv("FILESYSTEM_DISK", "local"),
			"local": M{
				"path": MustEnv("STORAGE_PATH", ""),
			},
			"s3": M{
				"bucket":   MustEnv("S3_BUCKET", ""),
				"region":   MustEnv("S3_REGION", ""),
				"key":      MustEnv("S3_KEY", ""),
				"secret":   MustEnv("S3_SECRET", ""),
				"endpoint": MustEnv("S3_ENDPOINT", ""),
			},
			"gcs": M{
				"bucket": MustEnv("GCS_BUCKET", ""),
			},
		},
	}
}

// Set sets a configuration value in the singleton instance
func Set(key string, value any) {
	GetInstance().Set(key, value)
}

// Get retrieves a configuration value from the singleton instance
func Get(key string, fallback ...any) any {
	return GetInstance().Get(key, fallback...)
}

// String retrieves a string value from the singleton instance
func String(key string, fallback string) string {
	if v, ok := Get(key).(string); ok && v != "" {
		return v
	}
	return fallback
}

// Bool retrieves a bool value from the singleton instance
func Bool(key string, fallback bool) bool {
	if v, ok := Get(key).(bool); ok {
		return v
	}
	return fallback
}

// GetAll returns all configurations from the singleton instance
func GetAll() M {
	return GetInstance().GetAll()
}

type Configuration interface {
	SetConfigMap(cm M) Configuration
	Set(key string, value any)
	Get(key string, fallback ...any) any
	GetAll() M
}
