package config

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// ErrParsing wraps every failure to populate a configuration struct.
var ErrParsing = errors.New("config: failed to parse environment")

var (
	dotenvOnce sync.Once
	mu         sync.Mutex
	cache      = map[reflect.Type]any{}
)

// Load populates v from the environment. A .env file in the working directory
// is read once on first use; variables already set in the process win.
// The parsed value is cached per type, so later calls copy the cached value.
func Load[T any](v *T) error {
	dotenvOnce.Do(func() {
		// A missing .env file is the normal case outside development.
		_ = godotenv.Load()
	})

	typ := reflect.TypeFor[T]()

	mu.Lock()
	defer mu.Unlock()

	if cached, ok := cache[typ]; ok {
		*v = cached.(T)
		return nil
	}

	var parsed T
	if err := env.Parse(&parsed); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrParsing, typ, err)
	}
	cache[typ] = parsed
	*v = parsed
	return nil
}

// MustLoad is Load that panics on error.
func MustLoad[T any](v *T) {
	if err := Load(v); err != nil {
		panic(err)
	}
}
