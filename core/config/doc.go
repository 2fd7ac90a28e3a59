// Package config loads environment configuration into tagged structs.
//
// A .env file in the working directory is read once, on first use, and real
// environment variables win over it. Parsing uses caarlos0/env tags and the
// result is cached per struct type, so every later Load of the same type
// returns the first result:
//
//	type Config struct {
//		Server server.Config
//		Env    string `env:"APP_ENV" envDefault:"development"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// MustLoad panics instead of returning the error, for use in main.
package config
