package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type environment struct {
	APIKey   string        `env:"GRAPHCTL_KEY"`
	Endpoint string        `env:"GRAPHCTL_ENDPOINT" envDefault:"https://engine-graphql.apollographql.com/api/graphql"`
	Timeout  time.Duration `env:"GRAPHCTL_TIMEOUT" envDefault:"30s"`
	BaseDir  string        `env:"GRAPHCTL_HOME"`
}

// loadEnvironment parses the GRAPHCTL_* variables. Values from the dotenv
// file only fill variables the process environment does not set.
func loadEnvironment(environ []string, dotEnvPath string) (environment, error) {
	values := make(map[string]string, len(environ))
	for _, entry := range environ {
		key, value, found := strings.Cut(entry, "=")
		if found {
			values[key] = value
		}
	}

	dotEnv, err := godotenv.Read(dotEnvPath)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return environment{}, fmt.Errorf("reading %s failed with: %w", dotEnvPath, err)
	}
	for key, value := range dotEnv {
		if _, set := values[key]; !set {
			values[key] = value
		}
	}

	var parsed environment
	if err := env.ParseWithOptions(&parsed, env.Options{Environment: values}); err != nil {
		return environment{}, fmt.Errorf("parsing environment failed with: %w", err)
	}
	return parsed, nil
}
