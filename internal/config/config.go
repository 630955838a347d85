package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	DefaultFileName = "graphctl.yaml"
	DefaultEndpoint = "https://engine-graphql.apollographql.com/api/graphql"
	DefaultTimeout  = 30 * time.Second
	DotEnvFileName  = ".env"
	Name            = "graphctl"
)

// Config is the resolved project configuration for one invocation.
type Config struct {
	// Name is the graph id; Tag, when set, pins the graph variant.
	Name string
	Tag  string

	APIKey   string
	Endpoint string
	Timeout  time.Duration
	BaseDir  string

	// FilePath is the project file that was read, empty when none existed.
	FilePath string
}

func (c *Config) GraphName() string { return c.Name }

func (c *Config) GraphTag() string { return c.Tag }

type projectFile struct {
	Service struct {
		Name string `yaml:"name"`
		Tag  string `yaml:"tag"`
	} `yaml:"service"`
}

type Options struct {
	// ConfigPath is the project file. When empty, graphctl.yaml in the
	// working directory is used and may be absent.
	ConfigPath string

	// APIKey and Endpoint override the environment when non-empty.
	APIKey   string
	Endpoint string

	// Environ defaults to os.Environ.
	Environ []string
}

func Load(opts Options) (*Config, error) {
	path := opts.ConfigPath
	optional := path == ""
	if optional {
		path = DefaultFileName
	}
	path = filepath.Clean(path)

	cfg := &Config{}

	project, err := readProjectFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist) && optional:
	case err != nil:
		return nil, err
	default:
		cfg.FilePath = path
		cfg.Name, cfg.Tag = ParseServiceSpecifier(project.Service.Name)
		if project.Service.Tag != "" {
			cfg.Tag = project.Service.Tag
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ()
	}
	env, err := loadEnvironment(environ, filepath.Join(filepath.Dir(path), DotEnvFileName))
	if err != nil {
		return nil, err
	}

	cfg.APIKey = env.APIKey
	cfg.Endpoint = env.Endpoint
	cfg.Timeout = env.Timeout
	cfg.BaseDir = env.BaseDir

	if opts.APIKey != "" {
		cfg.APIKey = opts.APIKey
	}
	if opts.Endpoint != "" {
		cfg.Endpoint = opts.Endpoint
	}

	if cfg.Name == "" {
		cfg.Name = GraphNameFromAPIKey(cfg.APIKey)
	}

	if cfg.BaseDir == "" {
		baseDir, err := GetBaseDir()
		if err != nil {
			return nil, err
		}
		cfg.BaseDir = baseDir
	}

	return cfg, nil
}

func readProjectFile(path string) (projectFile, error) {
	var project projectFile

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return project, fmt.Errorf("project file %s: %w", path, err)
		}
		return project, fmt.Errorf("reading project file %s failed with: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &project); err != nil {
		return project, fmt.Errorf("yaml parsing of %s failed with: %w", path, err)
	}
	return project, nil
}

// ParseServiceSpecifier splits "name@tag". A missing or empty tag is "".
func ParseServiceSpecifier(specifier string) (string, string) {
	specifier = strings.TrimSpace(specifier)
	name, tag, found := strings.Cut(specifier, "@")
	if !found {
		return specifier, ""
	}
	return name, tag
}

// GraphNameFromAPIKey extracts <name> from keys shaped service:<name>:<secret>.
func GraphNameFromAPIKey(apiKey string) string {
	parts := strings.Split(apiKey, ":")
	if len(parts) < 3 || parts[0] != "service" {
		return ""
	}
	return parts[1]
}

func GetBaseDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("could not determine base directory: %w", err)
	}

	return filepath.Join(homeDir, fmt.Sprintf(".%s", Name)), nil
}
