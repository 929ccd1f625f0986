// Package credentials resolves the Njalla API token from an ordered list of
// sources: the process environment, a .env file in the working directory and
// a .env file in the per-user configuration directory.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

const (
	// TokenEnvVar is the variable holding the API token, both in the
	// process environment and in .env files.
	TokenEnvVar = "NJALLA_API_TOKEN"

	envFileName  = ".env"
	configSubdir = "njalla"
)

// ErrNoCredential is returned when no source yields a token.
var ErrNoCredential = errors.New("no api token found")

// Environment is what sources look at. Empty directories are skipped.
type Environment struct {
	LookupEnv func(key string) (string, bool)
	WorkDir   string
	ConfigDir string
}

// DefaultEnvironment describes the running process. A missing working or
// user configuration directory leaves the corresponding field empty.
func DefaultEnvironment() Environment {
	env := Environment{LookupEnv: os.LookupEnv}
	if wd, err := os.Getwd(); err == nil {
		env.WorkDir = wd
	}
	if cfg, err := os.UserConfigDir(); err == nil {
		env.ConfigDir = filepath.Join(cfg, configSubdir)
	}
	return env
}

// Source looks up a token. ok is false when the source has no token; err is
// reserved for sources that exist but cannot be read.
type Source struct {
	Name   string
	Lookup func(env Environment) (token string, ok bool, err error)
}

// DefaultSources returns the lookup order used by the CLI.
func DefaultSources() []Source {
	return []Source{FromEnv(), FromWorkDir(), FromConfigDir()}
}

// FromEnv reads NJALLA_API_TOKEN from the environment.
func FromEnv() Source {
	return Source{
		Name: "environment",
		Lookup: func(env Environment) (string, bool, error) {
			if env.LookupEnv == nil {
				return "", false, nil
			}
			token, ok := env.LookupEnv(TokenEnvVar)
			return token, ok && token != "", nil
		},
	}
}

// FromWorkDir reads NJALLA_API_TOKEN from ./.env.
func FromWorkDir() Source {
	return Source{
		Name: "working directory .env",
		Lookup: func(env Environment) (string, bool, error) {
			return fromDotEnv(env.WorkDir)
		},
	}
}

// FromConfigDir reads NJALLA_API_TOKEN from <user config dir>/njalla/.env.
func FromConfigDir() Source {
	return Source{
		Name: "config directory .env",
		Lookup: func(env Environment) (string, bool, error) {
			return fromDotEnv(env.ConfigDir)
		},
	}
}

func fromDotEnv(dir string) (string, bool, error) {
	if dir == "" {
		return "", false, nil
	}

	path := filepath.Join(dir, envFileName)
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", path, err)
	}

	token := values[TokenEnvVar]
	return token, token != "", nil
}

// Resolve evaluates sources in order and returns the first token found.
// Sources after the first hit are not consulted.
func Resolve(env Environment, sources ...Source) (string, error) {
	for _, src := range sources {
		token, ok, err := src.Lookup(env)
		if err != nil {
			return "", fmt.Errorf("%s: %w", src.Name, err)
		}
		if ok {
			return token, nil
		}
	}
	return "", fmt.Errorf("%w: set %s in .env or environment", ErrNoCredential, TokenEnvVar)
}
