// Package config builds the shim configuration once from the environment,
// so the wrapper and generator stay testable with injected values.
package config

import (
	"errors"
	"os"
)

const (
	EnvLogFile  = "COMPDB_LOG_FILE"
	EnvCC       = "COMPDB_CC"
	EnvCXX      = "COMPDB_CXX"
	EnvGenerate = "COMPDB_GENERATE"
)

// ErrMissingLogPath means the shim has nowhere to record invocations.
var ErrMissingLogPath = errors.New("COMPDB_LOG_FILE is not set")

type Config struct {
	LogFile  string
	Compiler string
	Generate bool
}

// FromEnv reads the configuration for one shim. compilerEnv selects the
// per-shim override variable (EnvCC or EnvCXX); fallback is the compiler
// used when the override is absent. A missing log path is reported as
// ErrMissingLogPath with the rest of the config still populated, since
// generation with an explicit log argument can proceed without it.
func FromEnv(compilerEnv, fallback string) (Config, error) {
	cfg := Config{
		Compiler: fallback,
		Generate: os.Getenv(EnvGenerate) != "",
	}
	if compiler := os.Getenv(compilerEnv); compiler != "" {
		cfg.Compiler = compiler
	}
	logFile, ok := os.LookupEnv(EnvLogFile)
	if !ok || logFile == "" {
		return cfg, ErrMissingLogPath
	}
	cfg.LogFile = logFile
	return cfg, nil
}
