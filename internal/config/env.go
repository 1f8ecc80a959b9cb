package config

import (
	"fmt"
	"strconv"
)

// EnvPrefix is the prefix of environment overrides.
const EnvPrefix = "OSKEY_"

// Environment variables read by ApplyEnv and the CLI.
const (
	EnvDefaultOS = EnvPrefix + "DEFAULT_OS"
	EnvMaxDepth  = EnvPrefix + "MAX_DEPTH"
	EnvLogLevel  = EnvPrefix + "LOG_LEVEL"
)

// LookupFunc reads an environment variable, like os.LookupEnv.
type LookupFunc func(key string) (string, bool)

// ApplyEnv overrides file values with environment variables.
// Empty values are treated as unset.
func ApplyEnv(f *File, lookup LookupFunc) error {
	if v, ok := lookup(EnvDefaultOS); ok && v != "" {
		f.DefaultOS = v
	}

	if v, ok := lookup(EnvMaxDepth); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("%s: invalid value %q", EnvMaxDepth, v)
		}
		f.MaxDepth = n
	}

	return nil
}
