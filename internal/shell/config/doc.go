// Package config loads runtime configuration for the PyHx shell.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional YAML file <home>/<config_dir>/pyhx.yaml.
//  3. Environment variables prefixed with PYHX_, e.g. PYHX_LOG_LEVEL=debug.
//
// The shell home is PYHX_HOME when set, otherwise the working directory at
// start. Relative directories are resolved against the home; users_file and
// hostname_file are resolved against the config directory.
//
// # YAML schema
//
//	interpreter: python3
//	entry_point: main.py
//	http_timeout: 10s
//	log_level: warn
//
// Primary API
//
//   - type Config                   holds every setting with absolute paths
//   - func LoadConfig() (*Config, error)
//   - func (*Config) LoadDefaults() sets sensible defaults
package config
