package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "PYHX"
	ConfigFileName = "pyhx.yaml"
)

// Config holds runtime settings for the PyHx shell. After LoadConfig every
// path field is absolute.
type Config struct {
	Home            string        `mapstructure:"home"`
	ConfigDir       string        `mapstructure:"config_dir"`
	UsersFile       string        `mapstructure:"users_file"`
	HostnameFile    string        `mapstructure:"hostname_file"`
	PackagesDir     string        `mapstructure:"packages_dir"`
	InstalledDir    string        `mapstructure:"installed_dir"`
	TempDir         string        `mapstructure:"temp_dir"`
	PackageExt      string        `mapstructure:"package_ext"`
	EntryPoint      string        `mapstructure:"entry_point"`
	Interpreter     string        `mapstructure:"interpreter"`
	DefaultHostname string        `mapstructure:"default_hostname"`
	JokeURL         string        `mapstructure:"joke_url"`
	PyPIURL         string        `mapstructure:"pypi_url"`
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	JokeDelay       time.Duration `mapstructure:"joke_delay"`
	PingCount       int           `mapstructure:"ping_count"`
	LogLevel        string        `mapstructure:"log_level"`
}

// LoadDefaults populates c with sensible defaults. Paths stay relative.
func (c *Config) LoadDefaults() {
	c.Home = ""
	c.ConfigDir = "config"
	c.UsersFile = "users.json"
	c.HostnameFile = "hostname.txt"
	c.PackagesDir = "packages"
	c.InstalledDir = filepath.Join("packages", "installed")
	c.TempDir = ""
	c.PackageExt = ".pyhx"
	c.EntryPoint = "main.py"
	c.Interpreter = "python3"
	if runtime.GOOS == "windows" {
		c.Interpreter = "python"
	}
	c.DefaultHostname = "pyhx-host"
	c.JokeURL = "https://official-joke-api.appspot.com/random_joke"
	c.PyPIURL = "https://pypi.org/pypi"
	c.HTTPTimeout = 10 * time.Second
	c.JokeDelay = 2 * time.Second
	c.PingCount = 4
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays the
// optional YAML file and PYHX_* environment variables. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	defaults := &Config{}
	defaults.LoadDefaults()

	v := viper.New()
	v.SetDefault("home", defaults.Home)
	v.SetDefault("config_dir", defaults.ConfigDir)
	v.SetDefault("users_file", defaults.UsersFile)
	v.SetDefault("hostname_file", defaults.HostnameFile)
	v.SetDefault("packages_dir", defaults.PackagesDir)
	v.SetDefault("installed_dir", defaults.InstalledDir)
	v.SetDefault("temp_dir", defaults.TempDir)
	v.SetDefault("package_ext", defaults.PackageExt)
	v.SetDefault("entry_point", defaults.EntryPoint)
	v.SetDefault("interpreter", defaults.Interpreter)
	v.SetDefault("default_hostname", defaults.DefaultHostname)
	v.SetDefault("joke_url", defaults.JokeURL)
	v.SetDefault("pypi_url", defaults.PyPIURL)
	v.SetDefault("http_timeout", defaults.HTTPTimeout)
	v.SetDefault("joke_delay", defaults.JokeDelay)
	v.SetDefault("ping_count", defaults.PingCount)
	v.SetDefault("log_level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	home, err := resolveHome(v.GetString("home"))
	if err != nil {
		return nil, err
	}

	cfgFile := filepath.Join(resolve(home, v.GetString("config_dir")), ConfigFileName)
	if _, err := os.Stat(cfgFile); err == nil {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", cfgFile, err)
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("stat config %s: %w", cfgFile, err)
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	cfg.Home = home

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg.resolvePaths()

	return cfg, nil
}

func resolveHome(home string) (string, error) {
	if home == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getwd: %w", err)
		}
		return cwd, nil
	}
	return filepath.Abs(home)
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

func (c *Config) resolvePaths() {
	c.ConfigDir = resolve(c.Home, c.ConfigDir)
	c.UsersFile = resolve(c.ConfigDir, c.UsersFile)
	c.HostnameFile = resolve(c.ConfigDir, c.HostnameFile)
	c.PackagesDir = resolve(c.Home, c.PackagesDir)
	c.InstalledDir = resolve(c.Home, c.InstalledDir)
	c.TempDir = resolve(c.Home, c.TempDir)
}

func (c *Config) validate() error {
	if !strings.HasPrefix(c.PackageExt, ".") {
		return fmt.Errorf("package_ext must start with a dot: %q", c.PackageExt)
	}
	if c.EntryPoint == "" || filepath.Base(c.EntryPoint) != c.EntryPoint {
		return fmt.Errorf("entry_point must be a bare file name: %q", c.EntryPoint)
	}
	if c.Interpreter == "" {
		return errors.New("interpreter must not be empty")
	}
	if c.PingCount < 1 {
		return fmt.Errorf("ping_count must be positive: %d", c.PingCount)
	}
	return nil
}
