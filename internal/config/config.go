package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	DefaultPort = 1234

	EnvDevelopment = "development"
	EnvProduction  = "production"

	StorageLocal     = "local"
	StorageSeaweedFS = "seaweedfs"
)

type Config struct {
	Env     string        `mapstructure:"env"`
	Server  ServerConfig  `mapstructure:"server"`
	Hash    HashConfig    `mapstructure:"hash"`
	Log     LogConfig     `mapstructure:"log"`
	Storage StorageConfig `mapstructure:"storage"`
}

type ServerConfig struct {
	Port int `mapstructure:"port"`
}

type HashConfig struct {
	Algorithms []string `mapstructure:"algorithms"`
	ChunkSize  int      `mapstructure:"chunk_size"`
}

type LogConfig struct {
	ErrorFile    string `mapstructure:"error_file"`
	CombinedFile string `mapstructure:"combined_file"`
}

type StorageConfig struct {
	Type      string          `mapstructure:"type"`
	Local     LocalConfig     `mapstructure:"local"`
	SeaweedFS SeaweedFSConfig `mapstructure:"seaweedfs"`
}

type LocalConfig struct {
	Root string `mapstructure:"root"`
}

type SeaweedFSConfig struct {
	FilerURL string `mapstructure:"filer_url"`
}

// Load reads configuration from defaults, an optional YAML file and the
// environment, in increasing order of precedence. With an empty cfgFile,
// configs/config.yaml and ./config.yaml are tried and may be absent.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath("configs")
		v.AddConfigPath(".")
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// HASHER_SERVER_PORT, HASHER_HASH_ALGORITHMS, ...
	v.SetEnvPrefix("HASHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Bare PORT, ENV and NODE_ENV are honored for compatibility with common PaaS setups
	if err := v.BindEnv("server.port", "HASHER_SERVER_PORT", "PORT"); err != nil {
		return nil, err
	}
	if err := v.BindEnv("env", "HASHER_ENV", "ENV", "NODE_ENV"); err != nil {
		return nil, err
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config load failed: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config decode failed: %w", err)
	}
	cfg.Env = strings.ToLower(strings.TrimSpace(cfg.Env))
	cfg.Storage.Type = strings.ToLower(strings.TrimSpace(cfg.Storage.Type))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", EnvDevelopment)
	v.SetDefault("server.port", DefaultPort)

	v.SetDefault("hash.algorithms", []string{"md4", "sha1"})
	v.SetDefault("hash.chunk_size", 64*1024)

	v.SetDefault("log.error_file", "error.log")
	v.SetDefault("log.combined_file", "combined.log")

	v.SetDefault("storage.type", StorageLocal)
	v.SetDefault("storage.local.root", "")
	v.SetDefault("storage.seaweedfs.filer_url", "")
}

// Validate checks values that viper cannot type-check on its own
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d", c.Server.Port)
	}
	if len(c.Hash.Algorithms) == 0 {
		return fmt.Errorf("hash.algorithms must not be empty")
	}
	if c.Hash.ChunkSize <= 0 {
		return fmt.Errorf("invalid hash chunk size: %d", c.Hash.ChunkSize)
	}

	switch c.Storage.Type {
	case StorageLocal:
	case StorageSeaweedFS:
		if c.Storage.SeaweedFS.FilerURL == "" {
			return fmt.Errorf("storage.seaweedfs.filer_url is required for seaweedfs storage")
		}
	default:
		return fmt.Errorf("unsupported storage type: %s", c.Storage.Type)
	}
	return nil
}

// Addr returns the listen address for the HTTP server
func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

// IsProduction reports whether env is "production". Any other value,
// including staging or test, runs with development logging.
func (c *Config) IsProduction() bool {
	return c.Env == EnvProduction
}
