package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const Version = "0.1.0"

type Config struct {
	Server  Server  `yaml:"server" json:"server"`
	API     API     `yaml:"api" json:"api"`
	CORS    CORS    `yaml:"cors" json:"cors"`
	Storage Storage `yaml:"storage" json:"storage"`
	Log     Log     `yaml:"log" json:"log"`
}

type Server struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

type API struct {
	Prefix string `yaml:"prefix" json:"prefix"`
}

type CORS struct {
	Origins []string `yaml:"origins" json:"origins"`
}

type Storage struct {
	DataDir string `yaml:"data_dir" json:"data_dir"`
}

type Log struct {
	Level  string `yaml:"level" json:"level"`
	Pretty bool   `yaml:"pretty" json:"pretty"`
}

func Default() *Config {
	return &Config{
		Server: Server{
			Host: "127.0.0.1",
			Port: 5000,
		},
		API: API{
			Prefix: "/api/v1",
		},
		CORS: CORS{
			Origins: []string{"*"},
		},
		Storage: Storage{
			DataDir: defaultDataDir(),
		},
		Log: Log{
			Level: "info",
		},
	}
}

// Load reads the YAML config at path, falling back to defaults when the
// file does not exist. Environment overrides apply on top either way.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnv()
			return cfg, nil
		}
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.Storage.DataDir == "" {
		cfg.Storage.DataDir = defaultDataDir()
	}
	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// SnapshotPath is the primary persistence file inside the data dir.
func (c *Config) SnapshotPath() string {
	return filepath.Join(c.Storage.DataDir, "tasks.json")
}

func defaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".advanced-todo"
	}
	return filepath.Join(home, ".advanced-todo")
}
