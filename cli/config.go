package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/mwantia/sectorfs/medium"
	"github.com/mwantia/sectorfs/medium/consul"
	"github.com/mwantia/sectorfs/medium/ephemeral"
	"github.com/mwantia/sectorfs/medium/local"
	"github.com/mwantia/sectorfs/medium/postgres"
	"github.com/mwantia/sectorfs/medium/s3"
	"github.com/mwantia/sectorfs/medium/sqlite"
)

// Config selects and configures the backing medium for a session.
type Config struct {
	// Index overrides the index resource name (default "index.txt")
	Index string `yaml:"index,omitempty"`

	Log    LogConfig    `yaml:"log,omitempty"`
	Medium MediumConfig `yaml:"medium"`
}

type LogConfig struct {
	Level string `yaml:"level,omitempty"`
	File  string `yaml:"file,omitempty"`
}

type MediumConfig struct {
	// Type selects the medium:
	// local, ephemeral, sqlite, consul, s3 or postgres
	Type string `yaml:"type"`

	// Path is the backing directory for the local medium
	Path string `yaml:"path,omitempty"`

	// Database is the sqlite file (or ":memory:") or the postgres
	// connection string, depending on Type
	Database string `yaml:"database,omitempty"`

	// Consul settings
	Address    string `yaml:"address,omitempty"`
	Token      string `yaml:"token,omitempty"`
	Datacenter string `yaml:"datacenter,omitempty"`
	Prefix     string `yaml:"prefix,omitempty"`

	// S3 settings
	Endpoint  string `yaml:"endpoint,omitempty"`
	Bucket    string `yaml:"bucket,omitempty"`
	AccessKey string `yaml:"access_key,omitempty"`
	SecretKey string `yaml:"secret_key,omitempty"`
	UseSSL    bool   `yaml:"use_ssl,omitempty"`
}

func LoadConfig(path string) (*Config, error) {
	config := &Config{
		Medium: MediumConfig{
			Type: "ephemeral",
		},
	}

	if path == "" {
		return config, nil
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(content, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// BuildMedium constructs the medium the config asks for.
func (c *Config) BuildMedium() (medium.Medium, error) {
	switch c.Medium.Type {
	case "", "ephemeral":
		return ephemeral.NewEphemeralMedium(), nil

	case "local":
		return local.NewLocalMedium(c.Medium.Path)

	case "sqlite":
		return sqlite.NewSQLiteMedium(c.Medium.Database)

	case "consul":
		return consul.NewConsulMedium(&consul.ConsulMediumConfig{
			Address:    c.Medium.Address,
			Token:      c.Medium.Token,
			Datacenter: c.Medium.Datacenter,
			Prefix:     c.Medium.Prefix,
		})

	case "s3":
		return s3.NewS3Medium(&s3.S3MediumConfig{
			Endpoint:  c.Medium.Endpoint,
			Bucket:    c.Medium.Bucket,
			AccessKey: c.Medium.AccessKey,
			SecretKey: c.Medium.SecretKey,
			UseSSL:    c.Medium.UseSSL,
			Prefix:    c.Medium.Prefix,
		})

	case "postgres":
		return postgres.NewPostgresMedium(c.Medium.Database)

	default:
		return nil, fmt.Errorf("unknown medium type: %s", c.Medium.Type)
	}
}
