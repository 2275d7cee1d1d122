// Package project loads connection defaults from a project YAML file and an
// optional env file. Precedence everywhere: explicit flag, then environment
// variable, then project file.
package project

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/Weakky/introspection-cli/pkg/credentials"
)

// Project mirrors the optional project file passed via --project.
type Project struct {
	Postgres struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		Port     string `yaml:"port"`
		Schema   string `yaml:"schema"`
		SSL      bool   `yaml:"ssl"`
	} `yaml:"postgres"`

	MySQL struct {
		Host     string `yaml:"host"`
		User     string `yaml:"user"`
		Password string `yaml:"password"`
		Database string `yaml:"database"`
		Port     string `yaml:"port"`
	} `yaml:"mysql"`

	Mongo struct {
		URI      string `yaml:"uri"`
		Database string `yaml:"database"`
	} `yaml:"mongo"`
}

// Load reads and parses a project file.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	var p Project
	if err := yaml.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file %s: %w", path, err)
	}
	return &p, nil
}

// LoadEnvFile loads a dotenv file into the process environment, so env
// fallbacks below and anything the drivers read pick it up.
func LoadEnvFile(path string) error {
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("failed to load env file %s: %w", path, err)
	}
	return nil
}

// Apply fills empty flag values from the environment and then from the
// project file. Flags the operator set explicitly always win.
func Apply(flags *credentials.Flags, p *Project) {
	fill(&flags.PGHost, "PGHOST", projectValue(p, func(p *Project) string { return p.Postgres.Host }))
	fill(&flags.PGUser, "PGUSER", projectValue(p, func(p *Project) string { return p.Postgres.User }))
	fill(&flags.PGPassword, "PGPASSWORD", projectValue(p, func(p *Project) string { return p.Postgres.Password }))
	fill(&flags.PGDatabase, "PGDATABASE", projectValue(p, func(p *Project) string { return p.Postgres.Database }))
	fill(&flags.PGPort, "PGPORT", projectValue(p, func(p *Project) string { return p.Postgres.Port }))
	fill(&flags.PGSchema, "PGSCHEMA", projectValue(p, func(p *Project) string { return p.Postgres.Schema }))
	if p != nil && p.Postgres.SSL {
		flags.PGSSL = true
	}

	fill(&flags.MySQLHost, "MYSQL_HOST", projectValue(p, func(p *Project) string { return p.MySQL.Host }))
	fill(&flags.MySQLUser, "MYSQL_USER", projectValue(p, func(p *Project) string { return p.MySQL.User }))
	fill(&flags.MySQLPassword, "MYSQL_PASSWORD", projectValue(p, func(p *Project) string { return p.MySQL.Password }))
	fill(&flags.MySQLDatabase, "MYSQL_DATABASE", projectValue(p, func(p *Project) string { return p.MySQL.Database }))
	fill(&flags.MySQLPort, "MYSQL_PORT", projectValue(p, func(p *Project) string { return p.MySQL.Port }))

	fill(&flags.MongoURI, "MONGO_URI", projectValue(p, func(p *Project) string { return p.Mongo.URI }))
	fill(&flags.MongoDatabase, "MONGO_DB", projectValue(p, func(p *Project) string { return p.Mongo.Database }))
}

func projectValue(p *Project, get func(*Project) string) string {
	if p == nil {
		return ""
	}
	return get(p)
}

// fill sets *dst from the env var or fallback when the flag is empty.
func fill(dst *string, envVar, fallback string) {
	if *dst != "" {
		return
	}
	if v := os.Getenv(envVar); v != "" {
		*dst = v
		return
	}
	*dst = fallback
}
