package config

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App      App      `yaml:"app"`
	Database Database `yaml:"database"`
	Allows   Allows   `yaml:"allows"`
	Club     Club     `yaml:"club"`
	Scrape   Scrape   `yaml:"scrape"`
}

type App struct {
	Name string `yaml:"name"`
	Port string `yaml:"port"`
	Host string `yaml:"host"`
}

// Database carries a single URL, the same one the bootstrapped legacy site
// reads. postgres:// selects the postgres backend; anything else falls back
// to the local sqlite file.
type Database struct {
	URL string `yaml:"url"`
}

type Allows struct {
	Methods []string `yaml:"methods"`
	Origins []string `yaml:"origins"`
	Headers []string `yaml:"headers"`
}

// Club pins the league structure imports and scrapes attach to.
type Club struct {
	Competition string `yaml:"competition"`
	Season      string `yaml:"season"`
	Group       string `yaml:"group"`
}

type Scrape struct {
	URL        string `yaml:"url"`
	SourceName string `yaml:"source_name"`
}

func InitConfig() *Config {
	var configs Config
	file_name, _ := filepath.Abs("./config.yaml")
	yaml_file, _ := os.ReadFile(file_name)
	yaml.Unmarshal(yaml_file, &configs)

	// Override with environment variables if they exist (for Docker)
	if dbURL := os.Getenv("DATABASE_URL"); dbURL != "" {
		configs.Database.URL = dbURL
	}

	// Override app configuration with environment variables
	if appHost := os.Getenv("APP_HOST"); appHost != "" {
		configs.App.Host = appHost
	}
	if appPort := os.Getenv("APP_PORT"); appPort != "" {
		configs.App.Port = appPort
	}
	if appName := os.Getenv("APP_NAME"); appName != "" {
		configs.App.Name = appName
	}

	if scrapeURL := os.Getenv("SCRAPE_URL"); scrapeURL != "" {
		configs.Scrape.URL = scrapeURL
	}

	if configs.App.Port == "" {
		configs.App.Port = "8000"
	}
	if configs.App.Name == "" {
		configs.App.Name = "webstats-crm"
	}
	if configs.Scrape.SourceName == "" {
		configs.Scrape.SourceName = "La Preferente"
	}

	return &configs
}
