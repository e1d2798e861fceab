package config

import (
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	App struct {
		DataDir string `yaml:"data_dir"`
	} `yaml:"app"`

	Portal struct {
		BaseURL        string `yaml:"base_url"`
		DashboardPath  string `yaml:"dashboard_path"`
		Email          string `yaml:"email"`
		Headless       bool   `yaml:"headless"`
		CookiesFile    string `yaml:"cookies_file"`
		HydrateDetails bool   `yaml:"hydrate_details"`
	} `yaml:"portal"`

	Store struct {
		Backend string `yaml:"backend"` // file | sqlite
		Path    string `yaml:"path"`
	} `yaml:"store"`

	SMTP struct {
		Host     string `yaml:"host"`
		Port     int    `yaml:"port"`
		Sender   string `yaml:"sender"`
		Username string `yaml:"username"`
	} `yaml:"smtp"`

	Notify struct {
		Recipients    []string `yaml:"recipients"`
		SubjectPrefix string   `yaml:"subject_prefix"`
	} `yaml:"notify"`

	Polling struct {
		IntervalSeconds int `yaml:"interval_seconds"`
	} `yaml:"polling"`
}

// Default is the config written on first start. Portal credentials and
// recipients always come from the operator.
func Default() Config {
	var cfg Config
	cfg.App.DataDir = "."
	cfg.Portal.BaseURL = "https://app.gocatalant.com"
	cfg.Portal.DashboardPath = "/c/_/u/0/dashboard/"
	cfg.Portal.Headless = true
	cfg.Portal.CookiesFile = "catalant_cookies.json"
	cfg.Store.Backend = "file"
	cfg.Store.Path = "seen_projects.json"
	cfg.SMTP.Port = 587
	cfg.Notify.SubjectPrefix = "Catalant"
	cfg.Polling.IntervalSeconds = 300
	return cfg
}

// DashboardURL is the fully joined portal dashboard address.
func (c Config) DashboardURL() string {
	return strings.TrimRight(c.Portal.BaseURL, "/") + c.Portal.DashboardPath
}

// Load reads the YAML file and applies the env overlay on top.
func Load(path string) (Config, error) {
	var cfg Config
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, err
	}
	ApplyEnv(&cfg)
	return cfg, nil
}
