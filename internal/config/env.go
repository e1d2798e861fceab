package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// LoadDotenv pulls a .env file into the process environment if one is
// present. Missing .env should not kill startup.
func LoadDotenv() {
	_ = godotenv.Load()
}

// ApplyEnv overlays environment variables onto cfg. The names match what
// CI deployments of the monitor already export, so a config file is
// optional there.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("CATALANT_EMAIL"); v != "" {
		cfg.Portal.Email = v
	}
	if v := os.Getenv("SMTP_SERVER"); v != "" {
		cfg.SMTP.Host = v
	}
	if v := os.Getenv("SMTP_PORT"); v != "" {
		if p, err := strconv.Atoi(v); err == nil {
			cfg.SMTP.Port = p
		}
	}
	if v := os.Getenv("SENDER_EMAIL"); v != "" {
		cfg.SMTP.Sender = v
		if cfg.SMTP.Username == "" {
			cfg.SMTP.Username = v
		}
	}
	if v := os.Getenv("RECIPIENT_EMAILS"); v != "" {
		cfg.Notify.Recipients = splitList(v)
	}
	if v := os.Getenv("HEADLESS"); v != "" {
		cfg.Portal.Headless = strings.EqualFold(v, "true")
	}
	if v := os.Getenv("COOKIES_FILE"); v != "" {
		cfg.Portal.CookiesFile = v
	}
	if v := os.Getenv("PROJECTS_DB"); v != "" {
		cfg.Store.Path = v
	}
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		out = append(out, p)
	}
	return out
}
