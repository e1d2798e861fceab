package config

import (
	"errors"
	"fmt"
)

func Validate(cfg Config) error {
	var errs []string

	if cfg.Portal.BaseURL == "" {
		errs = append(errs, "portal.base_url is required")
	}
	if cfg.Portal.DashboardPath == "" {
		errs = append(errs, "portal.dashboard_path is required")
	}
	if cfg.Portal.Email == "" {
		errs = append(errs, "portal.email is required (or CATALANT_EMAIL)")
	}

	switch cfg.Store.Backend {
	case "file", "sqlite":
	default:
		errs = append(errs, fmt.Sprintf("store.backend must be file or sqlite, got %q", cfg.Store.Backend))
	}
	if cfg.Store.Path == "" {
		errs = append(errs, "store.path is required")
	}

	if cfg.SMTP.Host == "" {
		errs = append(errs, "smtp.host is required (or SMTP_SERVER)")
	}
	if cfg.SMTP.Port <= 0 || cfg.SMTP.Port > 65535 {
		errs = append(errs, "smtp.port must be 1..65535")
	}
	if cfg.SMTP.Sender == "" {
		errs = append(errs, "smtp.sender is required (or SENDER_EMAIL)")
	}

	if len(cfg.Notify.Recipients) == 0 {
		errs = append(errs, "notify.recipients must have at least 1 address")
	}
	for i, r := range cfg.Notify.Recipients {
		if r == "" {
			errs = append(errs, fmt.Sprintf("notify.recipients[%d] cannot be empty", i))
		}
	}

	if cfg.Polling.IntervalSeconds <= 0 {
		errs = append(errs, "polling.interval_seconds must be >= 1")
	}

	if len(errs) > 0 {
		return errors.New("config validation failed:\n- " + joinLines(errs))
	}
	return nil
}

func joinLines(lines []string) string {
	out := ""
	for i, s := range lines {
		if i > 0 {
			out += "\n- "
		}
		out += s
	}
	return out
}
