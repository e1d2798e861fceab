package extract

import (
	"context"
	"fmt"
	"log"
	"net/url"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"catalant-monitor/internal/config"
	"catalant-monitor/internal/domain"
	"catalant-monitor/internal/extract/session"
)

// Catalant renders the consultant dashboard in Chrome and parses the
// project cards out of the DOM.
type Catalant struct {
	cfg     config.Config
	session *session.Manager
	limiter *HostLimiter
}

func NewCatalant(cfg config.Config, portalPassword string) *Catalant {
	base := strings.TrimRight(cfg.Portal.BaseURL, "/")
	return &Catalant{
		cfg: cfg,
		session: &session.Manager{
			CookiesPath:   cfg.Portal.CookiesFile,
			CookieDomain:  cookieDomain(base),
			DashboardURL:  base + cfg.Portal.DashboardPath,
			Email:         cfg.Portal.Email,
			Password:      portalPassword,
			ReadySelector: selReady,
		},
		limiter: NewHostLimiter(1.0, 2),
	}
}

func (c *Catalant) Extract(ctx context.Context) ([]domain.ListingRecord, error) {
	l := launcher.New().
		Headless(c.cfg.Portal.Headless).
		NoSandbox(true).
		Set("disable-blink-features", "AutomationControlled").
		Set("disable-gpu").
		Set("disable-dev-shm-usage")

	u, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("launch browser: %w", err)
	}

	browser := rod.New().ControlURL(u).Context(ctx)
	if err := browser.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("connect browser: %w", err)
	}
	defer func() {
		_ = browser.Close()
		l.Cleanup()
	}()

	page, err := stealth.Page(browser)
	if err != nil {
		return nil, fmt.Errorf("open page: %w", err)
	}

	if err := c.session.Establish(page); err != nil {
		return nil, fmt.Errorf("establish session: %w", err)
	}

	// Establish already waited for the cards; grab the rendered DOM.
	html, err := page.HTML()
	if err != nil {
		return nil, fmt.Errorf("read dashboard html: %w", err)
	}

	records, err := ParseCards(html)
	if err != nil {
		return nil, fmt.Errorf("parse cards: %w", err)
	}
	log.Printf("[extract] parsed %d cards", len(records))

	for i := range records {
		if records[i].ID != "" {
			records[i].URL = c.detailURL(records[i].ID)
		}
	}

	if c.cfg.Portal.HydrateDetails {
		c.hydrate(ctx, records)
	}

	return records, nil
}

func (c *Catalant) detailURL(id string) string {
	return strings.TrimRight(c.cfg.Portal.BaseURL, "/") + "/c/need/" + id + "/"
}

// cookieDomain turns https://app.gocatalant.com into .gocatalant.com so
// only the portal's own cookies get persisted.
func cookieDomain(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		return ""
	}
	host := u.Hostname()
	if i := strings.Index(host, "."); i >= 0 {
		return host[i:]
	}
	return host
}
