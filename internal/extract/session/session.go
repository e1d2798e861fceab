// Package session owns the portal browser session: cookie persistence
// and the form login fallback. The monitoring core never touches any of
// this state; it only sees the extractor succeed or fail.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

type Manager struct {
	CookiesPath   string
	CookieDomain  string // e.g. ".gocatalant.com"
	DashboardURL  string
	Email         string
	Password      string
	ReadySelector string // element that proves an authenticated dashboard
}

// Establish gets page to an authenticated dashboard: saved cookies
// first, form login as the fallback.
func (m *Manager) Establish(page *rod.Page) error {
	if err := m.tryCookies(page); err == nil {
		log.Printf("[session] logged in via cookies")
		return nil
	}
	return m.login(page)
}

func (m *Manager) tryCookies(page *rod.Page) error {
	cookies, err := m.loadCookies()
	if err != nil {
		return err
	}
	if len(cookies) == 0 {
		return errors.New("no saved cookies")
	}

	if err := page.Browser().SetCookies(proto.CookiesToParams(cookies)); err != nil {
		return fmt.Errorf("set cookies: %w", err)
	}
	if err := page.Navigate(m.DashboardURL); err != nil {
		return fmt.Errorf("navigate dashboard: %w", err)
	}

	_, err = page.Timeout(15 * time.Second).Element(m.ReadySelector)
	return err
}

func (m *Manager) login(page *rod.Page) error {
	if m.Email == "" || m.Password == "" {
		return errors.New("portal email/password is required for login")
	}

	if err := page.Navigate(m.DashboardURL); err != nil {
		return fmt.Errorf("navigate login: %w", err)
	}

	emailEl, err := page.Timeout(20 * time.Second).Element(`input[name="email"]`)
	if err != nil {
		return fmt.Errorf("login form not found: %w", err)
	}
	if err := emailEl.Input(m.Email); err != nil {
		return fmt.Errorf("fill email: %w", err)
	}

	passEl, err := page.Timeout(10 * time.Second).Element(`input[name="password"]`)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := passEl.Input(m.Password); err != nil {
		return fmt.Errorf("fill password: %w", err)
	}

	btn, err := page.Timeout(10 * time.Second).Element(`button[type="submit"]`)
	if err != nil {
		return fmt.Errorf("submit button not found: %w", err)
	}
	if err := btn.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("click login: %w", err)
	}

	if _, err := page.Timeout(30 * time.Second).Element(m.ReadySelector); err != nil {
		return fmt.Errorf("portal login failed: %w", err)
	}

	if err := m.saveCookies(page); err != nil {
		// next run just logs in again
		log.Printf("[session] cookie save failed: %v", err)
	}
	log.Printf("[session] login ok")
	return nil
}

func (m *Manager) saveCookies(page *rod.Page) error {
	cookies, err := page.Browser().GetCookies()
	if err != nil {
		return err
	}

	var kept []*proto.NetworkCookie
	for _, c := range cookies {
		if m.CookieDomain == "" || strings.Contains(c.Domain, m.CookieDomain) {
			kept = append(kept, c)
		}
	}

	b, err := json.Marshal(kept)
	if err != nil {
		return err
	}
	return os.WriteFile(m.CookiesPath, b, 0o600)
}

func (m *Manager) loadCookies() ([]*proto.NetworkCookie, error) {
	b, err := os.ReadFile(m.CookiesPath)
	if err != nil {
		return nil, err
	}
	var cookies []*proto.NetworkCookie
	if err := json.Unmarshal(b, &cookies); err != nil {
		return nil, fmt.Errorf("corrupt cookie file: %w", err)
	}
	return cookies, nil
}

// HTTPCookies converts the saved browser cookies for plain HTTP
// requests (detail-page hydration shares the browser's session).
func (m *Manager) HTTPCookies() []*http.Cookie {
	cookies, err := m.loadCookies()
	if err != nil {
		return nil
	}

	out := make([]*http.Cookie, 0, len(cookies))
	for _, c := range cookies {
		hc := &http.Cookie{
			Name:   c.Name,
			Value:  c.Value,
			Domain: c.Domain,
			Path:   c.Path,
			Secure: c.Secure,
		}
		if c.Expires > 0 {
			hc.Expires = time.Unix(int64(c.Expires), 0)
		}
		out = append(out, hc)
	}
	return out
}
