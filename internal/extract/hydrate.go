package extract

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"catalant-monitor/internal/domain"
)

// hydrate replaces clamp-truncated card descriptions with the full text
// from each listing's detail page, reusing the browser session's cookies
// over plain HTTP. Strictly best effort: any per-listing failure keeps
// the card-level record. The monitoring pipeline itself stays
// sequential; only this fan-out is concurrent.
func (c *Catalant) hydrate(ctx context.Context, records []domain.ListingRecord) {
	hc := c.httpClient()
	if hc == nil {
		return
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)

	for i := range records {
		rec := &records[i]
		if rec.ID == "" || rec.URL == "" {
			continue
		}
		g.Go(func() error {
			if err := c.limiter.WaitURL(gctx, rec.URL); err != nil {
				return nil
			}
			if err := hydrateOne(gctx, hc, rec); err != nil {
				log.Printf("[extract] hydrate %s: %v", rec.ID, err)
			}
			return nil
		})
	}
	_ = g.Wait()
}

func (c *Catalant) httpClient() *http.Client {
	cookies := c.session.HTTPCookies()
	if len(cookies) == 0 {
		return nil
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil
	}
	base, err := url.Parse(c.cfg.Portal.BaseURL)
	if err != nil {
		return nil
	}
	jar.SetCookies(base, cookies)
	return &http.Client{Timeout: 20 * time.Second, Jar: jar}
}

func hydrateOne(ctx context.Context, hc *http.Client, rec *domain.ListingRecord) error {
	req, _ := http.NewRequestWithContext(ctx, http.MethodGet, rec.URL, nil)
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36")

	res, err := hc.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()
	if res.StatusCode >= 400 {
		return fmt.Errorf("detail page status %d", res.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(res.Body)
	if err != nil {
		return err
	}

	if desc := cleanText(doc.Find(".need-description").First().Text()); desc != "" {
		rec.Description = desc
	}
	if rec.Location == "" {
		if loc := cleanText(doc.Find(".need-location").First().Text()); loc != "" {
			rec.Location = loc
		}
	}
	return nil
}
