package extract

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"catalant-monitor/internal/domain"
)

// Dashboard DOM selectors. The project id lives in the like button's
// data-ajax-post attribute as /need/<id>/.
const (
	selCard     = "div.card-block"
	selCardBody = ".need-card-inline"
	selReady    = ".need-card-inline-name"
	selTitle    = ".need-card-inline-name .line-clamp-2"
	selLike     = "[data-ajax-post*='need/']"
	selPools    = ".need-card-inline-pools .small.text-muted"
	selDetails  = ".need-card-inline-details .line-clamp-2"
	selLocation = ".text-gray-25.font-weight-semibold"
	selPostedAt = "div.small.text-gray-20.mt-1 span"
	selBadge    = ".badge-success"
)

var needIDRe = regexp.MustCompile(`/need/([^/]+)/`)

// ParseCards pulls raw listing records out of a rendered dashboard page.
// Cards without a derivable title or id still come back (with the field
// empty) and get dropped by the validator; per-field failures just leave
// that field empty.
func ParseCards(html string) ([]domain.ListingRecord, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, err
	}

	var records []domain.ListingRecord
	doc.Find(selCard).Each(func(_ int, card *goquery.Selection) {
		if card.Find(selCardBody).Length() == 0 {
			return
		}
		records = append(records, parseCard(card))
	})
	return records, nil
}

func parseCard(card *goquery.Selection) domain.ListingRecord {
	rec := domain.ListingRecord{
		Title:  cleanText(card.Find(selTitle).First().Text()),
		ID:     cardID(card),
		Status: "Posted",
	}

	if cats := cleanText(card.Find(selPools).First().Text()); cats != "" {
		for _, c := range strings.Split(cats, "|") {
			if c = strings.TrimSpace(c); c != "" {
				rec.Categories = append(rec.Categories, c)
			}
		}
	}

	rec.Description = cleanText(card.Find(selDetails).First().Text())

	if loc := card.Find(selLocation).First().Text(); loc != "" {
		rec.Location = cleanText(strings.ReplaceAll(loc, "Remote", ""))
	}

	card.Find(selPostedAt).EachWithBreak(func(_ int, span *goquery.Selection) bool {
		t := span.Text()
		if !strings.Contains(t, "Posted") {
			return true
		}
		t = strings.ReplaceAll(t, "Posted", "")
		t = strings.ReplaceAll(t, "ago", "")
		rec.PostedAgo = cleanText(t)
		return false
	})

	if card.Find(selBadge).Length() > 0 {
		rec.Status = "New Project"
	}

	return rec
}

func cardID(card *goquery.Selection) string {
	attr, ok := card.Find(selLike).First().Attr("data-ajax-post")
	if !ok {
		return ""
	}
	m := needIDRe.FindStringSubmatch(attr)
	if m == nil {
		return ""
	}
	return m[1]
}

func cleanText(s string) string {
	s = strings.ReplaceAll(s, " ", " ")
	s = strings.Join(strings.Fields(s), " ")
	return strings.TrimSpace(s)
}
