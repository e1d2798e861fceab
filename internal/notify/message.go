package notify

import (
	"fmt"
	"html/template"
	"strings"

	"catalant-monitor/internal/domain"
)

// digestTmpl follows the card layout of the notification mails the
// dashboard users were already getting: header, one section per listing,
// unknown fields spelled out rather than dropped.
var digestTmpl = template.Must(template.New("digest").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
  body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
  .container { max-width: 800px; margin: 0 auto; padding: 20px; }
  .header { background-color: #4CAF50; color: white; padding: 15px; border-radius: 5px 5px 0 0; }
  .listing { padding: 20px; border: 1px solid #ddd; border-top: none; background-color: #fff; }
  .listing-title { color: #2c3e50; margin-top: 0; }
  .badge { background-color: #e74c3c; color: white; padding: 5px 10px; border-radius: 3px; font-size: 12px; display: inline-block; margin-bottom: 10px; }
  .info { background-color: #f8f9fa; padding: 15px; border-radius: 5px; margin: 15px 0; }
  .description { background-color: #ffffff; padding: 15px; border-left: 4px solid #4CAF50; margin: 15px 0; }
  .footer { margin-top: 20px; padding-top: 20px; border-top: 1px solid #eee; font-size: 12px; color: #777; }
  .button { display: inline-block; background-color: #4CAF50; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; margin-top: 15px; }
</style>
</head>
<body>
<div class="container">
  <div class="header"><h2 style="margin: 0;">{{.Heading}}</h2></div>
  {{range .Listings}}
  <div class="listing">
    <h3 class="listing-title">{{.Title}}</h3>
    {{if .NewBadge}}<span class="badge">New Project</span>{{end}}
    <div class="info">
      <p style="margin: 5px 0;"><strong>Location:</strong> {{.Location}}</p>
      <p style="margin: 5px 0;"><strong>Posted:</strong> {{.Posted}}</p>
      <p style="margin: 5px 0;"><strong>Project ID:</strong> {{.ID}}</p>
      <p style="margin: 5px 0;"><strong>Detected:</strong> {{.Detected}}</p>
    </div>
    {{if .Categories}}
    <div style="margin: 10px 0;"><strong>Categories:</strong><br>
      {{range .Categories}}&bull; {{.}}<br>{{end}}
    </div>
    {{end}}
    <div class="description">
      <h4 style="margin-top: 0;">Project Description:</h4>
      <p style="white-space: pre-wrap;">{{.Description}}</p>
    </div>
  </div>
  {{end}}
  <div style="text-align: center; margin-top: 20px;">
    <a href="{{.DashboardURL}}" class="button">View on Catalant Dashboard</a>
  </div>
  <div class="footer"><p>Automated notification from Catalant Project Monitor</p></div>
</div>
</body>
</html>
`))

type digestListing struct {
	ID          string
	Title       string
	Location    string
	Posted      string
	Detected    string
	Description string
	Categories  []string
	NewBadge    bool
}

type digestData struct {
	Heading      string
	DashboardURL string
	Listings     []digestListing
}

func renderHTML(fresh []domain.Listing, dashboardURL string) (string, error) {
	data := digestData{
		Heading:      fmt.Sprintf("%d New Project(s) on Catalant", len(fresh)),
		DashboardURL: dashboardURL,
		Listings:     make([]digestListing, 0, len(fresh)),
	}

	for _, l := range fresh {
		data.Listings = append(data.Listings, digestListing{
			ID:          l.ID,
			Title:       l.Title,
			Location:    l.Location.String(),
			Posted:      postedLine(l.PostedAgo),
			Detected:    l.DetectedAt.Format("2006-01-02 15:04:05"),
			Description: l.Description.Or("No description available"),
			Categories:  l.Categories,
			NewBadge:    l.Status.Or("") == "New Project",
		})
	}

	var b strings.Builder
	if err := digestTmpl.Execute(&b, data); err != nil {
		return "", err
	}
	return b.String(), nil
}

// renderText is the plain-text alternative part for clients that refuse
// HTML. Same content, same unknown-field transparency.
func renderText(fresh []domain.Listing, dashboardURL string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%d new project(s) on Catalant\n\n", len(fresh))

	for _, l := range fresh {
		fmt.Fprintf(&b, "* %s\n", l.Title)
		fmt.Fprintf(&b, "  id: %s\n", l.ID)
		fmt.Fprintf(&b, "  location: %s\n", l.Location.String())
		fmt.Fprintf(&b, "  posted: %s\n", postedLine(l.PostedAgo))
		if len(l.Categories) > 0 {
			fmt.Fprintf(&b, "  categories: %s\n", strings.Join(l.Categories, " | "))
		}
		fmt.Fprintf(&b, "  %s\n\n", l.Description.Or("No description available"))
	}

	fmt.Fprintf(&b, "Dashboard: %s\n", dashboardURL)
	return b.String()
}

func postedLine(f domain.Field) string {
	if !f.Known {
		return "unknown"
	}
	return f.Value + " ago"
}
