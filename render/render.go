package render

import (
	"bytes"
	"embed"
	"html/template"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/use-agent/jobscout/models"
)

//go:embed templates/*.html
var templateFS embed.FS

// PageTemplate is the name of the full results page template.
const PageTemplate = "page.html"

var (
	templates = template.Must(template.New("").ParseFS(templateFS, "templates/*.html"))

	// Converter is goroutine-safe; one instance serves every request.
	markdownConv = converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)
)

// Templates returns the parsed page templates, ready for gin's
// SetHTMLTemplate.
func Templates() *template.Template {
	return templates
}

// Cards renders one job card per listing. Scraped text is HTML-escaped.
func Cards(listings []models.JobListing) (string, error) {
	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "cards", listings); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// Markdown renders the listings as Markdown, one heading per job followed
// by company and location lines.
func Markdown(listings []models.JobListing) (string, error) {
	if len(listings) == 0 {
		return "", nil
	}
	cards, err := Cards(listings)
	if err != nil {
		return "", err
	}
	md, err := markdownConv.ConvertString(cards)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(md), nil
}
