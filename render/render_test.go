package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/use-agent/jobscout/models"
)

var sample = []models.JobListing{
	{Title: "Python Developer", Company: "Acme", Location: "Pune"},
	{Title: "Backend Engineer", Company: "Globex", Location: "Remote"},
}

func TestNewView(t *testing.T) {
	timeout := models.NewScrapeError(models.ErrCodeTimeout, "search trigger was not clickable", context.DeadlineExceeded)

	tests := []struct {
		name      string
		query     string
		listings  []models.JobListing
		err       error
		kinds     []NoticeKind
		firstText string
		cards     int
	}{
		{"blank", "   ", nil, nil, []NoticeKind{NoticeWarning}, MsgBlankQuery, 0},
		{"error", "golang", nil, timeout, []NoticeKind{NoticeError, NoticeInfo},
			"An error occurred during scraping: search trigger was not clickable: context deadline exceeded", 0},
		{"plain error", "golang", nil, errors.New("boom"), []NoticeKind{NoticeError, NoticeInfo},
			"An error occurred during scraping: boom", 0},
		{"empty", "Python Developer", []models.JobListing{}, nil, []NoticeKind{NoticeInfo}, MsgNoResults, 0},
		{"results", "Python Developer", sample, nil, []NoticeKind{NoticeSuccess},
			"Found 2 jobs for 'Python Developer'!", 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := NewView(tt.query, tt.listings, tt.err)
			if len(v.Notices) != len(tt.kinds) {
				t.Fatalf("notices = %+v, want kinds %v", v.Notices, tt.kinds)
			}
			for i, k := range tt.kinds {
				if v.Notices[i].Kind != k {
					t.Errorf("notice %d kind = %s, want %s", i, v.Notices[i].Kind, k)
				}
			}
			if v.Notices[0].Text != tt.firstText {
				t.Errorf("notice text = %q, want %q", v.Notices[0].Text, tt.firstText)
			}
			if len(v.Listings) != tt.cards {
				t.Errorf("cards = %d, want %d", len(v.Listings), tt.cards)
			}
		})
	}
}

func TestCards(t *testing.T) {
	out, err := Cards(sample)
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	if n := strings.Count(out, `class="job-card"`); n != 2 {
		t.Errorf("got %d cards, want 2", n)
	}
	for _, glyph := range []string{"fa-briefcase", "fa-building", "fa-map-marker"} {
		if strings.Count(out, glyph) != 2 {
			t.Errorf("expected %s once per card", glyph)
		}
	}
	for _, l := range sample {
		for _, s := range []string{l.Title, l.Company, l.Location} {
			if !strings.Contains(out, s) {
				t.Errorf("output missing %q", s)
			}
		}
	}
}

func TestCards_EscapesScrapedText(t *testing.T) {
	out, err := Cards([]models.JobListing{{Title: `<script>alert(1)</script>`, Company: "A&B", Location: "X"}})
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	if strings.Contains(out, "<script>") {
		t.Errorf("scraped markup was not escaped: %s", out)
	}
	if !strings.Contains(out, "&lt;script&gt;") || !strings.Contains(out, "A&amp;B") {
		t.Errorf("unexpected escaping: %s", out)
	}
}

func TestCards_Empty(t *testing.T) {
	out, err := Cards(nil)
	if err != nil {
		t.Fatalf("Cards: %v", err)
	}
	if strings.TrimSpace(out) != "" {
		t.Errorf("Cards(nil) = %q, want blank", out)
	}
}

func TestMarkdown(t *testing.T) {
	md, err := Markdown(sample)
	if err != nil {
		t.Fatalf("Markdown: %v", err)
	}
	if strings.Contains(md, "<") {
		t.Errorf("markdown still contains HTML: %s", md)
	}
	if n := strings.Count(md, "### "); n != 2 {
		t.Errorf("got %d headings, want 2:\n%s", n, md)
	}
	if strings.Index(md, "Python Developer") > strings.Index(md, "Backend Engineer") {
		t.Errorf("listing order not preserved:\n%s", md)
	}
	for _, s := range []string{"Acme", "Pune", "Globex", "Remote"} {
		if !strings.Contains(md, s) {
			t.Errorf("markdown missing %q:\n%s", s, md)
		}
	}

	empty, err := Markdown(nil)
	if err != nil || empty != "" {
		t.Errorf("Markdown(nil) = %q, %v", empty, err)
	}
}

func TestPageTemplate(t *testing.T) {
	var buf bytes.Buffer
	v := NewView("Python Developer", sample, nil)
	if err := Templates().ExecuteTemplate(&buf, PageTemplate, v); err != nil {
		t.Fatalf("execute: %v", err)
	}
	out := buf.String()

	for _, want := range []string{
		"font-awesome/4.7.0",
		`name="q"`,
		`value="Python Developer"`,
		"notice-success",
		"Found 2 jobs for &#39;Python Developer&#39;!",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if n := strings.Count(out, `class="job-card"`); n != len(sample) {
		t.Errorf("got %d cards, want %d", n, len(sample))
	}
}

func ExampleNewView() {
	v := NewView("golang", nil, nil)
	fmt.Println(v.Notices[0].Kind, v.Notices[0].Text)
	// Output: info No results found, or there was an issue loading the results.
}
