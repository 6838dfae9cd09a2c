package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"github.com/use-agent/jobscout/models"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selectors names the CSS selectors that locate listing fields on the
// results page. Card is optional.
type Selectors struct {
	Card     string
	Title    string
	Company  string
	Location string
}

// Matches counts how many elements each selector matched in one snapshot.
type Matches struct {
	Cards     int
	Titles    int
	Companies int
	Locations int
}

// Result is the output of a single extraction.
type Result struct {
	Listings []models.JobListing
	Matches  Matches
}

// Extractor turns a rendered results page into job listings.
// Selectors are compiled once; an Extractor is safe for concurrent use.
type Extractor struct {
	card     cascadia.Selector // nil when listings are zipped positionally
	title    cascadia.Selector
	company  cascadia.Selector
	location cascadia.Selector
}

// New compiles the selectors. Title, Company and Location are required.
func New(sel Selectors) (*Extractor, error) {
	e := &Extractor{}
	var err error
	if e.title, err = compile("title", sel.Title); err != nil {
		return nil, err
	}
	if e.company, err = compile("company", sel.Company); err != nil {
		return nil, err
	}
	if e.location, err = compile("location", sel.Location); err != nil {
		return nil, err
	}
	if strings.TrimSpace(sel.Card) != "" {
		if e.card, err = compile("card", sel.Card); err != nil {
			return nil, err
		}
	}
	return e, nil
}

func compile(name, selector string) (cascadia.Selector, error) {
	if strings.TrimSpace(selector) == "" {
		return nil, fmt.Errorf("extract: %s selector is empty", name)
	}
	s, err := cascadia.Compile(selector)
	if err != nil {
		return nil, fmt.Errorf("extract: invalid %s selector %q: %w", name, selector, err)
	}
	return s, nil
}

// CardScoped reports whether listings are extracted per result card.
func (e *Extractor) CardScoped() bool {
	return e.card != nil
}

// Extract parses rawHTML and returns the listings it contains.
//
// Without a card selector the three field selectors are queried
// independently over the whole document and zipped by position, so the
// number of listings is the smallest of the three match counts. With a card
// selector each card yields one listing whose fields are the card's first
// matching descendants; cards without a title are skipped.
func (e *Extractor) Extract(rawHTML string) (*Result, error) {
	root, err := html.Parse(strings.NewReader(rawHTML))
	if err != nil {
		return nil, fmt.Errorf("extract: parse html: %w", err)
	}
	doc := goquery.NewDocumentFromNode(root)

	if e.card != nil {
		return e.byCard(doc), nil
	}
	return e.positional(doc), nil
}

func (e *Extractor) positional(doc *goquery.Document) *Result {
	titles := texts(doc.FindMatcher(e.title))
	companies := texts(doc.FindMatcher(e.company))
	locations := texts(doc.FindMatcher(e.location))

	count := min(len(titles), len(companies), len(locations))
	listings := make([]models.JobListing, 0, count)
	for i := 0; i < count; i++ {
		listings = append(listings, models.JobListing{
			Title:    titles[i],
			Company:  companies[i],
			Location: locations[i],
		})
	}

	return &Result{
		Listings: listings,
		Matches: Matches{
			Titles:    len(titles),
			Companies: len(companies),
			Locations: len(locations),
		},
	}
}

func (e *Extractor) byCard(doc *goquery.Document) *Result {
	res := &Result{Listings: []models.JobListing{}}

	cards := doc.FindMatcher(e.card)
	res.Matches.Cards = cards.Length()

	cards.Each(func(_ int, card *goquery.Selection) {
		title := card.FindMatcher(e.title)
		company := card.FindMatcher(e.company)
		location := card.FindMatcher(e.location)

		res.Matches.Titles += title.Length()
		res.Matches.Companies += company.Length()
		res.Matches.Locations += location.Length()

		l := models.JobListing{
			Title:    firstText(title),
			Company:  firstText(company),
			Location: firstText(location),
		}
		if l.Title == "" {
			return
		}
		res.Listings = append(res.Listings, l)
	})

	return res
}

// texts returns the rendered text of every node in s, in document order.
func texts(s *goquery.Selection) []string {
	out := make([]string, 0, s.Length())
	s.Each(func(_ int, n *goquery.Selection) {
		out = append(out, renderedText(n))
	})
	return out
}

func firstText(s *goquery.Selection) string {
	if s.Length() == 0 {
		return ""
	}
	return renderedText(s.First())
}

// renderedText approximates what a browser shows for s: block and <br>
// boundaries separate words, whitespace runs collapse to one space, the
// result is trimmed, and script/style content and elements hidden with the
// hidden attribute or an inline display:none are dropped. Elements hidden
// by a stylesheet rule cannot be seen in the snapshot and keep their text.
func renderedText(s *goquery.Selection) string {
	var b strings.Builder
	for _, n := range s.Nodes {
		writeText(&b, n)
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func writeText(b *strings.Builder, n *html.Node) {
	switch n.Type {
	case html.TextNode:
		b.WriteString(n.Data)
		return
	case html.ElementNode:
		if skippedElements[n.DataAtom] || hiddenElement(n) {
			return
		}
	}

	block := n.Type == html.ElementNode && blockElements[n.DataAtom]
	if block {
		b.WriteByte(' ')
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeText(b, c)
	}
	if block {
		b.WriteByte(' ')
	}
}

func hiddenElement(n *html.Node) bool {
	for _, a := range n.Attr {
		switch a.Key {
		case "hidden":
			return true
		case "style":
			if strings.Contains(strings.ReplaceAll(strings.ToLower(a.Val), " ", ""), "display:none") {
				return true
			}
		}
	}
	return false
}

var skippedElements = map[atom.Atom]bool{
	atom.Script:   true,
	atom.Style:    true,
	atom.Noscript: true,
	atom.Template: true,
}

// blockElements render on their own line, so their edges separate words.
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Fieldset: true, atom.Figcaption: true, atom.Figure: true, atom.Footer: true,
	atom.Form: true, atom.H1: true, atom.H2: true, atom.H3: true, atom.H4: true,
	atom.H5: true, atom.H6: true, atom.Header: true, atom.Hr: true, atom.Li: true,
	atom.Main: true, atom.Nav: true, atom.Ol: true, atom.P: true, atom.Pre: true,
	atom.Section: true, atom.Table: true, atom.Td: true, atom.Th: true, atom.Tr: true,
	atom.Ul: true,
}
