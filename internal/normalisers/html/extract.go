package html

import (
	"bytes"
	"fmt"
	"net/url"
	"path"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	nethtml "golang.org/x/net/html"

	"github.com/custodia-labs/sercha-assist/internal/core/domain"
)

const (
	// MinContentLength is the number of characters a content block must
	// exceed to be accepted.
	MinContentLength = 100

	// MinLineLength drops shorter lines during cleaning.
	MinLineLength = 20
)

// ContentSelectors are tried in order; the first element longer than
// MinContentLength wins.
var ContentSelectors = []string{
	"main",
	"article",
	".content",
	"#content",
	".main-content",
	"section",
	"div.container",
}

// strippedTags never carry page content.
const strippedTags = "script, style, noscript, template, svg, iframe, nav, header, footer"

// boilerplateWords mark navigation lines when they lead a line.
var boilerplateWords = map[string]bool{
	"home":    true,
	"menu":    true,
	"search":  true,
	"login":   true,
	"contact": true,
}

// skippedExtensions are link targets that are never HTML pages.
var skippedExtensions = map[string]bool{
	".pdf": true, ".jpg": true, ".jpeg": true, ".png": true, ".gif": true,
	".svg": true, ".webp": true, ".ico": true, ".css": true, ".js": true,
	".zip": true, ".gz": true, ".tar": true, ".rar": true, ".mp3": true,
	".mp4": true, ".avi": true, ".mov": true, ".doc": true, ".docx": true,
	".xls": true, ".xlsx": true, ".ppt": true, ".pptx": true, ".xml": true,
	".json": true, ".txt": true, ".woff": true, ".woff2": true, ".ttf": true,
	".eot": true,
}

// Page is the readable content of one HTML document.
type Page struct {
	// Title is the trimmed <title> text, empty if absent.
	Title string

	// Text is the cleaned main content, one block per line.
	Text string

	// Links are same-host page links in document order, without
	// fragments or duplicates. Empty when no base URL was given.
	Links []string
}

// Extract parses an HTML document. Links are resolved against base and
// only collected when base is non-nil.
func Extract(body []byte, base *url.URL) (*Page, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: parse html: %v", domain.ErrInvalidInput, err)
	}

	page := &Page{
		Title: collapseSpace(doc.Find("title").First().Text()),
	}

	// Links come from the raw page, navigation included.
	if base != nil {
		page.Links = extractLinks(doc, base)
	}

	doc.Find(strippedTags).Remove()
	page.Text = CleanLines(mainContent(doc))
	return page, nil
}

// mainContent returns the first selector match whose text exceeds
// MinContentLength, or the text of the whole body.
func mainContent(doc *goquery.Document) string {
	for _, selector := range ContentSelectors {
		var found string
		doc.Find(selector).EachWithBreak(func(_ int, s *goquery.Selection) bool {
			text := nodeText(s.Nodes...)
			if utf8.RuneCountInString(text) > MinContentLength {
				found = text
				return false
			}
			return true
		})
		if found != "" {
			return found
		}
	}
	return nodeText(doc.Find("body").Nodes...)
}

// nodeText joins every trimmed, non-empty text node below nodes with a
// newline.
func nodeText(nodes ...*nethtml.Node) string {
	var parts []string
	var walk func(*nethtml.Node)
	walk = func(n *nethtml.Node) {
		switch n.Type {
		case nethtml.TextNode:
			if t := collapseSpace(n.Data); t != "" {
				parts = append(parts, t)
			}
		case nethtml.CommentNode, nethtml.DoctypeNode:
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for _, n := range nodes {
		walk(n)
	}
	return strings.Join(parts, "\n")
}

// CleanLines drops lines shorter than MinLineLength characters and lines
// whose first word is a navigation word such as "home" or "login".
func CleanLines(text string) string {
	var kept []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if utf8.RuneCountInString(line) < MinLineLength {
			continue
		}
		if boilerplateWords[firstWord(line)] {
			continue
		}
		kept = append(kept, line)
	}
	return strings.Join(kept, "\n")
}

func firstWord(line string) string {
	end := strings.IndexFunc(line, func(r rune) bool {
		return !unicode.IsLetter(r)
	})
	if end < 0 {
		end = len(line)
	}
	return strings.ToLower(line[:end])
}

func collapseSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// extractLinks resolves every anchor and keeps same-host HTML pages.
func extractLinks(doc *goquery.Document, base *url.URL) []string {
	var links []string
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		link, ok := ResolveLink(base, href)
		if !ok || seen[link] {
			return
		}
		seen[link] = true
		links = append(links, link)
	})
	return links
}

// ResolveLink resolves href against base. It reports false for anchors,
// script, mail and phone links, other hosts, non-HTTP schemes and
// non-HTML resource extensions.
func ResolveLink(base *url.URL, href string) (string, bool) {
	href = strings.TrimSpace(href)
	if href == "" || strings.HasPrefix(href, "#") {
		return "", false
	}
	lower := strings.ToLower(href)
	for _, prefix := range []string{"javascript:", "mailto:", "tel:"} {
		if strings.HasPrefix(lower, prefix) {
			return "", false
		}
	}

	ref, err := url.Parse(href)
	if err != nil {
		return "", false
	}
	u := base.ResolveReference(ref)

	if u.Scheme != "http" && u.Scheme != "https" {
		return "", false
	}
	if !SameHost(base, u) {
		return "", false
	}
	if skippedExtensions[strings.ToLower(path.Ext(u.Path))] {
		return "", false
	}
	return CanonicalURL(u), true
}

// CanonicalURL is the form under which a page is fetched, deduplicated
// and cited: scheme and host lower-cased, fragment dropped and an empty
// path written as "/".
func CanonicalURL(u *url.URL) string {
	c := *u
	c.Scheme = strings.ToLower(c.Scheme)
	c.Host = strings.ToLower(c.Host)
	c.Fragment = ""
	c.RawFragment = ""
	if c.Path == "" && c.Opaque == "" {
		c.Path = "/"
		c.RawPath = ""
	}
	return c.String()
}

// SameHost reports whether a and b name the same host, ignoring case
// and a leading "www.".
func SameHost(a, b *url.URL) bool {
	return normalHost(a) == normalHost(b)
}

func normalHost(u *url.URL) string {
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
