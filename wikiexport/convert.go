package wikiexport

import (
	"fmt"
	"net/url"
	"strings"

	md "github.com/JohannesKaufmann/html-to-markdown"
	mdplugin "github.com/JohannesKaufmann/html-to-markdown/plugin"
	"github.com/PuerkitoBio/goquery"
)

// parser output chrome that means nothing outside the wiki
var strippedSelectors = []string{
	".mw-editsection",
	"#toc",
	".toc",
	".mw-empty-elt",
	"style",
	"script",
}

// MarkdownConverter turns MediaWiki parser output into GitHub flavoured Markdown, resolving
// relative links against BaseURL.
type MarkdownConverter struct {
	BaseURL *url.URL

	converter *md.Converter
}

func NewMarkdownConverter(baseURL *url.URL) *MarkdownConverter {
	c := &MarkdownConverter{BaseURL: baseURL}

	domain := ""
	if baseURL != nil {
		domain = baseURL.Host
	}

	// md.NewConverter only takes a hostname, so patch up the scheme ourselves.  Same trick as
	// https://github.com/JohannesKaufmann/html-to-markdown/issues/44
	opt := &md.Options{
		GetAbsoluteURL: func(selec *goquery.Selection, rawURL string, domain string) string {
			if domain == "" {
				return rawURL
			}

			u, err := url.Parse(rawURL)
			if err != nil {
				return rawURL
			}

			if u.Scheme == "data" {
				return rawURL
			}

			if u.Scheme == "" {
				u.Scheme = c.BaseURL.Scheme
			}
			if u.Host == "" {
				u.Host = domain
			}

			return u.String()
		},
	}

	c.converter = md.NewConverter(domain, true, opt)
	c.converter.Use(mdplugin.GitHubFlavored())
	return c
}

// Convert strips wiki chrome from html and returns it as Markdown.
func (c *MarkdownConverter) Convert(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("wikiexport: couldn't parse rendered HTML: %w", err)
	}

	for _, sel := range strippedSelectors {
		doc.Find(sel).Remove()
	}

	cleaned, err := doc.Find("body").Html()
	if err != nil {
		return "", fmt.Errorf("wikiexport: couldn't serialise cleaned HTML: %w", err)
	}

	markdown, err := c.converter.ConvertString(cleaned)
	if err != nil {
		return "", fmt.Errorf("wikiexport: failed to convert to Markdown: %w", err)
	}

	return strings.TrimSpace(markdown), nil
}
