package mediawiki

import (
	"fmt"
	"net/url"

	"github.com/google/go-querystring/query"
)

// Everything lives behind the one api.php endpoint; only the query string changes.
func (a *API) endpointWithQuery(opts any) (*url.URL, error) {
	if a.Endpoint == nil {
		return nil, fmt.Errorf("mediawiki: API endpoint not configured")
	}

	v, err := query.Values(opts)
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't encode query params: %w", err)
	}

	ep := *a.Endpoint
	ep.RawQuery = v.Encode()
	return &ep, nil
}

func (a *API) siteInfoEndpoint() (*url.URL, error) {
	return a.endpointWithQuery(SiteInfoQuery{
		BaseQuery: newBaseQuery("query"),
		Meta:      "siteinfo",
		SIProp:    "general",
	})
}

func (a *API) allPagesEndpoint(opts AllPagesQuery) (*url.URL, error) {
	opts.BaseQuery = newBaseQuery("query")
	opts.Generator = "allpages"
	opts.Prop = "info"
	return a.endpointWithQuery(opts)
}

func (a *API) revisionsEndpoint(title string) (*url.URL, error) {
	if title == "" {
		return nil, fmt.Errorf("mediawiki: please provide a title to fetch revisions for")
	}

	return a.endpointWithQuery(RevisionsQuery{
		BaseQuery: newBaseQuery("query"),
		Prop:      "revisions",
		Titles:    title,
		RVProp:    "content|timestamp",
		RVSlots:   "main",
	})
}

func (a *API) parseEndpoint(title string) (*url.URL, error) {
	if title == "" {
		return nil, fmt.Errorf("mediawiki: please provide a title to parse")
	}

	return a.endpointWithQuery(ParseQuery{
		BaseQuery:          newBaseQuery("parse"),
		Page:               title,
		Prop:               "text",
		DisableEditSection: true,
	})
}

func (a *API) loginTokenEndpoint() (*url.URL, error) {
	return a.endpointWithQuery(TokensQuery{
		BaseQuery: newBaseQuery("query"),
		Meta:      "tokens",
		Type:      "login",
	})
}
