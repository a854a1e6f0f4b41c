package mediawiki

// BaseQuery is carried by every Action API request.  formatversion=2 gives us plain JSON arrays
// and booleans instead of the legacy shape.
type BaseQuery struct {
	Action        string `url:"action"`
	Format        string `url:"format"`
	FormatVersion int    `url:"formatversion"`
}

func newBaseQuery(action string) BaseQuery {
	return BaseQuery{Action: action, Format: "json", FormatVersion: 2}
}

// SiteInfoQuery defines the query parameters for:
// https://www.mediawiki.org/wiki/API:Siteinfo
type SiteInfoQuery struct {
	BaseQuery
	Meta   string `url:"meta"`
	SIProp string `url:"siprop,omitempty"`
}

// AllPagesQuery defines the query parameters for the allpages generator combined with prop=info,
// so that each listed page also carries its `touched` timestamp:
// https://www.mediawiki.org/wiki/API:Allpages
type AllPagesQuery struct {
	BaseQuery
	Generator string `url:"generator"`
	Prop      string `url:"prop"`

	Namespace int    `url:"gapnamespace"`       // 0 = main/article namespace
	Limit     int    `url:"gaplimit,omitempty"` // batch size; 1-500 for normal users
	From      string `url:"gapfrom,omitempty"`  // start listing at this title

	// Continuation.  MediaWiki hands these back in the 'continue' object of each response; we
	// echo them on the next request.
	Continue    string `url:"continue,omitempty"`
	GapContinue string `url:"gapcontinue,omitempty"`
}

// RevisionsQuery defines the query parameters for fetching the latest revision text of a page:
// https://www.mediawiki.org/wiki/API:Revisions
type RevisionsQuery struct {
	BaseQuery
	Prop    string `url:"prop"`
	Titles  string `url:"titles"`
	RVProp  string `url:"rvprop"`
	RVSlots string `url:"rvslots"`
}

// ParseQuery defines the query parameters for fetching the rendered HTML of a page:
// https://www.mediawiki.org/wiki/API:Parsing_wikitext
type ParseQuery struct {
	BaseQuery
	Page               string `url:"page"`
	Prop               string `url:"prop"`
	DisableEditSection bool   `url:"disableeditsection,omitempty"`
}

// TokensQuery defines the query parameters for:
// https://www.mediawiki.org/wiki/API:Tokens
type TokensQuery struct {
	BaseQuery
	Meta string `url:"meta"`
	Type string `url:"type"`
}

// LoginForm is POSTed as application/x-www-form-urlencoded:
// https://www.mediawiki.org/wiki/API:Login
type LoginForm struct {
	BaseQuery
	Name     string `url:"lgname"`
	Password string `url:"lgpassword"`
	Token    string `url:"lgtoken"`
}
