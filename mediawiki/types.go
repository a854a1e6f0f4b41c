package mediawiki

// See https://www.mediawiki.org/wiki/API:Siteinfo.
type SiteInfo struct {
	SiteName    string `json:"sitename"`
	Generator   string `json:"generator"`
	Server      string `json:"server"`
	ArticlePath string `json:"articlepath"`
}

// Page is one entry of query.pages.  Depending on the prop= that was asked for, either the info
// fields (Touched, LastRevID) or Revisions will be populated.
type Page struct {
	PageID    int    `json:"pageid,omitempty"`
	Namespace int    `json:"ns"`
	Title     string `json:"title"`
	Missing   bool   `json:"missing,omitempty"`
	Invalid   bool   `json:"invalid,omitempty"`

	ContentModel string `json:"contentmodel,omitempty"`
	Touched      string `json:"touched,omitempty"` // ISO 8601, e.g. 2024-01-02T03:04:05Z
	LastRevID    int    `json:"lastrevid,omitempty"`
	Length       int    `json:"length,omitempty"`

	Revisions []Revision `json:"revisions,omitempty"`
}

type Revision struct {
	RevID     int    `json:"revid,omitempty"`
	Timestamp string `json:"timestamp,omitempty"`
	Slots     struct {
		Main Slot `json:"main"`
	} `json:"slots"`
}

type Slot struct {
	ContentModel  string `json:"contentmodel"`
	ContentFormat string `json:"contentformat"`
	Content       string `json:"content"`
}
