package wikiexport

import "fmt"

// SourceName is recorded in the provenance footer of every exported document.
const SourceName = "MediaWiki"

// UnknownTimestamp stands in for a missing last-modified marker.
const UnknownTimestamp = "Unknown"

// PageRecord is what we know about a page once its content has been fetched.
type PageRecord struct {
	Title        string
	Content      string
	LastModified string // empty when the wiki didn't tell us
}

// FormatPage renders record as a plain-text document: a heading, the content verbatim, and a
// provenance footer.
func FormatPage(record PageRecord) string {
	lastModified := record.LastModified
	if lastModified == "" {
		lastModified = UnknownTimestamp
	}

	return fmt.Sprintf(`# %s

%s

---
Source: %s
Page: %s
Last Modified: %s
`,
		record.Title,
		record.Content,
		SourceName,
		record.Title,
		lastModified)
}
