package mediawiki

// APIError is the 'error' object MediaWiki returns with an HTTP 200.
type APIError struct {
	Code string `json:"code"`
	Info string `json:"info"`
}

func (e *APIError) Error() string {
	return "mediawiki: api error " + e.Code + ": " + e.Info
}

type apiEnvelope struct {
	Error *APIError `json:"error,omitempty"`
}

type SiteInfoResponse struct {
	apiEnvelope
	Query struct {
		General SiteInfo `json:"general"`
	} `json:"query"`
}

// QueryPagesResponse covers both the allpages generator and prop=revisions lookups; both come
// back as query.pages.
type QueryPagesResponse struct {
	apiEnvelope
	BatchComplete bool `json:"batchcomplete"`

	// Present only if there are more results.  Keys are the parameter names to send back.
	Continue map[string]string `json:"continue,omitempty"`

	Query struct {
		Pages []Page `json:"pages"`
	} `json:"query"`
}

type ParseResponse struct {
	apiEnvelope
	Parse struct {
		Title  string `json:"title"`
		PageID int    `json:"pageid"`
		Text   string `json:"text"`
	} `json:"parse"`
}

type TokensResponse struct {
	apiEnvelope
	Query struct {
		Tokens struct {
			LoginToken string `json:"logintoken"`
		} `json:"tokens"`
	} `json:"query"`
}

type LoginResponse struct {
	apiEnvelope
	Login struct {
		Result   string `json:"result"` // Success, Failed, WrongToken, Aborted...
		Reason   string `json:"reason,omitempty"`
		UserID   int    `json:"lguserid,omitempty"`
		Username string `json:"lgusername,omitempty"`
	} `json:"login"`
}
