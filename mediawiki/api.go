package mediawiki

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
)

// SplitScheme strips a leading http:// or https:// from rawURL, returning the bare host (and
// whatever path followed it) plus the scheme.  Anything without an explicit scheme is https.
func SplitScheme(rawURL string) (host string, scheme string) {
	switch {
	case strings.HasPrefix(rawURL, "http://"):
		return strings.TrimPrefix(rawURL, "http://"), "http"
	case strings.HasPrefix(rawURL, "https://"):
		return strings.TrimPrefix(rawURL, "https://"), "https"
	}
	return rawURL, "https"
}

// NewAPI builds a client for the Action API living at {scheme}://{host}{path}api.php.
func NewAPI(host string, path string, scheme string) (*API, error) {
	if host == "" {
		return nil, fmt.Errorf("mediawiki: configure your wiki host with --url")
	}
	if scheme == "" {
		scheme = "https"
	}
	if path == "" {
		path = "/"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}

	u, err := url.ParseRequestURI(fmt.Sprintf("%s://%s%sapi.php", scheme, strings.TrimSuffix(host, "/"), path))
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't parse API URL: %w", err)
	}

	// login state lives in session cookies
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't create cookie jar: %w", err)
	}

	return &API{
		Endpoint: u,
		Client:   &http.Client{Jar: jar},
	}, nil
}

// UserAgent is sent with every request; many wikis reject the Go default.
var UserAgent = "wiki-llm-import/1.0 (+https://github.com/toothbrush/wiki-llm-import)"

type API struct {
	// Full URL of api.php, e.g. https://wiki.example.com/w/api.php
	Endpoint *url.URL

	// An HTTP client - you can substitute VCR or whatnot.  Keep a cookie jar on it if you want
	// Login to stick.
	Client *http.Client

	// Set after a successful Login.
	Username string
}
