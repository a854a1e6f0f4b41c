package anythingllm

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
)

// DefaultURL is where a local AnythingLLM desktop/docker install listens.
const DefaultURL = "http://localhost:3001"

func NewAPI(baseURL string, apiKey string) (*API, error) {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	if apiKey == "" {
		return nil, fmt.Errorf("anythingllm: API key is empty, please provide --api-key")
	}

	u, err := url.ParseRequestURI(strings.TrimRight(baseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't parse base URL: %w", err)
	}

	return &API{
		BaseURI: u,
		Client:  &http.Client{},
		apiKey:  apiKey,
	}, nil
}

type API struct {
	// e.g. http://localhost:3001
	BaseURI *url.URL

	// An HTTP client - you can substitute VCR or whatnot.
	Client *http.Client

	apiKey string
}
