package anythingllm

import (
	"fmt"
	"net/url"
)

// pingEndpoint is the unauthenticated liveness check.
func (a *API) pingEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("/api/ping")
}

// https://docs.anythingllm.com/ (Developer API, GET /v1/workspaces)
func (a *API) workspacesEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("/api/v1/workspaces")
}

func (a *API) newWorkspaceEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("/api/v1/workspace/new")
}

func (a *API) uploadEndpoint() (*url.URL, error) {
	return a.resolveEndpoint("/api/v1/document/upload")
}

func (a *API) updateEmbeddingsEndpoint(slug string) (*url.URL, error) {
	if slug == "" {
		return nil, fmt.Errorf("anythingllm: please provide a workspace slug")
	}
	return a.resolveEndpoint("/api/v1/workspace/" + url.PathEscape(slug) + "/update-embeddings")
}

// Resolve endpoint relative to the base URI, keeping any path prefix the base carries (for
// installs behind a reverse proxy at e.g. https://example.com/llm).
func (a *API) resolveEndpoint(endpoint string) (*url.URL, error) {
	if a.BaseURI == nil {
		return nil, fmt.Errorf("anythingllm: base URI not configured")
	}

	ref, err := url.Parse(a.BaseURI.Path + endpoint)
	if err != nil {
		return nil, fmt.Errorf("anythingllm: failed to parse endpoint ref: %w", err)
	}

	return a.BaseURI.ResolveReference(ref), nil
}
