package mediawiki

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("mediawiki: unexpected HTTP response status: %s: %s", e.Status, e.URL)
}

func (api *API) SiteInfo(ctx context.Context) (*SiteInfo, error) {
	ep, err := api.siteInfoEndpoint()
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't get siteinfo endpoint: %w", err)
	}

	var resp SiteInfoResponse
	if err := api.getJSON(ctx, ep, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	return &resp.Query.General, nil
}

func (api *API) GetAllPages(ctx context.Context, opts AllPagesQuery) (*QueryPagesResponse, error) {
	ep, err := api.allPagesEndpoint(opts)
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't get allpages endpoint: %w", err)
	}

	var resp QueryPagesResponse
	if err := api.getJSON(ctx, ep, &resp); err != nil {
		return nil, err
	}
	if resp.Error != nil {
		return nil, resp.Error
	}

	return &resp, nil
}

// GetPageText returns the wikitext of the latest revision of title.
func (api *API) GetPageText(ctx context.Context, title string) (string, error) {
	ep, err := api.revisionsEndpoint(title)
	if err != nil {
		return "", fmt.Errorf("mediawiki: couldn't get revisions endpoint: %w", err)
	}

	var resp QueryPagesResponse
	if err := api.getJSON(ctx, ep, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}

	if len(resp.Query.Pages) == 0 {
		return "", fmt.Errorf("mediawiki: no page returned for '%s'", title)
	}
	page := resp.Query.Pages[0]
	if page.Missing || page.Invalid {
		return "", fmt.Errorf("mediawiki: page '%s' is missing or invalid", title)
	}
	if len(page.Revisions) == 0 {
		// a page with no revisions visible to us; mwclient treats this as empty text.
		return "", nil
	}

	return page.Revisions[0].Slots.Main.Content, nil
}

// GetRenderedHTML returns the parser output of title, without edit-section links.
func (api *API) GetRenderedHTML(ctx context.Context, title string) (string, error) {
	ep, err := api.parseEndpoint(title)
	if err != nil {
		return "", fmt.Errorf("mediawiki: couldn't get parse endpoint: %w", err)
	}

	var resp ParseResponse
	if err := api.getJSON(ctx, ep, &resp); err != nil {
		return "", err
	}
	if resp.Error != nil {
		return "", resp.Error
	}

	return resp.Parse.Text, nil
}

func (api *API) getJSON(ctx context.Context, ep *url.URL, v any) error {
	body, err := api.request(ctx, http.MethodGet, ep, nil)
	if err != nil {
		return fmt.Errorf("mediawiki: couldn't perform request: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("mediawiki: couldn't parse json response: %w", err)
	}
	return nil
}

func (api *API) postFormJSON(ctx context.Context, form url.Values, v any) error {
	body, err := api.request(ctx, http.MethodPost, api.Endpoint, form)
	if err != nil {
		return fmt.Errorf("mediawiki: couldn't perform request: %w", err)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("mediawiki: couldn't parse json response: %w", err)
	}
	return nil
}

func (api *API) request(ctx context.Context, method string, u *url.URL, form url.Values) ([]byte, error) {
	var reqBody io.Reader
	if form != nil {
		reqBody = strings.NewReader(form.Encode())
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), reqBody)
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	req.Header.Set("User-Agent", UserAgent)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't perform http request: %w", err)
	}

	body, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, fmt.Errorf("mediawiki: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("mediawiki: couldn't close response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return body, nil
	}

	return nil, &StatusError{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		URL:        u.String(),
	}
}
