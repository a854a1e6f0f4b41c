package anythingllm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
)

// Per-call timeouts, roughly matched to how much work the service does for each.
const (
	PingTimeout       = 10 * time.Second
	WorkspaceTimeout  = 30 * time.Second
	UploadTimeout     = 60 * time.Second
	EmbeddingsTimeout = 120 * time.Second
)

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Body       string
}

func (e *StatusError) Error() string {
	if e.StatusCode == http.StatusForbidden || e.StatusCode == http.StatusUnauthorized {
		return fmt.Sprintf("anythingllm: authentication failed (%s), check your API key", e.Status)
	}
	return fmt.Sprintf("anythingllm: unexpected HTTP response status: %s: %s", e.Status, e.URL)
}

// Ping checks the service is up.  No auth required.
func (api *API) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, PingTimeout)
	defer cancel()

	ep, err := api.pingEndpoint()
	if err != nil {
		return fmt.Errorf("anythingllm: couldn't get ping endpoint: %w", err)
	}

	if _, err := api.request(ctx, http.MethodGet, ep, nil, "", false); err != nil {
		return fmt.Errorf("anythingllm: ping failed: %w", err)
	}
	return nil
}

func (api *API) ListWorkspaces(ctx context.Context) ([]Workspace, error) {
	ctx, cancel := context.WithTimeout(ctx, WorkspaceTimeout)
	defer cancel()

	ep, err := api.workspacesEndpoint()
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't get workspaces endpoint: %w", err)
	}

	var resp WorkspacesResponse
	if err := api.doJSON(ctx, http.MethodGet, ep, nil, &resp); err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't list workspaces: %w", err)
	}

	return resp.Workspaces, nil
}

func (api *API) CreateWorkspace(ctx context.Context, name string) (*Workspace, error) {
	ctx, cancel := context.WithTimeout(ctx, WorkspaceTimeout)
	defer cancel()

	ep, err := api.newWorkspaceEndpoint()
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't get new-workspace endpoint: %w", err)
	}

	var resp NewWorkspaceResponse
	if err := api.doJSON(ctx, http.MethodPost, ep, NewWorkspaceRequest{Name: name}, &resp); err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't create workspace '%s': %w", name, err)
	}
	if resp.Workspace == nil {
		return nil, fmt.Errorf("anythingllm: service returned no workspace for '%s': %s", name, resp.Message)
	}

	return resp.Workspace, nil
}

// UploadDocument sends data as a multipart file upload named filename.  The service parses and
// stores it, but doesn't embed it anywhere until UpdateEmbeddings is called.
func (api *API) UploadDocument(ctx context.Context, filename string, data []byte) (*UploadResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, UploadTimeout)
	defer cancel()

	ep, err := api.uploadEndpoint()
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't get upload endpoint: %w", err)
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition",
		fmt.Sprintf(`form-data; name="file"; filename="%s"`, quoteEscaper.Replace(filename)))
	h.Set("Content-Type", mimetype.Detect(data).String())
	part, err := mw.CreatePart(h)
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't create multipart section: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't write multipart body: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't finish multipart body: %w", err)
	}

	body, err := api.request(ctx, http.MethodPost, ep, &buf, mw.FormDataContentType(), true)
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't upload %s: %w", filename, err)
	}

	var resp UploadResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't parse json response: %w", err)
	}
	if !resp.Success && resp.Error != nil {
		return nil, fmt.Errorf("anythingllm: upload of %s rejected: %s", filename, *resp.Error)
	}

	return &resp, nil
}

// UpdateEmbeddings adds the given document locations to a workspace's embeddings.
func (api *API) UpdateEmbeddings(ctx context.Context, slug string, adds []string) error {
	ctx, cancel := context.WithTimeout(ctx, EmbeddingsTimeout)
	defer cancel()

	ep, err := api.updateEmbeddingsEndpoint(slug)
	if err != nil {
		return fmt.Errorf("anythingllm: couldn't get update-embeddings endpoint: %w", err)
	}

	req := UpdateEmbeddingsRequest{Adds: adds, Deletes: []string{}}
	var resp UpdateEmbeddingsResponse
	if err := api.doJSON(ctx, http.MethodPost, ep, req, &resp); err != nil {
		return fmt.Errorf("anythingllm: couldn't update embeddings of '%s': %w", slug, err)
	}

	return nil
}

func (api *API) doJSON(ctx context.Context, method string, ep *url.URL, in any, out any) error {
	var reqBody io.Reader
	contentType := ""
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("anythingllm: couldn't marshal request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
		contentType = "application/json"
	}

	body, err := api.request(ctx, method, ep, reqBody, contentType, true)
	if err != nil {
		return err
	}

	if err := json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("anythingllm: couldn't parse json response: %w", err)
	}
	return nil
}

func (api *API) request(ctx context.Context, method string, u *url.URL, body io.Reader, contentType string, auth bool) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't instantiate http request: %w", err)
	}

	req.Header.Add("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if auth {
		req.Header.Set("Authorization", "Bearer "+api.apiKey)
	}

	response, err := api.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't perform http request: %w", err)
	}

	respBody, err := io.ReadAll(response.Body)
	if err != nil {
		response.Body.Close()
		return nil, fmt.Errorf("anythingllm: couldn't read http response body: %w", err)
	}

	if err := response.Body.Close(); err != nil {
		return nil, fmt.Errorf("anythingllm: couldn't close response body: %w", err)
	}

	if response.StatusCode >= 200 && response.StatusCode < 300 {
		return respBody, nil
	}

	return nil, &StatusError{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		URL:        u.String(),
		Body:       string(respBody),
	}
}
