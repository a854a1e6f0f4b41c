package anythingllm

// Workspace as returned by /api/v1/workspaces and /api/v1/workspace/new.  Only the fields we
// care about; the service sends plenty more.
type Workspace struct {
	ID        int    `json:"id,omitempty"`
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	CreatedAt string `json:"createdAt,omitempty"`
}

// Document describes one processed upload.  Location is what update-embeddings wants, e.g.
// custom-documents/page.txt-0b6f....json
type Document struct {
	ID                 string `json:"id,omitempty"`
	Location           string `json:"location"`
	Name               string `json:"name,omitempty"`
	Title              string `json:"title,omitempty"`
	WordCount          int    `json:"wordCount,omitempty"`
	TokenCountEstimate int    `json:"token_count_estimate,omitempty"`
}

type WorkspacesResponse struct {
	Workspaces []Workspace `json:"workspaces"`
}

type NewWorkspaceRequest struct {
	Name string `json:"name"`
}

type NewWorkspaceResponse struct {
	Workspace *Workspace `json:"workspace"`
	Message   string     `json:"message,omitempty"`
}

type UploadResponse struct {
	Success   bool       `json:"success"`
	Error     *string    `json:"error"`
	Documents []Document `json:"documents"`
}

// FirstLocation returns the storage location of the first processed document, or "" if the
// service didn't report one.
func (r *UploadResponse) FirstLocation() string {
	if r == nil || len(r.Documents) == 0 {
		return ""
	}
	return r.Documents[0].Location
}

type UpdateEmbeddingsRequest struct {
	Adds    []string `json:"adds"`
	Deletes []string `json:"deletes"`
}

type UpdateEmbeddingsResponse struct {
	Workspace *Workspace `json:"workspace"`
}
