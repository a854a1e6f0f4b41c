package docupload

import (
	"context"
	"fmt"
	"log"

	"github.com/toothbrush/wiki-llm-import/anythingllm"
)

// WorkspaceService is the slice of the AnythingLLM API the resolver needs.
type WorkspaceService interface {
	ListWorkspaces(ctx context.Context) ([]anythingllm.Workspace, error)
	CreateWorkspace(ctx context.Context, name string) (*anythingllm.Workspace, error)
}

type Resolver struct {
	Service WorkspaceService
	Logger  *log.Logger
}

// Resolve returns the slug of the workspace called name, creating it if there isn't one.  Any
// error here is fatal to an upload run: without a slug there is nothing to embed into.
func (r *Resolver) Resolve(ctx context.Context, name string) (string, error) {
	logger := r.Logger
	if logger == nil {
		logger = log.Default()
	}

	logger.Printf("Looking for workspace '%s'...\n", name)
	workspaces, err := r.Service.ListWorkspaces(ctx)
	if err != nil {
		return "", fmt.Errorf("docupload: couldn't list workspaces: %w", err)
	}

	for _, ws := range workspaces {
		if ws.Name == name {
			logger.Printf("Found existing workspace: %s\n", name)
			if ws.Slug == "" {
				return "", fmt.Errorf("docupload: workspace '%s' has no slug", name)
			}
			return ws.Slug, nil
		}
	}

	logger.Printf("Creating new workspace: %s\n", name)
	ws, err := r.Service.CreateWorkspace(ctx, name)
	if err != nil {
		return "", fmt.Errorf("docupload: failed to create workspace: %w", err)
	}
	if ws == nil || ws.Slug == "" {
		return "", fmt.Errorf("docupload: failed to create workspace '%s': no slug returned", name)
	}

	return ws.Slug, nil
}
