package docupload

import (
	"bytes"
	"context"
	"errors"
	"log"
	"testing"

	"github.com/toothbrush/wiki-llm-import/anythingllm"
)

type fakeWorkspaces struct {
	workspaces []anythingllm.Workspace
	listErr    error
	createErr  error

	listCalls   int
	createCalls int
}

func (f *fakeWorkspaces) ListWorkspaces(ctx context.Context) ([]anythingllm.Workspace, error) {
	f.listCalls++
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.workspaces, nil
}

func (f *fakeWorkspaces) CreateWorkspace(ctx context.Context, name string) (*anythingllm.Workspace, error) {
	f.createCalls++
	if f.createErr != nil {
		return nil, f.createErr
	}
	ws := anythingllm.Workspace{Name: name, Slug: "created-slug"}
	f.workspaces = append(f.workspaces, ws)
	return &ws, nil
}

func quietLogger() *log.Logger {
	return log.New(&bytes.Buffer{}, "", 0)
}

func TestResolveExisting(t *testing.T) {
	svc := &fakeWorkspaces{workspaces: []anythingllm.Workspace{
		{Name: "MediaWiki Import Old", Slug: "old"},
		{Name: "MediaWiki Import", Slug: "mediawiki-import"},
	}}
	r := &Resolver{Service: svc, Logger: quietLogger()}

	for i := 0; i < 2; i++ {
		slug, err := r.Resolve(context.Background(), "MediaWiki Import")
		if err != nil {
			t.Fatalf("Resolve: %v", err)
		}
		if slug != "mediawiki-import" {
			t.Errorf("slug = %q", slug)
		}
	}
	if svc.createCalls != 0 {
		t.Errorf("create calls = %d, want 0", svc.createCalls)
	}
}

func TestResolveCreates(t *testing.T) {
	svc := &fakeWorkspaces{workspaces: []anythingllm.Workspace{{Name: "mediawiki import", Slug: "case"}}}
	r := &Resolver{Service: svc, Logger: quietLogger()}

	slug, err := r.Resolve(context.Background(), "MediaWiki Import")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if slug != "created-slug" || svc.createCalls != 1 {
		t.Errorf("slug = %q, create calls = %d", slug, svc.createCalls)
	}

	// second run finds the one we just made
	if _, err := r.Resolve(context.Background(), "MediaWiki Import"); err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if svc.createCalls != 1 {
		t.Errorf("create calls = %d, want 1", svc.createCalls)
	}
}

func TestResolveCreateFailureIsFatal(t *testing.T) {
	boom := errors.New("boom")
	svc := &fakeWorkspaces{createErr: boom}
	r := &Resolver{Service: svc, Logger: quietLogger()}

	if _, err := r.Resolve(context.Background(), "X"); !errors.Is(err, boom) {
		t.Errorf("expected create error, got %v", err)
	}
}

func TestResolveListFailureIsFatal(t *testing.T) {
	boom := errors.New("boom")
	svc := &fakeWorkspaces{listErr: boom}
	r := &Resolver{Service: svc, Logger: quietLogger()}

	if _, err := r.Resolve(context.Background(), "X"); !errors.Is(err, boom) {
		t.Errorf("expected list error, got %v", err)
	}
	if svc.createCalls != 0 {
		t.Errorf("create should not be attempted after a list failure")
	}
}
