package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/toothbrush/wiki-llm-import/anythingllm/anythingllmtest"
)

// setFlags sets the package-level flag values for one test.
func setFlags(t *testing.T, url, key, dir string) {
	t.Helper()
	url0, key0, dir0, ws0, pause0, np0 := ServiceURL, APIKey, DocumentsDir, Workspace, Pause, NoProgress
	t.Cleanup(func() {
		ServiceURL, APIKey, DocumentsDir, Workspace, Pause, NoProgress = url0, key0, dir0, ws0, pause0, np0
	})

	ServiceURL = url
	APIKey = key
	DocumentsDir = dir
	Workspace = "MediaWiki Import"
	Pause = 0
	NoProgress = true
}

func writeDocs(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("contents of "+name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestRunUploadMissingKey(t *testing.T) {
	srv := anythingllmtest.NewServer("secret")
	defer srv.Close()
	setFlags(t, srv.URL, "", t.TempDir())

	err := runUpload(context.Background())
	if err == nil {
		t.Fatal("runUpload() succeeded without an API key")
	}
	for _, want := range []string{"ANYTHINGLLM_API_KEY", "Settings > Developer > API Keys"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error lacks %q:\n%v", want, err)
		}
	}
	if len(srv.Uploads()) != 0 || srv.ListCalls() != 0 {
		t.Error("service was contacted without an API key")
	}
}

func TestRunUploadServiceDown(t *testing.T) {
	srv := anythingllmtest.NewServer("secret")
	url := srv.URL
	srv.Close()
	setFlags(t, url, "secret", t.TempDir())

	err := runUpload(context.Background())
	if err == nil || !strings.Contains(err.Error(), "Is it running?") {
		t.Errorf("runUpload() = %v", err)
	}
}

func TestRunUploadMissingDirectory(t *testing.T) {
	srv := anythingllmtest.NewServer("secret")
	defer srv.Close()
	setFlags(t, srv.URL, "secret", filepath.Join(t.TempDir(), "nope"))

	err := runUpload(context.Background())
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("runUpload() = %v", err)
	}
	if len(srv.Uploads()) != 0 {
		t.Errorf("uploads = %+v", srv.Uploads())
	}
}

func TestRunUploadNoCandidates(t *testing.T) {
	srv := anythingllmtest.NewServer("secret")
	defer srv.Close()
	dir := t.TempDir()
	writeDocs(t, dir, "c.exe")
	setFlags(t, srv.URL, "secret", dir)

	err := runUpload(context.Background())
	if err == nil || !strings.Contains(err.Error(), "no documents found") {
		t.Fatalf("runUpload() = %v", err)
	}
	if !strings.Contains(err.Error(), ".txt") {
		t.Errorf("error should list supported extensions: %v", err)
	}
	if len(srv.Uploads()) != 0 {
		t.Errorf("uploads = %+v", srv.Uploads())
	}
}

func TestRunUpload(t *testing.T) {
	srv := anythingllmtest.NewServer("secret")
	defer srv.Close()
	dir := t.TempDir()
	writeDocs(t, dir, "a.txt", "b.md", "c.exe")
	setFlags(t, srv.URL, "secret", dir)

	if err := runUpload(context.Background()); err != nil {
		t.Fatalf("runUpload() = %v", err)
	}
	if got := len(srv.Uploads()); got != 2 {
		t.Errorf("uploads = %d, want 2", got)
	}
	if srv.CreateCalls() != 1 {
		t.Errorf("create calls = %d, want 1", srv.CreateCalls())
	}
}
