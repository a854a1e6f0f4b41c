package docupload

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeFiles(t *testing.T, dir string, names ...string) {
	t.Helper()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte("content of "+name), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func baseNames(paths []string) []string {
	names := []string{}
	for _, p := range paths {
		names = append(names, filepath.Base(p))
	}
	return names
}

func TestListDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a.txt", "b.md", "c.exe", "D.PDF", "e.Docx", "f.doc", "g.html", "h.htm", "noext", "i.txt.bak")
	if err := os.Mkdir(filepath.Join(dir, "sub.txt"), 0755); err != nil {
		t.Fatal(err)
	}
	writeFiles(t, filepath.Join(dir, "sub.txt"), "nested.txt")

	files, err := ListDocuments(dir)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}

	want := []string{"D.PDF", "a.txt", "b.md", "e.Docx", "f.doc", "g.html", "h.htm"}
	if got := baseNames(files); !reflect.DeepEqual(got, want) {
		t.Errorf("files = %v, want %v", got, want)
	}
	for _, f := range files {
		if !filepath.IsAbs(f) {
			t.Errorf("%s is not absolute", f)
		}
	}
}

func TestListDocumentsFollowsFileSymlinks(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	writeFiles(t, outside, "real.txt")
	if err := os.Symlink(filepath.Join(outside, "real.txt"), filepath.Join(dir, "link.txt")); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(dir, "dirlink.txt")); err != nil {
		t.Fatal(err)
	}

	files, err := ListDocuments(dir)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if got := baseNames(files); !reflect.DeepEqual(got, []string{"link.txt"}) {
		t.Errorf("files = %v", got)
	}
}

func TestListDocumentsMissingDir(t *testing.T) {
	_, err := ListDocuments(filepath.Join(t.TempDir(), "nope"))
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not-found error, got %v", err)
	}
}

func TestListDocumentsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "only.exe")

	files, err := ListDocuments(dir)
	if err != nil {
		t.Fatalf("ListDocuments: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("files = %v", files)
	}
}

func TestSupportedExtensions(t *testing.T) {
	want := []string{".doc", ".docx", ".htm", ".html", ".md", ".pdf", ".txt"}
	if got := SupportedExtensions(); !reflect.DeepEqual(got, want) {
		t.Errorf("SupportedExtensions() = %v", got)
	}
}
