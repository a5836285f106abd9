package preflight

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prerender/internal/config"
)

func TestCheckDirectoryAccess_OK(t *testing.T) {
	dir := t.TempDir()
	result := CheckDirectoryAccess("Test", dir)
	if !result.Passed {
		t.Fatalf("expected pass, got %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotExist(t *testing.T) {
	result := CheckDirectoryAccess("Test", "/nonexistent/path/xyz")
	if result.Passed {
		t.Fatal("expected failure for nonexistent path")
	}
	if !strings.Contains(result.Detail, "does not exist") {
		t.Fatalf("unexpected detail: %s", result.Detail)
	}
}

func TestCheckDirectoryAccess_NotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	result := CheckDirectoryAccess("Test", f)
	if result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestCheckWritableTarget(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "logo.svg")
	if err := os.WriteFile(existing, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	blocker := filepath.Join(dir, "figures")
	if err := os.WriteFile(blocker, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name   string
		path   string
		passed bool
		detail string
	}{
		{"existing file", existing, true, "exists, writable"},
		{"existing dir", dir, true, "read/write ok"},
		{"nested missing", filepath.Join(dir, "a", "b", "qr.svg"), true, "will be created"},
		{"parent is file", filepath.Join(blocker, "qr.svg"), false, "is not a directory"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := CheckWritableTarget("Target", tt.path)
			if result.Passed != tt.passed {
				t.Fatalf("Passed = %v, want %v (%s)", result.Passed, tt.passed, result.Detail)
			}
			if !strings.Contains(result.Detail, tt.detail) {
				t.Fatalf("expected detail containing %q, got %q", tt.detail, result.Detail)
			}
		})
	}
}

func TestCheckDocument(t *testing.T) {
	dir := t.TempDir()
	withURL := filepath.Join(dir, "with.qmd")
	without := filepath.Join(dir, "without.qmd")
	if err := os.WriteFile(withURL, []byte("---\nfooter-url: https://example.org\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(without, []byte("no front matter\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if r := CheckDocument("Document", withURL); !r.Passed || !strings.Contains(r.Detail, "footer-url https://example.org") {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r := CheckDocument("Document", without); !r.Passed || !strings.Contains(r.Detail, "will skip") {
		t.Fatalf("unexpected result: %+v", r)
	}
	if r := CheckDocument("Document", filepath.Join(dir, "missing.qmd")); r.Passed {
		t.Fatalf("expected failure for missing document: %+v", r)
	}
}

func TestCheckAssetURL(t *testing.T) {
	var method, agent string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		method = r.Method
		agent = r.Header.Get("User-Agent")
		if r.URL.Path == "/gone" {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	r := CheckAssetURL(context.Background(), srv.Client(), srv.URL+"/logo.svg", "prerender-test")
	if !r.Passed {
		t.Fatalf("expected pass, got %s", r.Detail)
	}
	if method != http.MethodHead || agent != "prerender-test" {
		t.Fatalf("unexpected probe %s with agent %q", method, agent)
	}
	if r := CheckAssetURL(context.Background(), srv.Client(), srv.URL+"/gone", ""); r.Passed || !strings.Contains(r.Detail, "404") {
		t.Fatalf("expected 404 failure, got %+v", r)
	}
}

func TestRunAll_NilConfig(t *testing.T) {
	results := RunAll(context.Background(), nil, Options{})
	if results != nil {
		t.Fatal("expected nil results for nil config")
	}
}

func TestRunAll_QRDisabledWithoutAssets(t *testing.T) {
	cfg := config.Default()
	cfg.QR.Enabled = false
	if results := RunAll(context.Background(), &cfg, Options{}); len(results) != 0 {
		t.Fatalf("expected no checks, got %+v", results)
	}
}

func TestRunAll_MinimalConfig(t *testing.T) {
	dir := t.TempDir()
	doc := filepath.Join(dir, "poster.qmd")
	if err := os.WriteFile(doc, []byte("---\nfooter-url: https://example.org\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cfg := config.Default()
	cfg.Paths.CacheDir = filepath.Join(dir, ".asset-cache")
	cfg.Paths.Document = doc
	cfg.Paths.QROutput = filepath.Join(dir, "figures", "qr.svg")
	cfg.Assets.Entries = []config.AssetEntry{{Destination: filepath.Join(dir, "figures", "logo.svg"), URL: "https://example.org/logo.svg"}}

	results := RunAll(context.Background(), &cfg, Options{})
	// cache dir + one asset + document + qr output
	if len(results) != 4 {
		t.Fatalf("expected 4 results, got %d", len(results))
	}
	if failed := Failed(results); len(failed) != 0 {
		t.Fatalf("unexpected failures: %+v", failed)
	}
}

func TestRunAll_ProbesRemoteWhenRequested(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	dir := t.TempDir()
	cfg := config.Default()
	cfg.QR.Enabled = false
	cfg.Paths.CacheDir = filepath.Join(dir, ".asset-cache")
	cfg.Assets.Entries = []config.AssetEntry{{Destination: filepath.Join(dir, "a.svg"), URL: srv.URL + "/a.svg"}}

	results := RunAll(context.Background(), &cfg, Options{ProbeRemote: true, HTTPClient: srv.Client()})
	failed := Failed(results)
	if len(failed) != 1 || !strings.HasPrefix(failed[0].Name, "Remote ") {
		t.Fatalf("expected one failed remote probe, got %+v", failed)
	}
}
