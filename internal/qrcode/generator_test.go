package qrcode_test

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"prerender/internal/logging"
	"prerender/internal/qrcode"
)

func newTestGenerator(t *testing.T) (*qrcode.Generator, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Stdout: &stdout, Stderr: &stderr})
	if err != nil {
		t.Fatalf("logging.New: %v", err)
	}
	return qrcode.NewGenerator(logger), &stdout, &stderr
}

func writeDocument(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "poster.qmd")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write document: %v", err)
	}
	return path
}

func TestGenerateWritesSVG(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "---\ntitle: Poster\nfooter-url: \"https://example.org/poster\"\n---\n\nBody\n")
	dest := filepath.Join(dir, "figures", "qr.svg")
	gen, stdout, stderr := newTestGenerator(t)

	res, err := gen.Generate(context.Background(), doc, dest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Status != qrcode.Generated || res.URL != "https://example.org/poster" {
		t.Fatalf("unexpected result: %+v", res)
	}
	data, err := os.ReadFile(dest)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 || len(data) != res.Bytes || !strings.Contains(string(data), "<svg") {
		t.Fatalf("unexpected svg output (%d bytes)", len(data))
	}
	if !strings.Contains(stdout.String(), "url=https://example.org/poster") {
		t.Fatalf("expected success log with url, got %q", stdout.String())
	}
	if stderr.Len() != 0 {
		t.Fatalf("expected nothing on stderr, got %q", stderr.String())
	}
}

func TestGenerateSkipsWithoutFooterURL(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "---\ntitle: Poster\n# footer-url: https://example.org\n---\n")
	dest := filepath.Join(dir, "figures", "qr.svg")
	gen, stdout, _ := newTestGenerator(t)

	res, err := gen.Generate(context.Background(), doc, dest)
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if res.Status != qrcode.Skipped {
		t.Fatalf("expected Skipped, got %v", res.Status)
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Fatalf("expected no output file, stat err = %v", err)
	}
	if _, err := os.Stat(filepath.Dir(dest)); !os.IsNotExist(err) {
		t.Fatalf("expected no output directory, stat err = %v", err)
	}
	if !strings.Contains(stdout.String(), "INFO") || !strings.Contains(stdout.String(), "skipping") {
		t.Fatalf("expected info-level skip log, got %q", stdout.String())
	}
}

func TestGenerateEncodeFailureKeepsPreviousArtifact(t *testing.T) {
	dir := t.TempDir()
	long := "https://example.org/" + strings.Repeat("a", 4000)
	doc := writeDocument(t, dir, "---\nfooter-url: "+long+"\n---\n")
	dest := filepath.Join(dir, "qr.svg")
	if err := os.WriteFile(dest, []byte("previous"), 0o644); err != nil {
		t.Fatalf("seed artifact: %v", err)
	}
	gen, _, _ := newTestGenerator(t)

	res, err := gen.Generate(context.Background(), doc, dest)
	if !errors.Is(err, qrcode.ErrEncode) {
		t.Fatalf("expected ErrEncode, got %v", err)
	}
	if res.Status != qrcode.EncodeFailure {
		t.Fatalf("expected EncodeFailure, got %v", res.Status)
	}
	data, err := os.ReadFile(dest)
	if err != nil || string(data) != "previous" {
		t.Fatalf("expected previous artifact to survive, got %q (%v)", data, err)
	}
}

func TestGenerateUnreadableDocument(t *testing.T) {
	dir := t.TempDir()
	gen, _, _ := newTestGenerator(t)

	_, err := gen.Generate(context.Background(), filepath.Join(dir, "missing.qmd"), filepath.Join(dir, "qr.svg"))
	if !errors.Is(err, qrcode.ErrDocumentUnreadable) {
		t.Fatalf("expected ErrDocumentUnreadable, got %v", err)
	}
}

func TestGenerateWriteFailure(t *testing.T) {
	dir := t.TempDir()
	doc := writeDocument(t, dir, "---\nfooter-url: https://example.org\n---\n")
	blocker := filepath.Join(dir, "figures")
	if err := os.WriteFile(blocker, []byte("not a dir"), 0o644); err != nil {
		t.Fatalf("write blocker: %v", err)
	}
	gen, _, _ := newTestGenerator(t)

	res, err := gen.Generate(context.Background(), doc, filepath.Join(blocker, "qr.svg"))
	if err == nil {
		t.Fatal("expected write error")
	}
	if res.Status != qrcode.WriteFailure {
		t.Fatalf("expected WriteFailure, got %v", res.Status)
	}
}

func TestGenerateHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	gen, _, _ := newTestGenerator(t)

	if _, err := gen.Generate(ctx, "poster.qmd", "qr.svg"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestStatusString(t *testing.T) {
	tests := map[qrcode.Status]string{
		qrcode.Generated:     "generated",
		qrcode.Skipped:       "skipped",
		qrcode.EncodeFailure: "encode failure",
		qrcode.WriteFailure:  "write failure",
	}
	for status, want := range tests {
		if got := status.String(); got != want {
			t.Errorf("%d.String() = %q, want %q", int(status), got, want)
		}
	}
}
