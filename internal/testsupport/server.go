package testsupport

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// AssetServer serves a single mutable asset and honours conditional
// requests against its ETag and Last-Modified values.
type AssetServer struct {
	*httptest.Server

	mu           sync.Mutex
	body         []byte
	etag         string
	lastModified string
	failStatus   int
	requests     []http.Header
}

// NewAssetServer starts a server for body. It is closed on test cleanup.
func NewAssetServer(t testing.TB, body, etag string) *AssetServer {
	t.Helper()
	s := &AssetServer{body: []byte(body), etag: etag}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

func (s *AssetServer) serve(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = append(s.requests, r.Header.Clone())

	if s.failStatus != 0 {
		http.Error(w, http.StatusText(s.failStatus), s.failStatus)
		return
	}
	if s.etag != "" {
		w.Header().Set("ETag", s.etag)
	}
	if s.lastModified != "" {
		w.Header().Set("Last-Modified", s.lastModified)
	}
	if match := r.Header.Get("If-None-Match"); match != "" && match == s.etag {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	if since := r.Header.Get("If-Modified-Since"); since != "" && s.etag == "" && since == s.lastModified {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	_, _ = w.Write(s.body)
}

// AssetURL returns the asset location.
func (s *AssetServer) AssetURL() string {
	return s.URL + "/asset.svg"
}

// SetBody replaces the served content and its ETag.
func (s *AssetServer) SetBody(body, etag string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.body = []byte(body)
	s.etag = etag
}

// SetLastModified sets the Last-Modified header value.
func (s *AssetServer) SetLastModified(value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastModified = value
}

// Fail makes subsequent requests answer with status. Zero restores normal
// responses.
func (s *AssetServer) Fail(status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failStatus = status
}

// Requests returns the headers of every request received so far.
func (s *AssetServer) Requests() []http.Header {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]http.Header, len(s.requests))
	copy(out, s.requests)
	return out
}

// LastRequest returns the headers of the most recent request.
func (s *AssetServer) LastRequest(t testing.TB) http.Header {
	t.Helper()
	reqs := s.Requests()
	if len(reqs) == 0 {
		t.Fatal("asset server received no requests")
	}
	return reqs[len(reqs)-1]
}

// UnreachableURL returns a URL on a server that has already been shut down.
func UnreachableURL(t testing.TB) string {
	t.Helper()
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL + "/gone.svg"
	srv.Close()
	return url
}
