package mirror

import "fmt"

// Status classifies the outcome of syncing one asset.
type Status int

const (
	// Downloaded means a fresh body was written to the destination.
	Downloaded Status = iota
	// NotModified means the server answered 304.
	NotModified
	// RemoteError means the server answered with a non-2xx, non-304 status
	// and the local copy was kept.
	RemoteError
	// RemoteUnreachable means the request failed in transport and the local
	// copy was kept.
	RemoteUnreachable
	// Missing means the fetch failed and no local copy exists.
	Missing
)

func (s Status) String() string {
	switch s {
	case Downloaded:
		return "downloaded"
	case NotModified:
		return "up to date"
	case RemoteError:
		return "remote error"
	case RemoteUnreachable:
		return "offline"
	case Missing:
		return "missing"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Result reports the outcome for one asset.
type Result struct {
	Destination string
	URL         string
	Status      Status
	// Code is the HTTP status when a response was received.
	Code int
	// CachedCopy is true when an existing local file was kept after a failure.
	CachedCopy bool
	// Bytes is the size of the body written for Downloaded.
	Bytes int
	// Err carries the underlying failure for diagnostics.
	Err error
}

// OK reports whether the destination holds usable content after the sync.
func (r Result) OK() bool {
	return r.Status != Missing
}

// Summary counts outcomes across a run.
type Summary struct {
	Total       int
	Downloaded  int
	NotModified int
	CachedCopy  int
	Missing     int
}

// Summarize tallies results.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		s.Total++
		switch r.Status {
		case Downloaded:
			s.Downloaded++
		case NotModified:
			s.NotModified++
		case RemoteError, RemoteUnreachable:
			s.CachedCopy++
		case Missing:
			s.Missing++
		}
	}
	return s
}
