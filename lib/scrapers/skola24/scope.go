package skola24

import (
	"context"
	"net/http"
	"sync"
)

// ScopeTransport observes outgoing requests for the X-Scope
// authorization header the timetable viewer attaches to its own API
// calls. Requests pass through unmodified; the first value seen wins
// and later writes are ignored. The captured value is handed out as a
// plain string so nothing downstream shares mutable state with the
// transport.
type ScopeTransport struct {
	base http.RoundTripper

	once     sync.Once
	captured chan struct{}
	scope    string
}

func NewScopeTransport(base http.RoundTripper) *ScopeTransport {
	if base == nil {
		base = http.DefaultTransport
	}
	return &ScopeTransport{
		base:     base,
		captured: make(chan struct{}),
	}
}

func (t *ScopeTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if v := req.Header.Get("X-Scope"); v != "" {
		t.once.Do(func() {
			t.scope = v
			close(t.captured)
		})
	}
	return t.base.RoundTrip(req)
}

// Scope returns the captured authorization scope. Callers invoke it
// after the schedule page's initial navigation has completed; if that
// traffic never carried the header the session is unusable and the
// whole run aborts.
func (t *ScopeTransport) Scope() (string, error) {
	select {
	case <-t.captured:
		return t.scope, nil
	default:
		return "", ErrMissingAuthorizationScope
	}
}

// WaitScope blocks until a scope has been captured or ctx ends.
func (t *ScopeTransport) WaitScope(ctx context.Context) (string, error) {
	select {
	case <-t.captured:
		return t.scope, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
