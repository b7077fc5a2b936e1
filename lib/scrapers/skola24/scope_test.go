package skola24

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestScopeTransportCapture(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	transport := NewScopeTransport(nil)
	client := &http.Client{Transport: transport}

	_, err := transport.Scope()
	require.ErrorIs(t, err, ErrMissingAuthorizationScope)

	// traffic without the header captures nothing
	req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
	require.NoError(t, err)
	res, err := client.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	_, err = transport.Scope()
	require.ErrorIs(t, err, ErrMissingAuthorizationScope)

	req, err = http.NewRequest(http.MethodPost, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Scope", "scope-1")
	res, err = client.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	scope, err := transport.Scope()
	require.NoError(t, err)
	require.Equal(t, "scope-1", scope)

	// the first observed value wins
	req, err = http.NewRequest(http.MethodPost, ts.URL, nil)
	require.NoError(t, err)
	req.Header.Set("X-Scope", "scope-2")
	res, err = client.Do(req)
	require.NoError(t, err)
	res.Body.Close()

	scope, err = transport.Scope()
	require.NoError(t, err)
	require.Equal(t, "scope-1", scope)
}

func TestScopeTransportWait(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	transport := NewScopeTransport(nil)
	client := &http.Client{Transport: transport}

	ctx, cancel := context.WithTimeout(context.Background(), time.Millisecond*50)
	_, err := transport.WaitScope(ctx)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	cancel()

	go func() {
		time.Sleep(time.Millisecond * 10)
		req, err := http.NewRequest(http.MethodPost, ts.URL, nil)
		if err != nil {
			return
		}
		req.Header.Set("X-Scope", "late-scope")
		res, err := client.Do(req)
		if err != nil {
			return
		}
		res.Body.Close()
	}()

	ctx, cancel = context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	scope, err := transport.WaitScope(ctx)
	require.NoError(t, err)
	require.Equal(t, "late-scope", scope)
}
