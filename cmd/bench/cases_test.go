package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, h http.HandlerFunc) *Runner {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return NewRunner(Options{BaseURL: srv.URL, Concurrency: 2, Duration: 100 * time.Millisecond})
}

func TestHTTPCheckStatuses(t *testing.T) {
	r := newTestRunner(t, func(w http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/ok":
			w.WriteHeader(http.StatusOK)
		case "/unconfigured":
			w.WriteHeader(http.StatusInternalServerError)
		default:
			w.WriteHeader(http.StatusTeapot)
		}
	})
	want := expect{ok: []int{200}, pending: []int{500}}

	tests := []struct {
		path string
		want Status
	}{
		{"/ok", StatusPass},
		{"/unconfigured", StatusPending},
		{"/other", StatusFail},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			res := r.httpCheck("check", http.MethodGet, tt.path, nil, want).Run(context.Background(), r)
			assert.Equal(t, tt.want, res.Status, res.Note)
		})
	}
}

func TestRequestIDCheck(t *testing.T) {
	r := newTestRunner(t, func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("X-Request-ID", req.Header.Get("X-Request-ID"))
	})
	assert.Equal(t, StatusPass, r.requestID(context.Background(), r).Status)

	r = newTestRunner(t, func(w http.ResponseWriter, req *http.Request) {})
	assert.Equal(t, StatusFail, r.requestID(context.Background(), r).Status)
}

func TestLoadReportsThroughput(t *testing.T) {
	r := newTestRunner(t, func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	})
	res := r.load(context.Background(), http.MethodPost, "/generate-plan", map[string]any{"source": "Mumbai"})

	require.Equal(t, StatusPass, res.Status, res.Note)
	assert.Contains(t, res.Note, "rps=")
	assert.Contains(t, res.Note, "p95=")
}

func TestDBChecksSkipWithoutDatabase(t *testing.T) {
	r := NewRunner(Options{})
	for _, c := range r.checks()[:4] {
		assert.Equal(t, StatusSkip, c.Run(context.Background(), r).Status, c.Name)
	}
}

func TestPercentile(t *testing.T) {
	sorted := []time.Duration{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}
	for i := range sorted {
		sorted[i] *= time.Millisecond
	}
	assert.Equal(t, 5*time.Millisecond, percentile(sorted, 50))
	assert.Equal(t, 10*time.Millisecond, percentile(sorted, 95))
	assert.Equal(t, time.Millisecond, percentile(sorted[:1], 50))
}

func TestWithoutDropsKey(t *testing.T) {
	body := planBody(false)
	out := without(body, "interests")
	assert.NotContains(t, out, "interests")
	assert.Contains(t, body, "interests")
	assert.Equal(t, len(body)-1, len(out))
}
