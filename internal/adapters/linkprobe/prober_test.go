package linkprobe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testProber() *Prober {
	return NewProber(5*time.Second, 4, zap.NewNop())
}

func TestProbe_OK(t *testing.T) {
	var sawHead atomic.Bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			sawHead.Store(true)
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := testProber().Probe(context.Background(), srv.URL)

	assert.True(t, rec.OK)
	assert.Equal(t, http.StatusOK, rec.StatusCode)
	assert.Empty(t, rec.Error)
	assert.True(t, sawHead.Load(), "reachability checks should use HEAD")
	assert.NotZero(t, rec.Latency)
}

func TestProbe_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	rec := testProber().Probe(context.Background(), srv.URL+"/gone")

	assert.False(t, rec.OK)
	assert.Equal(t, http.StatusNotFound, rec.StatusCode)
}

func TestProbe_HeadRejectedFallsBackToGet(t *testing.T) {
	var gets atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodHead:
			w.WriteHeader(http.StatusMethodNotAllowed)
		case http.MethodGet:
			gets.Add(1)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()

	rec := testProber().Probe(context.Background(), srv.URL)

	assert.True(t, rec.OK)
	assert.Equal(t, int32(1), gets.Load())
}

func TestProbe_HeadForbiddenFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// CDN-style bot filtering: HEAD gets a 403, GET works.
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := testProber().Probe(context.Background(), srv.URL)

	assert.True(t, rec.OK)
	assert.Equal(t, http.StatusOK, rec.StatusCode)
}

func TestProbe_HeadTransportFailureFallsBackToGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			hj, ok := w.(http.Hijacker)
			require.True(t, ok)
			conn, _, err := hj.Hijack()
			require.NoError(t, err)
			conn.Close() // Drop the connection mid-request
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	rec := testProber().Probe(context.Background(), srv.URL)

	assert.True(t, rec.OK, "HEAD dying on the wire should not mark the URL broken: %s", rec.Error)
	assert.Equal(t, http.StatusOK, rec.StatusCode)
	assert.Empty(t, rec.Error)
}

func TestProbe_Redirect(t *testing.T) {
	final := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer final.Close()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, final.URL+"/moved", http.StatusMovedPermanently)
	}))
	defer srv.Close()

	rec := testProber().Probe(context.Background(), srv.URL)

	assert.True(t, rec.OK)
	assert.Equal(t, final.URL+"/moved", rec.RedirectedTo)
}

func TestProbe_Fragment(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method, "fragment checks need the body")
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte(`<html><body><h2 id="install">Install</h2><a name="legacy"></a></body></html>`))
	}))
	defer srv.Close()

	p := testProber()

	rec := p.Probe(context.Background(), srv.URL+"#install")
	assert.True(t, rec.OK)

	rec = p.Probe(context.Background(), srv.URL+"#legacy")
	assert.True(t, rec.OK, "anchors via <a name> should resolve")

	rec = p.Probe(context.Background(), srv.URL+"#missing")
	assert.False(t, rec.OK)
	assert.Contains(t, rec.Error, "#missing")
	assert.Equal(t, http.StatusOK, rec.StatusCode, "page loads even when the anchor is missing")
}

func TestProbe_NetworkError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Closed server: connection refused

	rec := testProber().Probe(context.Background(), srv.URL)

	assert.False(t, rec.OK)
	assert.NotEmpty(t, rec.Error)
	assert.Zero(t, rec.StatusCode)
}

func TestProbeAll(t *testing.T) {
	var inFlight, peak atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		n := inFlight.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(20 * time.Millisecond)
		inFlight.Add(-1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	p := NewProber(5*time.Second, 2, zap.NewNop())

	urls := []string{
		srv.URL + "/a",
		srv.URL + "/b",
		srv.URL + "/c",
		srv.URL + "/d",
	}
	records := p.ProbeAll(context.Background(), urls)

	require.Len(t, records, 4)
	for i, rec := range records {
		assert.Equal(t, urls[i], rec.URL, "results keep input order")
		assert.True(t, rec.OK)
	}
	assert.LessOrEqual(t, peak.Load(), int32(2), "concurrency stays bounded")
}
