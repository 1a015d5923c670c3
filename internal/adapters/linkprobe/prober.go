// Package linkprobe checks the reachability of cited URLs. Probes prefer
// HEAD and fall back to GET when a server rejects it; URLs with a fragment
// always GET so the anchor can be verified in the response HTML.
package linkprobe

import (
	"context"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"

	"fieldnotes/internal/domain"
	"fieldnotes/internal/ports"
)

const (
	userAgent   = "fieldnotes-linkcheck/1.0"
	maxBodySize = 2 << 20 // 2MB cap on fetched HTML
)

// Prober implements ports.LinkProber over HTTP
type Prober struct {
	client      *http.Client
	logger      *zap.Logger
	concurrency int
}

var _ ports.LinkProber = (*Prober)(nil)

// NewProber creates a prober with a tuned transport. concurrency bounds
// the number of in-flight probes during ProbeAll.
func NewProber(timeout time.Duration, concurrency int, logger *zap.Logger) *Prober {
	if concurrency < 1 {
		concurrency = 1
	}
	transport := &http.Transport{
		MaxIdleConns:        concurrency * 2,
		MaxIdleConnsPerHost: 2,
		IdleConnTimeout:     30 * time.Second,
	}
	return &Prober{
		client: &http.Client{
			Timeout:   timeout,
			Transport: transport,
		},
		logger:      logger,
		concurrency: concurrency,
	}
}

// Probe checks a single URL. Network failures are reported inside the
// record, not as an error.
func (p *Prober) Probe(ctx context.Context, rawURL string) domain.ProbeRecord {
	start := time.Now()
	rec := domain.ProbeRecord{URL: rawURL, CheckedAt: start}

	target, fragment, _ := strings.Cut(rawURL, "#")

	var resp *http.Response
	var err error
	if fragment == "" {
		resp, err = p.do(ctx, http.MethodHead, target)
		// Some servers reject or mishandle HEAD outright; retry with GET
		if retryWithGet(resp, err) {
			if err == nil {
				drain(resp)
			}
			resp, err = p.do(ctx, http.MethodGet, target)
		}
	} else {
		resp, err = p.do(ctx, http.MethodGet, target)
	}

	rec.Latency = time.Since(start)
	if err != nil {
		rec.Error = err.Error()
		p.logger.Debug("probe failed", zap.String("url", rawURL), zap.Error(err))
		return rec
	}
	defer drain(resp)

	rec.StatusCode = resp.StatusCode
	rec.OK = resp.StatusCode >= 200 && resp.StatusCode < 300
	if final := resp.Request.URL.String(); final != target {
		rec.RedirectedTo = final
	}

	if rec.OK && fragment != "" {
		found, err := hasAnchor(io.LimitReader(resp.Body, maxBodySize), fragment)
		if err != nil {
			rec.Error = "failed to parse response HTML: " + err.Error()
			rec.OK = false
		} else if !found {
			rec.Error = "fragment #" + fragment + " not found in page"
			rec.OK = false
		}
	}

	p.logger.Debug("probe finished",
		zap.String("url", rawURL),
		zap.Int("status", rec.StatusCode),
		zap.Bool("ok", rec.OK),
		zap.Duration("latency", rec.Latency))
	return rec
}

// ProbeAll checks many URLs with bounded concurrency. Order of results
// matches the input.
func (p *Prober) ProbeAll(ctx context.Context, urls []string) []domain.ProbeRecord {
	records := make([]domain.ProbeRecord, len(urls))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.concurrency)

	for i, url := range urls {
		g.Go(func() error {
			records[i] = p.Probe(ctx, url)
			return nil
		})
	}
	g.Wait()

	return records
}

// retryWithGet reports whether a HEAD attempt warrants a GET retry: a
// transport-level failure, or a server refusing the method.
func retryWithGet(resp *http.Response, err error) bool {
	if err != nil {
		return true
	}
	switch resp.StatusCode {
	case http.StatusForbidden, http.StatusMethodNotAllowed, http.StatusNotImplemented:
		return true
	}
	return false
}

func (p *Prober) do(ctx context.Context, method, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,*/*;q=0.8")
	return p.client.Do(req)
}

// hasAnchor reports whether the HTML document contains an element with
// the given id, or an <a name=...> with it.
func hasAnchor(r io.Reader, anchor string) (bool, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return false, err
	}

	var walk func(n *html.Node) bool
	walk = func(n *html.Node) bool {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key == "id" && attr.Val == anchor {
					return true
				}
				if n.Data == "a" && attr.Key == "name" && attr.Val == anchor {
					return true
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if walk(c) {
				return true
			}
		}
		return false
	}
	return walk(doc), nil
}

func drain(resp *http.Response) {
	io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodySize))
	resp.Body.Close()
}
