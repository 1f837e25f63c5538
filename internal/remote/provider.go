// Package remote fetches the read-only example tasks once at startup.
// Every failure degrades to an empty snapshot; nothing is retried.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"sync"
	"tasklist/internal/logx"
	"tasklist/internal/models"
	"time"
)

var ErrNotArray = errors.New("remote payload is not a JSON array")

type Provider struct {
	url    string
	client *http.Client
	logger *log.Logger

	once sync.Once
	done chan struct{}

	mu       sync.RWMutex
	snapshot []models.RemoteTask
	lastErr  error
}

func NewProvider(url string, client *http.Client, logger *log.Logger) *Provider {
	if client == nil {
		client = http.DefaultClient
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Provider{
		url:    url,
		client: client,
		logger: logger,
		done:   make(chan struct{}),
	}
}

func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// Start launches the single fetch in the background. Later calls do nothing.
func (p *Provider) Start(ctx context.Context) {
	p.once.Do(func() {
		go func() {
			p.apply(p.Fetch(ctx))
		}()
	})
}

// Load runs the single fetch in the caller's goroutine. It shares the
// once-guard with Start.
func (p *Provider) Load(ctx context.Context) {
	p.once.Do(func() {
		p.apply(p.Fetch(ctx))
	})
}

// Fetch performs the request and decodes the body. Callers normally go
// through Start or Load, which swallow the error.
func (p *Provider) Fetch(ctx context.Context) ([]models.RemoteTask, error) {
	if p.url == "" {
		return nil, errors.New("remote url is empty")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil, fmt.Errorf("remote responded %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	return p.decode(body)
}

func (p *Provider) decode(body []byte) ([]models.RemoteTask, error) {
	var raw json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, err
	}
	if !bytes.HasPrefix(bytes.TrimSpace(raw), []byte("[")) {
		return nil, ErrNotArray
	}

	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}

	out := make([]models.RemoteTask, 0, len(items))
	for i, item := range items {
		var rt models.RemoteTask
		if err := json.Unmarshal(item, &rt); err != nil {
			logx.Warn(p.logger, "remote_task_skipped", logx.Fields{"index": i, "error": err})
			continue
		}
		out = append(out, rt)
	}
	return out, nil
}

func (p *Provider) apply(items []models.RemoteTask, err error) {
	if err != nil {
		logx.Warn(p.logger, "remote_fetch_failed", logx.Fields{"url": p.url, "error": err})
		items = nil
	} else {
		logx.Info(p.logger, "remote_fetch_done", logx.Fields{"url": p.url, "count": len(items)})
	}

	p.mu.Lock()
	p.snapshot = items
	p.lastErr = err
	p.mu.Unlock()

	close(p.done)
}

// Snapshot returns a copy of the last applied collection, empty until the
// fetch has finished.
func (p *Provider) Snapshot() []models.RemoteTask {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]models.RemoteTask, len(p.snapshot))
	copy(out, p.snapshot)
	return out
}

// Done is closed once the fetch result has been applied.
func (p *Provider) Done() <-chan struct{} {
	return p.done
}

// Status reports "pending", "ok" or "failed" for the health endpoint.
func (p *Provider) Status() string {
	select {
	case <-p.done:
	default:
		return "pending"
	}
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.lastErr != nil {
		return "failed"
	}
	return "ok"
}
