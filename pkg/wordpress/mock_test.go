package wordpress

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/genego-hq/genego-site/pkg/httpclient"
)

type mockReply struct {
	status int
	body   string
	err    error
}

type mockResponse struct {
	body       []byte
	statusCode int
}

func (r mockResponse) Body() []byte    { return r.body }
func (r mockResponse) StatusCode() int { return r.statusCode }

// mockHTTPClient answers by exact URL and records every request.
type mockHTTPClient struct {
	t       *testing.T
	replies map[string]mockReply

	mu    sync.Mutex
	calls []string
}

func newMockClient(t *testing.T, replies map[string]mockReply) *mockHTTPClient {
	return &mockHTTPClient{t: t, replies: replies}
}

func (m *mockHTTPClient) Get(ctx context.Context, url string, headers map[string]string) (httpclient.Response, error) {
	m.mu.Lock()
	m.calls = append(m.calls, url)
	m.mu.Unlock()

	reply, ok := m.replies[url]
	if !ok {
		return nil, errors.New("connection refused: " + url)
	}
	if reply.err != nil {
		return nil, reply.err
	}
	status := reply.status
	if status == 0 {
		status = 200
	}
	return mockResponse{body: []byte(reply.body), statusCode: status}, nil
}

func (m *mockHTTPClient) callCount(url string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, c := range m.calls {
		if c == url {
			n++
		}
	}
	return n
}

// memCache is an in-memory Cache without expiry.
type memCache struct {
	mu   sync.Mutex
	data map[string][]byte
	ttls map[string]time.Duration
}

func newMemCache() *memCache {
	return &memCache{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (c *memCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.data[key]
	return v, ok, nil
}

func (c *memCache) Put(_ context.Context, key string, value []byte, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = append([]byte(nil), value...)
	c.ttls[key] = ttl
	return nil
}

// recordingLogger keeps warning messages.
type recordingLogger struct {
	mu    sync.Mutex
	warns []string
}

func (l *recordingLogger) InfoObj(string, string, interface{})  {}
func (l *recordingLogger) DebugObj(string, string, interface{}) {}
func (l *recordingLogger) ErrorObj(string, string, interface{}) {}
func (l *recordingLogger) WarnObj(msg, _ string, _ interface{}) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.warns = append(l.warns, msg)
}

const testBase = "https://cms.genego.ch"

func testTiers(t *testing.T, client HTTPClient, opts Options) (*pluginTier, *standardTier) {
	t.Helper()
	if opts.BaseURL == "" {
		opts.BaseURL = testBase
	}
	tiers := DefaultTiers(client, opts)
	if len(tiers) != 2 {
		t.Fatalf("expected 2 tiers, got %d", len(tiers))
	}
	return tiers[0].(*pluginTier), tiers[1].(*standardTier)
}
