// Package testutil provides testing utilities for the carbon intensity client.
package testutil

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"
)

// MockResponse defines the behavior of a mock API endpoint.
type MockResponse struct {
	StatusCode int
	Body       string
	Delay      time.Duration
}

// MockAPI is a configurable mock Carbon Intensity API server.
type MockAPI struct {
	server   *httptest.Server
	mu       sync.RWMutex
	handlers map[string]http.HandlerFunc
	catchAll http.HandlerFunc

	// Tracking
	requestCount int
	paths        []string
}

// NewMockAPI creates a new mock API server. Paths without a configured
// handler respond 404.
func NewMockAPI() *MockAPI {
	mock := &MockAPI{
		handlers: make(map[string]http.HandlerFunc),
	}

	mock.server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		mock.mu.Lock()
		mock.requestCount++
		mock.paths = append(mock.paths, r.URL.Path)
		mock.mu.Unlock()

		mock.mu.RLock()
		handler, exists := mock.handlers[r.URL.Path]
		catchAll := mock.catchAll
		mock.mu.RUnlock()

		if exists {
			handler(w, r)
			return
		}
		if catchAll != nil {
			catchAll(w, r)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error": "no handler for path"}`))
	}))

	return mock
}

// URL returns the mock server URL.
func (m *MockAPI) URL() string {
	return m.server.URL
}

// Close shuts down the mock server.
func (m *MockAPI) Close() {
	m.server.Close()
}

// SetHandler sets a custom handler for a specific path.
func (m *MockAPI) SetHandler(path string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[path] = handler
}

// SetCatchAll sets a fallback handler for paths without a specific
// handler. Per-path handlers still win.
func (m *MockAPI) SetCatchAll(handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.catchAll = handler
}

// SetResponse configures a canned response for a path.
func (m *MockAPI) SetResponse(path string, resp MockResponse) {
	m.SetHandler(path, func(w http.ResponseWriter, r *http.Request) {
		if resp.Delay > 0 {
			time.Sleep(resp.Delay)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.StatusCode)
		if resp.Body != "" {
			w.Write([]byte(resp.Body))
		}
	})
}

// RequestCount returns the number of requests the server has seen.
func (m *MockAPI) RequestCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.requestCount
}

// RequestedPaths returns the request paths in arrival order.
func (m *MockAPI) RequestedPaths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.paths...)
}

// Entry renders one half-hour measurement entry as JSON.
func Entry(from, to string, forecast int) string {
	return fmt.Sprintf(
		`{"from":%q,"to":%q,"intensity":{"forecast":%d,"index":"moderate"},`+
			`"generationmix":[{"fuel":"gas","perc":55.0},{"fuel":"wind","perc":45.0}]}`,
		from, to, forecast)
}

// RangedBody renders the response body of a ranged regional query:
// a single region object wrapping the entries.
func RangedBody(regionID int, shortName, postcode string, entries ...string) string {
	return fmt.Sprintf(`{"data":{"regionid":%d,"shortname":%q,"postcode":%q,"data":[%s]}}`,
		regionID, shortName, postcode, strings.Join(entries, ","))
}

// RegionGroup renders one region group for a windowless regional query.
func RegionGroup(regionID int, shortName string, entries ...string) string {
	return fmt.Sprintf(`{"regionid":%d,"shortname":%q,"data":[%s]}`,
		regionID, shortName, strings.Join(entries, ","))
}

// GroupsBody renders the response body of a windowless regional query:
// a list of region groups.
func GroupsBody(groups ...string) string {
	return fmt.Sprintf(`{"data":[%s]}`, strings.Join(groups, ","))
}

// NationalBody renders the response body of the national /intensity
// endpoint: entries directly, no region wrapper.
func NationalBody(entries ...string) string {
	return fmt.Sprintf(`{"data":[%s]}`, strings.Join(entries, ","))
}
