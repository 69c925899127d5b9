// Package apitest provides an in-memory stand-in for the kanban REST backend, used by tests
// across packages. It mimics a json-server style API: flat collections, equality filters via
// query parameters, server-assigned ids, insertion-ordered list responses.
package apitest

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
)

var collections = []string{"boards", "columns", "tasks", "subtasks"}

type collection struct {
	order []string
	rows  map[string]map[string]any
}

type failure struct {
	method string
	path   string
	status int
}

type Server struct {
	*httptest.Server

	mu       sync.Mutex
	nextID   int
	data     map[string]*collection
	requests []string
	failures []failure

	// Hook, when set, runs before each request is served (outside the lock).
	Hook func(r *http.Request)
}

// New starts a server and registers cleanup with t.
func New(t testing.TB) *Server {
	t.Helper()
	s := &Server{data: map[string]*collection{}}
	for _, name := range collections {
		s.data[name] = &collection{rows: map[string]map[string]any{}}
	}
	s.Server = httptest.NewServer(http.HandlerFunc(s.serve))
	t.Cleanup(s.Close)
	return s
}

// Seed inserts a record and returns its assigned id.
func (s *Server) Seed(resource string, fields map[string]any) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.insertLocked(resource, fields)
}

// FailNext makes the next request matching method and path prefix return status.
func (s *Server) FailNext(method, pathPrefix string, status int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures = append(s.failures, failure{method: method, path: pathPrefix, status: status})
}

// Requests returns "METHOD /path?query" for every request served so far.
func (s *Server) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.requests...)
}

// CountRequests counts requests with the given method whose path starts with prefix.
func (s *Server) CountRequests(method, prefix string) int {
	n := 0
	for _, r := range s.Requests() {
		if strings.HasPrefix(r, method+" "+prefix) {
			n++
		}
	}
	return n
}

func (s *Server) ResetRequests() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.requests = nil
}

// Rows returns a copy of a collection in insertion order.
func (s *Server) Rows(resource string) []map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	c := s.data[resource]
	out := make([]map[string]any, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, copyRow(c.rows[id]))
	}
	return out
}

func (s *Server) insertLocked(resource string, fields map[string]any) string {
	c := s.data[resource]
	s.nextID++
	id := strconv.Itoa(s.nextID)
	row := copyRow(fields)
	row["id"] = id
	c.order = append(c.order, id)
	c.rows[id] = row
	return id
}

func (s *Server) serve(w http.ResponseWriter, r *http.Request) {
	if s.Hook != nil {
		s.Hook(r)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, r.Method+" "+r.URL.RequestURI())
	for i, f := range s.failures {
		if f.method == r.Method && strings.HasPrefix(r.URL.Path, f.path) {
			s.failures = append(s.failures[:i], s.failures[i+1:]...)
			http.Error(w, "injected failure", f.status)
			return
		}
	}

	parts := strings.Split(strings.Trim(r.URL.Path, "/"), "/")
	c, ok := s.data[parts[0]]
	if !ok || len(parts) > 2 {
		http.NotFound(w, r)
		return
	}
	id := ""
	if len(parts) == 2 {
		id = parts[1]
	}

	switch {
	case r.Method == http.MethodGet && id == "":
		out := []map[string]any{}
		for _, rid := range c.order {
			row := c.rows[rid]
			if matches(row, r.URL.Query()) {
				out = append(out, copyRow(row))
			}
		}
		writeJSON(w, http.StatusOK, out)
	case r.Method == http.MethodGet:
		row, ok := c.rows[id]
		if !ok {
			http.NotFound(w, r)
			return
		}
		writeJSON(w, http.StatusOK, row)
	case r.Method == http.MethodPost && id == "":
		fields, err := readFields(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		newID := s.insertLocked(parts[0], fields)
		writeJSON(w, http.StatusCreated, c.rows[newID])
	case r.Method == http.MethodPut && id != "":
		if _, ok := c.rows[id]; !ok {
			http.NotFound(w, r)
			return
		}
		fields, err := readFields(r.Body)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		fields["id"] = id
		c.rows[id] = fields
		writeJSON(w, http.StatusOK, fields)
	case r.Method == http.MethodDelete && id != "":
		if _, ok := c.rows[id]; !ok {
			http.NotFound(w, r)
			return
		}
		delete(c.rows, id)
		for i, rid := range c.order {
			if rid == id {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		writeJSON(w, http.StatusOK, map[string]any{})
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

func matches(row map[string]any, q map[string][]string) bool {
	for k, vs := range q {
		if len(vs) == 0 {
			continue
		}
		if fmt.Sprint(row[k]) != vs[0] {
			return false
		}
	}
	return true
}

func readFields(body io.Reader) (map[string]any, error) {
	var fields map[string]any
	if err := json.NewDecoder(body).Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

func copyRow(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
