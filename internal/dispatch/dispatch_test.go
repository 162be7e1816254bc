package dispatch

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Santimuri367/messaging/internal/config"
)

// fakeAgent records every request it receives and replies with a fixed body
type fakeAgent struct {
	mu    sync.Mutex
	calls []string
	body  string
	srv   *httptest.Server
}

func newFakeAgent(body string) *fakeAgent {
	a := &fakeAgent{body: body}
	a.srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		a.mu.Lock()
		a.calls = append(a.calls, r.Method+" "+r.URL.Path)
		a.mu.Unlock()
		fmt.Fprint(w, a.body)
	}))
	return a
}

func (a *fakeAgent) endpoint(name string) *config.Endpoint {
	u, _ := url.Parse(a.srv.URL)
	port, _ := strconv.Atoi(u.Port())
	return &config.Endpoint{Name: name, Host: u.Hostname(), Port: port}
}

func TestDoIssuesSingleGet(t *testing.T) {
	agent := newFakeAgent("OK")
	defer agent.srv.Close()

	d := NewDispatcher(time.Second)
	for _, action := range []string{ActionStart, ActionStop, ActionStatus} {
		agent.mu.Lock()
		agent.calls = nil
		agent.mu.Unlock()

		res := d.Do(agent.endpoint("Backend"), action)
		if res.Err != nil {
			t.Fatalf("unexpected dispatch error: %s", res.Err.Error())
		}
		if res.Body != "OK" {
			t.Fatalf("body not returned verbatim, got %q", res.Body)
		}
		agent.mu.Lock()
		if len(agent.calls) != 1 || agent.calls[0] != "GET /"+action {
			t.Fatalf("expected exactly one GET /%s, got %v", action, agent.calls)
		}
		agent.mu.Unlock()
	}
}

func TestDoIgnoresStatusCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		fmt.Fprint(w, "Failed to start RabbitMQ")
	}))
	defer srv.Close()

	u, _ := url.Parse(srv.URL)
	port, _ := strconv.Atoi(u.Port())
	ep := &config.Endpoint{Name: "Messaging", Host: u.Hostname(), Port: port}

	res := NewDispatcher(time.Second).Do(ep, ActionStart)
	if res.Err != nil {
		t.Fatalf("non-2xx response must not count as a dispatch error: %s", res.Err.Error())
	}
	if res.Body != "Failed to start RabbitMQ" {
		t.Fatalf("expected the error body verbatim, got %q", res.Body)
	}
}

func TestStopAllCallsEveryEndpointOnce(t *testing.T) {
	agents := []*fakeAgent{newFakeAgent("a"), newFakeAgent("b"), newFakeAgent("c"), newFakeAgent("d")}
	endpoints := []*config.Endpoint{}
	names := []string{"Backend", "Frontend", "Database", "Messaging"}
	for i, a := range agents {
		defer a.srv.Close()
		endpoints = append(endpoints, a.endpoint(names[i]))
	}

	results := NewDispatcher(time.Second).StopAll(endpoints)
	if len(results) != 4 {
		t.Fatalf("expected four results, got %d", len(results))
	}
	for i, a := range agents {
		a.mu.Lock()
		if len(a.calls) != 1 || a.calls[0] != "GET /stop" {
			t.Fatalf("agent %s: expected one GET /stop, got %v", names[i], a.calls)
		}
		a.mu.Unlock()
		if results[i].Endpoint.Name != names[i] {
			t.Fatalf("results out of order at %d: %s", i, results[i].Endpoint.Name)
		}
	}
}

func TestStartThenStatusOrdering(t *testing.T) {
	var mu sync.Mutex
	var sequence []string

	endpoints := []*config.Endpoint{}
	names := []string{"Backend", "Frontend", "Database", "Messaging"}
	for _, name := range names {
		name := name
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			mu.Lock()
			sequence = append(sequence, name+r.URL.Path)
			mu.Unlock()
		}))
		defer srv.Close()
		u, _ := url.Parse(srv.URL)
		port, _ := strconv.Atoi(u.Port())
		endpoints = append(endpoints, &config.Endpoint{Name: name, Host: u.Hostname(), Port: port})
	}

	d := NewDispatcher(time.Second)
	d.StartAll(endpoints)
	d.StatusAll(endpoints)

	want := []string{
		"Backend/start", "Frontend/start", "Database/start", "Messaging/start",
		"Backend/status", "Frontend/status", "Database/status", "Messaging/status",
	}
	mu.Lock()
	defer mu.Unlock()
	if len(sequence) != len(want) {
		t.Fatalf("expected eight calls, got %d: %v", len(sequence), sequence)
	}
	for i := range want {
		if sequence[i] != want[i] {
			t.Fatalf("call %d out of order: want %s got %s", i, want[i], sequence[i])
		}
	}
}

func TestFailureDoesNotStopTheWalk(t *testing.T) {
	ok := newFakeAgent("RUNNING")
	defer ok.srv.Close()

	// a closed server simulates connection refused
	dead := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	deadEP := func() *config.Endpoint {
		u, _ := url.Parse(dead.URL)
		port, _ := strconv.Atoi(u.Port())
		return &config.Endpoint{Name: "Database", Host: u.Hostname(), Port: port}
	}()
	dead.Close()

	endpoints := []*config.Endpoint{
		ok.endpoint("Backend"),
		deadEP,
		ok.endpoint("Messaging"),
	}

	results := NewDispatcher(time.Second).StatusAll(endpoints)
	if len(results) != 3 {
		t.Fatalf("walk stopped early, got %d results", len(results))
	}
	if results[0].Err != nil || results[2].Err != nil {
		t.Fatalf("healthy endpoints must not report errors")
	}
	if results[1].Err == nil {
		t.Fatalf("expected a transport error for the dead endpoint")
	}
	if !strings.Contains(results[0].Body, "RUNNING") {
		t.Fatalf("expected body to pass through, got %q", results[0].Body)
	}
}
