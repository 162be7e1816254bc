package dispatch

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Santimuri367/messaging/internal/config"
)

// Lifecycle actions understood by the control agents. Each maps directly
// to an HTTP path segment on the agent.
const (
	ActionStart  = "start"
	ActionStop   = "stop"
	ActionStatus = "status"
)

// Result is the outcome of a single control call to one endpoint
type Result struct {
	Endpoint *config.Endpoint
	Action   string
	Body     string
	Err      error
}

// Dispatcher issues lifecycle requests to the control agents. Calls are
// strictly sequential; a transport failure on one endpoint never stops the
// walk of the remaining endpoints.
type Dispatcher struct {
	client *http.Client
}

// NewDispatcher returns a dispatcher whose calls give up after timeout
func NewDispatcher(timeout time.Duration) *Dispatcher {
	return &Dispatcher{
		client: &http.Client{Timeout: timeout},
	}
}

// Do performs one GET against http://{host}:{port}/{action} and returns
// the response body verbatim. Any received response counts as success;
// the HTTP status code is not interpreted.
func (d *Dispatcher) Do(ep *config.Endpoint, action string) Result {
	res := Result{Endpoint: ep, Action: action}

	resp, err := d.client.Get(fmt.Sprintf("http://%s:%d/%s", ep.Host, ep.Port, action))
	if err != nil {
		res.Err = err
		return res
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		res.Err = err
		return res
	}
	res.Body = string(body)
	return res
}

// StartAll walks the endpoint list in order, starting each service
func (d *Dispatcher) StartAll(endpoints []*config.Endpoint) []Result {
	return d.all(endpoints, ActionStart)
}

// StopAll walks the endpoint list in order, stopping each service
func (d *Dispatcher) StopAll(endpoints []*config.Endpoint) []Result {
	return d.all(endpoints, ActionStop)
}

// StatusAll walks the endpoint list in order, querying each service
func (d *Dispatcher) StatusAll(endpoints []*config.Endpoint) []Result {
	return d.all(endpoints, ActionStatus)
}

func (d *Dispatcher) all(endpoints []*config.Endpoint, action string) []Result {
	results := make([]Result, 0, len(endpoints))
	for _, ep := range endpoints {
		results = append(results, d.Do(ep, action))
	}
	return results
}
