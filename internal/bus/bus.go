// Package bus carries control commands and status updates between the
// machines in the cluster over RabbitMQ. Two durable topic exchanges are
// used: service_control for lifecycle commands and service_status for
// status updates. Routing keys follow service.<name>.<kind>.
package bus

import (
	"time"

	"github.com/rs/xid"
)

const (
	// ControlExchange carries start/stop commands to the agents
	ControlExchange = "service_control"

	// StatusExchange carries status updates from the agents
	StatusExchange = "service_status"

	// BroadcastControlKey addresses every agent at once
	BroadcastControlKey = "service.all.control"

	// StatusPattern matches the status updates of every service
	StatusPattern = "service.#.status"
)

// ControlKey returns the control routing key for one service
func ControlKey(service string) string {
	return "service." + service + ".control"
}

// StatusKey returns the status routing key for one service
func StatusKey(service string) string {
	return "service." + service + ".status"
}

// ControlMessage is a lifecycle command addressed to one agent
type ControlMessage struct {
	ID        string            `json:"id"`
	Service   string            `json:"service"`
	Action    string            `json:"action"`
	Timestamp int64             `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// StatusUpdate reports the state of one service
type StatusUpdate struct {
	ID        string            `json:"id"`
	Service   string            `json:"service"`
	Status    string            `json:"status"`
	Timestamp int64             `json:"timestamp"`
	Details   map[string]string `json:"details,omitempty"`
}

// NewControlMessage stamps a command with an id and the current time
func NewControlMessage(service, action string) ControlMessage {
	return ControlMessage{
		ID:        xid.New().String(),
		Service:   service,
		Action:    action,
		Timestamp: time.Now().Unix(),
	}
}

// NewStatusUpdate stamps an update with an id and the current time
func NewStatusUpdate(service, status string, details map[string]string) StatusUpdate {
	return StatusUpdate{
		ID:        xid.New().String(),
		Service:   service,
		Status:    status,
		Timestamp: time.Now().Unix(),
		Details:   details,
	}
}
