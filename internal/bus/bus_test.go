package bus

import (
	"encoding/json"
	"testing"
)

func TestRoutingKeys(t *testing.T) {
	if ControlKey("backend") != "service.backend.control" {
		t.Fatalf("wrong control key: " + ControlKey("backend"))
	}
	if StatusKey("messaging") != "service.messaging.status" {
		t.Fatalf("wrong status key: " + StatusKey("messaging"))
	}
	if BroadcastControlKey != "service.all.control" {
		t.Fatalf("broadcast key changed")
	}
	if ControlKey("all") != BroadcastControlKey {
		t.Fatalf("addressing the all pseudo-service must hit the broadcast key")
	}
}

func TestNewStatusUpdate(t *testing.T) {
	u := NewStatusUpdate("database", "running", map[string]string{"pid": "42"})
	if u.ID == "" {
		t.Fatalf("status update must carry a message id")
	}
	if u.Timestamp == 0 {
		t.Fatalf("status update must carry a timestamp")
	}
	if u.Service != "database" || u.Status != "running" {
		t.Fatalf("fields not set")
	}

	// updates cross the wire as JSON with snake_case keys
	b, err := json.Marshal(u)
	if err != nil {
		t.Fatalf("marshal failed: " + err.Error())
	}
	var decoded map[string]interface{}
	if err := json.Unmarshal(b, &decoded); err != nil {
		t.Fatalf("unmarshal failed: " + err.Error())
	}
	for _, key := range []string{"id", "service", "status", "timestamp", "details"} {
		if _, ok := decoded[key]; !ok {
			t.Fatalf("wire format missing key %s", key)
		}
	}
}

func TestNewControlMessageIDsAreUnique(t *testing.T) {
	a := NewControlMessage("backend", "start")
	b := NewControlMessage("backend", "start")
	if a.ID == b.ID {
		t.Fatalf("control message ids must be unique")
	}
}
