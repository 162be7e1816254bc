package main

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Santimuri367/messaging/internal/process"

	"github.com/gin-gonic/gin"
)

func testRouter(a *agent) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/", a.root)
	router.GET("/start", a.start)
	router.GET("/stop", a.stop)
	router.GET("/status", a.status)
	return router
}

func testAgent() *agent {
	return &agent{
		service: "backend",
		proc:    process.NewLocalManager(&process.LocalProcessConfig{Path: "/does/not/exist"}),
	}
}

func get(t *testing.T, router *gin.Engine, path string) (int, map[string]string) {
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	router.ServeHTTP(w, req)

	var body map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response was not json: %s", w.Body.String())
	}
	return w.Code, body
}

func TestRootBanner(t *testing.T) {
	router := testRouter(testAgent())
	code, body := get(t, router, "/")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["message"] != "backend control API is running" {
		t.Fatalf("unexpected banner: %q", body["message"])
	}
}

func TestStatusStoppedByDefault(t *testing.T) {
	router := testRouter(testAgent())
	code, body := get(t, router, "/status")
	if code != http.StatusOK {
		t.Fatalf("expected 200, got %d", code)
	}
	if body["status"] != "stopped" {
		t.Fatalf("expected stopped, got %q", body["status"])
	}
}

func TestStartFailureReturns500(t *testing.T) {
	router := testRouter(testAgent())
	code, body := get(t, router, "/start")
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500 for a bad binary, got %d", code)
	}
	if body["detail"] == "" {
		t.Fatalf("error responses must carry a detail message")
	}
}

func TestStopWhenStoppedSucceeds(t *testing.T) {
	router := testRouter(testAgent())
	code, body := get(t, router, "/stop")
	if code != http.StatusOK {
		t.Fatalf("stopping a stopped service must succeed, got %d", code)
	}
	if body["status"] != "backend stopped successfully" {
		t.Fatalf("unexpected stop response: %q", body["status"])
	}
}
