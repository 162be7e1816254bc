package main

import (
	"strings"

	"github.com/Santimuri367/messaging/internal/dispatch"
	"github.com/Santimuri367/messaging/internal/notify"
)

// printResults reports each call outcome on its own line. Response bodies
// are echoed verbatim; a transport failure is a warning, never fatal.
func printResults(results []dispatch.Result) {
	for _, r := range results {
		if r.Err != nil {
			notify.LnRedF("%-10s unreachable; error=%s", r.Endpoint.Name, r.Err.Error())
			continue
		}
		notify.LnGreenF("%-10s %s", r.Endpoint.Name, strings.TrimSpace(r.Body))
	}
}
