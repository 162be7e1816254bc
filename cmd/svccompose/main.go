package main

import (
	"flag"
	"os"
	"strings"

	"github.com/Santimuri367/messaging/internal/bus"
	"github.com/Santimuri367/messaging/internal/config"
	"github.com/Santimuri367/messaging/internal/notify"
)

func main() {
	notify.SetTag("[svccompose] ")

	brokerURL := flag.String("broker", config.DefaultBrokerURL, "amqp url of the message bus")
	service := flag.String("service", "", "service to command (frontend, backend, database, messaging, or all)")
	action := flag.String("action", "start", "lifecycle action to send (start or stop)")
	flag.Parse()

	if *service == "" {
		notify.LnRedF("please specify a service: --service [frontend|backend|database|messaging|all]")
		os.Exit(1)
	}
	if *action != "start" && *action != "stop" {
		notify.LnRedF("unknown action %q; must be start or stop", *action)
		os.Exit(1)
	}

	pub, err := bus.NewPublisher(*brokerURL)
	if err != nil {
		notify.LnRedF("could not connect to the message bus; err=%s", err.Error())
		os.Exit(1)
	}
	defer pub.Close()

	for _, target := range targets(*service) {
		msg := bus.NewControlMessage(target, *action)
		if err := pub.PublishControl(msg); err != nil {
			notify.LnRedF("failed to send %s command to %s; err=%s", *action, target, err.Error())
			continue
		}
		notify.LnGreenF("sent %s command to %s; id=%s", *action, target, msg.ID)
	}
}

// targets expands "all" into one command per service so each delivery is
// addressed and logged individually, the way the agents expect
func targets(service string) []string {
	if strings.ToLower(service) != "all" {
		return []string{strings.ToLower(service)}
	}
	names := make([]string, 0, len(config.DefaultEndpoints))
	for _, ep := range config.DefaultEndpoints {
		names = append(names, strings.ToLower(ep.Name))
	}
	return names
}
