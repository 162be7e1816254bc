package main

import (
	"flag"
	"os"

	"github.com/Santimuri367/messaging/internal/config"
	"github.com/Santimuri367/messaging/internal/dispatch"
	"github.com/Santimuri367/messaging/internal/notify"
)

func main() {
	notify.SetTag("[svcctl] ")

	configPath := flag.String("config", "", "path to a cluster config file; the built-in endpoint list is used when omitted")
	verbose := flag.Bool("verbose", true, "print progress to stdout")
	flag.Parse()

	notify.SetVerbose(*verbose)

	endpoints := config.DefaultEndpoints
	timeout := config.DefaultCtlConfig.Timeout.Duration
	if *configPath != "" {
		conf, err := config.ParseClusterConfig(*configPath)
		if err != nil {
			notify.LnRedF("could not parse cluster config; err=%s", err.Error())
			os.Exit(1)
		}
		endpoints = conf.Endpoints
		timeout = conf.Ctl.Timeout.Duration
	}

	run(flag.Arg(0), endpoints, dispatch.NewDispatcher(timeout))
}

// run executes one control pass. `stop` shuts everything down; any other
// argument walks the default start-then-status path.
func run(action string, endpoints []*config.Endpoint, d *dispatch.Dispatcher) {
	if action == "stop" {
		notify.LnYellowF("stopping all services")
		printResults(d.StopAll(endpoints))
		return
	}

	notify.LnYellowF("starting all services")
	printResults(d.StartAll(endpoints))

	notify.LnYellowF("checking service status")
	printResults(d.StatusAll(endpoints))
}
