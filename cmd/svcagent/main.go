package main

import (
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Santimuri367/messaging/internal/bus"
	"github.com/Santimuri367/messaging/internal/config"
	"github.com/Santimuri367/messaging/internal/fileutil"
	"github.com/Santimuri367/messaging/internal/manifest"
	"github.com/Santimuri367/messaging/internal/notify"
	"github.com/Santimuri367/messaging/internal/process"

	"github.com/gin-gonic/gin"
)

func main() {
	notify.SetTag("[svcagent] ")

	configPath := flag.String("config", "./svcagent.toml", "path to the agent config file")
	verbose := flag.Bool("verbose", true, "print progress to stdout")
	flag.Parse()

	notify.SetVerbose(*verbose)

	conf, err := config.ParseAgentConfig(*configPath)
	if err != nil {
		notify.LnRedF("could not parse agent config; err=%s", err.Error())
		os.Exit(1)
	}
	if conf.Agent.Service == "" {
		notify.LnRedF("agent config must name the service this machine runs")
		os.Exit(1)
	}

	if !fileutil.FileExists(conf.Agent.Manifest) {
		notify.LnRedF("service manifest not found at %s", conf.Agent.Manifest)
		os.Exit(1)
	}
	man, err := manifest.Parse(conf.Agent.Manifest)
	if err != nil {
		notify.LnRedF("could not parse service manifest; err=%s", err.Error())
		os.Exit(1)
	}
	if err := man.Validate(); err != nil {
		notify.LnRedF("invalid service manifest; err=%s", err.Error())
		os.Exit(1)
	}

	a := newAgent(conf.Agent.Service, man)

	// the bus is best effort; the HTTP control API works without a broker
	pub, err := bus.NewPublisher(conf.Broker.URL)
	if err != nil {
		notify.LnYellowF("message bus unavailable; status updates disabled; err=%s", err.Error())
	} else {
		a.pub = pub
		defer pub.Close()
	}

	if con, err := bus.NewConsumer(conf.Broker.URL); err == nil {
		go func() {
			if err := con.SubscribeControl(a.service, a.handleControl); err != nil {
				notify.LnYellowF("control subscription ended; err=%s", err.Error())
			}
		}()
		defer con.Close()
	}

	a.publishStatus("ready", nil)

	if !*verbose {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.Default()
	router.GET("/", a.root)
	router.GET("/start", a.start)
	router.GET("/stop", a.stop)
	router.GET("/status", a.status)

	srv := &http.Server{Addr: conf.Agent.Address, Handler: router}
	go func() {
		notify.LnF("control API for %s listening on %s", a.service, conf.Agent.Address)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			notify.LnRedF("control API failed; err=%s", err.Error())
			os.Exit(1)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	notify.LnF("shutting down")
	if a.proc.GetStatus() == process.Running {
		if err := a.proc.Stop(); err != nil {
			notify.LnRedF("could not stop %s; err=%s", a.service, err.Error())
		}
	}
	a.publishStatus("stopped", nil)
	srv.Close()
}

func newAgent(service string, man *manifest.Manifest) *agent {
	logDir := man.LogDir
	if logDir == "" {
		logDir = "logs"
	}

	logf, err := fileutil.GetLogFile(logDir, man.Name+".log")
	if err != nil {
		notify.LnYellowF("could not create service log file; writing to stdout; err=%s", err.Error())
		logf = nil
	}

	return &agent{
		service: service,
		proc: process.NewLocalManager(&process.LocalProcessConfig{
			Path: man.BinPath,
			Dir:  man.Dir,
			Args: man.Args,
			Env:  append(os.Environ(), man.Env...),
			LogF: logf,
		}),
	}
}
