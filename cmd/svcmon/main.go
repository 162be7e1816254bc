package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/Santimuri367/messaging/internal/bus"
	"github.com/Santimuri367/messaging/internal/config"
	"github.com/Santimuri367/messaging/internal/notify"

	"github.com/fatih/color"
)

func main() {
	notify.SetTag("[svcmon] ")

	brokerURL := flag.String("broker", config.DefaultBrokerURL, "amqp url of the message bus")
	flag.Parse()

	con, err := bus.NewConsumer(*brokerURL)
	if err != nil {
		notify.LnRedF("could not connect to the message bus; err=%s", err.Error())
		os.Exit(1)
	}
	defer con.Close()

	notify.LnF("monitoring service status updates; ctrl-c to exit")

	go func() {
		sig := make(chan os.Signal, 1)
		signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
		<-sig
		con.Close()
		os.Exit(0)
	}()

	if err := con.SubscribeStatus(printUpdate); err != nil {
		notify.LnRedF("status subscription ended; err=%s", err.Error())
		os.Exit(1)
	}
}

func printUpdate(u bus.StatusUpdate) {
	stamp := time.Unix(u.Timestamp, 0).Format("15:04:05")
	fmt.Printf("[%s] %-12s %s\n", stamp, strings.ToUpper(u.Service), getStatus(u.Status))
	for key, value := range u.Details {
		fmt.Printf("%s%s: %s\n", notify.Indent(2), key, value)
	}
}

func getStatus(s string) string {
	switch s {
	case "running":
		green := color.New(color.FgGreen).SprintFunc()
		return green(fmt.Sprintf("%-8s", s))
	case "ready":
		yellow := color.New(color.FgYellow).SprintFunc()
		return yellow(fmt.Sprintf("%-8s", s))
	case "stopped":
		white := color.New(color.FgWhite).SprintFunc()
		return white(fmt.Sprintf("%-8s", s))
	default:
		red := color.New(color.FgRed).SprintFunc()
		return red(fmt.Sprintf("%-8s", s))
	}
}
