package main

import (
	"net/http"
	"strconv"

	"github.com/Santimuri367/messaging/internal/bus"
	"github.com/Santimuri367/messaging/internal/notify"
	"github.com/Santimuri367/messaging/internal/process"

	"github.com/gin-gonic/gin"
)

// agent controls the one service this machine is responsible for
type agent struct {
	service string
	proc    *process.LocalManager
	pub     *bus.Publisher
}

func (a *agent) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": a.service + " control API is running"})
}

func (a *agent) start(c *gin.Context) {
	if a.proc.GetStatus() == process.Running {
		c.JSON(http.StatusOK, gin.H{"status": a.service + " is already running"})
		return
	}

	pid, err := a.proc.Start()
	if err != nil {
		notify.LnRedF("failed to start %s; err=%s", a.service, err.Error())
		a.publishStatus("error", map[string]string{"error": err.Error()})
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to start " + a.service + ": " + err.Error()})
		return
	}

	notify.LnGreenF("%s started; pid=%d", a.service, pid)
	a.publishStatus("running", map[string]string{"pid": strconv.Itoa(pid)})
	c.JSON(http.StatusOK, gin.H{"status": a.service + " started successfully"})
}

// stop succeeds even when nothing is running; stopping a stopped service
// leaves it stopped
func (a *agent) stop(c *gin.Context) {
	if a.proc.GetStatus() == process.Running {
		if err := a.proc.Stop(); err != nil {
			notify.LnRedF("failed to stop %s; err=%s", a.service, err.Error())
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "Failed to stop " + a.service + ": " + err.Error()})
			return
		}
	}

	notify.LnF("%s stopped", a.service)
	a.publishStatus("stopped", nil)
	c.JSON(http.StatusOK, gin.H{"status": a.service + " stopped successfully"})
}

func (a *agent) status(c *gin.Context) {
	if a.proc.GetStatus() == process.Running {
		c.JSON(http.StatusOK, gin.H{"status": "running"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "stopped"})
}

// handleControl serves the same lifecycle verbs when they arrive over the
// message bus instead of HTTP
func (a *agent) handleControl(msg bus.ControlMessage) {
	notify.LnF("control message received; action=%s id=%s", msg.Action, msg.ID)

	switch msg.Action {
	case "start":
		if a.proc.GetStatus() == process.Running {
			return
		}
		pid, err := a.proc.Start()
		if err != nil {
			a.publishStatus("error", map[string]string{"error": err.Error()})
			return
		}
		a.publishStatus("running", map[string]string{"pid": strconv.Itoa(pid)})
	case "stop":
		if a.proc.GetStatus() == process.Running {
			if err := a.proc.Stop(); err != nil {
				return
			}
		}
		a.publishStatus("stopped", nil)
	default:
		notify.LnYellowF("unknown control action %q", msg.Action)
	}
}

// publishStatus is a no-op when the broker was unreachable at startup
func (a *agent) publishStatus(status string, details map[string]string) {
	if a.pub == nil {
		return
	}
	if err := a.pub.PublishStatus(bus.NewStatusUpdate(a.service, status, details)); err != nil {
		notify.LnYellowF("could not publish status update; err=%s", err.Error())
	}
}
