package process

import (
	"os"
	"time"
)

// Status of a managed process
type Status int

const (
	// Stopped ; the process is not running
	Stopped Status = iota

	// Running ; the process has been started and has not exited
	Running

	// Failed ; the process exited on its own with an error
	Failed
)

func (s Status) String() string {
	switch s {
	case Running:
		return "running"
	case Failed:
		return "failed"
	}
	return "stopped"
}

// Info stores runtime info about a managed process
type Info struct {
	PID       int
	StartTime time.Time
	DeathTime time.Time
	Status    Status
	Errors    []error
}

// raise finds a process by pid and then sends sig to it
func raise(pid int, sig os.Signal) error {
	p, err := os.FindProcess(pid)
	if err != nil {
		return err
	}
	return p.Signal(sig)
}
