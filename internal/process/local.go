package process

import (
	"errors"
	"os"
	"os/exec"
	"sync"
	"syscall"
	"time"
)

// LocalManager runs and tracks one service binary on this machine
type LocalManager struct {
	path       string
	dir        string
	args       []string
	env        []string
	logFile    *os.File
	userKilled bool
	starting   bool
	info       Info
	mu         *sync.Mutex
}

// LocalProcessConfig is used to pass relevant data to the process launcher
type LocalProcessConfig struct {
	Path string
	Dir  string
	Args []string
	Env  []string
	LogF *os.File
}

// NewLocalManager ; as in new manager for a binary forked from the shell
func NewLocalManager(conf *LocalProcessConfig) *LocalManager {
	return &LocalManager{
		path:    conf.Path,
		dir:     conf.Dir,
		args:    conf.Args,
		env:     conf.Env,
		logFile: conf.LogF,
		mu:      &sync.Mutex{},
		info: Info{
			PID:    -1,
			Errors: make([]error, 0),
		},
	}
}

// Start the process if possible. Returns the pid or -1 with an error.
// The starting flag holds off concurrent callers between the running
// check and the fork so only one of them launches the binary.
func (m *LocalManager) Start() (int, error) {
	m.mu.Lock()
	if m.info.Status == Running || m.starting {
		pid := m.info.PID
		m.mu.Unlock()
		return pid, errors.New("process already running")
	}
	m.starting = true
	m.userKilled = false
	m.mu.Unlock()

	getPidChan := make(chan int, 1)
	getErrChan := make(chan error, 1)
	go m.forkExec(getPidChan, getErrChan)
	pid := <-getPidChan

	m.mu.Lock()
	m.starting = false
	m.mu.Unlock()

	if pid == -1 {
		return -1, <-getErrChan
	}
	return pid, nil
}

// Stop the process by raising SIGTERM against it
func (m *LocalManager) Stop() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.info.Status != Running {
		return errors.New("process not running")
	}

	m.userKilled = true
	m.info.Status = Stopped
	return raise(m.info.PID, syscall.SIGTERM)
}

// GetStatus of the local process
func (m *LocalManager) GetStatus() Status {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info.Status
}

// GetInfo of the local process
func (m *LocalManager) GetInfo() Info {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.info
}

// GetErrors reported by the process so far
func (m *LocalManager) GetErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	ret := []string{}
	for _, e := range m.info.Errors {
		ret = append(ret, e.Error())
	}
	return ret
}

func (m *LocalManager) forkExec(pid chan int, errChan chan error) {

	cmd := m.getCmd()

	if err := cmd.Start(); err != nil {
		m.mu.Lock()
		m.info.Errors = append(m.info.Errors, err)
		m.mu.Unlock()
		pid <- -1
		errChan <- err
		return
	}

	m.mu.Lock()
	m.info.Status = Running
	m.info.StartTime = time.Now()
	m.info.PID = cmd.Process.Pid
	m.mu.Unlock()

	pid <- cmd.Process.Pid

	err := cmd.Wait()

	m.mu.Lock()
	defer m.mu.Unlock()

	m.info.DeathTime = time.Now()
	m.info.PID = -1

	if m.userKilled {
		m.info.Status = Stopped
		return
	}
	if err != nil {
		m.info.Errors = append(m.info.Errors, err)
		m.info.Status = Failed
		return
	}
	m.info.Status = Stopped
}

func (m *LocalManager) getCmd() *exec.Cmd {
	cmd := exec.Command(m.path, m.args...)
	cmd.Env = m.env
	cmd.Dir = m.dir

	if m.logFile != nil {
		cmd.Stdout = m.logFile
		cmd.Stderr = m.logFile
	} else {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd
}
