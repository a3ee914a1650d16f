package controller

import (
	stderrors "errors"
	"io/ioutil"
	"os"
	"runtime"
	"strconv"
	"strings"
	"syscall"
)

// acquireLock creates path exclusively and writes our pid into it. A lock
// left by a process that no longer exists is reclaimed once.
func acquireLock(path string) error {
	err := createLock(path)
	if !os.IsExist(err) || !lockIsStale(path) {
		return err
	}
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return createLock(path)
}

func createLock(path string) error {
	lock, err := os.OpenFile(path, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer lock.Close()
	_, err = lock.WriteString(strconv.Itoa(os.Getpid()))
	return err
}

// lockIsStale is true only when the lock names a pid that is not running.
// An unreadable or empty lock may be one another process is still writing.
func lockIsStale(path string) bool {
	b, err := ioutil.ReadFile(path)
	if err != nil {
		return false
	}
	pid, err := strconv.Atoi(strings.TrimSpace(string(b)))
	if err != nil || pid <= 0 {
		return false
	}
	return !processAlive(pid)
}

func processAlive(pid int) bool {
	proc, err := os.FindProcess(pid)
	if err != nil {
		return false
	}
	// Windows has no signal 0; finding the process is the best answer there.
	if runtime.GOOS == "windows" {
		return true
	}
	err = proc.Signal(syscall.Signal(0))
	return err == nil || stderrors.Is(err, syscall.EPERM)
}
