/*
NaiveSystems Analyze - A tool for static code analysis
Copyright (C) 2023  Naive Systems Ltd.

This program is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

This program is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

package tool

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/golang/glog"
	"naive.systems/toolbench/utils"
)

type Stream int

const (
	Stderr Stream = iota
	Stdout
	Combined
)

type Command struct {
	Bin  string
	Args []string
	Dir  string
	// Stream selects what is captured, the other stream is discarded.
	Stream Stream
	// Zero means wait forever.
	Timeout time.Duration
}

func (c Command) String() string {
	return strings.Join(append([]string{c.Bin}, c.Args...), " ")
}

// Execute runs c exactly once. A non-zero exit status is not a failure since
// checkers use it to report findings.
func Execute(c Command) (RawOutput, error) {
	if c.Bin == "" {
		return RawOutput{}, errors.New("no binary to execute")
	}
	bin, err := utils.ResolveBinaryPath(c.Bin)
	if errors.Is(err, utils.ErrBinaryNotFound) {
		glog.Warningf("%v", err)
		return Missing(), nil
	}
	if err != nil {
		return Failed(err.Error()), nil
	}

	cmd := exec.Command(bin, c.Args...)
	cmd.Dir = c.Dir
	// own process group so a timeout also takes down whatever the tool forked
	cmd.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	// Wait on a buffer-backed Cmd also waits for every holder of the write
	// end, even descendants outside the process group.
	pr, pw, err := os.Pipe()
	if err != nil {
		return Failed(err.Error()), nil
	}
	defer pr.Close()
	switch c.Stream {
	case Stdout:
		cmd.Stdout = pw
	case Combined:
		cmd.Stdout = pw
		cmd.Stderr = pw
	default:
		cmd.Stderr = pw
	}

	glog.Info("executing: ", cmd.String())
	err = cmd.Start()
	pw.Close()
	if err != nil {
		if errors.Is(err, exec.ErrNotFound) || errors.Is(err, fs.ErrNotExist) {
			return Missing(), nil
		}
		return Failed(err.Error()), nil
	}

	var captured bytes.Buffer
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		if _, err := io.Copy(&captured, pr); err != nil && !errors.Is(err, os.ErrClosed) {
			glog.Warningf("reading output of %s: %v", c.String(), err)
		}
	}()

	done := make(chan error, 1)
	go func() {
		done <- cmd.Wait()
	}()
	var expired <-chan time.Time
	if c.Timeout > 0 {
		timer := time.NewTimer(c.Timeout)
		defer timer.Stop()
		expired = timer.C
	}

	select {
	case <-expired:
		if err := syscall.Kill(-cmd.Process.Pid, syscall.SIGKILL); err != nil {
			glog.Errorf("failed to kill process group %d: %v", cmd.Process.Pid, err)
			if err := cmd.Process.Kill(); err != nil {
				glog.Errorf("failed to kill %d: %v", cmd.Process.Pid, err)
			}
		}
		// reap before returning
		<-done
		waitDrained(pr, drained)
		glog.Warningf("%s timed out: over %v", c.String(), c.Timeout)
		return TimedOut(), nil
	case err := <-done:
		waitDrained(pr, drained)
		var exitError *exec.ExitError
		if errors.As(err, &exitError) {
			glog.Infof("%s exited with code %d", c.String(), exitError.ExitCode())
		} else if err != nil {
			return Failed(err.Error()), nil
		}
	}
	return Output(captured.String()), nil
}

// pipeDrainGrace bounds how long output is still read after the process is
// gone. A descendant that called setsid survives the group kill and may keep
// the pipe open indefinitely.
const pipeDrainGrace = 500 * time.Millisecond

func waitDrained(pr *os.File, drained <-chan struct{}) {
	timer := time.NewTimer(pipeDrainGrace)
	defer timer.Stop()
	select {
	case <-drained:
	case <-timer.C:
		glog.Warning("output pipe still held open by a detached descendant, closing it")
		pr.Close()
		<-drained
	}
}

// CheckBinary resolves bin and returns the first line it prints for
// versionArgs.
func CheckBinary(bin string, versionArgs ...string) (string, error) {
	raw, err := Execute(Command{Bin: bin, Args: versionArgs, Stream: Combined, Timeout: 10 * time.Second})
	if err != nil {
		return "", err
	}
	if raw.Kind != OK {
		return "", fmt.Errorf("%s: %s", bin, raw.String())
	}
	version, _, _ := strings.Cut(strings.TrimSpace(raw.Text), "\n")
	return version, nil
}
