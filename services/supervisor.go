package services

import (
	"bufio"
	"io"
	"os"
	"os/exec"
	"sync/atomic"

	"github.com/mrnavastar/mclaunch/util"
)

const maxLineSize = 1024 * 1024

type Result struct {
	ExitCode int
	Err      error
}

// Session is a single launch of the game. It owns the child process and the
// natives directory and ends once both output readers have finished.
type Session struct {
	WorkDir    string
	NativesDir string
	AssetsDir  string
	Args       []string

	cmd        *exec.Cmd
	console    util.Console
	natives    *nativesDir
	joinStderr bool

	alive  atomic.Bool
	failed atomic.Bool
	result Result
	done   chan struct{}
}

func (s *Session) Alive() bool {
	return s.alive.Load()
}

// HasError returns whether the session failed and clears the flag, so each
// failure is reported once.
func (s *Session) HasError() bool {
	return s.failed.Swap(false)
}

// Done is closed when the process has exited, its output has been drained
// and the natives directory has been removed.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Result is only meaningful after Done is closed.
func (s *Session) Result() Result {
	<-s.done
	return s.result
}

func (s *Session) fail(msg string) {
	s.failed.Store(true)
	s.console.Error(msg)
}

// start spawns the process. On failure the session is terminated right away.
func (s *Session) start() {
	s.cmd = exec.Command(s.Args[0], s.Args[1:]...)
	s.cmd.Dir = s.WorkDir

	stdout, err := s.cmd.StdoutPipe()
	if err != nil {
		s.abort(err)
		return
	}
	stderr, err := s.cmd.StderrPipe()
	if err != nil {
		stdout.Close()
		s.abort(err)
		return
	}

	if err := s.cmd.Start(); err != nil {
		stdout.Close()
		stderr.Close()
		s.abort(err)
		return
	}
	s.alive.Store(true)

	stdoutDone := make(chan struct{})
	stderrDone := make(chan struct{})
	exited := make(chan exit, 1)

	// alive tracks the process itself, not its pipes, which children of the
	// game may keep open after it exits.
	go func() {
		state, err := s.cmd.Process.Wait()
		s.alive.Store(false)
		exited <- exit{state: state, err: err}
	}()

	go func() {
		defer close(stdoutDone)
		if err := s.forward(stdout); err != nil {
			s.fail("Game stopped unexpectedly.")
		}
	}()
	go func() {
		defer close(stderrDone)
		if err := s.forward(stderr); err != nil {
			s.console.Error("Failed to read game error stream.")
		}
	}()
	go s.supervise(exited, stdoutDone, stderrDone)
}

func (s *Session) abort(err error) {
	s.result = Result{ExitCode: -1, Err: err}
	s.fail("Game returned an error code: " + err.Error())
	s.natives.Release()
	close(s.done)
}

// forward copies lines from r to the console until EOF and closes r.
func (s *Session) forward(r io.ReadCloser) error {
	defer r.Close()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64 * 1024), maxLineSize)
	for scanner.Scan() {
		s.console.Info(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		// keep the pipe drained so the game never blocks on a full buffer
		io.Copy(io.Discard, r)
		return err
	}
	return nil
}

type exit struct {
	state *os.ProcessState
	err   error
}

// supervise waits for the process to exit and stdout to drain, reports
// abnormal exits and releases the natives directory. With joinStderr the
// release also waits for the stderr reader.
func (s *Session) supervise(exited <-chan exit, stdoutDone <-chan struct{}, stderrDone <-chan struct{}) {
	<-stdoutDone
	e := <-exited

	switch {
	case e.err != nil:
		s.result = Result{ExitCode: -1, Err: e.err}
		s.fail("Game stopped unexpectedly.")
	case e.state.ExitCode() != 0:
		s.result = Result{ExitCode: e.state.ExitCode()}
		s.fail("Game stopped unexpectedly.")
	default:
		s.result = Result{}
	}

	if s.joinStderr {
		<-stderrDone
	}
	s.natives.Release()

	<-stderrDone
	close(s.done)
}
