package executor

import (
	"context"
	"errors"
	"io"
	"os"
	"os/exec"
	"os/signal"
	"strings"
	"sync"
	"sync/atomic"
	"syscall"

	"github.com/footprint-tools/crun/internal/log"
)

const chunkSize = 4096

// Request is one command to run.
type Request struct {
	CommandLine      string
	WorkingDirectory string
	Trigger          *Trigger
	// Interactive hands the terminal's stdin to the child. Triggers are
	// ignored in this mode.
	Interactive bool
}

// Executor spawns a child process, echoes its stdout and drives the
// optional ready trigger.
type Executor struct {
	stdout io.Writer
	stderr io.Writer
	stdin  io.Reader
	env    []string

	notify func(c chan<- os.Signal, sig ...os.Signal)
	stop   func(c chan<- os.Signal)
}

// Option configures an Executor.
type Option func(*Executor)

// WithOutput sets where child stdout is echoed. Defaults to os.Stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Executor) { e.stdout = w }
}

// WithStderr sets the child's stderr. Defaults to os.Stderr.
func WithStderr(w io.Writer) Option {
	return func(e *Executor) { e.stderr = w }
}

// WithStdin sets the reader handed to interactive children. Defaults to os.Stdin.
func WithStdin(r io.Reader) Option {
	return func(e *Executor) { e.stdin = r }
}

// WithEnv replaces the child's environment. nil inherits the parent's.
func WithEnv(env []string) Option {
	return func(e *Executor) { e.env = env }
}

// New creates an Executor bound to the process's standard streams.
func New(opts ...Option) *Executor {
	e := &Executor{
		stdout: os.Stdout,
		stderr: os.Stderr,
		stdin:  os.Stdin,
		notify: signal.Notify,
		stop:   signal.Stop,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute runs req to completion. It returns nil only for exit status 0.
func (e *Executor) Execute(ctx context.Context, req Request) error {
	argv := strings.Fields(req.CommandLine)
	if len(argv) == 0 {
		return &SpawnError{Cause: ErrEmptyCommand}
	}
	program := argv[0]

	cmd := exec.CommandContext(ctx, program, argv[1:]...) //nolint:gosec
	cmd.Dir = req.WorkingDirectory
	cmd.Stderr = e.stderr
	if e.env != nil {
		cmd.Env = e.env
	}

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return &SpawnError{Program: program, Cause: err}
	}

	trigger := req.Trigger
	var stdin io.WriteCloser
	if req.Interactive {
		cmd.Stdin = e.stdin
		if trigger != nil {
			log.Warn("executor: onReady ignored for interactive command %s", program)
			trigger = nil
		}
	} else {
		stdin, err = cmd.StdinPipe()
		if err != nil {
			return &SpawnError{Program: program, Cause: err}
		}
	}

	sigs := make(chan os.Signal, 1)
	e.notify(sigs, os.Interrupt, syscall.SIGTERM)
	defer e.stop(sigs)

	log.Debug("executor: starting %q in %q", req.CommandLine, req.WorkingDirectory)
	if err := cmd.Start(); err != nil {
		log.Warn("executor: start %s: %v", program, err)
		return &SpawnError{Program: program, Cause: err}
	}

	if stdin != nil && trigger == nil {
		_ = stdin.Close()
	}

	var interrupted atomic.Bool
	done := make(chan struct{})
	go func() {
		for {
			select {
			case sig := <-sigs:
				interrupted.Store(true)
				log.Info("executor: forwarding %v to pid %d", sig, cmd.Process.Pid)
				_ = cmd.Process.Signal(sig)
			case <-done:
				return
			}
		}
	}()

	var (
		once   sync.Once
		writes sync.WaitGroup
	)
	fire := func() {
		writes.Add(1)
		go func() {
			defer writes.Done()
			log.Debug("executor: trigger %q matched", trigger.Pattern.String())
			if _, err := io.WriteString(stdin, trigger.Input); err != nil {
				log.Warn("executor: write trigger input: %v", err)
			}
		}()
	}

	buf := make([]byte, chunkSize)
	for {
		n, rerr := stdout.Read(buf)
		if n > 0 {
			chunk := buf[:n]
			if _, err := e.stdout.Write(chunk); err != nil {
				log.Warn("executor: echo stdout: %v", err)
			}
			if trigger != nil && trigger.Pattern.Match(chunk) {
				once.Do(fire)
			}
		}
		if rerr != nil {
			if !errors.Is(rerr, io.EOF) {
				log.Debug("executor: read stdout: %v", rerr)
			}
			break
		}
	}

	waitErr := cmd.Wait()
	writes.Wait()
	close(done)

	if interrupted.Load() {
		return ErrInterrupted
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	if waitErr == nil {
		log.Debug("executor: %s exited 0", program)
		return nil
	}

	var exitErr *exec.ExitError
	if errors.As(waitErr, &exitErr) {
		code := exitErr.ExitCode()
		if code < 0 {
			// Terminated by a signal we did not forward.
			code = 1
		}
		log.Info("executor: %s exited %d", program, code)
		return &NonZeroExitError{Program: program, Code: code}
	}
	return waitErr
}
