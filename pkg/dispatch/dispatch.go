// Package dispatch implements the Dispatcher (spec.md §4.9): spawning
// `sh -c` child processes and collecting results, honoring a serial vs
// worker-pool-parallel execution policy. The worker-pool shape (semaphore
// channel + sync.WaitGroup + index-ordered results slice) is grounded on
// the teacher's pkg/hook/orchestrator.go runHooksParallel/startHookWorkers.
package dispatch

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/sirupsen/logrus"
)

// Result is the outcome of running one command.
type Result struct {
	Command  string
	ExitCode int
	Stdout   string
	Stderr   string
	Err      error // non-nil only for DispatchError (failure to spawn sh)
}

// Success reports whether the command exited zero.
func (r Result) Success() bool { return r.Err == nil && r.ExitCode == 0 }

// AvailableParallelism returns the worker-pool size used when serial is
// false, mirroring spec.md §5's "bounded by available_parallelism".
func AvailableParallelism() int {
	if n := runtime.GOMAXPROCS(0); n > 0 {
		return n
	}
	return 1
}

// Dispatcher runs shell commands in a given working directory with a fixed
// environment overlay.
type Dispatcher struct {
	Workdir  string
	EnvSet   map[string]string
	EnvUnset []string
	Verbose  bool
}

// New returns a Dispatcher.
func New(workdir string, envSet map[string]string, envUnset []string, verbose bool) *Dispatcher {
	return &Dispatcher{Workdir: workdir, EnvSet: envSet, EnvUnset: envUnset, Verbose: verbose}
}

// RunBatch executes commands under `sh -c`, sequentially if serial,
// otherwise across a worker pool sized to AvailableParallelism(). Result
// order always matches command index order regardless of completion order.
func (d *Dispatcher) RunBatch(ctx context.Context, commands []string, serial bool) []Result {
	results := make([]Result, len(commands))
	if serial {
		for i, cmd := range commands {
			results[i] = d.run(ctx, cmd)
		}
		return results
	}

	n := AvailableParallelism()
	sem := make(chan struct{}, n)
	var wg sync.WaitGroup
	for i, cmd := range commands {
		i, cmd := i, cmd
		wg.Add(1)
		sem <- struct{}{}
		go func() {
			defer wg.Done()
			defer func() { <-sem }()
			results[i] = d.run(ctx, cmd)
		}()
	}
	wg.Wait()
	return results
}

func (d *Dispatcher) run(ctx context.Context, command string) Result {
	cmd := exec.CommandContext(ctx, "sh", "-c", command)
	cmd.Dir = d.Workdir
	cmd.Env = buildEnv(d.EnvSet, d.EnvUnset)

	var result Result
	result.Command = command

	if d.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
		err := cmd.Run()
		result.ExitCode = exitCode(err, &result)
		return result
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	result.Stdout = stdout.String()
	result.Stderr = stderr.String()
	result.ExitCode = exitCode(err, &result)
	if result.ExitCode != 0 {
		logrus.WithFields(logrus.Fields{
			"command":   command,
			"exit_code": result.ExitCode,
		}).Warn(command + "\n" + result.Stdout + result.Stderr)
	}
	return result
}

func exitCode(err error, result *Result) int {
	if err == nil {
		return 0
	}
	if exitErr, ok := err.(*exec.ExitError); ok {
		return exitErr.ExitCode()
	}
	// failure to spawn sh itself: DispatchError, not a normal non-zero exit.
	result.Err = err
	return -1
}

func buildEnv(set map[string]string, unset []string) []string {
	base := os.Environ()
	unsetSet := make(map[string]bool, len(unset))
	for _, k := range unset {
		unsetSet[k] = true
	}
	env := make([]string, 0, len(base)+len(set))
	for _, kv := range base {
		key := kv
		for i, c := range kv {
			if c == '=' {
				key = kv[:i]
				break
			}
		}
		if unsetSet[key] {
			continue
		}
		if _, overridden := set[key]; overridden {
			continue
		}
		env = append(env, kv)
	}
	for k, v := range set {
		env = append(env, k+"="+v)
	}
	return env
}
