package tpp

import "os/exec"

// CommandRunner captures the standard output of an external command
// line. It is the only path through which the engine touches external
// processes: document loading uses it for $$/$% splices and backends
// use it for --exec and --huge rendering.
type CommandRunner interface {
	Run(cmdline string) (string, error)
}

// ExecRunner runs command lines through a shell.
type ExecRunner struct {
	// Shell overrides the interpreter; empty means /bin/sh.
	Shell string
}

// Run executes cmdline with `shell -c` and returns its standard
// output. The returned error carries the process failure; callers
// degrade it to content rather than aborting.
func (e ExecRunner) Run(cmdline string) (string, error) {
	shell := e.Shell
	if shell == "" {
		shell = "/bin/sh"
	}
	out, err := exec.Command(shell, "-c", cmdline).Output()
	return string(out), err
}

// NopRunner executes nothing and produces no output. It backs export
// modes and tests that must not touch external processes.
type NopRunner struct{}

// Run implements CommandRunner.
func (NopRunner) Run(string) (string, error) { return "", nil }
