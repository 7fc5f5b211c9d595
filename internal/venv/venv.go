// Package venv provisions an isolated Python environment and runs
// commands inside it. There is no process-global activation: the
// environment is expressed as explicit paths and variables handed to
// each child process, so nothing needs to be undone afterwards.
package venv

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// Env describes an isolated Python environment rooted at a directory.
type Env struct {
	Root string
}

// At returns the Env rooted at dir.
func At(dir string) Env {
	return Env{Root: dir}
}

// Exists reports whether the environment directory is present.
func (e Env) Exists() bool {
	fi, err := os.Stat(e.Root)
	return err == nil && fi.IsDir()
}

// BinDir returns the directory holding the environment's executables.
func (e Env) BinDir() string {
	if runtime.GOOS == "windows" {
		return filepath.Join(e.Root, "Scripts")
	}
	return filepath.Join(e.Root, "bin")
}

// Python returns the path of the environment's interpreter.
func (e Env) Python() string {
	name := "python"
	if runtime.GOOS == "windows" {
		name = "python.exe"
	}
	return filepath.Join(e.BinDir(), name)
}

// Environ derives a child process environment equivalent to activating
// the venv: VIRTUAL_ENV is set, the bin directory is prepended to PATH,
// and PYTHONHOME is dropped.
func (e Env) Environ(base []string) []string {
	out := make([]string, 0, len(base)+2)
	sawPath := false
	for _, kv := range base {
		switch {
		case strings.HasPrefix(kv, "PYTHONHOME="), strings.HasPrefix(kv, "VIRTUAL_ENV="):
			continue
		case strings.HasPrefix(kv, "PATH="):
			sawPath = true
			kv = "PATH=" + e.BinDir() + string(os.PathListSeparator) + kv[len("PATH="):]
		}
		out = append(out, kv)
	}
	if !sawPath {
		out = append(out, "PATH="+e.BinDir())
	}
	out = append(out, "VIRTUAL_ENV="+e.Root)
	return out
}

// Bootstrapper prepares an Env and delegates work into it. Interpreter
// is the base Python used to create the environment when missing.
type Bootstrapper struct {
	Interpreter string
	Env         Env
	Stdout      io.Writer
	Stderr      io.Writer
}

// EnsureEnv creates the environment if its directory does not exist.
// An existing directory short-circuits creation entirely, so repeated
// runs reuse the same environment.
func (b *Bootstrapper) EnsureEnv() (created bool, err error) {
	if b.Env.Exists() {
		return false, nil
	}
	base, err := exec.LookPath(b.Interpreter)
	if err != nil {
		return false, fmt.Errorf("%s not found on PATH: %w", b.Interpreter, err)
	}
	if err := runQuiet(exec.Command(base, "-m", "venv", b.Env.Root)); err != nil {
		return false, fmt.Errorf("create virtual environment: %w", err)
	}
	return true, nil
}

// EnsureModule probes for module inside the environment and installs
// pkg via pip when the probe fails. Install output is suppressed on
// stdout; pip's stderr flows through to the user.
func (b *Bootstrapper) EnsureModule(module, pkg string) (installed bool, err error) {
	if b.moduleImportable(module) {
		return false, nil
	}
	cmd := b.command("-m", "pip", "install", "--quiet", pkg)
	cmd.Stdout = io.Discard
	cmd.Stderr = b.stderr()
	if err := cmd.Run(); err != nil {
		return false, fmt.Errorf("install %s: %w", pkg, err)
	}
	if !b.moduleImportable(module) {
		return false, fmt.Errorf("installed %s but %s is still not importable", pkg, module)
	}
	return true, nil
}

// Delegate runs script inside the environment with args forwarded
// verbatim. The returned error is the child's own, untouched, so the
// caller can surface the script's exit code.
func (b *Bootstrapper) Delegate(script string, args []string) error {
	cmd := b.command(append([]string{script}, args...)...)
	cmd.Stdout = b.stdout()
	cmd.Stderr = b.stderr()
	cmd.Stdin = os.Stdin
	return cmd.Run()
}

func (b *Bootstrapper) moduleImportable(module string) bool {
	cmd := b.command("-c", "import "+module)
	cmd.Stdout = io.Discard
	cmd.Stderr = io.Discard
	return cmd.Run() == nil
}

func (b *Bootstrapper) command(args ...string) *exec.Cmd {
	cmd := exec.Command(b.Env.Python(), args...)
	cmd.Env = b.Env.Environ(os.Environ())
	return cmd
}

func (b *Bootstrapper) stdout() io.Writer {
	if b.Stdout != nil {
		return b.Stdout
	}
	return os.Stdout
}

func (b *Bootstrapper) stderr() io.Writer {
	if b.Stderr != nil {
		return b.Stderr
	}
	return os.Stderr
}

// runQuiet executes cmd discarding stdout and folding captured stderr
// into the returned error.
func runQuiet(cmd *exec.Cmd) error {
	var stderr bytes.Buffer
	cmd.Stdout = io.Discard
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			return fmt.Errorf("%s: %w", strings.Join(cmd.Args, " "), err)
		}
		return fmt.Errorf("%s: %w\n%s", strings.Join(cmd.Args, " "), err, msg)
	}
	return nil
}
