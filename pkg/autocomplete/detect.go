package autocomplete

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	ps "github.com/mitchellh/go-ps"
)

// Detector reports the name of the user's interactive shell.
type Detector interface {
	Detect() (string, error)
}

// DetectorFunc adapts a function to Detector.
type DetectorFunc func() (string, error)

// Detect implements Detector.
func (f DetectorFunc) Detect() (string, error) {
	return f()
}

// StaticDetector always reports the same shell name. An empty name is a
// detection failure.
type StaticDetector string

// Detect implements Detector.
func (s StaticDetector) Detect() (string, error) {
	if s == "" {
		return "", ErrDetectionFailed
	}
	return string(s), nil
}

// ChainDetector returns the first successful result of its detectors.
type ChainDetector []Detector

// Detect implements Detector.
func (c ChainDetector) Detect() (string, error) {
	for _, d := range c {
		if d == nil {
			continue
		}
		if name, err := d.Detect(); err == nil && name != "" {
			return name, nil
		}
	}
	return "", ErrDetectionFailed
}

// EnvDetector reads the login shell from $SHELL.
type EnvDetector struct {
	lookupEnv func(string) (string, bool)
}

// Detect implements Detector.
func (e EnvDetector) Detect() (string, error) {
	lookup := e.lookupEnv
	if lookup == nil {
		lookup = os.LookupEnv
	}
	v, ok := lookup("SHELL")
	if !ok || v == "" {
		return "", ErrDetectionFailed
	}
	return shellName(v), nil
}

// knownShells are process names that end the parent walk. Some are not
// supported by the generator and are rejected later with ErrUnsupportedShell.
var knownShells = map[string]bool{
	"bash":       true,
	"zsh":        true,
	"fish":       true,
	"pwsh":       true,
	"powershell": true,
	"elvish":     true,
	"sh":         true,
	"dash":       true,
	"ksh":        true,
	"mksh":       true,
	"tcsh":       true,
	"csh":        true,
	"nu":         true,
	"xonsh":      true,
	"ion":        true,
	"cmd":        true,
}

// maxProcessDepth bounds the parent walk; wrappers like sudo, make or go run
// rarely nest deeper.
const maxProcessDepth = 16

// ProcessDetector walks up the process tree from the parent process and
// reports the first ancestor that is a shell.
type ProcessDetector struct {
	findProcess func(int) (ps.Process, error)
	startPID    int
}

// NewProcessDetector creates a detector starting at the current parent process.
func NewProcessDetector() *ProcessDetector {
	return &ProcessDetector{
		findProcess: ps.FindProcess,
		startPID:    os.Getppid(),
	}
}

// Detect implements Detector.
func (p *ProcessDetector) Detect() (string, error) {
	pid := p.startPID
	for i := 0; i < maxProcessDepth && pid > 0; i++ {
		proc, err := p.findProcess(pid)
		if err != nil {
			return "", errors.Join(ErrDetectionFailed, err)
		}
		if proc == nil {
			break
		}

		name := shellName(proc.Executable())
		if knownShells[name] {
			return name, nil
		}

		if proc.PPid() == pid {
			break
		}
		pid = proc.PPid()
	}
	return "", ErrDetectionFailed
}

// DefaultDetector checks the process tree first and falls back to $SHELL.
func DefaultDetector() Detector {
	return ChainDetector{NewProcessDetector(), EnvDetector{}}
}

// shellName normalizes an executable path or name: login shells are reported
// as "-zsh" and Windows executables carry an extension.
func shellName(exe string) string {
	name := filepath.Base(exe)
	name = strings.TrimPrefix(name, "-")
	name = strings.TrimSuffix(strings.ToLower(name), ".exe")
	return name
}
