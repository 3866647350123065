package autocomplete

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/open-cli-collective/cobra-autocomplete/internal/view"
)

const (
	bashCompletionDir = "/usr/share/bash-completion/completions"
	zshCompletionDir  = "/usr/share/zsh/functions/Completion/Base"
)

// InstallError reports a failure to place a completion script.
type InstallError struct {
	Path string
	Err  error
}

func (e *InstallError) Error() string {
	if e.Permission() {
		return fmt.Sprintf("insufficient privileges to write completions to %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("failed to write completions to %s: %v", e.Path, e.Err)
}

func (e *InstallError) Unwrap() error {
	return e.Err
}

// Permission reports whether the failure was a permission denial.
func (e *InstallError) Permission() bool {
	return errors.Is(e.Err, fs.ErrPermission)
}

// Installer writes completion scripts to the shells' conventional locations.
type Installer struct {
	// Root, when set, prefixes the system-wide bash and zsh directories.
	Root string

	out        *view.Renderer
	configHome func() (string, error)
}

// NewInstaller creates an installer reporting progress to stderr.
func NewInstaller(stderr io.Writer) *Installer {
	return newInstaller(stderr, false)
}

func newInstaller(stderr io.Writer, noColor bool) *Installer {
	return &Installer{
		out:        view.NewRenderer(stderr, noColor),
		configHome: userConfigHome,
	}
}

// InstallPath returns where Install would write the script for shell and
// programName on this machine. It fails for shells without an install
// convention.
func InstallPath(shell Shell, programName string) (string, error) {
	if !shell.Installable() {
		return "", fmt.Errorf("%w: %s completions are printed, not installed", ErrUnsupportedShell, shell)
	}
	return newInstaller(io.Discard, true).Path(shell, programName)
}

// Path returns where the completion script for shell and programName goes.
// It panics for shells without an install convention.
func (in *Installer) Path(shell Shell, programName string) (string, error) {
	switch shell {
	case Fish:
		home, err := in.userConfigHome()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "fish", "completions", programName+".fish"), nil
	case Bash:
		return filepath.Join(in.Root, bashCompletionDir, programName), nil
	case Zsh:
		return filepath.Join(in.Root, zshCompletionDir, "_"+programName), nil
	default:
		panic(fmt.Sprintf("autocomplete: no install location for %s", shell))
	}
}

// Install writes script to the conventional location for shell and returns
// the path written. Existing files are overwritten.
func (in *Installer) Install(shell Shell, script []byte, programName string) (string, error) {
	path, err := in.Path(shell, programName)
	if err != nil {
		return "", &InstallError{Path: shell.String() + " completion directory", Err: err}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", &InstallError{Path: path, Err: err}
	}

	in.renderer().Notice("Writing completions to %s", path)

	if err := os.WriteFile(path, script, 0644); err != nil {
		return "", &InstallError{Path: path, Err: err}
	}

	return path, nil
}

func (in *Installer) renderer() *view.Renderer {
	if in.out == nil {
		in.out = view.NewRenderer(nil, false)
	}
	return in.out
}

func (in *Installer) userConfigHome() (string, error) {
	if in.configHome != nil {
		return in.configHome()
	}
	return userConfigHome()
}

// userConfigHome resolves the XDG config directory, falling back to ~/.config.
func userConfigHome() (string, error) {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" && filepath.IsAbs(xdg) {
		return xdg, nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}

	return filepath.Join(home, ".config"), nil
}
