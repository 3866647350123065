package autocomplete

import (
	"errors"
	"strings"
)

// Shell identifies a shell a completion script can be generated for.
type Shell int

const (
	Bash Shell = iota + 1
	Zsh
	Fish
	PowerShell
	Elvish
)

var (
	// ErrUnsupportedShell is returned when a shell name matches no known shell.
	ErrUnsupportedShell = errors.New("unsupported explicit shell")

	// ErrDetectionFailed is returned when the current shell could not be detected.
	ErrDetectionFailed = errors.New("failed to detect shell, please explicitly supply it")
)

// Shells lists every supported shell in a stable order.
func Shells() []Shell {
	return []Shell{Bash, Zsh, Fish, PowerShell, Elvish}
}

// ParseShell matches name case-insensitively against the supported shells.
// Both "pwsh" and "powershell" select PowerShell.
func ParseShell(name string) (Shell, error) {
	switch strings.ToLower(name) {
	case "bash":
		return Bash, nil
	case "zsh":
		return Zsh, nil
	case "fish":
		return Fish, nil
	case "pwsh", "powershell":
		return PowerShell, nil
	case "elvish":
		return Elvish, nil
	default:
		return 0, ErrUnsupportedShell
	}
}

func (s Shell) String() string {
	switch s {
	case Bash:
		return "bash"
	case Zsh:
		return "zsh"
	case Fish:
		return "fish"
	case PowerShell:
		return "powershell"
	case Elvish:
		return "elvish"
	default:
		return "unknown"
	}
}

// Installable reports whether the shell has a conventional completion directory.
func (s Shell) Installable() bool {
	return s == Bash || s == Zsh || s == Fish
}
