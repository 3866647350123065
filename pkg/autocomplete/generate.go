package autocomplete

import (
	"fmt"
	"io"
	"strings"

	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"
)

// Generator writes a completion script for root to w.
type Generator interface {
	Generate(w io.Writer, shell Shell, root *cobra.Command, name string) error
}

// CobraGenerator produces scripts with cobra's built-in generators. Elvish,
// which cobra does not cover, is produced by carapace.
type CobraGenerator struct {
	// NoDescriptions leaves flag and command descriptions out of the scripts.
	NoDescriptions bool
}

// Generate implements Generator.
func (g CobraGenerator) Generate(w io.Writer, shell Shell, root *cobra.Command, name string) error {
	var err error
	withProgramName(root, name, func() {
		err = g.generate(w, shell, root)
	})
	if err != nil {
		return fmt.Errorf("failed to generate %s completions: %w", shell, err)
	}
	return nil
}

func (g CobraGenerator) generate(w io.Writer, shell Shell, root *cobra.Command) error {
	desc := !g.NoDescriptions

	switch shell {
	case Bash:
		return root.GenBashCompletionV2(w, desc)
	case Zsh:
		if desc {
			return root.GenZshCompletion(w)
		}
		return root.GenZshCompletionNoDesc(w)
	case Fish:
		return root.GenFishCompletion(w, desc)
	case PowerShell:
		if desc {
			return root.GenPowerShellCompletionWithDesc(w)
		}
		return root.GenPowerShellCompletion(w)
	case Elvish:
		snippet, err := carapace.Gen(root).Snippet(shell.String())
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, snippet)
		return err
	default:
		return ErrUnsupportedShell
	}
}

// withProgramName runs fn while root reports name as its command name, so the
// generators emit scripts for the binary that is actually installed.
func withProgramName(root *cobra.Command, name string, fn func()) {
	if name == "" || name == root.Name() {
		fn()
		return
	}

	use := root.Use
	defer func() { root.Use = use }()

	if i := strings.Index(use, " "); i >= 0 {
		root.Use = name + use[i:]
	} else {
		root.Use = name
	}
	fn()
}
