// Package completion wires the self-installing complete command into acdemo.
package completion

import (
	"github.com/carapace-sh/carapace"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cobra-autocomplete/internal/config"
	"github.com/open-cli-collective/cobra-autocomplete/pkg/autocomplete"
)

// Register adds the complete command to root and disables cobra's own
// completion command so only one completion entry point exists.
func Register(root *cobra.Command) *cobra.Command {
	root.CompletionOptions.DisableDefaultCmd = true

	// Elvish scripts call back into the hidden _carapace command.
	carapace.Gen(root)

	return autocomplete.Register(root)
}

// NewResolver creates the resolver for root. The configured preferred shell
// is tried before the process tree and $SHELL. Notices stay plain when either
// --no-color or the no_color setting asks for it.
func NewResolver(root *cobra.Command, cfg *config.Config) *autocomplete.Resolver {
	noColor, _ := root.PersistentFlags().GetBool("no-color")

	r := autocomplete.NewResolver()
	r.Detector = cfg.Detector()
	r.Stdout = root.OutOrStdout()
	r.Stderr = root.ErrOrStderr()
	r.NoColor = noColor || cfg.NoColor
	return r
}
