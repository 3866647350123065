// Package autocomplete adds a self-installing "complete" subcommand to a cobra
// command tree.
//
// Typical use:
//
//	root := newRootCmd()
//	autocomplete.Register(root)
//
//	executed, err := root.ExecuteC()
//	if err != nil {
//		os.Exit(1)
//	}
//	if invoked, err := autocomplete.NewResolver().Resolve(root, executed); invoked {
//		if err != nil {
//			fmt.Fprintln(os.Stderr, err)
//			os.Exit(1)
//		}
//		os.Exit(0)
//	}
package autocomplete

import (
	"fmt"

	"github.com/spf13/cobra"
)

const (
	// CommandName is the name of the registered subcommand.
	CommandName = "complete"

	// BinNameAnnotation on the root command overrides the program name used
	// for generated scripts and install file names.
	BinNameAnnotation = "autocomplete_bin_name"

	registeredAnnotation = "autocomplete_registered"

	shellFlag = "shell"
	printFlag = "print"
)

// Option configures Register.
type Option func(*registerOptions)

type registerOptions struct {
	platform Platform
}

// WithPlatform overrides the detected platform capabilities.
func WithPlatform(p Platform) Option {
	return func(o *registerOptions) {
		o.platform = p
	}
}

// SetBinName records the binary name scripts should complete for.
func SetBinName(root *cobra.Command, name string) {
	if root.Annotations == nil {
		root.Annotations = map[string]string{}
	}
	root.Annotations[BinNameAnnotation] = name
}

// BinName returns the program name for root: the BinNameAnnotation when set,
// otherwise the command name.
func BinName(root *cobra.Command) string {
	if name := root.Annotations[BinNameAnnotation]; name != "" {
		return name
	}
	return root.Name()
}

// Register appends the complete subcommand to root and returns root.
// Calling it again on the same root leaves the tree unchanged.
func Register(root *cobra.Command, opts ...Option) *cobra.Command {
	o := registerOptions{platform: DetectPlatform()}
	for _, opt := range opts {
		opt(&o)
	}

	for _, c := range root.Commands() {
		if isCompleteCmd(c) {
			return root
		}
	}

	root.AddCommand(newCmdComplete(BinName(root), o.platform))
	return root
}

func newCmdComplete(name string, p Platform) *cobra.Command {
	long := `Generate completions for the detected or selected shell and put them in
the shell's completion directory.

Supports bash, zsh, fish, elvish and powershell. Completions for fish, bash
and zsh are installed automatically unless --print is given; the others are
always printed to stdout.`
	if !p.Installable {
		long = `Generate completions for the detected or selected shell and print them
to stdout.

Supports bash, zsh, fish, elvish and powershell.`
	}

	cmd := &cobra.Command{
		Use:   CommandName,
		Short: "Generate and install shell completions",
		Long:  long,
		Example: fmt.Sprintf(`  # Detect the shell and install completions
  %[1]s complete

  # Generate zsh completions explicitly
  %[1]s complete --shell zsh`, name),
		Args:        cobra.NoArgs,
		Annotations: map[string]string{registeredAnnotation: "true"},
		// The work happens in Resolver.Resolve once Execute returns.
		RunE: func(_ *cobra.Command, _ []string) error {
			return nil
		},
	}

	cmd.Flags().StringP(shellFlag, "s", "", "explicitly choose which shell to generate for")
	_ = cmd.RegisterFlagCompletionFunc(shellFlag, func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return nil, cobra.ShellCompDirectiveNoFileComp
	})

	if p.Installable {
		cmd.Flags().BoolP(printFlag, "p", false, "print the completion script to stdout instead of installing it")
	}

	return cmd
}

func isCompleteCmd(c *cobra.Command) bool {
	return c != nil && c.Annotations[registeredAnnotation] == "true"
}
