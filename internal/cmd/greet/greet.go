// Package greet provides a sample command for exercising completions.
package greet

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

type greetOptions struct {
	shout    bool
	greeting string
}

var greetings = []string{"hello", "hi", "hey", "howdy"}

// NewCmdGreet creates the greet command.
func NewCmdGreet() *cobra.Command {
	opts := &greetOptions{}

	cmd := &cobra.Command{
		Use:   "greet [name]",
		Short: "Print a greeting",
		Long: `Print a greeting. Mostly here so "acdemo complete" has flags and
arguments worth completing.`,
		Example: `  acdemo greet
  acdemo greet Ada --greeting howdy --shout`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := "world"
			if len(args) > 0 {
				name = args[0]
			}
			return runGreet(cmd.OutOrStdout(), opts, name)
		},
	}

	cmd.Flags().BoolVar(&opts.shout, "shout", false, "print the greeting in upper case")
	cmd.Flags().StringVarP(&opts.greeting, "greeting", "g", "hello", "greeting word")
	_ = cmd.RegisterFlagCompletionFunc("greeting", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return greetings, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runGreet(w io.Writer, opts *greetOptions, name string) error {
	msg := fmt.Sprintf("%s, %s!", opts.greeting, name)
	if opts.shout {
		msg = strings.ToUpper(msg)
	}
	_, err := fmt.Fprintln(w, msg)
	return err
}
