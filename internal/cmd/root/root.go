// Package root provides the root command for the acdemo CLI.
package root

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cobra-autocomplete/internal/cmd/completion"
	"github.com/open-cli-collective/cobra-autocomplete/internal/cmd/configcmd"
	"github.com/open-cli-collective/cobra-autocomplete/internal/cmd/greet"
	initcmd "github.com/open-cli-collective/cobra-autocomplete/internal/cmd/init"
	"github.com/open-cli-collective/cobra-autocomplete/internal/config"
	"github.com/open-cli-collective/cobra-autocomplete/internal/version"
	"github.com/open-cli-collective/cobra-autocomplete/internal/view"
	"github.com/open-cli-collective/cobra-autocomplete/pkg/autocomplete"
)

// NewCmdRoot creates the root command for acdemo.
func NewCmdRoot() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "acdemo",
		Short: "Demonstrates self-installing shell completions",
		Long: `acdemo is a small CLI showing the autocomplete package in use.

Install completions for your current shell with:

  acdemo complete

or print them instead with:

  acdemo complete --shell zsh --print`,
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       version.Version,
	}

	// Global flags
	cmd.PersistentFlags().StringP("config", "c", "", "config file (default: ~/.config/acdemo/config.yml)")
	cmd.PersistentFlags().Bool("no-color", false, "disable colored output")

	// Set version template
	cmd.SetVersionTemplate(version.Line("acdemo"))

	// Subcommands
	cmd.AddCommand(initcmd.NewCmdInit())
	cmd.AddCommand(configcmd.NewCmdConfig())
	cmd.AddCommand(greet.NewCmdGreet())

	return completion.Register(cmd)
}

// Execute runs acdemo with args and returns the process exit code.
func Execute(args []string, stdout, stderr io.Writer) int {
	cmd := NewCmdRoot()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	executed, err := cmd.ExecuteC()
	noColor, _ := cmd.PersistentFlags().GetBool("no-color")
	if err != nil {
		view.NewRenderer(stderr, noColor).Error(err.Error())
		return 1
	}

	if !autocomplete.Invoked(cmd, executed) {
		return 0
	}

	configPath, _ := cmd.PersistentFlags().GetString("config")
	configPath = config.PathOrDefault(configPath)
	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		view.NewRenderer(stderr, noColor).Notice("Ignoring config file %s: %v", configPath, err)
		cfg = &config.Config{}
		cfg.LoadFromEnv()
	}

	r := view.NewRenderer(stderr, noColor || cfg.NoColor)
	resolver := completion.NewResolver(cmd, cfg)
	if _, err := resolver.Resolve(cmd, executed); err != nil {
		r.Error(err.Error())
		return 1
	}
	if resolver.Installed != "" {
		r.Success(fmt.Sprintf("Completions installed to %s", resolver.Installed))
	}
	return 0
}
