// Package init provides the init command for acdemo.
package init

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cobra-autocomplete/internal/config"
	"github.com/open-cli-collective/cobra-autocomplete/internal/view"
	"github.com/open-cli-collective/cobra-autocomplete/pkg/autocomplete"
)

type initOptions struct {
	shell      string
	force      bool
	configPath string
	out        io.Writer

	// prompt fills in values that were not given as flags.
	prompt func(cfg *config.Config) error
	// confirm asks whether an existing file may be replaced.
	confirm func(path string) (bool, error)
}

// NewCmdInit creates the init command.
func NewCmdInit() *cobra.Command {
	opts := &initOptions{
		prompt:  promptShell,
		confirm: confirmOverwrite,
	}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize acdemo configuration",
		Long: `Initialize acdemo with your preferred shell.

The preferred shell is used by "acdemo complete" before it falls back to
inspecting the process tree. The configuration is saved to --config, or
~/.config/acdemo/config.yml by default.`,
		Example: `  # Interactive setup
  acdemo init

  # Non-interactive
  acdemo init --shell zsh --force`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			path, _ := cmd.Flags().GetString("config")
			opts.configPath = config.PathOrDefault(path)
			opts.out = cmd.OutOrStdout()
			return runInit(opts)
		},
	}

	cmd.Flags().StringVar(&opts.shell, "shell", "", "preferred shell (bash, zsh, fish, powershell, elvish)")
	cmd.Flags().BoolVar(&opts.force, "force", false, "overwrite an existing configuration without asking")
	_ = cmd.RegisterFlagCompletionFunc("shell", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return shellNames(), cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runInit(opts *initOptions) error {
	r := view.NewRenderer(opts.out, false)

	if _, err := os.Stat(opts.configPath); err == nil && !opts.force {
		overwrite, err := opts.confirm(opts.configPath)
		if err != nil {
			return err
		}
		if !overwrite {
			r.RenderText("Initialization cancelled.")
			return nil
		}
	}

	cfg := &config.Config{Shell: opts.shell}
	if cfg.Shell == "" {
		if err := opts.prompt(cfg); err != nil {
			return err
		}
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if err := cfg.Save(opts.configPath); err != nil {
		return err
	}

	r.Success(fmt.Sprintf("Configuration saved to %s", opts.configPath))
	r.RenderText("\nInstall completions with:\n  acdemo complete")

	return nil
}

func shellNames() []string {
	var names []string
	for _, s := range autocomplete.Shells() {
		names = append(names, s.String())
	}
	return names
}

func promptShell(cfg *config.Config) error {
	var options []huh.Option[string]
	for _, name := range shellNames() {
		options = append(options, huh.NewOption(name, name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Preferred shell").
				Description("Used when acdemo complete runs without --shell").
				Options(options...).
				Value(&cfg.Shell),
		),
	).Run()
}

func confirmOverwrite(path string) (bool, error) {
	var overwrite bool
	err := huh.NewConfirm().
		Title("Configuration already exists").
		Description(fmt.Sprintf("Overwrite %s?", path)).
		Value(&overwrite).
		Run()
	return overwrite, err
}
