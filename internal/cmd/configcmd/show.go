package configcmd

import (
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cobra-autocomplete/internal/config"
	"github.com/open-cli-collective/cobra-autocomplete/internal/view"
	"github.com/open-cli-collective/cobra-autocomplete/pkg/autocomplete"
)

// NewCmdShow creates the config show command.
func NewCmdShow() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display current configuration",
		Long: `Display the current acdemo configuration, the shell that would be
detected, and where its completions would be installed.`,
		Example: `  # Show current config
  acdemo config show`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, _ := cmd.Flags().GetString("config")
			return runShow(cmd.OutOrStdout(), noColor, config.PathOrDefault(path), autocomplete.BinName(cmd.Root()), nil)
		},
	}

	return cmd
}

// runShow prints the configuration. A nil detector uses the configured chain.
func runShow(w io.Writer, noColor bool, configPath, binName string, detector autocomplete.Detector) error {
	r := view.NewRenderer(w, noColor)
	dim := color.New(color.Faint)

	// Load file config (may not exist)
	fileCfg, fileErr := config.Load(configPath)
	if fileErr != nil {
		fileCfg = &config.Config{}
	}

	cfg, err := config.LoadWithEnv(configPath)
	if err != nil {
		cfg = &config.Config{}
		cfg.LoadFromEnv()
	}

	source := "-"
	switch {
	case cfg.Shell == "":
	case os.Getenv("ACDEMO_SHELL") == cfg.Shell:
		source = "ACDEMO_SHELL"
	case fileCfg.Shell == cfg.Shell:
		source = "config"
	}

	r.RenderKeyValue("Shell", cfg.Shell)
	if cfg.Shell != "" {
		_, _ = dim.Fprintf(w, "%12s(source: %s)\n", "", source)
	}

	if detector == nil {
		detector = cfg.Detector()
	}
	detected, err := detector.Detect()
	if err != nil {
		detected = ""
	}
	r.RenderKeyValue("Detected", detected)

	installPath := ""
	if shell, err := autocomplete.ParseShell(detected); err == nil && autocomplete.DetectPlatform().Installable {
		installPath, _ = autocomplete.InstallPath(shell, binName)
	}
	r.RenderKeyValue("Completions", installPath)

	r.RenderText("")
	_, _ = dim.Fprintf(w, "Config file: %s\n", configPath)
	if fileErr != nil {
		_, _ = dim.Fprintln(w, "(file not found)")
	}

	return nil
}
