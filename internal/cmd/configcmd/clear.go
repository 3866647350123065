package configcmd

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/open-cli-collective/cobra-autocomplete/internal/config"
	"github.com/open-cli-collective/cobra-autocomplete/internal/view"
)

// NewCmdClear creates the config clear command.
func NewCmdClear() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove stored configuration",
		Long:  `Delete the acdemo configuration file. Environment variables will still be used if set.`,
		Example: `  # Clear config
  acdemo config clear`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			noColor, _ := cmd.Flags().GetBool("no-color")
			path, _ := cmd.Flags().GetString("config")
			return runClear(cmd.OutOrStdout(), noColor, config.PathOrDefault(path))
		},
	}

	return cmd
}

func runClear(w io.Writer, noColor bool, configPath string) error {
	r := view.NewRenderer(w, noColor)

	err := os.Remove(configPath)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove config file: %w", err)
	}

	if os.IsNotExist(err) {
		r.Success("No config file to remove")
	} else {
		r.Success(fmt.Sprintf("Configuration cleared from %s", configPath))
	}

	// Check if env vars are set
	var activeVars []string
	for _, v := range []string{"ACDEMO_SHELL", "ACDEMO_NO_COLOR"} {
		if os.Getenv(v) != "" {
			activeVars = append(activeVars, v)
		}
	}

	if len(activeVars) > 0 {
		dim := color.New(color.Faint)
		_, _ = dim.Fprintf(w, "\nNote: Environment variables will still be used: %v\n", activeVars)
	}

	return nil
}
