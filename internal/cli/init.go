package cli

import (
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/phpfmt/internal/configloader"
	"github.com/yaklabco/phpfmt/internal/logging"
	"github.com/yaklabco/phpfmt/pkg/config"
)

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	full   bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new phpfmt configuration file",
		Long: `Create a new .phpfmt.yml configuration file in the current directory
with the default style. Edit the file to change indentation, heredoc
handling, import sorting, and which rules run.

Examples:
  phpfmt init                        Create .phpfmt.yml
  phpfmt init --full                 Also document every rule
  phpfmt init --output custom.yml    Write to a custom file path`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runInit(cmd, flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().BoolVar(&flags.full, "full", false, "Document every rule in the template")
	cmd.Flags().StringVarP(&flags.output, "output", "o", ".phpfmt.yml", "Output file path")

	return cmd
}

func runInit(cmd *cobra.Command, flags *initFlags) error {
	logger := logging.Default()

	absPath, err := filepath.Abs(flags.output)
	if err != nil {
		return usageError("resolve path: %w", err)
	}

	opts := config.TemplateOptions{Full: flags.full}
	if err := configloader.WriteTemplate(commandContext(cmd), absPath, opts, flags.force); err != nil {
		return &ExitError{Code: ExitIOError, Err: err}
	}

	logger.Info("created configuration file", logging.FieldPath, flags.output)
	logger.Info("run 'phpfmt rules' to see all available rules")

	return nil
}
