package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yaklabco/phpfmt/internal/configloader"
	"github.com/yaklabco/phpfmt/internal/logging"
	"github.com/yaklabco/phpfmt/internal/ui/pretty"
	"github.com/yaklabco/phpfmt/pkg/config"
)

// commandContext returns the command's context, or a background context.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

// loadConfig resolves the configuration for workDir, applying override
// last. Configuration failures are returned as ExitDataError.
func loadConfig(
	ctx context.Context,
	globals *globalFlags,
	workDir string,
	override func(*config.Config),
) (*config.Config, error) {
	result, err := loadConfigResult(ctx, globals, workDir, override)
	if err != nil {
		return nil, err
	}
	return result.Config, nil
}

func loadConfigResult(
	ctx context.Context,
	globals *globalFlags,
	workDir string,
	override func(*config.Config),
) (*configloader.LoadResult, error) {
	logger := logging.FromContext(ctx)

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:          workDir,
		ExplicitPath:        globals.configPath,
		IgnoreSystemConfig:  globals.noConfig,
		IgnoreUserConfig:    globals.noConfig,
		IgnoreProjectConfig: globals.noConfig,
		IgnoreEnv:           globals.noConfig,
		Override: func(cfg *config.Config) {
			if globals.debug {
				cfg.Debug = true
			}
			if override != nil {
				override(cfg)
			}
		},
	})
	if err != nil {
		return nil, &ExitError{Code: ExitDataError, Err: err}
	}

	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}
	return loadResult, nil
}

type configFlags struct {
	env bool
}

func newConfigCommand(globals *globalFlags) *cobra.Command {
	flags := &configFlags{}

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Show the resolved configuration",
		Long: `Print the configuration phpfmt would use in the current directory as YAML,
after merging system, user and project files, PHPFMT_* variables and --config.
The files that contributed are listed in a comment header.

With --env, list the supported PHPFMT_* environment variables instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runConfig(cmd, globals, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.env, "env", false, "list supported environment variables")
	return cmd
}

func runConfig(cmd *cobra.Command, globals *globalFlags, flags *configFlags) error {
	out := cmd.OutOrStdout()

	if flags.env {
		var rows [][]string
		for _, v := range configloader.ListEnvVars() {
			rows = append(rows, []string{v.Name, v.Key, v.Help})
		}
		styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
		fmt.Fprint(out, pretty.NewTableFormatter(styles, terminalWidth(out)).Format([]string{"VARIABLE", "KEY", "DESCRIPTION"}, rows))
		return nil
	}

	workDir, err := workingDir()
	if err != nil {
		return err
	}
	result, err := loadConfigResult(commandContext(cmd), globals, workDir, nil)
	if err != nil {
		return err
	}

	header := "# defaults only"
	if len(result.LoadedFrom) > 0 {
		header = "# loaded from:\n#   " + strings.Join(result.LoadedFrom, "\n#   ")
	}
	data, err := result.Config.ToYAMLWithHeader(header)
	if err != nil {
		return &ExitError{Code: ExitInternalError, Err: err}
	}
	_, err = out.Write(data)
	return err
}

// commandLogger returns the logger for a run, at debug level when cfg asks
// for it.
func commandLogger(cfg *config.Config) *log.Logger {
	logger := logging.Default()
	if cfg != nil && cfg.Debug {
		logger.SetLevel(log.DebugLevel)
	}
	return logger
}

// workingDir returns the current directory.
func workingDir() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", &ExitError{Code: ExitIOError, Err: err}
	}
	return dir, nil
}
