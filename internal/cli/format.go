package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/phpfmt/internal/logging"
	"github.com/yaklabco/phpfmt/pkg/config"
	"github.com/yaklabco/phpfmt/pkg/format"
	_ "github.com/yaklabco/phpfmt/pkg/format/rules" // Register built-in rules
	"github.com/yaklabco/phpfmt/pkg/reporter"
	"github.com/yaklabco/phpfmt/pkg/runner"
)

const stdinName = "<stdin>"

type formatFlags struct {
	check          bool
	write          bool
	diff           bool
	verify         bool
	stdin          bool
	stdinFilename  string
	output         string
	quiet          bool
	noContext      bool
	compact        bool
	includeVendor  bool
	followSymlinks bool

	// Style overrides, applied only when set on the command line.
	indent           string
	tabSize          int
	heredocIndent    string
	sortImports      string
	alignAssignments bool
	alignComments    bool
	blankLines       string
	trailingCommas   bool
	oneLineBodies    bool
	preset           string
	enable           []string
	disable          []string
	ignore           []string
	jobs             int
	noBackups        bool
}

func newFormatCommand(globals *globalFlags) *cobra.Command {
	flags := &formatFlags{}

	cmd := &cobra.Command{
		Use:     "format [paths...]",
		Aliases: []string{"fmt"},
		Short:   "Format PHP files",
		Long:    formatLongDescription,
		Args:    cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFormat(cmd, args, globals, flags)
		},
	}

	addFormatFlags(cmd, flags)

	return cmd
}

const formatLongDescription = `Format PHP files.

By default, reports the .php and .phtml files under the current directory
that need formatting, skipping vendor directories. Specify paths to format
specific files or directories.

Examples:
  phpfmt format                       # Report files that need formatting
  phpfmt format --write src/          # Format files in place
  phpfmt format --check               # Exit 1 if anything needs formatting
  phpfmt format --diff                # Show the changes as unified diffs
  phpfmt format --stdin < in.php      # Format stdin to stdout
  phpfmt format --indent tabs -w .    # Override the configured indentation`

func addFormatFlags(cmd *cobra.Command, flags *formatFlags) {
	f := cmd.Flags()
	f.BoolVar(&flags.check, "check", false, "exit with status 1 if any file needs formatting or has problems")
	f.BoolVarP(&flags.write, "write", "w", false, "write formatted files in place")
	f.BoolVarP(&flags.diff, "diff", "d", false, "print unified diffs of the changes")
	f.BoolVar(&flags.verify, "verify", false, "format the output again and fail if it changes")
	f.BoolVar(&flags.stdin, "stdin", false, "read source from stdin and write the result to stdout")
	f.StringVar(&flags.stdinFilename, "stdin-filename", stdinName, "file name used in messages for --stdin")
	f.StringVar(&flags.output, "format", "text", "output format: text, json, diff, summary")
	f.BoolVarP(&flags.quiet, "quiet", "q", false, "print only problems and errors")
	f.BoolVar(&flags.noContext, "no-context", false, "hide source line context under problems")
	f.BoolVar(&flags.compact, "compact", false, "use compact JSON output")
	f.BoolVar(&flags.includeVendor, "include-vendor", false, "format files in vendor directories")
	f.BoolVar(&flags.followSymlinks, "follow-symlinks", false, "follow directory symlinks")

	f.StringVar(&flags.indent, "indent", "", "indentation: spaces or tabs")
	f.IntVar(&flags.tabSize, "tab-size", 0, "spaces per indentation level")
	f.StringVar(&flags.heredocIndent, "heredoc-indent", "", "heredoc indentation: none, line, mixed, hanging")
	f.StringVar(&flags.sortImports, "sort-imports", "", "import order: none, name, depth")
	f.BoolVar(&flags.alignAssignments, "align-assignments", false, "align = and => in consecutive lines")
	f.BoolVar(&flags.alignComments, "align-comments", false, "align trailing comments")
	f.StringVar(&flags.blankLines, "blank-lines", "", "blank lines: preserve or remove")
	f.BoolVar(&flags.trailingCommas, "trailing-commas", true, "add trailing commas to lists broken across lines")
	f.BoolVar(&flags.oneLineBodies, "one-line-bodies", true, "keep short function bodies on one line")
	f.StringVar(&flags.preset, "preset", "", "style preset: psr12, wordpress")
	f.StringSliceVar(&flags.enable, "enable", nil, "rules to enable")
	f.StringSliceVar(&flags.disable, "disable", nil, "rules to disable")
	f.StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	f.IntVarP(&flags.jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	f.BoolVar(&flags.noBackups, "no-backups", false, "disable backup creation when writing")
}

// applyOverrides copies the style flags the user set onto cfg.
func (flags *formatFlags) applyOverrides(cmd *cobra.Command, cfg *config.Config) {
	f := cmd.Flags()
	if f.Changed("indent") {
		cfg.Indent = config.IndentStyle(flags.indent)
	}
	if f.Changed("tab-size") {
		cfg.TabSize = flags.tabSize
	}
	if f.Changed("heredoc-indent") {
		cfg.HeredocIndent = config.HeredocIndent(flags.heredocIndent)
	}
	if f.Changed("sort-imports") {
		cfg.SortImports = config.ImportSort(flags.sortImports)
	}
	if f.Changed("align-assignments") {
		cfg.AlignAssignments = flags.alignAssignments
	}
	if f.Changed("align-comments") {
		cfg.AlignComments = flags.alignComments
	}
	if f.Changed("blank-lines") {
		cfg.BlankLines = config.BlankLines(flags.blankLines)
	}
	if f.Changed("trailing-commas") {
		cfg.TrailingCommas = flags.trailingCommas
	}
	if f.Changed("one-line-bodies") {
		cfg.OneLineBodies = flags.oneLineBodies
	}
	if f.Changed("preset") {
		cfg.Preset = flags.preset
	}
	if f.Changed("enable") {
		cfg.EnableRules = append(cfg.EnableRules, flags.enable...)
	}
	if f.Changed("disable") {
		cfg.DisableRules = append(cfg.DisableRules, flags.disable...)
	}
	if f.Changed("ignore") {
		cfg.Ignore = append(cfg.Ignore, flags.ignore...)
	}
	if f.Changed("jobs") {
		cfg.Jobs = flags.jobs
	}
	if f.Changed("no-backups") {
		cfg.NoBackups = flags.noBackups
	}
	if f.Changed("format") {
		cfg.Format = config.OutputFormat(flags.output)
	}
}

func (flags *formatFlags) validate(args []string) error {
	if flags.check && flags.write {
		return usageError("--check and --write are mutually exclusive")
	}
	if flags.stdin && len(args) > 0 {
		return usageError("--stdin does not take paths")
	}
	if flags.stdin && flags.write {
		return usageError("--stdin and --write are mutually exclusive")
	}
	if _, err := reporter.ParseFormat(flags.output); err != nil {
		return usageError("invalid --format: %w", err)
	}
	return nil
}

func runFormat(cmd *cobra.Command, args []string, globals *globalFlags, flags *formatFlags) error {
	if err := flags.validate(args); err != nil {
		return err
	}

	ctx := commandContext(cmd)
	workDir, err := workingDir()
	if err != nil {
		return err
	}

	cfg, err := loadConfig(ctx, globals, workDir, func(c *config.Config) {
		flags.applyOverrides(cmd, c)
	})
	if err != nil {
		return err
	}

	logger := commandLogger(cfg)
	ctx = logging.WithLogger(ctx, logger)
	logger.Debug("configuration resolved",
		logging.FieldPreset, cfg.Preset,
		"indent", cfg.Indent,
		"tab_size", cfg.TabSize,
		"heredoc_indent", cfg.HeredocIndent,
	)

	formatter, err := format.New(cfg, format.WithLogger(logger))
	if err != nil {
		return &ExitError{Code: ExitDataError, Err: err}
	}
	pipeline := format.NewPipeline(formatter)

	if flags.stdin {
		return runStdin(ctx, cmd, pipeline, flags)
	}

	// cfg.Format already reflects --format when it was given.
	outputFormat := reporter.Format(cfg.Format)
	if flags.diff && !cmd.Flags().Changed("format") {
		outputFormat = reporter.FormatDiff
	}

	pipelineOpts := format.DefaultPipelineOptions()
	pipelineOpts.Write = flags.write
	pipelineOpts.Verify = flags.verify
	pipelineOpts.Diff = outputFormat != reporter.FormatText
	pipelineOpts.Backup = format.BackupConfigFromConfig(cfg)

	runOpts := runner.Options{
		Paths:          args,
		WorkingDir:     workDir,
		IncludeVendor:  flags.includeVendor,
		FollowSymlinks: flags.followSymlinks,
		Jobs:           cfg.Jobs,
		Config:         cfg,
	}

	logger.Debug("starting run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
		logging.FieldJobs, runOpts.Jobs,
	)

	result, err := runner.New(pipeline, pipelineOpts).Run(ctx, runOpts)
	if err != nil {
		return runError(err)
	}

	logger.Debug("run finished",
		logging.FieldFilesDiscovered, result.Stats.FilesDiscovered,
		logging.FieldFilesProcessed, result.Stats.FilesProcessed,
		logging.FieldFilesChanged, result.Stats.FilesChanged,
	)

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      outputFormat,
		Color:       globals.color,
		ShowContext: !flags.noContext,
		ShowSummary: !flags.quiet,
		ListFiles:   !flags.quiet,
		Compact:     flags.compact,
		WorkingDir:  workDir,
	})
	if err != nil {
		return usageError("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("report results: %w", err)}
	}

	switch code := ExitCodeFromResult(result, flags.check); code {
	case ExitSuccess:
		return nil
	case ExitUnformatted:
		return &ExitError{Code: code, Err: ErrUnformatted}
	default:
		return &ExitError{Code: code, Err: ErrFilesFailed}
	}
}

// runError maps a runner failure to an exit code.
func runError(err error) error {
	switch {
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return &ExitError{Code: ExitInternalError, Err: err}
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return &ExitError{Code: ExitIOError, Err: err}
	default:
		return &ExitError{Code: classifyError(err), Err: err}
	}
}

// runStdin formats standard input. The formatted text (or a diff with
// --diff) goes to stdout; with --check nothing is printed and the exit code
// reports whether the input was formatted. Problems are logged.
func runStdin(ctx context.Context, cmd *cobra.Command, pipeline *format.Pipeline, flags *formatFlags) error {
	in := cmd.InOrStdin()
	if f, ok := in.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return usageError("--stdin needs input piped or redirected; stdin is a terminal")
	}

	src, err := io.ReadAll(in)
	if err != nil {
		return &ExitError{Code: ExitIOError, Err: fmt.Errorf("read stdin: %w", err)}
	}

	result, err := pipeline.ProcessContent(ctx, flags.stdinFilename, src, format.PipelineOptions{
		Diff:   flags.diff,
		Verify: flags.verify,
	})
	if err != nil {
		return &ExitError{Code: classifyError(err), Err: err}
	}

	logger := logging.FromContext(logging.WithFields(ctx, logging.FieldPath, flags.stdinFilename))
	for _, p := range result.Problems {
		logger.Warn(p.Text(), logging.FieldRule, p.Rule, "line", p.Line())
	}

	out := cmd.OutOrStdout()
	switch {
	case flags.check:
	case flags.diff:
		if result.Diff != nil {
			fmt.Fprint(out, result.Diff.String())
		}
	default:
		fmt.Fprint(out, result.Text)
	}

	if flags.check && (result.Changed || len(result.Problems) > 0) {
		return &ExitError{Code: ExitUnformatted, Err: ErrUnformatted}
	}
	return nil
}
