package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/yaklabco/phpfmt/internal/ui/pretty"
	"github.com/yaklabco/phpfmt/pkg/format"
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCommand(globals *globalFlags) *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List formatting rules",
		Long: `List all formatting rules in the order they run, with their descriptions,
whether they run by default, and whether the resolved configuration enables them.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runRules(cmd, globals, flags)
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text", "output format: text, json")

	return cmd
}

func runRules(cmd *cobra.Command, globals *globalFlags, flags *rulesFlags) error {
	if flags.format != "text" && flags.format != formatJSON {
		return usageError("invalid --format %q: must be text or json", flags.format)
	}

	ctx := commandContext(cmd)
	workDir, err := workingDir()
	if err != nil {
		return err
	}
	cfg, err := loadConfig(ctx, globals, workDir, nil)
	if err != nil {
		return err
	}

	enabled, err := format.DefaultRegistry.Enabled(cfg)
	if err != nil {
		return &ExitError{Code: ExitDataError, Err: err}
	}
	on := make(map[string]bool, len(enabled))
	for _, reg := range enabled {
		on[reg.Name] = true
	}

	regs := format.DefaultRegistry.Registrations()
	infos := make([]ruleInfo, 0, len(regs))
	for _, reg := range regs {
		infos = append(infos, ruleInfo{
			Name:        reg.Name,
			Description: reg.Description,
			Default:     reg.Default,
			Enabled:     on[reg.Name],
		})
	}

	out := cmd.OutOrStdout()
	if flags.format == formatJSON {
		return outputRulesJSON(out, infos)
	}

	styles := pretty.NewStyles(pretty.IsColorEnabled(globals.color, out))
	rows := make([]pretty.RuleInfo, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, pretty.RuleInfo(info))
	}
	fmt.Fprint(out, pretty.NewTableFormatter(styles, terminalWidth(out)).FormatRules(rows))
	return nil
}

// terminalWidth returns the width of w when it is a terminal, or 0.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

// outputRulesJSON writes rules as a JSON array.
func outputRulesJSON(w io.Writer, infos []ruleInfo) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
