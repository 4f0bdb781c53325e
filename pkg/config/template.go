package config

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"
	"strings"
)

// templateWidth is the column at which rule descriptions wrap.
const templateWidth = 78

// TemplateOptions controls GenerateTemplate.
type TemplateOptions struct {
	// Full appends a commented catalog of every rule.
	Full bool
}

// RuleInfo describes one rule in a generated template.
type RuleInfo struct {
	Name        string
	Description string
	Enabled     bool
}

// RuleInfoProvider lists the known rules. The rules package installs one in
// DefaultRuleInfoProvider so this package need not import it.
type RuleInfoProvider func() []RuleInfo

//nolint:gochecknoglobals // set once by the rules package
var DefaultRuleInfoProvider RuleInfoProvider

const templateOptional = `
# Style preset applied before the keys above: psr12 or wordpress
# preset: psr12

# Doublestar globs of files to leave alone
# ignore:
#   - "vendor/**"
#   - "storage/**"
`

// GenerateTemplate returns a .phpfmt.yml holding the default settings and
// commented examples of the optional keys.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	body, err := NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	if err != nil {
		return nil, err
	}

	buf := bytes.NewBuffer(body)
	buf.WriteString(templateOptional)
	if opts.Full && DefaultRuleInfoProvider != nil {
		writeRuleCatalog(buf, DefaultRuleInfoProvider())
	}
	return buf.Bytes(), nil
}

func writeRuleCatalog(buf *bytes.Buffer, rules []RuleInfo) {
	rules = slices.Clone(rules)
	slices.SortFunc(rules, func(a, b RuleInfo) int { return cmp.Compare(a.Name, b.Name) })

	buf.WriteString("\n# Rules, toggled with enable_rules and disable_rules:\n")
	for _, rule := range rules {
		state := "on"
		if !rule.Enabled {
			state = "off"
		}
		fmt.Fprintf(buf, "#\n#   %s (%s)\n", rule.Name, state)
		for _, line := range wrapWords(rule.Description, templateWidth-len("#     ")) {
			buf.WriteString("#     " + line + "\n")
		}
	}
}

// wrapWords breaks text into lines of at most width bytes. Words longer
// than width get a line of their own.
func wrapWords(text string, width int) []string {
	var lines []string
	var line strings.Builder
	for _, word := range strings.Fields(text) {
		if line.Len() > 0 && line.Len()+1+len(word) > width {
			lines = append(lines, line.String())
			line.Reset()
		}
		if line.Len() > 0 {
			line.WriteByte(' ')
		}
		line.WriteString(word)
	}
	if line.Len() > 0 {
		lines = append(lines, line.String())
	}
	return lines
}

// DefaultTemplateHeader is the comment block at the top of a generated
// configuration file.
func DefaultTemplateHeader() string {
	return "# phpfmt configuration\n# Place this file at the project root as .phpfmt.yml"
}
