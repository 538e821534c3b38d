package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/taskwire/taskwire/engine/domain"
	"github.com/taskwire/taskwire/engine/task/uc"
)

var (
	domainHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	domainKeyStyle    = lipgloss.NewStyle().Bold(true)
	domainMutedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
)

// DomainsCmd returns the domains command.
func DomainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "domains",
		Short: "List the task domains and their templates",
		RunE:  handleDomainsCmd,
	}
	cmd.Flags().String("format", OutputFormatText, "Output format (text, json)")
	return cmd
}

func handleDomainsCmd(cmd *cobra.Command, _ []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	summaries := uc.NewListDomains(domain.Default()).Execute(cmd.Context())
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(cmd.OutOrStdout())
		encoder.SetIndent("", "  ")
		return encoder.Encode(summaries)
	case OutputFormatText:
		fmt.Fprint(cmd.OutOrStdout(), renderDomainTable(summaries, shouldUseColor()))
		return nil
	default:
		return fmt.Errorf("unsupported format: %s", format)
	}
}

// renderDomainTable renders the catalog as an aligned text table. Styles are
// dropped when color output is not appropriate.
func renderDomainTable(summaries []domain.Summary, color bool) string {
	keyWidth := lipgloss.Width("KEY")
	labelWidth := lipgloss.Width("LABEL")
	for _, s := range summaries {
		keyWidth = max(keyWidth, lipgloss.Width(s.Key))
		labelWidth = max(labelWidth, lipgloss.Width(s.Label))
	}
	style := func(st lipgloss.Style, s string) string {
		if !color {
			return s
		}
		return st.Render(s)
	}

	var b strings.Builder
	header := pad("KEY", keyWidth) + "  " + pad("LABEL", labelWidth) + "  " + pad("CRITERIA", 8) + "  STEPS"
	b.WriteString(style(domainHeaderStyle, header))
	b.WriteByte('\n')
	for _, s := range summaries {
		b.WriteString(style(domainKeyStyle, pad(s.Key, keyWidth)))
		b.WriteString("  ")
		b.WriteString(pad(s.Label, labelWidth))
		b.WriteString("  ")
		b.WriteString(style(domainMutedStyle, pad(fmt.Sprintf("%d", s.CriteriaCount), 8)))
		b.WriteString("  ")
		b.WriteString(strings.Join(s.StepTitles, ", "))
		b.WriteByte('\n')
	}
	return b.String()
}

// pad right-pads s with spaces to the given display width. Width is measured
// in terminal cells so multi-byte runes in Turkish labels line up.
func pad(s string, width int) string {
	if gap := width - lipgloss.Width(s); gap > 0 {
		return s + strings.Repeat(" ", gap)
	}
	return s
}
