package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"invoice-financing/internal/seed"
	"invoice-financing/internal/usecase/financing"
)

var (
	accent  = lipgloss.Color("#0EA5E9")
	dim     = lipgloss.Color("#6B7280")
	success = lipgloss.Color("#22C55E")
	warning = lipgloss.Color("#F59E0B")
	danger  = lipgloss.Color("#EF4444")
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	labelStyle = lipgloss.NewStyle().Foreground(dim).Width(22)
	okStyle    = lipgloss.NewStyle().Foreground(success)
	warnStyle  = lipgloss.NewStyle().Foreground(warning)
	failStyle  = lipgloss.NewStyle().Foreground(danger)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(0, 2)
)

func row(label string, value int, style lipgloss.Style) string {
	v := fmt.Sprintf("%d", value)
	if value > 0 {
		v = style.Render(v)
	}
	return labelStyle.Render(label) + v
}

func renderSummary(s *financing.RunSummary) string {
	plain := lipgloss.NewStyle()
	lines := []string{
		titleStyle.Render("financing run"),
		"",
		row("pages", s.Pages, plain),
		row("processed", s.Processed, plain),
		row("financed", s.Financed, okStyle),
		row("missing financiers", s.MissingFinanciers, warnStyle),
		row("short term", s.ShortTerm, warnStyle),
		row("rate limit exceeded", s.RateLimitExceeded, failStyle),
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}

func renderSeed(r *seed.Result) string {
	plain := lipgloss.NewStyle()
	lines := []string{
		titleStyle.Render("seed applied"),
		"",
		row("issuers added", r.Issuers, plain),
		row("obligors added", r.Obligors, plain),
		row("financiers added", r.Financiers, plain),
		row("invoices added", r.Invoices, okStyle),
	}
	return boxStyle.Render(strings.Join(lines, "\n")) + "\n"
}
