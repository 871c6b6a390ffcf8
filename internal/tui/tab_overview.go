package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
	"github.com/theirongolddev/stratsim/internal/tui/components"
	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

func (a App) renderOverviewTab(cw int) string {
	t := theme.Active

	titleStyle := lipgloss.NewStyle().Foreground(t.AccentBright).Bold(true)
	textStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	keyStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	var b strings.Builder
	b.WriteString(titleStyle.Render("◈ Business Strategy Simulator"))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render("Project a strategy month by month, compare it with what it could realistically return, and get plain advice."))
	b.WriteString("\n\n")

	halves := components.LayoutRow(cw, 2)

	growth := strings.Join([]string{
		textStyle.Render("Compounds your predicted revenue by a monthly growth rate."),
		mutedStyle.Render("Each run draws one actual factor between 0.9 and 1.1"),
		mutedStyle.Render("and applies it to every month's prediction."),
		"",
		mutedStyle.Render(fmt.Sprintf("Growth rate 0-%g%%, up to %d months.", model.MaxGrowthRate*100, model.MaxMonths)),
	}, "\n")

	saas := strings.Join([]string{
		textStyle.Render("Tracks customers through monthly churn and acquisition."),
		mutedStyle.Render("New customers are marketing budget divided by CAC;"),
		mutedStyle.Render("MRR is customers times ARPU."),
		"",
		mutedStyle.Render(fmt.Sprintf("Churn above %.0f%% or LTV:CAC below %gx is flagged.",
			pipeline.MildChurn*100, pipeline.HealthyLTVToCAC)),
	}, "\n")

	b.WriteString(components.CardRow([]string{
		components.ContentCard("Growth mode", growth, halves[0]),
		components.ContentCard("SaaS mode", saas, halves[1]),
	}))
	b.WriteString("\n")

	steps := []struct{ key, desc string }{
		{"i", "Enter your strategy on the Input tab"},
		{"r", "Run the simulation"},
		{"s", "Read the summary, chart and recommendations"},
		{"c x p", "Export CSV, Excel or PDF"},
	}
	var body strings.Builder
	for i, st := range steps {
		fmt.Fprintf(&body, "%s %s  %s\n",
			mutedStyle.Render(fmt.Sprintf("%d.", i+1)),
			keyStyle.Render(fmt.Sprintf("%-6s", st.key)),
			textStyle.Render(st.desc))
	}
	b.WriteString(components.ContentCard("Getting started", strings.TrimRight(body.String(), "\n"), cw))

	return b.String()
}
