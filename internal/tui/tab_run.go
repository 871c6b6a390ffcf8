package tui

import (
	"fmt"
	"strings"

	"github.com/theirongolddev/stratsim/internal/cli"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/tui/components"
	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// paramRows lists the active mode's inputs as label/value pairs.
func paramRows(p model.Params) [][2]string {
	if p.Mode == model.ModeSaaS {
		s := p.SaaS
		return [][2]string{
			{"Mode", "SaaS"},
			{"Current MRR", cli.FormatMoney(s.MRR)},
			{"Customers", cli.FormatNumber(int64(s.Customers))},
			{"Monthly churn", cli.FormatPercent(s.ChurnRate)},
			{"CAC", cli.FormatMoney(s.CAC)},
			{"Marketing budget", cli.FormatMoney(s.MarketingBudget)},
			{"ARPU", cli.FormatMoney(s.ARPU)},
			{"Months", fmt.Sprintf("%d", s.Months)},
		}
	}
	g := p.Growth
	return [][2]string{
		{"Mode", "Growth"},
		{"Predicted revenue", cli.FormatMoney(g.PredictedRevenue)},
		{"Predicted cost", cli.FormatMoney(g.PredictedCost)},
		{"Growth rate", cli.FormatPercent(g.GrowthRate)},
		{"Months", fmt.Sprintf("%d", g.Months)},
	}
}

func (a App) renderRunTab(cw int) string {
	t := theme.Active

	labelStyle := lipgloss.NewStyle().Foreground(t.TextMuted)
	valueStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	accentStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)

	p, err := a.session.Params()
	if err != nil {
		body := valueStyle.Render("No inputs yet.") + "\n" +
			labelStyle.Render("Press ") + accentStyle.Render("i") +
			labelStyle.Render(" to describe your strategy, then ") + accentStyle.Render("r") +
			labelStyle.Render(" to run it.")
		return components.ContentCard("Run", body, cw)
	}

	halves := components.LayoutRow(cw, 2)

	var inputs strings.Builder
	for _, row := range paramRows(p) {
		fmt.Fprintf(&inputs, "%s %s\n",
			labelStyle.Render(fmt.Sprintf("%-18s", row[0])),
			valueStyle.Render(row[1]))
	}
	inputs.WriteString("\n")
	inputs.WriteString(accentStyle.Render("r") + labelStyle.Render(" run   ") +
		accentStyle.Render("i") + labelStyle.Render(" edit"))

	var last strings.Builder
	rep, err := a.session.Report()
	if err != nil {
		last.WriteString(labelStyle.Render("Nothing simulated yet."))
	} else {
		res := rep.Result
		fmt.Fprintf(&last, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", "Run")), valueStyle.Render(shortID(res.RunID)))
		fmt.Fprintf(&last, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", "Mode")), valueStyle.Render(string(res.Mode)))
		fmt.Fprintf(&last, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", "Months")), valueStyle.Render(fmt.Sprintf("%d", res.Len())))
		if res.Mode == model.ModeGrowth {
			fmt.Fprintf(&last, "%s %s\n", labelStyle.Render(fmt.Sprintf("%-14s", "Actual factor")),
				valueStyle.Render(fmt.Sprintf("%.4f", res.ActualFactor)))
		}
		if rep.Params != p {
			last.WriteString("\n")
			last.WriteString(lipgloss.NewStyle().Foreground(t.Warn).Render("Inputs changed since this run. Press r to re-run."))
		}
	}

	return components.CardRow([]string{
		components.ContentCard("Inputs", strings.TrimRight(inputs.String(), "\n"), halves[0]),
		components.ContentCard("Last run", strings.TrimRight(last.String(), "\n"), halves[1]),
	})
}
