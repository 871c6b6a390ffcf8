package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/stratsim/internal/cli"
	"github.com/theirongolddev/stratsim/internal/model"
	"github.com/theirongolddev/stratsim/internal/pipeline"
	"github.com/theirongolddev/stratsim/internal/tui/components"
	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

const noSimulationHint = "No simulation yet. Enter your inputs (i) and run (r) first."

func (a App) renderSummaryTab(cw int) string {
	t := theme.Active

	rep, err := a.session.Report()
	if err != nil {
		body := lipgloss.NewStyle().Foreground(t.TextPrimary).Render(noSimulationHint)
		return components.ContentCard("Summary", body, cw)
	}

	var b strings.Builder
	b.WriteString(components.MetricCardRow(summaryCards(rep.Summary), cw))
	b.WriteString("\n")

	labels := monthLabels(rep.Result.Len())
	chartW := components.CardInnerWidth(cw)
	if rep.Result.Mode == model.ModeSaaS {
		series := rep.Result.Series()
		b.WriteString(components.ContentCard("Customers",
			components.BarChart(series[0].Values(), labels, t.Actual, chartW, 8), cw))
	} else {
		series := rep.Result.Series()
		b.WriteString(components.ContentCard("Predicted vs Actual Revenue",
			components.GroupedBarChart([]components.Bars{
				{Name: series[0].Name, Values: series[0].Values(), Color: t.Predicted},
				{Name: series[1].Name, Values: series[1].Values(), Color: t.Actual},
			}, labels, chartW, 8), cw))
	}
	b.WriteString("\n")

	halves := components.LayoutRow(cw, 2)
	b.WriteString(components.CardRow([]string{
		components.ContentCard("Health", renderGauges(rep.Summary, components.CardInnerWidth(halves[0])), halves[0]),
		components.ContentCard("Recommendations", renderAdvice(rep.Advice), halves[1]),
	}))
	b.WriteString("\n")

	b.WriteString(components.ContentCard("By month", renderPeriodTable(rep.Result, components.CardInnerWidth(cw)), cw))
	return b.String()
}

func summaryCards(s model.Summary) []components.Metric {
	t := theme.Active
	if s.Mode == model.ModeSaaS {
		ratioColor := t.Good
		if s.LTVToCAC < pipeline.HealthyLTVToCAC {
			ratioColor = t.Warn
		}
		return []components.Metric{
			{Label: "Final Customers", Value: cli.FormatQuantity(s.FinalCustomers)},
			{Label: "Final MRR", Value: cli.FormatMoney(s.FinalMRR)},
			{Label: "LTV", Value: cli.FormatMoney(s.LTV), Delta: "churn " + cli.FormatPercent(s.ChurnRate)},
			{Label: "LTV:CAC", Value: cli.FormatRatio(s.LTVToCAC), Delta: fmt.Sprintf("target %gx", pipeline.HealthyLTVToCAC), Color: ratioColor},
		}
	}

	gapColor := t.Good
	if s.Gap <= 0 {
		gapColor = t.Warn
	}
	profitColor := t.Good
	if s.ActualProfit < 0 {
		profitColor = t.Bad
	}
	return []components.Metric{
		{Label: "Predicted Avg Revenue", Value: cli.FormatMoney(s.AvgPredictedRevenue)},
		{Label: "Actual Avg Revenue", Value: cli.FormatMoney(s.AvgActualRevenue),
			Delta: cli.FormatDelta(s.AvgActualRevenue, s.AvgPredictedRevenue), Color: gapColor},
		{Label: "Total Cost", Value: cli.FormatMoney(s.TotalCost)},
		{Label: "Actual Profit", Value: cli.FormatMoney(s.ActualProfit), Color: profitColor},
	}
}

func renderGauges(s model.Summary, innerW int) string {
	t := theme.Active
	const labelW = 18
	barW := max(innerW-labelW-12, 4)

	if s.Mode == model.ModeSaaS {
		retention := 1 - s.ChurnRate
		churnColor := t.Good
		switch {
		case s.ChurnRate > pipeline.SevereChurn:
			churnColor = t.Bad
		case s.ChurnRate > pipeline.MildChurn:
			churnColor = t.Warn
		}

		ratioPct := 1.0
		if !math.IsInf(s.LTVToCAC, 1) {
			ratioPct = s.LTVToCAC / pipeline.HealthyLTVToCAC
		}
		ratioColor := t.Good
		if s.LTVToCAC < pipeline.HealthyLTVToCAC {
			ratioColor = t.Warn
		}
		return components.Gauge("Monthly retention", cli.FormatPercent(retention), retention, churnColor, labelW, barW) + "\n" +
			components.Gauge("LTV:CAC vs target", cli.FormatRatio(s.LTVToCAC), ratioPct, ratioColor, labelW, barW)
	}

	margin := 0.0
	if s.TotalActualRevenue > 0 {
		margin = s.ActualProfit / s.TotalActualRevenue
	}
	marginColor := t.Good
	if margin < 0 {
		marginColor = t.Bad
	}
	attainment := 0.0
	if s.AvgPredictedRevenue > 0 {
		attainment = s.AvgActualRevenue / s.AvgPredictedRevenue
	}
	attainColor := t.Good
	if s.Gap <= 0 {
		attainColor = t.Warn
	}
	return components.Gauge("Profit margin", cli.FormatPercent(margin), margin, marginColor, labelW, barW) + "\n" +
		components.Gauge("Plan attainment", cli.FormatPercent(attainment), attainment, attainColor, labelW, barW)
}

func renderAdvice(advice []pipeline.Advice) string {
	var b strings.Builder
	for i, adv := range advice {
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(lipgloss.NewStyle().Foreground(severityColor(adv.Severity)).Render("• " + adv.Message))
	}
	return b.String()
}

func renderPeriodTable(res model.Result, innerW int) string {
	t := theme.Active
	headerStyle := lipgloss.NewStyle().Foreground(t.Accent).Bold(true)
	rowStyle := lipgloss.NewStyle().Foreground(t.TextPrimary)
	mutedStyle := lipgloss.NewStyle().Foreground(t.TextMuted)

	series := res.Series()
	colW := 16
	if n := len(series); n > 0 {
		colW = min(max((innerW-6)/n, 10), 18)
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%-5s", "Month")))
	for _, s := range series {
		b.WriteString(headerStyle.Render(fmt.Sprintf(" %*s", colW, truncStr(s.Name, colW))))
	}
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(innerW, 6+len(series)*(colW+1)))))
	b.WriteString("\n")

	money := res.Mode == model.ModeGrowth
	for i := 0; i < res.Len(); i++ {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%-5s", cli.FormatMonth(i+1))))
		for j, s := range series {
			v := s.Points[i].Value
			cell := cli.FormatQuantity(v)
			if money || (res.Mode == model.ModeSaaS && j == 1) {
				cell = cli.FormatMoney(v)
			}
			b.WriteString(rowStyle.Render(fmt.Sprintf(" %*s", colW, cell)))
		}
		if i < res.Len()-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func monthLabels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = cli.FormatMonth(i + 1)
	}
	return labels
}

func truncStr(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}
