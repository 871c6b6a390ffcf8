package components

import (
	"fmt"
	"math"
	"strings"

	"github.com/theirongolddev/stratsim/internal/tui/theme"

	"github.com/charmbracelet/lipgloss"
)

// Bars is one series of a bar chart.
type Bars struct {
	Name   string
	Values []float64
	Color  lipgloss.Color
}

// Sparkline renders a unicode sparkline from values.
func Sparkline(values []float64, color lipgloss.Color) string {
	if len(values) == 0 {
		return ""
	}
	t := theme.Active

	blocks := []rune{'▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}

	peak := values[0]
	for _, v := range values[1:] {
		if v > peak {
			peak = v
		}
	}
	if peak == 0 {
		peak = 1
	}

	style := lipgloss.NewStyle().Foreground(color).Background(t.Surface)

	var buf strings.Builder
	buf.Grow(len(values) * 4) // UTF-8 block chars are up to 3 bytes
	for _, v := range values {
		idx := int(v / peak * float64(len(blocks)-1))
		if idx >= len(blocks) {
			idx = len(blocks) - 1
		}
		if idx < 0 {
			idx = 0
		}
		buf.WriteRune(blocks[idx])
	}

	return style.Render(buf.String())
}

// BarChart renders a single series with gradient-style coloring.
func BarChart(values []float64, labels []string, color lipgloss.Color, width, height int) string {
	return GroupedBarChart([]Bars{{Values: values, Color: color}}, labels, width, height)
}

// GroupedBarChart renders one group of adjacent bars per label, one bar per
// series, followed by a legend when there is more than one series.
// Series shorter than the first are treated as zero.
func GroupedBarChart(series []Bars, labels []string, width, height int) string {
	if len(series) == 0 || len(series[0].Values) == 0 {
		return ""
	}
	if width < 15 || height < 3 {
		return Sparkline(series[0].Values, series[0].Color)
	}

	t := theme.Active
	k := len(series)
	n := len(series[0].Values)

	valueAt := func(s, i int) float64 {
		if i < len(series[s].Values) {
			return series[s].Values[i]
		}
		return 0
	}

	maxVal := 0.0
	for s := range series {
		for _, v := range series[s].Values {
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if maxVal == 0 {
		maxVal = 1
	}

	// Y-axis: compute tick step and ceiling
	tickStep := chartTickStep(maxVal)
	maxIntervals := height / 2
	if maxIntervals < 2 {
		maxIntervals = 2
	}
	for int(math.Ceil(maxVal/tickStep)) > maxIntervals {
		tickStep *= 2
	}
	ceiling := math.Ceil(maxVal/tickStep) * tickStep
	numIntervals := int(math.Round(ceiling / tickStep))
	if numIntervals < 1 {
		numIntervals = 1
	}

	rowsPerTick := height / numIntervals
	if rowsPerTick < 2 {
		rowsPerTick = 2
	}
	chartH := rowsPerTick * numIntervals

	yLabelW := len(formatChartLabel(ceiling)) + 1
	if yLabelW < 4 {
		yLabelW = 4
	}
	tickLabels := make(map[int]string)
	for i := 1; i <= numIntervals; i++ {
		tickLabels[i*rowsPerTick] = formatChartLabel(tickStep * float64(i))
	}

	chartW := width - yLabelW - 1
	if chartW < 5 {
		chartW = 5
	}

	// Bar sizing: groups are separated by one column.
	minBar, maxBar := 2, 6
	if k > 1 {
		minBar, maxBar = 1, 3
	}
	gap := 1
	if n <= 1 {
		gap = 0
	}
	barW := (chartW - (n-1)*gap) / (n * k)
	index := make([]int, n)
	for i := range index {
		index[i] = i
	}
	if barW < minBar && n > 1 {
		maxN := (chartW + 1) / (k*minBar + 1)
		if maxN < 2 {
			maxN = 2
		}
		index = make([]int, maxN)
		for i := range index {
			index[i] = i * (n - 1) / (maxN - 1)
		}
		if len(labels) == n {
			sampled := make([]string, maxN)
			for i, src := range index {
				sampled[i] = labels[src]
			}
			labels = sampled
		}
		n = maxN
		barW = minBar
	}
	if barW > maxBar {
		barW = maxBar
	}
	if barW < 1 {
		barW = 1
	}
	groupW := k * barW
	axisLen := n*groupW + max(0, n-1)*gap

	blocks := []rune{' ', '▁', '▂', '▃', '▄', '▅', '▆', '▇', '█'}
	axisStyle := lipgloss.NewStyle().Foreground(t.TextDim).Background(t.Surface)
	blankStyle := lipgloss.NewStyle().Background(t.Surface)

	var b strings.Builder

	for row := chartH; row >= 1; row-- {
		rowTop := ceiling * float64(row) / float64(chartH)
		rowBottom := ceiling * float64(row-1) / float64(chartH)
		rowPct := float64(row) / float64(chartH)

		b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, tickLabels[row])))
		b.WriteString(axisStyle.Render("│"))

		for i, src := range index {
			if i > 0 && gap > 0 {
				b.WriteString(blankStyle.Render(strings.Repeat(" ", gap)))
			}
			for s := range series {
				barColor := series[s].Color
				if k == 1 {
					// Single series keeps the gradient effect.
					switch {
					case rowPct > 0.8:
						barColor = t.AccentBright
					case rowPct <= 0.5:
						barColor = t.Accent
					}
				}
				barStyle := lipgloss.NewStyle().Foreground(barColor).Background(t.Surface)

				v := valueAt(s, src)
				switch {
				case v >= rowTop:
					b.WriteString(barStyle.Render(strings.Repeat("█", barW)))
				case v > rowBottom:
					idx := int((v - rowBottom) / (rowTop - rowBottom) * 8)
					idx = min(max(idx, 1), 8)
					b.WriteString(barStyle.Render(strings.Repeat(string(blocks[idx]), barW)))
				default:
					b.WriteString(blankStyle.Render(strings.Repeat(" ", barW)))
				}
			}
		}
		b.WriteString("\n")
	}

	// X-axis line with 0 label
	b.WriteString(axisStyle.Render(fmt.Sprintf("%*s", yLabelW, "0")))
	b.WriteString(axisStyle.Render("└"))
	b.WriteString(axisStyle.Render(strings.Repeat("─", axisLen)))

	if len(labels) == n {
		b.WriteString("\n")
		b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
		b.WriteString(axisStyle.Render(axisLabels(labels, axisLen, groupW+gap)))
	}

	if k > 1 {
		b.WriteString("\n")
		b.WriteString(blankStyle.Render(strings.Repeat(" ", yLabelW+1)))
		for s, ser := range series {
			if s > 0 {
				b.WriteString(blankStyle.Render("  "))
			}
			b.WriteString(lipgloss.NewStyle().Foreground(ser.Color).Background(t.Surface).Render("■ "))
			b.WriteString(axisStyle.Render(ser.Name))
		}
	}

	return b.String()
}

// axisLabels lays labels out under their groups, skipping any that would
// collide. The last label is always shown when it fits.
func axisLabels(labels []string, axisLen, stride int) string {
	n := len(labels)
	buf := []byte(strings.Repeat(" ", axisLen))

	minSpacing := 8
	labelStep := max(1, (n*minSpacing)/(axisLen+1))

	lastEnd := -1
	for i := 0; i < n; i += labelStep {
		pos := i * stride
		lbl := labels[i]
		end := pos + len(lbl)
		if pos <= lastEnd {
			continue
		}
		if end > axisLen {
			end = axisLen
			if end-pos < 3 {
				continue
			}
			lbl = lbl[:end-pos]
		}
		copy(buf[pos:end], lbl)
		lastEnd = end + 1
	}
	if n > 1 {
		lbl := labels[n-1]
		pos := (n - 1) * stride
		end := pos + len(lbl)
		if end > axisLen {
			pos = axisLen - len(lbl)
			end = axisLen
		}
		if pos >= 0 && pos > lastEnd {
			copy(buf[pos:end], lbl)
		}
	}
	return strings.TrimRight(string(buf), " ")
}

// chartTickStep computes a nice tick interval targeting ~5 ticks.
func chartTickStep(maxVal float64) float64 {
	if maxVal <= 0 {
		return 1
	}
	rough := maxVal / 5
	exp := math.Floor(math.Log10(rough))
	base := math.Pow(10, exp)
	frac := rough / base

	switch {
	case frac < 1.5:
		return base
	case frac < 3.5:
		return 2 * base
	default:
		return 5 * base
	}
}

func formatChartLabel(v float64) string {
	switch {
	case v >= 1e9:
		if v == math.Trunc(v/1e9)*1e9 {
			return fmt.Sprintf("%.0fB", v/1e9)
		}
		return fmt.Sprintf("%.1fB", v/1e9)
	case v >= 1e6:
		if v == math.Trunc(v/1e6)*1e6 {
			return fmt.Sprintf("%.0fM", v/1e6)
		}
		return fmt.Sprintf("%.1fM", v/1e6)
	case v >= 1e3:
		if v == math.Trunc(v/1e3)*1e3 {
			return fmt.Sprintf("%.0fk", v/1e3)
		}
		return fmt.Sprintf("%.1fk", v/1e3)
	case v >= 1:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}
