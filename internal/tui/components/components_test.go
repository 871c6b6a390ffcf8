package components

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/theirongolddev/stratsim/internal/tui/theme"
)

func init() {
	// Force TrueColor output so ANSI codes are generated in tests
	lipgloss.SetColorProfile(termenv.TrueColor)
}

func TestLayoutRowSumsToTotal(t *testing.T) {
	for _, tt := range []struct{ total, n int }{{80, 3}, {81, 4}, {7, 7}, {120, 5}} {
		widths := LayoutRow(tt.total, tt.n)
		sum := 0
		for _, w := range widths {
			sum += w
		}
		if sum != tt.total {
			t.Fatalf("LayoutRow(%d, %d) sums to %d", tt.total, tt.n, sum)
		}
		if widths[0] < widths[len(widths)-1] {
			t.Fatalf("LayoutRow(%d, %d) = %v, remainder should go first", tt.total, tt.n, widths)
		}
	}
	if LayoutRow(10, 0) != nil {
		t.Fatal("LayoutRow(10, 0) should be nil")
	}
}

func TestMetricCardRowWidth(t *testing.T) {
	theme.SetActive("flexoki-dark")

	row := MetricCardRow([]Metric{
		{Label: "Final MRR", Value: "$12,000.00"},
		{Label: "LTV", Value: "∞", Color: theme.Active.Good},
		{Label: "LTV:CAC", Value: "10.00x", Delta: "target 3x"},
	}, 90)

	for i, line := range strings.Split(row, "\n") {
		if w := lipgloss.Width(line); w != 90 {
			t.Fatalf("line %d width = %d, want 90", i, w)
		}
	}
}

func TestCardRowMatchesTallestCard(t *testing.T) {
	theme.SetActive("flexoki-dark")

	shortCard := ContentCard("Short", "Content", 22)
	tallCard := ContentCard("Tall", "Line 1\nLine 2\nLine 3\nLine 4\nLine 5", 22)
	tallLines := len(strings.Split(tallCard, "\n"))

	joined := CardRow([]string{tallCard, shortCard})
	if got := len(strings.Split(joined, "\n")); got != tallLines {
		t.Errorf("joined height = %d, want %d", got, tallLines)
	}
}

func TestGroupedBarChartLegend(t *testing.T) {
	th := theme.ByName("terminal")
	theme.Active = th

	chart := GroupedBarChart([]Bars{
		{Name: "Predicted", Values: []float64{100, 110, 121}, Color: th.Predicted},
		{Name: "Actual", Values: []float64{95, 104.5, 114.95}, Color: th.Actual},
	}, []string{"M1", "M2", "M3"}, 60, 8)

	if !strings.Contains(chart, "Predicted") || !strings.Contains(chart, "Actual") {
		t.Fatal("legend missing series names")
	}
	if !strings.Contains(chart, "M1") {
		t.Fatal("x-axis labels missing")
	}
	for i, line := range strings.Split(chart, "\n") {
		if w := lipgloss.Width(line); w > 60 {
			t.Fatalf("line %d width = %d, exceeds 60", i, w)
		}
	}
}

func TestGroupedBarChartSamplesLongSeries(t *testing.T) {
	values := make([]float64, 36)
	labels := make([]string, 36)
	for i := range values {
		values[i] = float64(1000 + i*50)
		labels[i] = "M" + string(rune('0'+i%10))
	}
	chart := GroupedBarChart([]Bars{{Name: "a", Values: values}, {Name: "b", Values: values}}, labels, 30, 6)
	for i, line := range strings.Split(chart, "\n") {
		if w := lipgloss.Width(line); w > 30 {
			t.Fatalf("line %d width = %d, exceeds 30", i, w)
		}
	}
}

func TestBarChartFallsBackToSparkline(t *testing.T) {
	got := BarChart([]float64{1, 2, 3}, nil, theme.Active.Accent, 10, 2)
	if strings.Contains(got, "\n") {
		t.Fatalf("narrow chart should be a single-line sparkline, got %q", got)
	}
	if BarChart(nil, nil, theme.Active.Accent, 60, 10) != "" {
		t.Fatal("empty series should render nothing")
	}
}

func TestChartTickStep(t *testing.T) {
	tests := []struct {
		max  float64
		want float64
	}{
		{0, 1},
		{100, 20},
		{50000, 10000},
		{7, 1},
		{30, 5},
	}
	for _, tt := range tests {
		if got := chartTickStep(tt.max); got != tt.want {
			t.Errorf("chartTickStep(%v) = %v, want %v", tt.max, got, tt.want)
		}
	}
}

func TestFormatChartLabel(t *testing.T) {
	tests := []struct {
		v    float64
		want string
	}{
		{2000, "2k"},
		{2500, "2.5k"},
		{3e6, "3M"},
		{12, "12"},
		{0.5, "0.50"},
	}
	for _, tt := range tests {
		if got := formatChartLabel(tt.v); got != tt.want {
			t.Errorf("formatChartLabel(%v) = %q, want %q", tt.v, got, tt.want)
		}
	}
}

func TestTabIdxByKey(t *testing.T) {
	for i, tab := range Tabs {
		if got := TabIdxByKey(tab.Key); got != i {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", tab.Key, got, i)
		}
		if tab.Name[tab.KeyPos] != byte(tab.Key) {
			t.Fatalf("tab %s: key %q not at position %d", tab.Name, tab.Key, tab.KeyPos)
		}
	}
	for i := range Tabs {
		if got := TabIdxByKey(rune('1' + i)); got != i {
			t.Fatalf("TabIdxByKey(%q) = %d, want %d", rune('1'+i), got, i)
		}
	}
	for _, k := range []rune{'z', '0', rune('1' + len(Tabs))} {
		if got := TabIdxByKey(k); got != -1 {
			t.Fatalf("TabIdxByKey(%q) = %d, want -1", k, got)
		}
	}
}

func TestGaugeClamps(t *testing.T) {
	a := Gauge("Retention", "95.0%", 1.7, theme.Active.Good, 12, 20)
	b := Gauge("Retention", "95.0%", 1, theme.Active.Good, 12, 20)
	if lipgloss.Width(a) != lipgloss.Width(b) {
		t.Fatalf("widths differ: %d vs %d", lipgloss.Width(a), lipgloss.Width(b))
	}
}
