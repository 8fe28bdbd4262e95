package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rribeiro1/spendless/internal/core"
)

const trendDays = 30

// TrendChart renders daily income and expense totals over the last 30
// days as a PNG. Returns nil bytes when there is nothing to plot.
func TrendChart(transactions []core.Transaction, now time.Time) ([]byte, error) {
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(trendDays - 1))

	xValues := make([]time.Time, trendDays)
	incomeValues := make([]float64, trendDays)
	expenseValues := make([]float64, trendDays)
	for i := range xValues {
		xValues[i] = start.AddDate(0, 0, i)
	}

	plotted := false
	for _, tx := range transactions {
		day := time.Date(tx.CreatedAt.Year(), tx.CreatedAt.Month(), tx.CreatedAt.Day(), 0, 0, 0, 0, now.Location())
		idx := int(day.Sub(start).Hours() / 24)
		if idx < 0 || idx >= trendDays {
			continue
		}
		amount, _ := tx.Magnitude().Float64()
		if tx.Type == core.Income {
			incomeValues[idx] += amount
		} else {
			expenseValues[idx] += amount
		}
		plotted = true
	}
	if !plotted {
		return nil, nil
	}

	graph := chart.Chart{
		Width:  1200,
		Height: 600,
		Background: chart.Style{
			Padding:   chart.Box{Top: 50, Left: 50, Right: 50, Bottom: 50},
			FillColor: chart.ColorWhite,
		},
		XAxis: chart.XAxis{
			ValueFormatter: chart.TimeValueFormatterWithFormat("Jan 2"),
			Style:          chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		YAxis: chart.YAxis{
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%.0f", v.(float64))
			},
			Style: chart.Style{FontSize: 12, FontColor: chart.ColorBlack},
		},
		Series: []chart.Series{
			chart.TimeSeries{
				Name:    "Expenses",
				XValues: xValues,
				YValues: expenseValues,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("B3261E"), StrokeWidth: 2},
			},
			chart.TimeSeries{
				Name:    "Income",
				XValues: xValues,
				YValues: incomeValues,
				Style:   chart.Style{StrokeColor: drawing.ColorFromHex("1B5E20"), StrokeWidth: 2},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	var buf bytes.Buffer
	if err := graph.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render trend chart: %w", err)
	}
	return buf.Bytes(), nil
}
