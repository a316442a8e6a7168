package report

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"posreport/internal/kpi"
	"posreport/internal/pos"
)

// ChartMonthlySales renders a grouped bar chart of monthly sales by
// daypart into charts/monthly_sales.html.
func (e Emitter) ChartMonthlySales(periods []kpi.PeriodRows) error {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Monthly Sales",
			Width:     "960px",
			Height:    "520px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Monthly sales by daypart"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true)}),
	)

	labels, series := salesSeries(periods)
	bar.SetXAxis(labels)
	for _, daypart := range []string{"Total", string(pos.DaypartLunch), string(pos.DaypartDinner)} {
		data := make([]opts.BarData, 0, len(labels))
		for _, v := range series[daypart] {
			data = append(data, opts.BarData{Value: v})
		}
		bar.AddSeries(daypart, data)
	}

	return e.renderChart(bar, "monthly_sales.html")
}

// ChartWeeklySales renders a line chart of weekly total sales into
// charts/weekly_sales.html.
func (e Emitter) ChartWeeklySales(periods []kpi.PeriodRows) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Weekly Sales",
			Width:     "960px",
			Height:    "520px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Weekly sales"}),
	)

	labels, series := salesSeries(periods)
	data := make([]opts.LineData, 0, len(labels))
	for _, v := range series["Total"] {
		data = append(data, opts.LineData{Value: v})
	}
	line.SetXAxis(labels)
	line.AddSeries("Total", data)

	return e.renderChart(line, "weekly_sales.html")
}

// ChartOccupancyDay renders one operating day's occupancy series into
// charts/occupancy_<date>.html.
func (e Emitter) ChartOccupancyDay(day time.Time, slots []pos.OccupancySlot) error {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Occupancy",
			Width:     "960px",
			Height:    "420px",
		}),
		charts.WithTitleOpts(opts.Title{Title: "Occupancy " + day.Format(time.DateOnly)}),
	)

	labels := make([]string, 0, len(slots))
	data := make([]opts.LineData, 0, len(slots))
	for _, s := range slots {
		labels = append(labels, SlotLabel(s))
		data = append(data, opts.LineData{Value: s.Occupants})
	}
	line.SetXAxis(labels)
	line.AddSeries("occupants", data)

	name := fmt.Sprintf("occupancy_%s.html", day.Format("20060102"))
	return e.renderChart(line, name)
}

type renderable interface {
	Render(w io.Writer) error
}

func (e Emitter) renderChart(chart renderable, name string) error {
	path := e.Run.ChartPath(name)
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create chart %s: %w", path, err)
	}
	defer file.Close()
	if err := chart.Render(file); err != nil {
		return fmt.Errorf("render chart %s: %w", path, err)
	}
	return file.Close()
}

func salesSeries(periods []kpi.PeriodRows) ([]string, map[string][]int64) {
	labels := make([]string, 0, len(periods))
	series := make(map[string][]int64)
	for _, pr := range periods {
		labels = append(labels, pr.Period.Label)
		for _, dr := range pr.Rows {
			series[dr.Daypart] = append(series[dr.Daypart], dr.Aggregate.Sales)
		}
	}
	return labels, series
}
